package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// statementResults returns the result rows of statement i in a multi-statement response
func statementResults(results []interface{}, i int) []interface{} {
	if i < 0 || i >= len(results) {
		return nil
	}
	if resp, ok := results[i].(map[string]interface{}); ok {
		if rows, ok := resp["result"].([]interface{}); ok {
			return rows
		}
		if row, ok := resp["result"].(map[string]interface{}); ok {
			return []interface{}{row}
		}
	}
	return nil
}

// lastRecord returns the first row of the last statement that produced one
func lastRecord(results []interface{}) (map[string]interface{}, bool) {
	for i := len(results) - 1; i >= 0; i-- {
		rows := statementResults(results, i)
		if len(rows) == 0 {
			continue
		}
		if data, ok := rows[0].(map[string]interface{}); ok {
			return data, true
		}
	}
	return nil, false
}

// extractCount extracts count from a `SELECT count() ... GROUP ALL` statement
func extractCount(results []interface{}, i int) int64 {
	rows := statementResults(results, i)
	if len(rows) == 0 {
		return 0
	}
	if data, ok := rows[0].(map[string]interface{}); ok {
		return toInt64(data["count"])
	}
	return 0
}

// toInt64 converts the numeric types the CBOR decoder produces
func toInt64(v interface{}) int64 {
	switch c := v.(type) {
	case float64:
		return int64(c)
	case float32:
		return int64(c)
	case int:
		return int64(c)
	case int64:
		return c
	case uint64:
		return int64(c)
	case uint32:
		return int64(c)
	case string:
		n, _ := strconv.ParseInt(c, 10, 64)
		return n
	}
	return 0
}

// convertSurrealID converts a SurrealDB ID (which may be a complex object) to a string
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
		return ""
	case map[string]interface{}:
		// {"tb": "user", "id": "xxx"} format
		tb, _ := v["tb"].(string)
		if tb == "" {
			tb, _ = v["Table"].(string)
		}
		idPart := v["id"]
		if idPart == nil {
			idPart = v["ID"]
		}
		if tb != "" && idPart != nil {
			return fmt.Sprintf("%s:%v", tb, idPart)
		}
	}
	return fmt.Sprintf("%v", id)
}

// numericRecordKey returns the numeric key of a record id such as post:42
func numericRecordKey(id interface{}) int64 {
	switch v := id.(type) {
	case models.RecordID:
		return toInt64(v.ID)
	case *models.RecordID:
		if v != nil {
			return toInt64(v.ID)
		}
		return 0
	}
	s := convertSurrealID(id)
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return toInt64(strings.Trim(s, "`⟨⟩"))
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr extracts an optional string value from a map
func getStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// parseTime parses time from various formats
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// ptrToNone converts an optional string to a query variable. nil becomes NONE.
func ptrToNone(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
