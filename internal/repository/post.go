package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/model"
)

// postFields projects a post with its owner's email and username resolved through the record link
const postFields = `id, title, content, user, created_on, updated_on,
	user.email AS owner_email, user.username AS owner_name`

// PostRepository handles board post data access
type PostRepository struct {
	db database.Database
}

// NewPostRepository creates a new post repository
func NewPostRepository(db database.Database) *PostRepository {
	return &PostRepository{db: db}
}

// Create stores a new post. Ids come from the sequence:post counter, so they
// increase monotonically even after deletes.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	statements := `
		LET $seq = (UPSERT ONLY sequence:post SET value = (value ?? 0) + 1 RETURN VALUE value);
		CREATE ONLY type::thing('post', $seq) CONTENT {
			title: $title,
			content: $content,
			user: type::record($user_id),
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"title":   post.Title,
		"content": post.Content,
		"user_id": post.OwnerID,
	}

	results, err := r.db.Transact(ctx, statements, vars)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	data, ok := lastRecord(results)
	if !ok {
		return errors.New("no result returned")
	}

	post.ID = numericRecordKey(data["id"])
	post.CreatedOn = parseTime(data["created_on"])
	post.UpdatedOn = parseTime(data["updated_on"])
	return nil
}

// GetByID retrieves a post by id. Returns nil when absent.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `SELECT ` + postFields + ` FROM type::thing('post', $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parsePost(data), nil
}

// List returns one page of posts in ascending id order
func (r *PostRepository) List(ctx context.Context, req model.PageRequest) (*model.Page[model.Post], error) {
	query := `
		SELECT ` + postFields + ` FROM post ORDER BY id ASC LIMIT $limit START $offset;
		SELECT count() AS count FROM post GROUP ALL;
	`
	vars := map[string]interface{}{
		"limit":  req.Size,
		"offset": req.Offset(),
	}

	return r.queryPage(ctx, query, vars, req)
}

// SearchByTitle returns one page of posts whose title contains keyword.
// Matching is case-sensitive.
func (r *PostRepository) SearchByTitle(ctx context.Context, keyword string, req model.PageRequest) (*model.Page[model.Post], error) {
	query := `
		SELECT ` + postFields + ` FROM post WHERE string::contains(title, $keyword)
			ORDER BY id ASC LIMIT $limit START $offset;
		SELECT count() AS count FROM post WHERE string::contains(title, $keyword) GROUP ALL;
	`
	vars := map[string]interface{}{
		"keyword": keyword,
		"limit":   req.Size,
		"offset":  req.Offset(),
	}

	return r.queryPage(ctx, query, vars, req)
}

// Update applies the non-nil fields of upd and returns the post as stored.
// Returns nil without writing when the post does not exist.
func (r *PostRepository) Update(ctx context.Context, id int64, upd model.PostUpdate) (*model.Post, error) {
	sets := []string{"updated_on = time::now()"}
	vars := map[string]interface{}{"id": id}
	if upd.Title != nil {
		sets = append(sets, "title = $title")
		vars["title"] = *upd.Title
	}
	if upd.Content != nil {
		sets = append(sets, "content = $content")
		vars["content"] = *upd.Content
	}

	// UPDATE on a record id never creates the record
	statements := `
		UPDATE type::thing('post', $id) SET ` + strings.Join(sets, ", ") + ` RETURN NONE;
		SELECT ` + postFields + ` FROM type::thing('post', $id)
	`

	results, err := r.db.Transact(ctx, statements, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	data, ok := lastRecord(results)
	if !ok {
		return nil, nil
	}
	return parsePost(data), nil
}

// Delete removes a post. Deleting a missing post is not an error.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE type::thing('post', $id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

func (r *PostRepository) queryPage(ctx context.Context, query string, vars map[string]interface{}, req model.PageRequest) (*model.Page[model.Post], error) {
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	rows := statementResults(results, 0)
	posts := make([]model.Post, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		posts = append(posts, *parsePost(data))
	}

	return model.NewPage(posts, req, extractCount(results, 1)), nil
}

func parsePost(data map[string]interface{}) *model.Post {
	return &model.Post{
		ID:         numericRecordKey(data["id"]),
		Title:      getString(data, "title"),
		Content:    getString(data, "content"),
		OwnerID:    convertSurrealID(data["user"]),
		OwnerEmail: getString(data, "owner_email"),
		OwnerName:  getStringPtr(data, "owner_name"),
		CreatedOn:  parseTime(data["created_on"]),
		UpdatedOn:  parseTime(data["updated_on"]),
	}
}
