// Package handler provides HTTP handlers for the Agora API.
//
// Handlers decode requests, call one service and encode the result.
// Successful bodies are wrapped as {"data": ...}; failures are RFC 9457
// Problem Details produced by MapServiceError. Empty pages answer 204.
//
// Routes are registered on a net/http ServeMux in cmd/server using
// method-qualified patterns such as "GET /v1/boards/{boardId}".
package handler
