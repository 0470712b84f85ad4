package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/forgo/agora/api/internal/middleware"
	"github.com/forgo/agora/api/internal/model"
	"github.com/forgo/agora/api/internal/service"
)

// BoardHandler handles board post endpoints
type BoardHandler struct {
	boardService *service.BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// AuthorityResponse reports a successful authority check
type AuthorityResponse struct {
	PostID     int64 `json:"post_id"`
	Authorized bool  `json:"authorized"`
}

// FindAllList handles GET /v1/boards?page=N
func (h *BoardHandler) FindAllList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}

	result, err := h.boardService.FindAllList(r.Context(), page)
	if errors.Is(err, service.ErrNoPosts) {
		WriteNoContent(w)
		return
	}
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list posts"))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// SearchPost handles GET /v1/boards/search?keyword=K&page=N
func (h *BoardHandler) SearchPost(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}

	result, err := h.boardService.SearchPost(r.Context(), r.URL.Query().Get("keyword"), page)
	if errors.Is(err, service.ErrNoPosts) {
		WriteNoContent(w)
		return
	}
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "search posts"))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// FindDetailInfo handles GET /v1/boards/{boardId}
func (h *BoardHandler) FindDetailInfo(w http.ResponseWriter, r *http.Request) {
	postID, ok := boardIDParam(w, r)
	if !ok {
		return
	}

	detail, err := h.boardService.FindDetailInfo(r.Context(), postID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get post"))
		return
	}

	WriteData(w, http.StatusOK, detail, map[string]string{
		"self": "/v1/boards/" + strconv.FormatInt(postID, 10),
	})
}

// AddPost handles POST /v1/boards
func (h *BoardHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req model.AddPostRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	detail, err := h.boardService.AddPost(r.Context(), actor, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "add post"))
		return
	}

	WriteData(w, http.StatusCreated, detail, map[string]string{
		"self": "/v1/boards/" + strconv.FormatInt(detail.ID, 10),
	})
}

// CheckAuthority handles GET /v1/boards/{boardId}/authority
func (h *BoardHandler) CheckAuthority(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	postID, ok := boardIDParam(w, r)
	if !ok {
		return
	}

	grant, err := h.boardService.CheckAuthority(r.Context(), actor, postID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "check authority"))
		return
	}

	WriteData(w, http.StatusOK, AuthorityResponse{PostID: grant.PostID(), Authorized: true}, nil)
}

// ModifyPost handles PATCH /v1/boards/{boardId}
func (h *BoardHandler) ModifyPost(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	postID, ok := boardIDParam(w, r)
	if !ok {
		return
	}

	var req model.ModifyPostRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	grant, err := h.boardService.CheckAuthority(r.Context(), actor, postID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "check authority"))
		return
	}

	detail, err := h.boardService.ModifyPost(r.Context(), grant, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "modify post"))
		return
	}

	WriteData(w, http.StatusOK, detail, nil)
}

// DeletePost handles DELETE /v1/boards/{boardId}. A post that is already
// gone counts as deleted.
func (h *BoardHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	postID, ok := boardIDParam(w, r)
	if !ok {
		return
	}

	grant, err := h.boardService.CheckAuthority(r.Context(), actor, postID)
	if errors.Is(err, service.ErrPostNotFound) {
		WriteData(w, http.StatusOK, map[string]int64{"deleted": postID}, nil)
		return
	}
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "check authority"))
		return
	}

	if err := h.boardService.DeletePost(r.Context(), grant); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "delete post"))
		return
	}

	WriteData(w, http.StatusOK, map[string]int64{"deleted": postID}, nil)
}

// pageParam reads the one-based page query parameter, defaulting to 1
func pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, model.NewBadRequestError("page must be an integer"))
		return 0, false
	}
	return page, true
}

func boardIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("boardId"), 10, 64)
	if err != nil || id < 1 {
		WriteError(w, model.NewBadRequestError("boardId must be a positive integer"))
		return 0, false
	}
	return id, true
}

func requireActor(w http.ResponseWriter, r *http.Request) (model.Actor, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return model.Actor{}, false
	}
	return actor, true
}
