package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"forumCPT/internal/middleware"
	"forumCPT/internal/models"
	"forumCPT/internal/repository"
	"forumCPT/internal/service"
	"forumCPT/internal/storage"
)

type CreateForumRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Username    string `json:"username" validate:"required"`
}

// CommentRequest leaves comment to the service, which reports a blank one
// as "Comment is required".
type CommentRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Comment string `json:"comment"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ForumsResponse struct {
	Forums     []models.Forum      `json:"forums"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

type ForumResponse struct {
	Message string        `json:"message,omitempty"`
	Forum   *models.Forum `json:"forum"`
}

type ForumDetailsResponse struct {
	Forum *models.ForumDetails `json:"forum"`
}

type CommentResponse struct {
	Message string          `json:"message"`
	Comment *models.Comment `json:"comment"`
}

// CreateForum accepts a multipart form with an optional "image" file, or JSON without one.
func (h *Handlers) CreateForum(w http.ResponseWriter, r *http.Request) {
	var (
		req   CreateForumRequest
		image *storage.Upload
	)

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		req = CreateForumRequest{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Username:    r.FormValue("username"),
		}

		upload, closeFile, err := formFile(r, "image")
		if err != nil {
			writeError(w, "Invalid form data", err, http.StatusBadRequest)
			return
		}
		defer closeFile()
		image = upload
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	forum, err := h.ForumService.CreateForum(r.Context(), repository.CreateForumRequest{
		Title:       req.Title,
		Description: req.Description,
		Username:    req.Username,
	}, image)
	if err != nil {
		if writeUploadError(w, err) {
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, ForumResponse{Message: "Post created successfully", Forum: forum}, http.StatusCreated)
}

// maxOffset bounds (page-1)*limit so the OFFSET stays within a 32-bit integer.
const maxOffset = math.MaxInt32

// GetForums lists every post unless page or limit is given.
func (h *Handlers) GetForums(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	paginate := query.Has("page") || query.Has("limit")

	// Pagination parameters
	page, limit := 0, 0
	if paginate {
		page, _ = strconv.Atoi(query.Get("page"))
		if page < 1 {
			page = 1
		}
		limit, _ = strconv.Atoi(query.Get("limit"))
		if limit < 1 || limit > 100 {
			limit = 20
		}
		if page > maxOffset/limit+1 {
			writeMessage(w, "Page out of range", http.StatusBadRequest)
			return
		}
	}

	forums, total, err := h.ForumService.GetForums(r.Context(), page, limit)
	if err != nil {
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	response := ForumsResponse{Forums: forums}
	if paginate {
		response.Pagination = &PaginationResponse{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		}
	}

	writeSuccess(w, response, http.StatusOK)
}

func (h *Handlers) GetForum(w http.ResponseWriter, r *http.Request) {
	forumID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid forum ID", err, http.StatusBadRequest)
		return
	}

	forum, err := h.ForumService.GetForum(r.Context(), forumID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, "Forum not found", http.StatusNotFound)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, ForumDetailsResponse{Forum: forum}, http.StatusOK)
}

func (h *Handlers) DeleteForum(w http.ResponseWriter, r *http.Request) {
	forumID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid forum ID", err, http.StatusBadRequest)
		return
	}

	if err := h.ForumService.DeleteForum(r.Context(), forumID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, "Forum not found", http.StatusNotFound)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeMessage(w, "Post and associated comments deleted successfully", http.StatusOK)
}

func (h *Handlers) LikeForum(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, "Access token required", http.StatusUnauthorized)
		return
	}

	forumID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid forum ID", err, http.StatusBadRequest)
		return
	}

	notified, err := h.ForumService.LikeForum(r.Context(), forumID, claims)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeMessage(w, "Forum not found", http.StatusNotFound)
		case errors.Is(err, service.ErrAlreadyLiked):
			writeMessage(w, "You already liked this post", http.StatusBadRequest)
		default:
			writeError(w, "Database error", err, http.StatusInternalServerError)
		}
		return
	}

	if notified {
		writeMessage(w, "Like added and notification sent", http.StatusOK)
		return
	}
	writeMessage(w, "Like added", http.StatusOK)
}

func (h *Handlers) UnlikeForum(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, "Access token required", http.StatusUnauthorized)
		return
	}

	forumID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid forum ID", err, http.StatusBadRequest)
		return
	}

	if err := h.ForumService.UnlikeForum(r.Context(), forumID, claims.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, "Like not found", http.StatusNotFound)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeMessage(w, "Like removed", http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	forumID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid forum ID", err, http.StatusBadRequest)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	comment, err := h.ForumService.AddComment(r.Context(), forumID, req.UserID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentRequired):
			writeMessage(w, "Comment is required", http.StatusBadRequest)
		case errors.Is(err, repository.ErrNotFound):
			writeMessage(w, "Forum not found", http.StatusNotFound)
		default:
			writeError(w, "Database error", err, http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, CommentResponse{Message: "Comment added successfully", Comment: comment}, http.StatusCreated)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	forumID, err := pathID(r, "postId")
	if err != nil {
		writeError(w, "Invalid forum ID", err, http.StatusBadRequest)
		return
	}

	commentID, err := pathID(r, "commentId")
	if err != nil {
		writeError(w, "Invalid comment ID", err, http.StatusBadRequest)
		return
	}

	if err := h.ForumService.DeleteComment(r.Context(), forumID, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, "Comment not found", http.StatusNotFound)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeMessage(w, "Comment deleted successfully", http.StatusOK)
}
