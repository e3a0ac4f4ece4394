package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"forumCPT/internal/models"
	"forumCPT/internal/repository"
	"forumCPT/internal/service"
	"forumCPT/internal/storage"
)

// UpdateUserRequest fields are optional; absent fields are not changed.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Username *string `json:"username" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Phone    *string `json:"phone" validate:"omitempty,e164"`
}

type UsersResponse struct {
	Users []models.User `json:"users"`
}

type UserResponse struct {
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.GetUsers(r.Context())
	if err != nil {
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, UsersResponse{Users: users}, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid user ID", err, http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, "User not found", http.StatusNotFound)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, UserResponse{User: user}, http.StatusOK)
}

// UpdateUser accepts JSON, or a multipart form with an optional "profilePhoto" file.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid user ID", err, http.StatusBadRequest)
		return
	}

	var (
		req   UpdateUserRequest
		photo *storage.Upload
	)

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		req = UpdateUserRequest{
			Name:     formValue(r, "name"),
			Email:    formValue(r, "email"),
			Username: formValue(r, "username"),
			Password: formValue(r, "password"),
			Phone:    formValue(r, "phone"),
		}

		upload, closeFile, err := formFile(r, "profilePhoto")
		if err != nil {
			writeError(w, "Invalid form data", err, http.StatusBadRequest)
			return
		}
		defer closeFile()
		photo = upload
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), userID, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
	}, photo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			writeMessage(w, "No fields to update", http.StatusBadRequest)
		case errors.Is(err, repository.ErrNotFound):
			writeMessage(w, "User not found", http.StatusNotFound)
		case writeUploadError(w, err):
		default:
			writeError(w, "Database error", err, http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, UserResponse{Message: "User updated successfully", User: user}, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid user ID", err, http.StatusBadRequest)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, "User not found", http.StatusNotFound)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeMessage(w, "User and associated data deleted successfully", http.StatusOK)
}
