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

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"required"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

// Register accepts JSON, or a multipart form with an optional "photo" file.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var (
		req   RegisterRequest
		photo *storage.Upload
	)

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		req = RegisterRequest{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Username: r.FormValue("username"),
		}

		upload, closeFile, err := formFile(r, "photo")
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

	user, err := h.AuthService.Register(r.Context(), repository.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}, photo)
	if err != nil {
		if writeUploadError(w, err) {
			return
		}
		// duplicate emails surface here as a unique constraint violation
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, RegisterResponse{
		Message: "User registered successfully",
		User:    user,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	_, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeMessage(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, LoginResponse{
		Message:      "Login successful",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err, http.StatusBadRequest)
		return
	}

	// token missing
	if req.RefreshToken == "" {
		writeMessage(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	accessToken, err := h.AuthService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			writeMessage(w, "Invalid refresh token", http.StatusForbidden)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, RefreshTokenResponse{
		Message:     "Access token refreshed successfully",
		AccessToken: accessToken,
	}, http.StatusOK)
}
