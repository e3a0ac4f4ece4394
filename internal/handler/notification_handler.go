package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"forumCPT/internal/models"
	"forumCPT/internal/repository"
)

type CreateNotificationRequest struct {
	UserID  *int64 `json:"user_id" validate:"omitempty,gt=0"`
	Title   string `json:"title" validate:"notblank"`
	Message string `json:"message" validate:"notblank"`
}

type NotificationResponse struct {
	Message      string               `json:"message"`
	Notification *models.Notification `json:"notification"`
}

type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

func (h *Handlers) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	notification, err := h.NotificationService.CreateNotification(r.Context(), req.UserID, req.Title, req.Message)
	if err != nil {
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, NotificationResponse{
		Message:      "Notification created successfully",
		Notification: notification,
	}, http.StatusCreated)
}

func (h *Handlers) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, "Invalid user ID", err, http.StatusBadRequest)
		return
	}

	notifications, err := h.NotificationService.GetNotifications(r.Context(), userID)
	if err != nil {
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, NotificationsResponse{Notifications: notifications}, http.StatusOK)
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	notificationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid notification ID", err, http.StatusBadRequest)
		return
	}

	if err := h.NotificationService.DeleteNotification(r.Context(), notificationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, "Notification not found", http.StatusNotFound)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeMessage(w, "Notification deleted successfully", http.StatusOK)
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "Invalid notification ID", err, http.StatusBadRequest)
		return
	}

	if err := h.NotificationService.MarkAsRead(r.Context(), notificationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, "Notification not found", http.StatusNotFound)
			return
		}
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeMessage(w, "Notification marked as read", http.StatusOK)
}
