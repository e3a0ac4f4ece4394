package models

import (
	"time"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password"`
	ProfilePhoto *string   `json:"profilePhoto" db:"profile_photo"`
	Phone        *string   `json:"phone" db:"phone"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Forum struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Username    string    `json:"username" db:"username"`
	UserID      *int64    `json:"userId" db:"user_id"`
	Image       *string   `json:"image" db:"image"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ForumDetails is a post together with its comments and like count.
type ForumDetails struct {
	Forum
	Comments   []Comment `json:"comments"`
	LikesCount int       `json:"likesCount"`
}

type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Like struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    *int64    `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Stats struct {
	Users         int `json:"users" db:"users"`
	Forums        int `json:"forums" db:"forums"`
	Comments      int `json:"comments" db:"comments"`
	Likes         int `json:"likes" db:"likes"`
	Notifications int `json:"notifications" db:"notifications"`
}
