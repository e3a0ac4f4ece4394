package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
	ErrAlreadyLiked        = errors.New("post already liked")
	ErrCommentRequired     = errors.New("comment is required")
)
