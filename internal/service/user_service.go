package service

import (
	"context"
	"fmt"
	"log"

	"forumCPT/internal/config"
	"forumCPT/internal/models"
	"forumCPT/internal/repository"
	"forumCPT/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// UpdateUserInput carries a partial profile edit; nil fields are left as they are.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Username *string
	Password *string
	Phone    *string
}

type UserService interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	UpdateUser(ctx context.Context, userID int64, input UpdateUserInput, photo *storage.Upload) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *userService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetUsers(ctx)
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, input UpdateUserInput, photo *storage.Upload) (*models.User, error) {
	req := repository.UpdateUserRequest{
		Name:     input.Name,
		Email:    input.Email,
		Username: input.Username,
		Phone:    input.Phone,
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		hashed := string(hash)
		req.PasswordHash = &hashed
	}

	if req.IsEmpty() && photo == nil {
		return nil, ErrNoFieldsToUpdate
	}

	// get user by id
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if photo != nil {
		path, err := storeUpload(ctx, s.storage, s.cfg, "profiles", photo, s.cfg.Storage.ProfilePhotoEdge)
		if err != nil {
			return nil, err
		}
		req.ProfilePhoto = &path
	}

	if err := s.userRepo.UpdateUser(ctx, userID, req); err != nil {
		if req.ProfilePhoto != nil {
			s.removeFile(ctx, *req.ProfilePhoto)
		}
		return nil, err
	}

	if req.ProfilePhoto != nil && user.ProfilePhoto != nil {
		s.removeFile(ctx, *user.ProfilePhoto)
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// DeleteUser removes the user together with their posts, comments and likes.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	images, err := s.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, image := range images {
		s.removeFile(ctx, image)
	}
	if user.ProfilePhoto != nil {
		s.removeFile(ctx, *user.ProfilePhoto)
	}

	return nil
}

func (s *userService) removeFile(ctx context.Context, path string) {
	if err := s.storage.DeleteImage(ctx, path); err != nil {
		log.Printf("Failed to remove file %s: %v", path, err)
	}
}
