package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"forumCPT/internal/config"
	"forumCPT/internal/models"
	"forumCPT/internal/repository"
	"forumCPT/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims identify the user a token was issued to.
type Claims struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest, photo *storage.Upload) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest, photo *storage.Upload) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		ProfilePhoto: req.ProfilePhoto,
	}

	if photo != nil {
		path, err := storeUpload(ctx, s.storage, s.cfg, "profiles", photo, s.cfg.Storage.ProfilePhotoEdge)
		if err != nil {
			return nil, err
		}
		user.ProfilePhoto = &path
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if photo != nil {
			if delErr := s.storage.DeleteImage(ctx, *user.ProfilePhoto); delErr != nil {
				log.Printf("Failed to remove profile photo %s: %v", *user.ProfilePhoto, delErr)
			}
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		log.Printf("Failed to store refresh token for user %d: %v", user.ID, err)
	}

	return user, accessToken, refreshToken, nil
}

// RefreshToken issues a new access token. The refresh token must verify and
// match the one last stored for its user.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, s.cfg.JWTRefreshSecretKey)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return "", ErrInvalidRefreshToken
	}

	return s.generateAccessToken(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString, s.cfg.JWTSecretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	return s.signToken(user, s.cfg.JWTSecretKey, s.cfg.AccessTokenDuration, "")
}

// Refresh tokens carry a random id so two logins in the same second differ.
func (s *authService) generateRefreshToken(user *models.User) (string, error) {
	return s.signToken(user, s.cfg.JWTRefreshSecretKey, s.cfg.RefreshTokenDuration, uuid.New().String())
}

func (s *authService) signToken(user *models.User, secret string, ttl time.Duration, tokenID string) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}
