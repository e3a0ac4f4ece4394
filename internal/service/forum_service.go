package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"forumCPT/internal/config"
	"forumCPT/internal/models"
	"forumCPT/internal/repository"
	"forumCPT/internal/storage"
)

type ForumService interface {
	CreateForum(ctx context.Context, req repository.CreateForumRequest, image *storage.Upload) (*models.Forum, error)
	GetForums(ctx context.Context, page, limit int) ([]models.Forum, int, error)
	GetForum(ctx context.Context, forumID int64) (*models.ForumDetails, error)
	DeleteForum(ctx context.Context, forumID int64) error
	LikeForum(ctx context.Context, forumID int64, actor *Claims) (bool, error)
	UnlikeForum(ctx context.Context, forumID, userID int64) error
	AddComment(ctx context.Context, forumID, userID int64, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, forumID, commentID int64) error
}

type forumService struct {
	userRepo         repository.UserRepository
	forumRepo        repository.ForumRepository
	commentRepo      repository.CommentRepository
	likeRepo         repository.LikeRepository
	notificationRepo repository.NotificationRepository
	storage          storage.Storage
	cfg              *config.Config
}

func NewForumService(rep *repository.Repository, storage storage.Storage, cfg *config.Config) ForumService {
	return &forumService{
		userRepo:         rep.User,
		forumRepo:        rep.Forum,
		commentRepo:      rep.Comment,
		likeRepo:         rep.Like,
		notificationRepo: rep.Notification,
		storage:          storage,
		cfg:              cfg,
	}
}

// CreateForum stores the optional image and inserts the post. The owner is
// resolved from req.Username; an unknown username leaves the post without one.
func (s *forumService) CreateForum(ctx context.Context, req repository.CreateForumRequest, image *storage.Upload) (*models.Forum, error) {
	forum := &models.Forum{
		Title:       req.Title,
		Description: req.Description,
		Username:    req.Username,
		Image:       req.Image,
	}

	owner, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		forum.UserID = &owner.ID
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if image != nil {
		path, err := storeUpload(ctx, s.storage, s.cfg, "forums", image, 0)
		if err != nil {
			return nil, err
		}
		forum.Image = &path
	}

	if err := s.forumRepo.Create(ctx, forum); err != nil {
		if image != nil {
			s.removeFile(ctx, *forum.Image)
		}
		return nil, err
	}

	return forum, nil
}

// GetForums returns posts newest first with the total post count.
// limit == 0 returns every post.
func (s *forumService) GetForums(ctx context.Context, page, limit int) ([]models.Forum, int, error) {
	if limit <= 0 {
		forums, err := s.forumRepo.GetAll(ctx, 0, 0)
		if err != nil {
			return nil, 0, err
		}
		return forums, len(forums), nil
	}

	if page < 1 {
		page = 1
	}

	forums, err := s.forumRepo.GetAll(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.forumRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return forums, total, nil
}

func (s *forumService) GetForum(ctx context.Context, forumID int64) (*models.ForumDetails, error) {
	forum, err := s.forumRepo.GetByID(ctx, forumID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByPostID(ctx, forumID)
	if err != nil {
		return nil, err
	}

	likes, err := s.likeRepo.CountByPostID(ctx, forumID)
	if err != nil {
		return nil, err
	}

	return &models.ForumDetails{
		Forum:      *forum,
		Comments:   comments,
		LikesCount: likes,
	}, nil
}

func (s *forumService) DeleteForum(ctx context.Context, forumID int64) error {
	forum, err := s.forumRepo.GetByID(ctx, forumID)
	if err != nil {
		return err
	}

	if err := s.forumRepo.Delete(ctx, forumID); err != nil {
		return err
	}

	if forum.Image != nil {
		s.removeFile(ctx, *forum.Image)
	}

	return nil
}

// LikeForum records a like by actor and notifies the post owner. The duplicate
// check and the insert are separate statements, so concurrent likes by the same
// user can both succeed. The returned bool reports whether a notification was stored.
func (s *forumService) LikeForum(ctx context.Context, forumID int64, actor *Claims) (bool, error) {
	forum, err := s.forumRepo.GetByID(ctx, forumID)
	if err != nil {
		return false, err
	}

	liked, err := s.likeRepo.Exists(ctx, actor.ID, forumID)
	if err != nil {
		return false, err
	}
	if liked {
		return false, ErrAlreadyLiked
	}

	if err := s.likeRepo.Create(ctx, &models.Like{UserID: actor.ID, PostID: forumID}); err != nil {
		return false, err
	}

	return s.notifyOwner(ctx, forum, actor.ID,
		"New Like on Your Post",
		fmt.Sprintf("%s liked your post: %d", actor.Name, forumID),
	), nil
}

func (s *forumService) UnlikeForum(ctx context.Context, forumID, userID int64) error {
	return s.likeRepo.Delete(ctx, userID, forumID)
}

func (s *forumService) AddComment(ctx context.Context, forumID, userID int64, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentRequired
	}

	forum, err := s.forumRepo.GetByID(ctx, forumID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: forumID, UserID: userID, Comment: text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, forum, userID,
		"New Comment on Your Post",
		fmt.Sprintf("User %d commented: %s", userID, text),
	)

	return comment, nil
}

func (s *forumService) DeleteComment(ctx context.Context, forumID, commentID int64) error {
	return s.commentRepo.Delete(ctx, forumID, commentID)
}

// notifyOwner is best-effort: failures are logged and reported as false.
// Owner-less posts and the owner's own actions produce no notification.
func (s *forumService) notifyOwner(ctx context.Context, forum *models.Forum, actorID int64, title, message string) bool {
	if forum.UserID == nil || *forum.UserID == actorID {
		return false
	}

	notification := &models.Notification{
		UserID:  forum.UserID,
		Title:   title,
		Message: message,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("Failed to notify user %d about post %d: %v", *forum.UserID, forum.ID, err)
		return false
	}

	return true
}

func (s *forumService) removeFile(ctx context.Context, path string) {
	if err := s.storage.DeleteImage(ctx, path); err != nil {
		log.Printf("Failed to remove file %s: %v", path, err)
	}
}
