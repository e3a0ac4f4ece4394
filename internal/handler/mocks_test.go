package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"forumCPT/internal/config"
	handlers "forumCPT/internal/handler"
	"forumCPT/internal/models"
	"forumCPT/internal/repository"
	"forumCPT/internal/service"
	"forumCPT/internal/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest, photo *storage.Upload) (*models.User, error) {
	args := m.Called(ctx, req, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.String(2), args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID int64, input service.UpdateUserInput, photo *storage.Upload) (*models.User, error) {
	args := m.Called(ctx, userID, input, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockForumService struct {
	mock.Mock
}

func (m *MockForumService) CreateForum(ctx context.Context, req repository.CreateForumRequest, image *storage.Upload) (*models.Forum, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Forum), args.Error(1)
}

func (m *MockForumService) GetForums(ctx context.Context, page, limit int) ([]models.Forum, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Forum), args.Int(1), args.Error(2)
}

func (m *MockForumService) GetForum(ctx context.Context, forumID int64) (*models.ForumDetails, error) {
	args := m.Called(ctx, forumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForumDetails), args.Error(1)
}

func (m *MockForumService) DeleteForum(ctx context.Context, forumID int64) error {
	args := m.Called(ctx, forumID)
	return args.Error(0)
}

func (m *MockForumService) LikeForum(ctx context.Context, forumID int64, actor *service.Claims) (bool, error) {
	args := m.Called(ctx, forumID, actor)
	return args.Bool(0), args.Error(1)
}

func (m *MockForumService) UnlikeForum(ctx context.Context, forumID, userID int64) error {
	args := m.Called(ctx, forumID, userID)
	return args.Error(0)
}

func (m *MockForumService) AddComment(ctx context.Context, forumID, userID int64, text string) (*models.Comment, error) {
	args := m.Called(ctx, forumID, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockForumService) DeleteComment(ctx context.Context, forumID, commentID int64) error {
	args := m.Called(ctx, forumID, commentID)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) CreateNotification(ctx context.Context, userID *int64, title, message string) (*models.Notification, error) {
	args := m.Called(ctx, userID, title, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) DeleteNotification(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

type stubHealth struct {
	err error
}

func (s stubHealth) HealthCheck() error { return s.err }

type testHandlers struct {
	*handlers.Handlers
	auth          *MockAuthService
	users         *MockUserService
	forums        *MockForumService
	notifications *MockNotificationService
	stats         *MockStatsService
}

func newTestHandlers() *testHandlers {
	th := &testHandlers{
		auth:          new(MockAuthService),
		users:         new(MockUserService),
		forums:        new(MockForumService),
		notifications: new(MockNotificationService),
		stats:         new(MockStatsService),
	}

	svc := &service.Service{
		Auth:         th.auth,
		User:         th.users,
		Forum:        th.forums,
		Notification: th.notifications,
		Stats:        th.stats,
	}

	cfg := &config.Config{
		AccessTokenDuration: time.Hour,
		Storage: config.Storage{
			Backend:       "local",
			UploadDir:     "uploads",
			MaxUploadSize: 1 << 20,
		},
	}

	th.Handlers = handlers.NewHandlers(svc, stubHealth{}, cfg)
	return th
}

func newRequest(method, target, body string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }
