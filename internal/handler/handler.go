package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"forumCPT/internal/config"
	"forumCPT/internal/service"
	"forumCPT/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gorilla/mux"
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService         service.AuthService
	UserService         service.UserService
	ForumService        service.ForumService
	NotificationService service.NotificationService
	StatsService        service.StatsService
	DB                  HealthChecker
	Cfg                 *config.Config
	Validate            *validator.Validate
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:         service.Auth,
		UserService:         service.User,
		ForumService:        service.Forum,
		NotificationService: service.Notification,
		StatsService:        service.Stats,
		DB:                  db,
		Cfg:                 config,
		Validate:            NewValidator(),
	}
}

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// pathID parses the named route variable as a positive integer id.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart bounds the body by the upload limit and parses the form.
// It writes the error response itself and returns false on failure.
func (h *Handlers) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.Storage.MaxUploadSize+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, "File too large", err, http.StatusRequestEntityTooLarge)
		} else {
			writeError(w, "Invalid form data", err, http.StatusBadRequest)
		}
		return false
	}
	return true
}

// formValue returns nil when the field was not submitted at all.
func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formFile returns the named upload, or nil when the field is absent.
// The returned func closes the underlying file.
func formFile(r *http.Request, field string) (*storage.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}

	upload := &storage.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}
	return upload, func() { file.Close() }, nil
}
