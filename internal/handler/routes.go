package handlers

import (
	"net/http"
	"os"

	"forumCPT/internal/middleware"

	"github.com/gorilla/mux"
)

// NewRouter registers every route. Like, unlike and notification writes
// require a bearer token; /user/{id} is an alias of /users/{id}.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	requireAuth := middleware.RequireAuth(h.AuthService)
	protected := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(fn)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, "Route not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	router.HandleFunc("/", h.Home).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)

	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/refresh-token", h.RefreshToken).Methods(http.MethodPost)

	router.HandleFunc("/users", h.GetUsers).Methods(http.MethodGet)
	for _, path := range []string{"/users/{id}", "/user/{id}"} {
		router.HandleFunc(path, h.GetUser).Methods(http.MethodGet)
		router.HandleFunc(path, h.UpdateUser).Methods(http.MethodPut)
		router.HandleFunc(path, h.DeleteUser).Methods(http.MethodDelete)
	}

	router.HandleFunc("/forum", h.CreateForum).Methods(http.MethodPost)
	router.HandleFunc("/forums", h.GetForums).Methods(http.MethodGet)
	router.HandleFunc("/forum/{id}", h.GetForum).Methods(http.MethodGet)
	router.HandleFunc("/forum/{id}", h.DeleteForum).Methods(http.MethodDelete)
	router.Handle("/forum/{id}/like", protected(h.LikeForum)).Methods(http.MethodPost)
	router.Handle("/forum/{id}/like", protected(h.UnlikeForum)).Methods(http.MethodDelete)
	router.HandleFunc("/forum/{id}/comment", h.AddComment).Methods(http.MethodPost)
	router.HandleFunc("/forum/{postId}/comment/{commentId}", h.DeleteComment).Methods(http.MethodDelete)

	router.Handle("/notification", protected(h.CreateNotification)).Methods(http.MethodPost)
	router.HandleFunc("/notification/{userId}", h.GetNotifications).Methods(http.MethodGet)
	router.Handle("/notification/{id}", protected(h.DeleteNotification)).Methods(http.MethodDelete)
	router.Handle("/notification/{id}/read", protected(h.MarkNotificationRead)).Methods(http.MethodPatch)

	if h.Cfg.Storage.Backend == "" || h.Cfg.Storage.Backend == "local" {
		uploads := http.StripPrefix("/uploads/", http.FileServer(filesOnly{http.Dir(h.Cfg.Storage.UploadDir)}))
		router.PathPrefix("/uploads/").Handler(uploads).Methods(http.MethodGet, http.MethodHead)
	}

	return router
}

// filesOnly hides directories so the upload directory is never listed.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}
