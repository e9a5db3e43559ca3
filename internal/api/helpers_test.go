package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// testServer mounts the handlers without role gates. When user is non-nil it
// is placed in the request context as if the bearer middleware had run.
type testServer struct {
	auth  *mocks.MockAuthService
	tasks *mocks.MockTaskService
	users *mocks.MockUserService
	user  *domain.User
}

func newTestServer(user *domain.User) *testServer {
	return &testServer{
		auth:  &mocks.MockAuthService{},
		tasks: &mocks.MockTaskService{},
		users: &mocks.MockUserService{},
		user:  user,
	}
}

func (s *testServer) router() http.Handler {
	authHandler := api.NewAuthHandler(s.auth, quietLogger)
	taskHandler := api.NewTaskHandler(s.tasks, quietLogger)
	userHandler := api.NewUserHandler(s.users, quietLogger)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			if s.user != nil {
				ctx = shared.WithUser(ctx, s.user, &auth.Claims{UserID: s.user.ID, Role: s.user.Role, ID: "jti"})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Get("/auth/me", authHandler.Me)
	r.Post("/auth/logout", authHandler.Logout)
	r.Post("/tasks", taskHandler.CreateTask)
	r.Get("/tasks", taskHandler.ListTasks)
	r.Get("/tasks/my-tasks", taskHandler.MyTasks)
	r.Get("/tasks/{id}", taskHandler.GetTask)
	r.Patch("/tasks/{id}", taskHandler.UpdateTask)
	r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	r.Patch("/tasks/{id}/status", taskHandler.UpdateStatus)
	r.Get("/user", userHandler.ListUsers)
	r.Get("/user/{id}", userHandler.GetUser)
	return r
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, rec).Error
}
