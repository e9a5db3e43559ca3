package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler(t *testing.T) {
	t.Parallel()

	s := newTestServer(adminUser)
	s.users.ListUsersFn = func(context.Context) ([]*domain.User, error) {
		return []*domain.User{adminUser, employeeUser}, nil
	}
	s.users.GetUserFn = func(_ context.Context, id int64) (*domain.User, error) {
		if id == employeeUser.ID {
			return employeeUser, nil
		}
		return nil, notFound(store.ErrUserNotFound)
	}

	rec := s.do(t, http.MethodGet, "/user", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]api.UserResponse](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/user/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp@x.com", decodeBody[api.UserResponse](t, rec).Email)

	rec = s.do(t, http.MethodGet, "/user/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", errorMessage(t, rec))
}
