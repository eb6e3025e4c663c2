package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

func perform(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	fn(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var r Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	return r
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.ErrOrderNotFound, http.StatusNotFound, "NOT_FOUND"},
		{apperror.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{apperror.ErrDuplicateProposal, http.StatusConflict, "CONFLICT"},
		{apperror.InvalidState("нельзя"), http.StatusConflict, "INVALID_STATE"},
		{apperror.Validation("пусто"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperror.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperror.Database(errors.New("pq: broken pipe"), "не удалось"), http.StatusInternalServerError, "DATABASE_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := perform(func(c *gin.Context) { Error(c, tt.err) })
			assert.Equal(t, tt.status, w.Code)
			r := decode(t, w)
			assert.False(t, r.Success)
			assert.Equal(t, tt.code, r.Error.Code)
		})
	}
}

func TestError_UnknownHidesDetails(t *testing.T) {
	w := perform(func(c *gin.Context) { Error(c, errors.New("sql: connection refused")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	r := decode(t, w)
	assert.Equal(t, "INTERNAL_ERROR", r.Error.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestPaginated(t *testing.T) {
	w := perform(func(c *gin.Context) { Paginated(c, []int{1, 2}, 5, 2, 0) })
	var r PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.True(t, r.Success)
	assert.True(t, r.Pagination.HasMore)
}
