package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedu/conductor-api/internal/constants"
)

func respond(t *testing.T, err error) (int, APIError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespond_Kinds(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
		code   string
	}{
		{KindUnauthenticated, http.StatusUnauthorized, ErrCodeUnauthorized},
		{KindUnauthorized, http.StatusForbidden, ErrCodeForbidden},
		{KindNotFound, http.StatusNotFound, ErrCodeNotFound},
		{KindValidation, http.StatusBadRequest, ErrCodeInvalidInput},
		{KindPrecondition, http.StatusConflict, ErrCodePreconditionFailed},
	}

	for _, tc := range cases {
		status, body := respond(t, fmt.Errorf("context: %w", New(tc.kind, "boom")))
		assert.Equal(t, tc.status, status)
		assert.True(t, body.Err)
		assert.Equal(t, tc.code, body.Code)
		assert.Equal(t, "boom", body.Message)
	}
}

func TestRespond_UntaggedHidesDetails(t *testing.T) {
	status, body := respond(t, fmt.Errorf("failed to list: %w", fmt.Errorf("dial tcp: refused")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, ErrCodeInternalError, body.Code)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestRespond_UntaggedLogsToRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(constants.ContextKeyLogger, slog.New(slog.NewJSONHandler(&buf, nil)))

	Respond(c, fmt.Errorf("failed to list: %w", fmt.Errorf("dial tcp: refused")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "failed to list: dial tcp: refused", entry["error"])

	// Tagged errors are expected outcomes and stay out of the log
	buf.Reset()
	Respond(c, New(KindNotFound, "gone"))
	assert.Zero(t, buf.Len())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindStore, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", New(KindNotFound, "x"))))
}
