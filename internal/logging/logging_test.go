package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openedu/conductor-api/internal/constants"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	New(&buf, "nonsense").Info("fallback")
	assert.Contains(t, buf.String(), "fallback")
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(New(&buf, "info")))
	router.GET("/missing", func(c *gin.Context) {
		_, ok := c.Get(constants.ContextKeyLogger)
		assert.True(t, ok)
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/missing", entry["path"])
	assert.EqualValues(t, http.StatusNotFound, entry["status"])
}

func TestGormLogger_ErrorsReachInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: GormLogger(New(&buf, "info"))})
	require.NoError(t, err)

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "gorm", entry["component"])
	assert.Contains(t, entry["error"], "no such table")
	assert.Contains(t, entry["sql"], "no_such_table")
}

func TestGormLogger_StatementsOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: GormLogger(New(&buf, "info"))})
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
	assert.Zero(t, buf.Len())

	buf.Reset()
	db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: GormLogger(New(&buf, "debug"))})
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
	assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}
