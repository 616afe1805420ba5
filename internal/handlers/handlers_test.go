package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openedu/conductor-api/internal/constants"
	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/repository"
	"github.com/openedu/conductor-api/internal/services"
)

// handlerSuite holds the database and services shared by the handler suites
type handlerSuite struct {
	suite.Suite
	db       *gorm.DB
	userRepo repository.UserRepository
	tasks    *services.AdminTaskService
	projects *services.AdminProjectService
	admin    *models.User
	member   *models.User
}

// SetupTest runs before each test
func (s *handlerSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	s.Require().NoError(err)

	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	// Run migrations
	err = s.db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.AdminTask{},
		&models.AdminProject{},
		&models.AdminProjectAssignee{},
		&models.AdminProjectUpdate{},
	)
	s.Require().NoError(err)

	s.userRepo = repository.NewUserRepository(s.db)
	s.tasks = services.NewAdminTaskService(repository.NewAdminTaskRepository(s.db), s.userRepo)
	s.projects = services.NewAdminProjectService(
		repository.NewAdminProjectRepository(s.db),
		repository.NewAdminProjectUpdateRepository(s.db),
		s.userRepo,
	)

	s.admin = s.createTestUser("Ada", true)
	s.member = s.createTestUser("Grace", false)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (s *handlerSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (s *handlerSuite) createTestUser(first string, admin bool) *models.User {
	user := &models.User{
		UUID:      uuid.NewString(),
		FirstName: first,
		LastName:  "Tester",
		Email:     first + "-" + uuid.NewString()[:8] + "@example.edu",
	}
	if admin {
		user.Roles = []models.UserRole{{Role: constants.RoleAdmin}}
	}
	s.Require().NoError(s.userRepo.Create(user))
	return user
}

// Helper function to create authenticated context. An empty userID leaves the request anonymous.
func (s *handlerSuite) createAuthContext(method, url string, body interface{}, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != "" {
		c.Set(constants.ContextKeyUserID, userID)
	}

	return c, w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}
