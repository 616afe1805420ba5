package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/services"
)

// AdminProjectHandlerTestSuite defines the test suite for AdminProjectHandler
type AdminProjectHandlerTestSuite struct {
	handlerSuite
	handler *AdminProjectHandler
}

func (s *AdminProjectHandlerTestSuite) SetupTest() {
	s.handlerSuite.SetupTest()
	s.handler = NewAdminProjectHandler(s.projects)
}

func (s *AdminProjectHandlerTestSuite) createTestProject(title string) *models.AdminProject {
	project, err := s.projects.CreateProject(services.CreateAdminProjectInput{Title: title, RequesterID: s.admin.UUID})
	s.Require().NoError(err)
	return project
}

func (s *AdminProjectHandlerTestSuite) postUpdate(projectID string, progress int, userID string) int {
	body := map[string]interface{}{"projectID": projectID, "message": "progress", "estimatedProgress": progress}
	c, w := s.createAuthContext("POST", "/api/v1/adminprojects/updates", body, userID)
	s.handler.AddProgressUpdate(c)
	return w.Code
}

func (s *AdminProjectHandlerTestSuite) TestCreateProject() {
	body := map[string]interface{}{"title": "Audit Q3", "description": "All chapters"}
	c, w := s.createAuthContext("POST", "/api/v1/adminprojects", body, s.admin.UUID)

	s.handler.CreateProject(c)

	s.Equal(http.StatusCreated, w.Code)
	response := s.decode(w)
	s.Equal(false, response["err"])
	s.NotEmpty(response["id"])
}

func (s *AdminProjectHandlerTestSuite) TestCreateProjectFromTask() {
	task, err := s.tasks.CreateTask(services.CreateAdminTaskInput{Title: "Fix typo", RequesterID: s.admin.UUID})
	s.Require().NoError(err)

	body := map[string]interface{}{"title": "Fix typo", "adminTaskID": task.ID}
	c, w := s.createAuthContext("POST", "/api/v1/adminprojects/fromtask", body, s.admin.UUID)
	s.handler.CreateProjectFromTask(c)
	s.Equal(http.StatusCreated, w.Code)

	c, w = s.createAuthContext("POST", "/api/v1/adminprojects/fromtask", body, s.admin.UUID)
	s.handler.CreateProjectFromTask(c)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("PRECONDITION_FAILED", s.decode(w)["errCode"])
}

func (s *AdminProjectHandlerTestSuite) TestGetProject() {
	project := s.createTestProject("Audit Q3")

	c, w := s.createAuthContext("GET", "/api/v1/adminprojects/project?id="+project.ID, nil, s.member.UUID)
	s.handler.GetProject(c)

	s.Equal(http.StatusOK, w.Code)
	got := s.decode(w)["project"].(map[string]interface{})
	s.Equal(project.ID, got["projectID"])
	assignees := got["assignees"].([]interface{})
	s.Require().Len(assignees, 1)
	s.Equal("Ada", assignees[0].(map[string]interface{})["firstName"])
}

func (s *AdminProjectHandlerTestSuite) TestCompletionFlow() {
	project := s.createTestProject("Audit Q3")

	s.Equal(http.StatusCreated, s.postUpdate(project.ID, 50, s.admin.UUID))

	body := map[string]interface{}{"id": project.ID}
	c, w := s.createAuthContext("PUT", "/api/v1/adminprojects/project/complete", body, s.admin.UUID)
	s.handler.MarkProjectCompleted(c)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Project must be at 100% progress to be marked as completed.", s.decode(w)["errMsg"])

	s.Equal(http.StatusCreated, s.postUpdate(project.ID, 100, s.admin.UUID))

	c, w = s.createAuthContext("PUT", "/api/v1/adminprojects/project/complete", body, s.admin.UUID)
	s.handler.MarkProjectCompleted(c)
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(s.decode(w)["msg"])

	c, w = s.createAuthContext("GET", "/api/v1/adminprojects/completed/recent", nil, s.admin.UUID)
	s.handler.ListRecentlyCompleted(c)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["projects"], 1)
}

func (s *AdminProjectHandlerTestSuite) TestAddProgressUpdate_Validation() {
	project := s.createTestProject("Audit Q3")

	// estimatedProgress is required even when zero is intended
	body := map[string]interface{}{"projectID": project.ID, "message": "hello"}
	c, w := s.createAuthContext("POST", "/api/v1/adminprojects/updates", body, s.admin.UUID)
	s.handler.AddProgressUpdate(c)
	s.Equal(http.StatusBadRequest, w.Code)

	s.Equal(http.StatusCreated, s.postUpdate(project.ID, 0, s.admin.UUID))
	s.Equal(http.StatusBadRequest, s.postUpdate(project.ID, 150, s.admin.UUID))
	s.Equal(http.StatusForbidden, s.postUpdate(project.ID, 10, s.member.UUID))
}

func (s *AdminProjectHandlerTestSuite) TestListCurrentProjects() {
	project := s.createTestProject("Audit Q3")
	s.Equal(http.StatusCreated, s.postUpdate(project.ID, 30, s.admin.UUID))

	c, w := s.createAuthContext("GET", "/api/v1/adminprojects/current", nil, s.admin.UUID)
	s.handler.ListCurrentProjects(c)

	s.Equal(http.StatusOK, w.Code)
	projects := s.decode(w)["projects"].([]interface{})
	s.Require().Len(projects, 1)
	entry := projects[0].(map[string]interface{})
	s.Equal("ip", entry["status"])
	lastUpdate := entry["lastUpdate"].(map[string]interface{})
	s.EqualValues(30, lastUpdate["estimatedProgress"])

	c, w = s.createAuthContext("GET", "/api/v1/adminprojects/current", nil, s.member.UUID)
	s.handler.ListCurrentProjects(c)
	s.Empty(s.decode(w)["projects"])
}

func (s *AdminProjectHandlerTestSuite) TestAddAssigneeAndUpdateProject() {
	project := s.createTestProject("Audit Q3")

	body := map[string]interface{}{"id": project.ID, "title": "Renamed"}
	c, w := s.createAuthContext("PUT", "/api/v1/adminprojects/project", body, s.member.UUID)
	s.handler.UpdateProject(c)
	s.Equal(http.StatusForbidden, w.Code)

	assign := map[string]interface{}{"id": project.ID, "newAssignee": s.member.UUID}
	c, w = s.createAuthContext("POST", "/api/v1/adminprojects/project/assignee", assign, s.admin.UUID)
	s.handler.AddAssignee(c)
	s.Equal(http.StatusOK, w.Code)

	c, w = s.createAuthContext("PUT", "/api/v1/adminprojects/project", body, s.member.UUID)
	s.handler.UpdateProject(c)
	s.Equal(http.StatusOK, w.Code)

	var stored models.AdminProject
	s.Require().NoError(s.db.First(&stored, "id = ?", project.ID).Error)
	s.Equal("Renamed", stored.Title)
}

func (s *AdminProjectHandlerTestSuite) TestDeleteProject() {
	project := s.createTestProject("Audit Q3")

	c, w := s.createAuthContext("DELETE", "/api/v1/adminprojects/project?id="+project.ID, nil, s.member.UUID)
	s.handler.DeleteProject(c)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Sorry, you don't have the proper privileges to perform this action.", s.decode(w)["errMsg"])

	c, w = s.createAuthContext("DELETE", "/api/v1/adminprojects/project?id="+project.ID, nil, s.admin.UUID)
	s.handler.DeleteProject(c)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["deletedProject"])
}

func (s *AdminProjectHandlerTestSuite) TestProgressUpdatesListAndDelete() {
	project := s.createTestProject("Audit Q3")
	s.Equal(http.StatusCreated, s.postUpdate(project.ID, 20, s.admin.UUID))

	c, w := s.createAuthContext("GET", "/api/v1/adminprojects/updates?id="+project.ID, nil, s.member.UUID)
	s.handler.ListProgressUpdates(c)
	s.Equal(http.StatusOK, w.Code)
	updates := s.decode(w)["updates"].([]interface{})
	s.Require().Len(updates, 1)
	update := updates[0].(map[string]interface{})
	s.Equal("Ada", update["author"].(map[string]interface{})["firstName"])
	updateID := update["updateID"].(string)

	url := "/api/v1/adminprojects/updates?projectID=" + project.ID + "&updateID=" + updateID
	c, w = s.createAuthContext("DELETE", url, nil, s.member.UUID)
	s.handler.DeleteProgressUpdate(c)
	s.Equal(http.StatusForbidden, w.Code)

	c, w = s.createAuthContext("DELETE", url, nil, s.admin.UUID)
	s.handler.DeleteProgressUpdate(c)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["deletedProgressUpdate"])
}

func (s *AdminProjectHandlerTestSuite) TestGetFeed() {
	project := s.createTestProject("Audit Q3")
	s.Equal(http.StatusCreated, s.postUpdate(project.ID, 20, s.admin.UUID))

	c, w := s.createAuthContext("GET", "/api/v1/adminprojects/feed", nil, s.admin.UUID)
	s.handler.GetFeed(c)
	s.Equal(http.StatusOK, w.Code)
	response := s.decode(w)
	s.Len(response["updates"], 1)
	s.NotEmpty(response["startDate"])
	s.NotEmpty(response["endDate"])
	entry := response["updates"].([]interface{})[0].(map[string]interface{})
	s.Equal("Audit Q3", entry["project"].(map[string]interface{})["title"])

	c, w = s.createAuthContext("GET", "/api/v1/adminprojects/feed?fromDate=03-10-2024&toDate=03-12-2024", nil, s.admin.UUID)
	s.handler.GetFeed(c)
	s.Equal(http.StatusOK, w.Code)
	response = s.decode(w)
	s.Equal("03-10-2024", response["startDate"])
	s.Equal("03-12-2024", response["endDate"])
	s.Empty(response["updates"])

	c, w = s.createAuthContext("GET", "/api/v1/adminprojects/feed?fromDate=2024-03-10", nil, s.admin.UUID)
	s.handler.GetFeed(c)
	s.Equal(http.StatusBadRequest, w.Code)

	c, w = s.createAuthContext("GET", "/api/v1/adminprojects/feed", nil, s.member.UUID)
	s.handler.GetFeed(c)
	s.Equal(http.StatusForbidden, w.Code)
}

func TestAdminProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AdminProjectHandlerTestSuite))
}
