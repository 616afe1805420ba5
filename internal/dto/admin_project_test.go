package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/services"
)

func TestToAdminProjectDetailDTO_AssigneesResolved(t *testing.T) {
	detail := services.ProjectDetail{
		Project: models.AdminProject{
			ID:    "p1",
			Title: "Audit",
			Assignees: []models.AdminProjectAssignee{
				{ProjectID: "p1", UserUUID: "u1"},
			},
		},
		Assignees: []models.User{{UUID: "u1", FirstName: "Ada", LastName: "Lovelace"}},
	}

	raw, err := json.Marshal(ToAdminProjectDetailDTO(detail))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "p1", body["projectID"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"uuid": "u1", "firstName": "Ada", "lastName": "Lovelace"},
	}, body["assignees"])
}

func TestToFeedDTO_EchoesInclusiveDays(t *testing.T) {
	feed := services.Feed{
		StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC),
		Updates: []models.AdminProjectUpdate{{
			ID:        "up1",
			ProjectID: "p1",
			Message:   "halfway",
			Author:    models.User{UUID: "u1", FirstName: "Ada"},
			Project:   models.AdminProject{ID: "p1", Title: "Audit"},
		}},
	}

	out := ToFeedDTO(feed)
	assert.Equal(t, "03-01-2024", out.StartDate)
	assert.Equal(t, "03-07-2024", out.EndDate)
	require.Len(t, out.Updates, 1)
	assert.Equal(t, "Ada", out.Updates[0].Author.FirstName)
	assert.Equal(t, "Audit", out.Updates[0].Project.Title)
}

func TestToProjectWithLastUpdateList_Synthetic(t *testing.T) {
	updatedAt := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	items := ToProjectWithLastUpdateList([]services.ProjectWithLastUpdate{{
		Project:    models.AdminProject{ID: "p1", CurrentProgress: 30, UpdatedAt: updatedAt},
		LastUpdate: models.AdminProjectUpdate{ProjectID: "p1", EstimatedProgress: 30, CreatedAt: updatedAt},
		Synthetic:  true,
	}})

	require.Len(t, items, 1)
	assert.True(t, items[0].Synthetic)
	assert.Empty(t, items[0].LastUpdate.ID)
	assert.Nil(t, items[0].LastUpdate.Author)
	assert.Equal(t, updatedAt, items[0].LastUpdate.CreatedAt)
}
