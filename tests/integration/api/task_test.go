package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskTitles(t *testing.T, result map[string]interface{}) []string {
	t.Helper()
	items := dataListOf(t, result)
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.(map[string]interface{})["title"].(string))
	}
	return titles
}

func TestTaskLifecycle(t *testing.T) {
	server := setupTestServer(t)

	aliceToken, aliceID := registerUser(t, server.URL, "Alice", "alice@example.com")
	bobToken, bobID := registerUser(t, server.URL, "Bob", "bob@example.com")

	var taskID string
	t.Run("create applies defaults", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodPost, server.URL+"/tasks", map[string]interface{}{
			"title": "Write report",
		}, aliceToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		data := dataOf(t, result)
		taskID = data["id"].(string)
		assert.Equal(t, "todo", data["status"])
		assert.Equal(t, "medium", data["priority"])

		creator := data["createdBy"].(map[string]interface{})
		assert.Equal(t, aliceID, creator["id"])
		assert.Equal(t, "Alice", creator["name"])
		assert.Nil(t, data["assignedTo"])
		assert.Nil(t, data["team"])
	})

	t.Run("create ignores a supplied status", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodPost, server.URL+"/tasks", map[string]interface{}{
			"title":  "Sneak in done",
			"status": "done",
		}, aliceToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "todo", dataOf(t, result)["status"])
	})

	t.Run("missing title fails validation", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodPost, server.URL+"/tasks", map[string]interface{}{
			"description": "no title",
		}, aliceToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, result))
	})

	t.Run("personal task is invisible to others", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodGet, server.URL+"/tasks", nil, bobToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, dataListOf(t, result))
	})

	t.Run("stranger cannot update or delete", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodPut, server.URL+"/tasks/"+taskID, map[string]interface{}{
			"title": "Hijacked",
		}, bobToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, result))

		resp, result = doRequest(t, http.MethodDelete, server.URL+"/tasks/"+taskID, nil, bobToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, result))
	})

	t.Run("update replaces the whole task", func(t *testing.T) {
		// Give the task a description, then update without one
		resp, _ := doRequest(t, http.MethodPut, server.URL+"/tasks/"+taskID, map[string]interface{}{
			"title":       "Write report",
			"description": "Quarterly numbers",
			"status":      "in-progress",
			"priority":    "high",
			"dueDate":     "2026-09-15",
		}, aliceToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, result := doRequest(t, http.MethodPut, server.URL+"/tasks/"+taskID, map[string]interface{}{
			"title":  "Write report",
			"status": "done",
		}, aliceToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := dataOf(t, result)
		assert.Equal(t, "done", data["status"])
		assert.Equal(t, "", data["description"])
		assert.Nil(t, data["dueDate"])
		assert.Equal(t, "medium", data["priority"])
	})

	t.Run("assignee sees and updates but cannot delete", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodPut, server.URL+"/tasks/"+taskID, map[string]interface{}{
			"title":      "Write report",
			"assignedTo": bobID,
		}, aliceToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		assignee := dataOf(t, result)["assignedTo"].(map[string]interface{})
		assert.Equal(t, "Bob", assignee["name"])

		resp, result = doRequest(t, http.MethodGet, server.URL+"/tasks", nil, bobToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"Write report"}, taskTitles(t, result))

		resp, _ = doRequest(t, http.MethodPut, server.URL+"/tasks/"+taskID, map[string]interface{}{
			"title":      "Write report",
			"status":     "done",
			"assignedTo": bobID,
		}, bobToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, result = doRequest(t, http.MethodDelete, server.URL+"/tasks/"+taskID, nil, bobToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, result))
	})

	t.Run("creator deletes", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodDelete, server.URL+"/tasks/"+taskID, nil, aliceToken)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, result := doRequest(t, http.MethodDelete, server.URL+"/tasks/"+taskID, nil, aliceToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", errorCode(t, result))
	})
}

func TestTeamTaskAccess(t *testing.T) {
	server := setupTestServer(t)

	aliceToken, _ := registerUser(t, server.URL, "Alice", "alice@example.com")
	bobToken, _ := registerUser(t, server.URL, "Bob", "bob@example.com")
	carolToken, _ := registerUser(t, server.URL, "Carol", "carol@example.com")

	// Alice owns a team; Bob joins; Carol stays outside
	resp, result := doRequest(t, http.MethodPost, server.URL+"/teams", map[string]interface{}{
		"name": "Backend",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	teamID := dataOf(t, result)["id"].(string)
	inviteCode := dataOf(t, result)["inviteCode"].(string)

	resp, _ = doRequest(t, http.MethodPost, server.URL+"/teams/join", map[string]interface{}{
		"inviteCode": inviteCode,
	}, bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("non-member cannot create a team task", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodPost, server.URL+"/tasks", map[string]interface{}{
			"title": "Sneaky",
			"team":  teamID,
		}, carolToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, result))
	})

	var taskID string
	t.Run("member creates a team task", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodPost, server.URL+"/tasks", map[string]interface{}{
			"title": "Deploy",
			"team":  teamID,
		}, bobToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		data := dataOf(t, result)
		taskID = data["id"].(string)
		assert.Equal(t, teamID, data["team"])
	})

	t.Run("team task is visible to every member", func(t *testing.T) {
		for _, token := range []string{aliceToken, bobToken} {
			resp, result := doRequest(t, http.MethodGet, server.URL+"/tasks", nil, token)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, []string{"Deploy"}, taskTitles(t, result))
		}

		resp, result := doRequest(t, http.MethodGet, server.URL+"/tasks", nil, carolToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, dataListOf(t, result))
	})

	t.Run("non-creator member can update and delete", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPut, server.URL+"/tasks/"+taskID, map[string]interface{}{
			"title":  "Deploy",
			"status": "done",
			"team":   teamID,
		}, aliceToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doRequest(t, http.MethodDelete, server.URL+"/tasks/"+taskID, nil, aliceToken)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("outsider cannot touch a team task", func(t *testing.T) {
		resp, result := doRequest(t, http.MethodPost, server.URL+"/tasks", map[string]interface{}{
			"title": "Another",
			"team":  teamID,
		}, bobToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		id := dataOf(t, result)["id"].(string)

		resp, result = doRequest(t, http.MethodPut, server.URL+"/tasks/"+id, map[string]interface{}{
			"title": "Hijacked",
			"team":  teamID,
		}, carolToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, result))
	})
}
