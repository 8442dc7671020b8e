//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stream-api/internal/model"
)

func TestUserManagement(t *testing.T) {
	env := newTestServer(t)
	_, _, adminToken := login(t, env.server.URL, "john@test.com", "123456")
	require.NotEmpty(t, adminToken)

	var createdID string

	t.Run("create", func(t *testing.T) {
		resp, parsed := doRequest(t, http.MethodPost, env.server.URL+"/api/v1/users", adminToken, map[string]any{
			"firstName": "Eric",
			"lastName":  "Cartman",
			"email":     "eric@test.com",
			"password":  "secret99",
			"enabled":   true,
			"roles":     "user",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Add User Success", parsed.Message)

		var info model.UserInfo
		require.NoError(t, json.Unmarshal(parsed.Data, &info))
		assert.Len(t, info.ID, 24)
		assert.Equal(t, "eric@test.com", info.Email)
		assert.NotContains(t, string(parsed.Data), "password")
		createdID = info.ID
	})

	t.Run("the new user can log in but not reach the login policy", func(t *testing.T) {
		resp, parsed, _ := login(t, env.server.URL, "eric@test.com", "secret99")
		// Correct credentials, but the login route itself demands ROLE_admin.
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "No permission to access this resource", parsed.Message)
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp, parsed := doRequest(t, http.MethodPost, env.server.URL+"/api/v1/users", adminToken, map[string]any{
			"firstName": "Eric",
			"lastName":  "Cartman",
			"email":     "eric@test.com",
			"password":  "secret99",
			"enabled":   true,
			"roles":     "user",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "User with email eric@test.com already exists", parsed.Message)
	})

	t.Run("update replaces identity fields", func(t *testing.T) {
		resp, parsed := doRequest(t, http.MethodPut, env.server.URL+"/api/v1/users/"+createdID, adminToken, map[string]any{
			"firstName": "Erica",
			"lastName":  "Cartman",
			"email":     "erica@test.com",
			"enabled":   false,
			"roles":     "user",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Update User Success", parsed.Message)

		var info model.UserInfo
		require.NoError(t, json.Unmarshal(parsed.Data, &info))
		assert.Equal(t, "Erica", info.FirstName)
		assert.False(t, info.Enabled)
	})

	t.Run("disabled after update, login is refused as abnormal", func(t *testing.T) {
		resp, parsed, _ := login(t, env.server.URL, "erica@test.com", "secret99")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "User account is abnormal", parsed.Message)
	})

	t.Run("delete", func(t *testing.T) {
		resp, parsed := doRequest(t, http.MethodDelete, env.server.URL+"/api/v1/users/"+createdID, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Delete User Success", parsed.Message)

		resp, parsed = doRequest(t, http.MethodGet, env.server.URL+"/api/v1/users/"+createdID, adminToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Could not find user with id "+createdID, parsed.Message)
	})
}

func TestUserListNeverLeaksHashes(t *testing.T) {
	env := newTestServer(t)
	_, _, adminToken := login(t, env.server.URL, "john@test.com", "123456")

	resp, parsed := doRequest(t, http.MethodGet, env.server.URL+"/api/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []model.UserInfo
	require.NoError(t, json.Unmarshal(parsed.Data, &infos))
	assert.Len(t, infos, 3)
	assert.NotContains(t, string(parsed.Data), "$2a$")
	assert.NotContains(t, string(parsed.Data), "password")
}
