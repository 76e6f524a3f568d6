package server

import (
	"net/http"
	"testing"

	"yapp/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Success(t *testing.T) {
	_, app, db := newTestServer(t)

	id := registerUser(t, app, "alice")
	assert.NotZero(t, id)

	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Normal", user.UIScale)
	assert.Nil(t, user.APIKey, "registration must not log the user in")
}

func TestCreateUser_MissingFields(t *testing.T) {
	_, app, _ := newTestServer(t)

	req := jsonRequest(t, http.MethodPut, "/api/user", fiber.Map{
		"first_name": "Test",
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "hunter2",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", decodeBody(t, resp)["message"])
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	_, app, _ := newTestServer(t)
	registerUser(t, app, "alice")

	req := jsonRequest(t, http.MethodPut, "/api/user", fiber.Map{
		"first_name": "Other",
		"last_name":  "Person",
		"username":   "alice",
		"email":      "different@example.com",
		"password":   "hunter2",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username already exists", decodeBody(t, resp)["message"])
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, app, _ := newTestServer(t)
	registerUser(t, app, "alice")

	req := jsonRequest(t, http.MethodPut, "/api/user", fiber.Map{
		"first_name": "Other",
		"last_name":  "Person",
		"username":   "different",
		"email":      "alice@example.com",
		"password":   "hunter2",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	// Historical status for duplicate email, kept for client compatibility.
	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, resp.StatusCode)
	assert.Equal(t, "User already exists", decodeBody(t, resp)["message"])
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	_, app, db := newTestServer(t)
	registerUser(t, app, "alice")
	key := login(t, app, "alice", "hunter2")

	req := jsonRequest(t, http.MethodPatch, "/api/user", fiber.Map{
		"username":         "alice",
		"api_key":          key,
		"dark_mode":        true,
		"profanity_filter": true,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.True(t, user.DarkMode)
	assert.True(t, user.ProfanityFilter)
	// Untouched fields keep their values.
	assert.Equal(t, "Test", user.FirstName)
	assert.Equal(t, "Normal", user.UIScale)
}

func TestUpdateUser_RequiresAuth(t *testing.T) {
	_, app, _ := newTestServer(t)
	registerUser(t, app, "alice")

	req := jsonRequest(t, http.MethodPatch, "/api/user", fiber.Map{
		"username":  "alice",
		"api_key":   "bogus",
		"dark_mode": true,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetUserProfile_PublicSubsetOnly(t *testing.T) {
	_, app, _ := newTestServer(t)
	id := registerUser(t, app, "alice")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user/"+itoa(id), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "Test", body["first_name"])
	assert.Equal(t, "User", body["last_name"])
	assert.NotContains(t, body, "email")
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "api_key")
}

func TestGetUserProfile_NotFound(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user/9999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", decodeBody(t, resp)["message"])
}

func TestGetAllUsers_DebugDumpIncludesCredentials(t *testing.T) {
	_, app, _ := newTestServer(t)
	registerUser(t, app, "alice")
	login(t, app, "alice", "hunter2")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/user", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	users := decodeList(t, resp)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["username"])
	assert.Equal(t, "hunter2", users[0]["password"])
	assert.NotEmpty(t, users[0]["api_key"])
}
