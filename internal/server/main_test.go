package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"yapp/internal/config"
	"yapp/internal/models"
	"yapp/internal/repository"
	"yapp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an isolated in-memory database and
// returns the Fiber app with all routes registered. Redis stays nil, so
// caching and rate limiting degrade to pass-through.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Media{},
		&models.Post{},
		&models.Downvote{},
		&models.BadWord{},
	))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	downvoteRepo := repository.NewDownvoteRepository(db)
	badWordRepo := repository.NewBadWordRepository(db)
	profanity := service.NewProfanityService(badWordRepo)

	s := &Server{
		config:       &config.Config{Port: "0", Env: "test"},
		db:           db,
		userRepo:     userRepo,
		postRepo:     postRepo,
		mediaRepo:    mediaRepo,
		downvoteRepo: downvoteRepo,
		badWordRepo:  badWordRepo,
		userService:  service.NewUserService(userRepo, mediaRepo),
		feedService:  service.NewFeedService(postRepo, profanity),
		profanity:    profanity,
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody reads the response body into a generic JSON map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// decodeList reads the response body into a slice of JSON maps.
func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

// registerUser creates an account through the API and returns its id.
func registerUser(t *testing.T, app *fiber.App, username string) uint {
	t.Helper()
	req := jsonRequest(t, http.MethodPut, "/api/user", fiber.Map{
		"first_name": "Test",
		"last_name":  "User",
		"username":   username,
		"email":      username + "@example.com",
		"password":   "hunter2",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	return uint(body["id"].(float64))
}

// login authenticates through the API and returns the fresh key.
func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/api/login", fiber.Map{
		"username": username,
		"password": password,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	key, ok := body["api_key"].(string)
	require.True(t, ok, "login response must carry api_key")
	return key
}
