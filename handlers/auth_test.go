package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ctfboard/middleware"
	"ctfboard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Team{}, &models.LogEntry{}, &models.Announcement{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	Init(db, 1)

	app := fiber.New()
	app.Post("/api/auth/register", Register)
	app.Post("/api/auth/login", Login)

	app.Get("/api/teams/me", middleware.AuthMiddleware, GetCurrentTeam)
	app.Put("/api/teams/me", middleware.AuthMiddleware, UpdateCurrentTeam)

	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) *http.Response {
	t.Helper()
	return doJSON(t, app, http.MethodPost, path, body, token)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegisterAndLogin(t *testing.T) {
	app, db := setupApp(t)

	resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Name: "team_alpha", Password: "pw123", Division: "open",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	teamID, _ := created["id"].(string)
	require.NotEmpty(t, teamID)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
			Name: "team_alpha", Password: "pw999", Division: "open",
		}, "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("name must carry the team_ prefix", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
			Name: "alpha", Password: "pw123",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
			Name: "team_bravo", Password: "",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login issues a usable token and logs the ip", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/login", LoginRequest{Name: "team_alpha", Password: "pw123"}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		token, _ := body["token"].(string)
		require.NotEmpty(t, token)

		var count int64
		require.NoError(t, db.Model(&models.LogEntry{}).
			Where("uid = ? AND action = ?", teamID, models.ActionLogin).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)

		me := doJSON(t, app, http.MethodGet, "/api/teams/me", nil, token)
		require.Equal(t, http.StatusOK, me.StatusCode)
		meBody := decodeBody(t, me)
		team, _ := meBody["team"].(map[string]any)
		assert.Equal(t, "team_alpha", team["name"])
	})

	t.Run("wrong password and unknown name look identical", func(t *testing.T) {
		wrong := postJSON(t, app, "/api/auth/login", LoginRequest{Name: "team_alpha", Password: "nope"}, "")
		unknown := postJSON(t, app, "/api/auth/login", LoginRequest{Name: "team_ghost", Password: "pw123"}, "")

		require.Equal(t, http.StatusUnauthorized, wrong.StatusCode)
		require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
		assert.Equal(t, decodeBody(t, wrong)["error"], decodeBody(t, unknown)["error"])
	})

	t.Run("banned team cannot log in", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Team{}).Where("id = ?", teamID).
			Update("banned", true).Error)
		defer db.Model(&models.Team{}).Where("id = ?", teamID).Update("banned", false)

		resp := postJSON(t, app, "/api/auth/login", LoginRequest{Name: "team_alpha", Password: "pw123"}, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("requests without a token are refused", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/teams/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUpdateCurrentTeam(t *testing.T) {
	app, _ := setupApp(t)

	resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Name: "team_alpha", Password: "pw123", Division: "open",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	login := postJSON(t, app, "/api/auth/login", LoginRequest{Name: "team_alpha", Password: "pw123"}, "")
	require.Equal(t, http.StatusOK, login.StatusCode)
	token, _ := decodeBody(t, login)["token"].(string)

	display := "  The Alphas  "
	resp = doJSON(t, app, http.MethodPut, "/api/teams/me", UpdateTeamRequest{DisplayName: &display}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	team, _ := body["team"].(map[string]any)
	assert.Equal(t, "The Alphas", team["display_name"])
}
