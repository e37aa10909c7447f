package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ctfboard/middleware"
	"ctfboard/models"
	"ctfboard/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAdminApp(t *testing.T) (*fiber.App, *gorm.DB, string) {
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

	Init(db, 0)

	app := fiber.New()
	grp := app.Group("/api/admin", middleware.AdminAuthMiddleware)
	grp.Get("/teams", GetTeams)
	grp.Post("/teams/:id/ban", BanTeam)
	grp.Post("/hint-credits", GrantHintCredit)
	grp.Get("/logs", GetLogs)
	grp.Get("/logs/export", ExportLogs)

	return app, db, staffToken(t)
}

func staffToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"team_id":  "staff-1",
		"name":     "team_staff",
		"is_admin": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return token
}

func request(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
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

func TestAdminRequiresAdminToken(t *testing.T) {
	app, _, _ := setupAdminApp(t)

	resp := request(t, app, http.MethodGet, "/api/admin/teams", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A valid but non-admin token is refused.
	claims := jwt.MapClaims{
		"team_id":  "team-1",
		"is_admin": false,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	resp = request(t, app, http.MethodGet, "/api/admin/teams", nil, token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBanAndGrantFlow(t *testing.T) {
	app, db, token := setupAdminApp(t)

	ts := services.NewTeamService(db, 0)
	id, err := ts.Create("team_alpha", "pw123", "open", "", "", "")
	require.NoError(t, err)

	resp := request(t, app, http.MethodPost, "/api/admin/teams/"+id+"/ban",
		BanRequest{Banned: true}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var team models.Team
	require.NoError(t, db.First(&team, "id = ?", id).Error)
	assert.True(t, team.IsBanned)

	resp = request(t, app, http.MethodPost, "/api/admin/hint-credits",
		GrantCreditRequest{TeamID: id, Amount: 2}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&team, "id = ?", id).Error)
	assert.Equal(t, 2, team.HintCredit)

	t.Run("unknown team reported", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/admin/teams/no-such-id/ban",
			BanRequest{Banned: true}, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestExportLogsDownload(t *testing.T) {
	app, db, token := setupAdminApp(t)

	logs := services.NewActivityLog(db)
	_, err := logs.Append(models.ActionSolve, "team-1", 100, "p1", "42")
	require.NoError(t, err)

	resp := request(t, app, http.MethodGet, "/api/admin/logs/export", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "infinity-log-")

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "id,action,value,uid,puzzle,detail,timestamp")
	assert.Contains(t, body.String(), "solve")
}
