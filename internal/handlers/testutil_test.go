package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chathub/backend/internal/middleware"
	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/services"
	"github.com/chathub/backend/internal/store"
	"github.com/chathub/backend/pkg/logger"
	"github.com/chathub/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

type testEnv struct {
	app   *fiber.App
	store *store.Store
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	entityStore := store.New()

	membershipService := services.NewMembershipService(entityStore, nil)
	interestService := services.NewInterestService(entityStore, nil, true)
	reportService := services.NewReportService(entityStore, nil)

	authHandler := NewAuthHandler(membershipService)
	usersHandler := NewUsersHandler(membershipService)
	groupsHandler := NewGroupsHandler(membershipService)
	channelsHandler := NewChannelsHandler(membershipService)
	interestsHandler := NewInterestsHandler(interestService)
	reportsHandler := NewReportsHandler(reportService)
	authMiddleware := middleware.NewAuthMiddleware(entityStore)

	app := fiber.New(fiber.Config{BodyLimit: 1 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/version", GetVersion)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)
	authRoutes.Delete("/me", authMiddleware.RequireAuth, authHandler.DeleteMe)

	userRoutes := api.Group("/users", authMiddleware.RequireAuth)
	userRoutes.Get("/", usersHandler.List)
	userRoutes.Post("/", usersHandler.Create)
	userRoutes.Delete("/:id", usersHandler.Delete)
	userRoutes.Post("/:id/group-admin", usersHandler.PromoteGroupAdmin)
	userRoutes.Delete("/:id/group-admin", usersHandler.DemoteGroupAdmin)
	userRoutes.Post("/:id/super-admin", usersHandler.PromoteSuperAdmin)

	groupRoutes := api.Group("/groups", authMiddleware.RequireAuth)
	groupRoutes.Post("/", groupsHandler.Create)
	groupRoutes.Get("/", groupsHandler.List)
	groupRoutes.Get("/:id", groupsHandler.Get)
	groupRoutes.Delete("/:id", groupsHandler.Delete)
	groupRoutes.Post("/:id/members", groupsHandler.AddMember)
	groupRoutes.Delete("/:id/members/:userId", groupsHandler.RemoveMember)
	groupRoutes.Post("/:id/leave", groupsHandler.Leave)
	groupRoutes.Post("/:id/channels", channelsHandler.Create)
	groupRoutes.Get("/:id/channels", channelsHandler.ListByGroup)
	groupRoutes.Post("/:id/interests", interestsHandler.Register)
	groupRoutes.Get("/:id/interests", interestsHandler.List)
	groupRoutes.Post("/:id/interests/:interestId/approve", interestsHandler.Approve)
	groupRoutes.Post("/:id/interests/:interestId/reject", interestsHandler.Reject)

	channelRoutes := api.Group("/channels", authMiddleware.RequireAuth)
	channelRoutes.Delete("/:id", channelsHandler.Delete)
	channelRoutes.Post("/:id/members", channelsHandler.AddMember)
	channelRoutes.Delete("/:id/members/:userId", channelsHandler.RemoveMember)
	channelRoutes.Post("/:id/bans", channelsHandler.Ban)
	channelRoutes.Delete("/:id/bans/:userId", channelsHandler.Unban)

	reportRoutes := api.Group("/reports", authMiddleware.RequireAuth)
	reportRoutes.Post("/", reportsHandler.Submit)
	reportRoutes.Get("/", reportsHandler.List)

	return &testEnv{app: app, store: entityStore}
}

func createTestUser(t *testing.T, st *store.Store, username, password string, roles ...models.Role) (*models.User, string) {
	t.Helper()

	if len(roles) == 0 {
		roles = []models.Role{models.RoleUser}
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Password: password,
		Email:    username + "@chathub.local",
		Roles:    append(models.RoleSet{}, roles...),
	}

	err := st.Update(func(state *store.State) error {
		state.InsertUser(user)
		return nil
	})
	if err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}
