package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-maintenance-server/middleware"
	"campus-maintenance-server/models"
	"campus-maintenance-server/routes"
	"campus-maintenance-server/testutil"
	"campus-maintenance-server/utils"
)

// setupRouter wires a test engine the same way main does
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api/v1")

	routes.RegisterAuthRoutes(api.Group("/auth"))

	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware())

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())

	routes.RegisterAuthProtectedRoutes(protected.Group("/auth"))
	routes.RegisterRequestRoutes(public, protected)
	routes.RegisterScheduleRoutes(protected)
	routes.RegisterNotificationRoutes(protected)
	routes.RegisterLocationRoutes(api)
	routes.RegisterAdminRoutes(protected)

	return router, db
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}
