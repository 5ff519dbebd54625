package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apphttp "github.com/spec-kit/erp-service/internal/api/http"
	"github.com/spec-kit/erp-service/internal/auth"
	"github.com/spec-kit/erp-service/internal/domain"
	"github.com/spec-kit/erp-service/internal/observability"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

// buildTestApp wires the real global middlewares plus a protected route gated
// by the authorization table, with a dummy handler returning 200.
func buildTestApp(action auth.Action) *fiber.App {
	app := fiber.New()
	apphttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	tm := auth.NewTokenManager(testJWTSecret, 60)
	middleware := auth.NewAuthMiddleware(tm)

	app.Post("/protected", middleware.Handle, auth.Require(action), func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"ok": true, "role": principal.Role})
	})
	return app
}

func tokenForRole(t *testing.T, role domain.Role) string {
	t.Helper()
	tm := auth.NewTokenManager(testJWTSecret, 60)
	token, _, err := tm.GenerateToken(&domain.User{
		ID:    "00000000-0000-0000-0000-000000000001",
		Email: "staff@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestProductWrite_AdminAndManagerAllowed(t *testing.T) {
	app := buildTestApp(auth.ActionProductWrite)
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager} {
		resp := doRequest(t, app, tokenForRole(t, role))
		assert.Equal(t, http.StatusOK, resp.StatusCode, "role %q", role)
		resp.Body.Close()
	}
}

func TestProductWrite_OtherRolesForbidden(t *testing.T) {
	app := buildTestApp(auth.ActionProductWrite)
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleDataEntry, domain.RoleUnassigned} {
		resp := doRequest(t, app, tokenForRole(t, role))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "role %q", role)

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Contains(t, string(body), "FORBIDDEN")
	}
}

func TestUserManage_AdminOnly(t *testing.T) {
	app := buildTestApp(auth.ActionUserManage)

	resp := doRequest(t, app, tokenForRole(t, domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, tokenForRole(t, domain.RoleManager))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestMissingToken_UnauthorizedBeforeRoleCheck(t *testing.T) {
	app := buildTestApp(auth.ActionProductWrite)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNAUTHORIZED", body["error"]["code"],
		"a missing identity is unauthenticated, never forbidden")
}

func TestInvalidToken_Unauthorized(t *testing.T) {
	app := buildTestApp(auth.ActionOrderWrite)
	resp := doRequest(t, app, "Bearer not.a.valid.token")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWrongScheme_Unauthorized(t *testing.T) {
	app := buildTestApp(auth.ActionOrderRead)
	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrderWrite_AnyAuthenticatedIdentity(t *testing.T) {
	app := buildTestApp(auth.ActionOrderWrite)
	for _, role := range append(domain.ValidRoles(), domain.RoleUnassigned) {
		resp := doRequest(t, app, tokenForRole(t, role))
		assert.Equal(t, http.StatusOK, resp.StatusCode, "role %q", role)
		resp.Body.Close()
	}
}
