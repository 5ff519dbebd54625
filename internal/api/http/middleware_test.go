package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apphttp "github.com/spec-kit/erp-service/internal/api/http"
	"github.com/spec-kit/erp-service/internal/observability"
)

func TestRequestTimeout_BoundsHandlerContext(t *testing.T) {
	app := fiber.New()
	apphttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 50*time.Millisecond)

	app.Get("/slow", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if _, ok := ctx.Deadline(); !ok {
			return c.Status(http.StatusInternalServerError).SendString("no deadline")
		}
		select {
		case <-ctx.Done():
			return c.SendString("cancelled")
		case <-time.After(2 * time.Second):
			return c.Status(http.StatusInternalServerError).SendString("deadline never fired")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)
	assert.Equal(t, "cancelled", string(body))
}

func TestRequestTimeout_DisabledWhenZero(t *testing.T) {
	app := fiber.New()
	apphttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	app.Get("/ctx", func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); ok {
			return c.Status(http.StatusInternalServerError).SendString("unexpected deadline")
		}
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
