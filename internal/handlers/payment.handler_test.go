package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoRoute(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(name)
	}
}

// Fiber dispatches to the first matching route in registration order, so the
// literal export path must come before the parameterized payment paths.
func TestExportRouteNotShadowedByPaymentID(t *testing.T) {
	app := fiber.New()

	payments := app.Group("/api/payments/rent")
	payments.Get("/", echoRoute("list"))
	payments.Get("/export/", echoRoute("export"))
	payments.Get("/:id/", echoRoute("get"))
	payments.Get("/:id/receipt/", echoRoute("receipt"))

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "collection", path: "/api/payments/rent/", want: "list"},
		{name: "export", path: "/api/payments/rent/export/", want: "export"},
		{
			name: "payment by id",
			path: "/api/payments/rent/0b5e9c2a-97d4-4f52-b1a7-3e8d25c4f6aa/",
			want: "get",
		},
		{
			name: "receipt by id",
			path: "/api/payments/rent/0b5e9c2a-97d4-4f52-b1a7-3e8d25c4f6aa/receipt/",
			want: "receipt",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(body))
		})
	}
}
