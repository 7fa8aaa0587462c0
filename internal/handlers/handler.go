package handlers

import (
	"errors"

	"renthub/internal/handlers/middleware"
	"renthub/internal/models"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

// handleError maps controller errors onto the HTTP contract: field validation
// failures are a 400 with a field->message map, an unavailable mail service is
// a 503 with a machine-readable code, everything unexpected is a generic 500.
func handleError(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": validationErr.Fields,
		})
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	case errors.Is(err, models.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	case errors.Is(err, services.ErrMailUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"code": "mail_service_unavailable",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, models.ErrNotFound
	}
	return id, nil
}

func parseListParams(c *fiber.Ctx) models.ListParams {
	params := models.ListParams{
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", models.DefaultPageSize),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	params.Normalize()
	return params
}

func requireUser(c *fiber.Ctx) (*models.User, error) {
	user := middleware.GetUser(c)
	if user == nil {
		return nil, models.ErrUnauthorized
	}
	return user, nil
}
