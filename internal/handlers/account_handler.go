package handlers

import (
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles HTTP requests for delivery addresses.
type AccountHandler struct {
	service  *services.AccountService
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	accountRoutes := router.Group("/account")
	accountRoutes.Get("/delivery-details", h.HandleGetDeliveryDetails)
	accountRoutes.Post("/delivery-details", h.HandleCreateDeliveryDetails)
}

// HandleGetDeliveryDetails lists the user's delivery addresses.
func (h *AccountHandler) HandleGetDeliveryDetails(c *fiber.Ctx) error {
	details, err := h.service.GetDeliveryDetails(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve delivery details", err)
	}
	return c.JSON(details)
}

// HandleCreateDeliveryDetails stores a new delivery address for the user.
func (h *AccountHandler) HandleCreateDeliveryDetails(c *fiber.Ctx) error {
	var details models.DeliveryDetails
	if err := c.BodyParser(&details); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(details); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.CreateDeliveryDetails(c.Context(), currentUserID(c), &details); err != nil {
		return respondError(c, "Could not create delivery details", err)
	}
	return c.Status(fiber.StatusCreated).JSON(details)
}
