package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/techhelpdesk/helpdesk-service/internal/api/dto"
	"github.com/techhelpdesk/helpdesk-service/internal/service"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

// ClientsHandler manages client endpoints.
type ClientsHandler struct {
	service *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clientService *service.ClientService) *ClientsHandler {
	return &ClientsHandler{service: clientService}
}

// CreateClient POST /clients.
func (h *ClientsHandler) CreateClient(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := apperrors.ValidateStruct(req); err != nil {
		return err
	}

	client, err := h.service.CreateClient(c.UserContext(), req.Name, req.Company, req.ContactEmail)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// ListClients GET /clients.
func (h *ClientsHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.service.ListClients(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, dto.NewClientResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetClient GET /clients/:id.
func (h *ClientsHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.service.GetClient(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// UpdateClient PATCH /clients/:id.
func (h *ClientsHandler) UpdateClient(c *fiber.Ctx) error {
	var req dto.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := apperrors.ValidateStruct(req); err != nil {
		return err
	}

	client, err := h.service.UpdateClient(c.UserContext(), c.Params("id"), req.Name, req.Company, req.ContactEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// DeleteClient DELETE /clients/:id.
func (h *ClientsHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.service.DeleteClient(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "client deleted"}})
}
