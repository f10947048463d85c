package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/techhelpdesk/helpdesk-service/internal/api/dto"
	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	"github.com/techhelpdesk/helpdesk-service/internal/service"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

// TechniciansHandler manages technician endpoints.
type TechniciansHandler struct {
	service *service.TechnicianService
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(technicianService *service.TechnicianService) *TechniciansHandler {
	return &TechniciansHandler{service: technicianService}
}

// CreateTechnician POST /technicians.
func (h *TechniciansHandler) CreateTechnician(c *fiber.Ctx) error {
	var req dto.CreateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := apperrors.ValidateStruct(req); err != nil {
		return err
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	tech, err := h.service.CreateTechnician(c.UserContext(), req.Name, req.Specialty, availability)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTechnicianResponse(tech)})
}

// ListTechnicians GET /technicians.
func (h *TechniciansHandler) ListTechnicians(c *fiber.Ctx) error {
	technicians, err := h.service.ListTechnicians(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TechnicianResponse, 0, len(technicians))
	for i := range technicians {
		items = append(items, dto.NewTechnicianResponse(&technicians[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTechnician GET /technicians/:id.
func (h *TechniciansHandler) GetTechnician(c *fiber.Ctx) error {
	tech, err := h.service.GetTechnician(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTechnicianResponse(tech)})
}

// GetWorkload GET /technicians/:id/workload.
func (h *TechniciansHandler) GetWorkload(c *fiber.Ctx) error {
	id := c.Params("id")
	count, err := h.service.GetWorkload(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TechnicianWorkloadResponse{
		TechnicianID:  id,
		ActiveTickets: count,
		Limit:         domain.MaxActiveTickets,
	}})
}

// UpdateTechnician PATCH /technicians/:id.
func (h *TechniciansHandler) UpdateTechnician(c *fiber.Ctx) error {
	var req dto.UpdateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := apperrors.ValidateStruct(req); err != nil {
		return err
	}

	tech, err := h.service.UpdateTechnician(c.UserContext(), c.Params("id"), service.TechnicianUpdateInput{
		Name:         req.Name,
		Specialty:    req.Specialty,
		Availability: req.Availability,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTechnicianResponse(tech)})
}

// DeleteTechnician DELETE /technicians/:id.
func (h *TechniciansHandler) DeleteTechnician(c *fiber.Ctx) error {
	if err := h.service.DeleteTechnician(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "technician deleted"}})
}
