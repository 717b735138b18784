package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinel-security/sentinel-console/internal/domain"
	"github.com/sentinel-security/sentinel-console/internal/roster"
)

type EmployeesHandler struct {
	roster *roster.Sync
}

func NewEmployeesHandler(r *roster.Sync) *EmployeesHandler {
	return &EmployeesHandler{roster: r}
}

type ListEmployeesResponse struct {
	Employees []domain.Employee `json:"employees"`
}

func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	return c.JSON(ListEmployeesResponse{Employees: h.roster.Employees()})
}
