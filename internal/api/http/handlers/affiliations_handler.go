package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assetflow/asset-service/internal/api/dto"
	"github.com/assetflow/asset-service/internal/service"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

// AffiliationsHandler exposes employee to company links.
type AffiliationsHandler struct {
	workflow *service.WorkflowService
}

// NewAffiliationsHandler constructs handler.
func NewAffiliationsHandler(workflow *service.WorkflowService) *AffiliationsHandler {
	return &AffiliationsHandler{workflow: workflow}
}

// Remove handles DELETE /employee-affiliation.
func (h *AffiliationsHandler) Remove(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.RemoveAffiliationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.HREmail != "" && !sameEmail(req.HREmail, p.Email()) {
		return apperrors.NewForbidden("affiliation belongs to another company")
	}

	if err := h.workflow.RemoveAffiliation(c.UserContext(), req.EmployeeEmail, req.CompanyName, req.HREmail); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Employee removed from company"})
}

// ListMine handles GET /employee-affiliations.
func (h *AffiliationsHandler) ListMine(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	affs, err := h.workflow.ListAffiliations(c.UserContext(), p.Email())
	if err != nil {
		return err
	}
	items := make([]dto.AffiliationResponse, 0, len(affs))
	for i := range affs {
		items = append(items, dto.NewAffiliationResponse(&affs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CompanyEmployees handles GET /company-employees.
func (h *AffiliationsHandler) CompanyEmployees(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	employees, err := h.workflow.ListCompanyEmployees(c.UserContext(), p.Email())
	if err != nil {
		return err
	}
	items := make([]dto.CompanyEmployeeResponse, 0, len(employees))
	for i := range employees {
		item := dto.CompanyEmployeeResponse{AffiliationResponse: dto.NewAffiliationResponse(&employees[i].Affiliation)}
		if u := employees[i].User; u != nil {
			item.PhotoURL = u.PhotoURL
			if item.EmployeeName == nil {
				item.EmployeeName = &u.Name
			}
		}
		items = append(items, item)
	}
	return c.JSON(fiber.Map{"data": items})
}
