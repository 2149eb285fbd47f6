package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assetflow/asset-service/internal/api/dto"
	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/repository"
	"github.com/assetflow/asset-service/internal/service"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

// AssignmentsHandler exposes assigned assets.
type AssignmentsHandler struct {
	workflow *service.WorkflowService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(workflow *service.WorkflowService) *AssignmentsHandler {
	return &AssignmentsHandler{workflow: workflow}
}

// Return handles PUT /assigned-assets/:id.
func (h *AssignmentsHandler) Return(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	existing, err := h.workflow.GetAssignment(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !sameEmail(existing.RequesterEmail, p.Email()) && !sameEmail(existing.HREmail, p.Email()) {
		return apperrors.NewForbidden("assignment belongs to someone else")
	}

	if _, err := h.workflow.ReturnAsset(c.UserContext(), existing.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Asset returned successfully"})
}

// List handles GET /assigned-assets.
func (h *AssignmentsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	filter := repository.AssignmentFilter{}
	email := p.Email()
	if p.IsHR() {
		filter.HREmail = &email
	} else {
		filter.RequesterEmail = &email
	}
	if status := queryString(c, "status"); status != nil {
		s := domain.AssignmentStatus(*status)
		filter.Status = &s
	}
	filter.Limit, filter.Offset = pageQuery(c)

	assignments, err := h.workflow.ListAssignments(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		items = append(items, dto.NewAssignmentResponse(&assignments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
