package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assetflow/asset-service/internal/api/dto"
	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/repository"
	"github.com/assetflow/asset-service/internal/service"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

// RequestsHandler exposes the asset request workflow.
type RequestsHandler struct {
	workflow *service.WorkflowService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(workflow *service.WorkflowService) *RequestsHandler {
	return &RequestsHandler{workflow: workflow}
}

// Submit handles POST /requests.
func (h *RequestsHandler) Submit(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateRequestRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.RequesterEmail != "" && !sameEmail(req.RequesterEmail, p.Email()) {
		return apperrors.NewForbidden("requests can only be made for yourself")
	}
	if req.RequesterName == nil {
		req.RequesterName = &p.User.Name
	}

	created, err := h.workflow.Submit(c.UserContext(), service.SubmitInput{
		AssetID:        req.AssetID,
		AssetName:      req.AssetName,
		AssetType:      req.AssetType,
		RequesterEmail: req.RequesterEmail,
		RequesterName:  req.RequesterName,
		HREmail:        req.HREmail,
		CompanyName:    req.CompanyName,
		Note:           req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "insertedId": created.ID})
}

// Transition handles PUT /requests/:id.
func (h *RequestsHandler) Transition(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateRequestStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	existing, err := h.workflow.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !sameEmail(existing.HREmail, p.Email()) {
		return apperrors.NewForbidden("request belongs to another company")
	}

	processedBy := req.ProcessedBy
	if domain.StringOrEmpty(processedBy) == "" {
		email := p.Email()
		processedBy = &email
	}
	if _, err := h.workflow.Transition(c.UserContext(), existing.ID, req.RequestStatus, processedBy); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// List handles GET /requests. HR accounts see requests addressed to them,
// employees see their own.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	filter := repository.RequestFilter{}
	email := p.Email()
	if p.IsHR() {
		filter.HREmail = &email
	} else {
		filter.RequesterEmail = &email
	}
	if status := queryString(c, "status"); status != nil {
		s := domain.RequestStatus(*status)
		filter.Status = &s
	}
	filter.Limit, filter.Offset = pageQuery(c)

	requests, err := h.workflow.ListRequests(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, dto.NewRequestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
