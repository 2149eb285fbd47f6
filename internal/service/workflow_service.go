package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/events"
	"github.com/assetflow/asset-service/internal/repository"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

// WorkflowMetrics receives workflow outcomes.
type WorkflowMetrics interface {
	RecordTransition(decision, outcome string)
	RecordReturn(outcome string)
}

// WorkflowService runs the request approval workflow: submission, approval
// with affiliation capacity checks, asset returns and affiliation removal.
type WorkflowService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	metrics    WorkflowMetrics
	logger     *zap.Logger
	now        func() time.Time
}

// WorkflowDependencies bundles collaborators for the workflow service.
type WorkflowDependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Metrics    WorkflowMetrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewWorkflowService constructs the service.
func NewWorkflowService(deps WorkflowDependencies) *WorkflowService {
	s := &WorkflowService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}
	return s
}

// SubmitInput describes a new asset request.
type SubmitInput struct {
	AssetID        string
	AssetName      string
	AssetType      *domain.AssetType
	RequesterEmail string
	RequesterName  *string
	HREmail        string
	CompanyName    *string
	Note           *string
}

// TransitionResult carries the records written by an approval.
type TransitionResult struct {
	Request     *domain.Request
	Assignment  *domain.Assignment
	Affiliation *domain.Affiliation
}

// CompanyEmployee is an active affiliation joined with the employee profile.
type CompanyEmployee struct {
	Affiliation domain.Affiliation
	User        *domain.User
}

// Submit records a pending request. Neither capacity nor inventory is
// checked here.
func (s *WorkflowService) Submit(ctx context.Context, input SubmitInput) (*domain.Request, error) {
	input.AssetID = strings.TrimSpace(input.AssetID)
	input.AssetName = strings.TrimSpace(input.AssetName)
	input.RequesterEmail = normalizeEmail(input.RequesterEmail)
	input.HREmail = normalizeEmail(input.HREmail)

	if missing := missingFields(map[string]string{
		"assetId":        input.AssetID,
		"assetName":      input.AssetName,
		"requesterEmail": input.RequesterEmail,
		"hrEmail":        input.HREmail,
	}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", map[string]any{"missing": missing})
	}
	if input.AssetType != nil && !input.AssetType.Valid() {
		return nil, apperrors.NewValidationError("invalid asset type", map[string]any{"assetType": *input.AssetType})
	}

	dupDetails := map[string]any{"assetId": input.AssetID, "requesterEmail": input.RequesterEmail}
	pending, err := s.store.Requests().HasPending(ctx, input.AssetID, input.RequesterEmail)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewDuplicateRequest(dupDetails)
	}

	req := &domain.Request{
		AssetID:        input.AssetID,
		AssetName:      input.AssetName,
		AssetType:      input.AssetType,
		RequesterEmail: input.RequesterEmail,
		RequesterName:  input.RequesterName,
		HREmail:        input.HREmail,
		CompanyName:    input.CompanyName,
		Note:           input.Note,
		Status:         domain.RequestStatusPending,
		RequestDate:    s.now(),
	}
	if err := s.store.Requests().Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewDuplicateRequest(dupDetails)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventRequestSubmitted,
		ResourceID: req.ID,
		Actor:      events.Actor{Email: req.RequesterEmail, Role: domain.RoleEmployee},
		Payload: events.RequestSubmittedPayload{
			AssetID:        req.AssetID,
			AssetName:      req.AssetName,
			RequesterEmail: req.RequesterEmail,
			HREmail:        req.HREmail,
			CompanyName:    domain.StringOrEmpty(req.CompanyName),
		},
	})
	return req, nil
}

// Transition applies an HR decision to a pending request. Approval affiliates
// the requester when needed, creates the assignment and takes one unit of
// inventory; every write commits together or not at all.
func (s *WorkflowService) Transition(ctx context.Context, requestID string, decision domain.RequestStatus, processedBy *string) (*TransitionResult, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, apperrors.NewValidationError("request id is required", nil)
	}
	if !decision.IsDecision() {
		return nil, apperrors.NewValidationError("invalid request status", map[string]any{"requestStatus": decision})
	}

	now := s.now()
	var result TransitionResult
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		req, err := tx.Requests().GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return notFoundOr(err, "request", map[string]any{"id": requestID})
		}
		if !req.IsPending() {
			return apperrors.NewInvalidState("request already processed", map[string]any{"id": req.ID, "status": req.Status})
		}

		hr, err := tx.Users().GetByEmailForUpdate(ctx, req.HREmail)
		if err != nil {
			return notFoundOr(err, "hr user", map[string]any{"hrEmail": req.HREmail})
		}

		active, err := tx.Affiliations().GetActive(ctx, req.RequesterEmail, req.HREmail)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		needsSlot := decision == domain.RequestStatusApproved && active == nil
		capacityDetails := map[string]any{
			"hrEmail":          hr.Email,
			"packageLimit":     hr.PackageLimit,
			"currentEmployees": hr.CurrentEmployees,
		}
		if needsSlot && !hr.HasCapacity() {
			return apperrors.NewCapacityExceeded(capacityDetails)
		}

		var asset *domain.Asset
		if decision == domain.RequestStatusApproved {
			asset, err = tx.Assets().GetByID(ctx, req.AssetID)
			if err != nil {
				return notFoundOr(err, "asset", map[string]any{"assetId": req.AssetID})
			}
			if !asset.OwnedBy(req.HREmail) {
				return apperrors.NewValidationError("asset does not belong to the approving company", map[string]any{
					"assetId": req.AssetID,
					"hrEmail": req.HREmail,
				})
			}
		}

		decided, err := tx.Requests().Decide(ctx, req.ID, decision, processedBy, now)
		if err != nil {
			return err
		}
		if !decided {
			return apperrors.NewInvalidState("request already processed", map[string]any{"id": req.ID})
		}
		req.Status = decision
		req.ApprovalDate = &now
		req.ProcessedBy = processedBy
		result.Request = req

		if decision == domain.RequestStatusRejected {
			return nil
		}

		if needsSlot {
			aff, err := s.affiliate(ctx, tx, req, hr, asset.CompanyLogo, now)
			if err != nil {
				return err
			}
			ok, err := tx.Users().IncrementEmployees(ctx, hr.Email)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.NewCapacityExceeded(capacityDetails)
			}
			result.Affiliation = aff
		}

		assignment := domain.NewAssignmentFromRequest(req, now)
		if err := tx.Assignments().Create(ctx, assignment); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperrors.NewConflict("request already assigned", map[string]any{"requestId": req.ID})
			}
			return err
		}

		taken, err := tx.Assets().DecrementAvailable(ctx, req.AssetID)
		if err != nil {
			return err
		}
		if !taken {
			return apperrors.NewInventoryExhausted(map[string]any{"assetId": req.AssetID})
		}
		result.Assignment = assignment
		return nil
	})

	s.metrics.RecordTransition(string(decision), outcomeOf(err))
	if err != nil {
		return nil, err
	}

	s.publishTransition(ctx, &result, processedBy)
	return &result, nil
}

// affiliate inserts the active link between requester and company.
func (s *WorkflowService) affiliate(ctx context.Context, tx repository.Store, req *domain.Request, hr *domain.User, assetLogo *string, now time.Time) (*domain.Affiliation, error) {
	aff := &domain.Affiliation{
		EmployeeEmail:   req.RequesterEmail,
		EmployeeName:    req.RequesterName,
		HREmail:         req.HREmail,
		CompanyName:     domain.FirstNonEmpty(req.CompanyName, hr.CompanyName),
		CompanyLogo:     domain.FirstNonEmpty(assetLogo, hr.CompanyLogo),
		Status:          domain.AffiliationStatusActive,
		AffiliationDate: now,
	}
	if err := tx.Affiliations().Create(ctx, aff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("employee already affiliated", map[string]any{
				"employeeEmail": req.RequesterEmail,
				"hrEmail":       req.HREmail,
			})
		}
		return nil, err
	}
	return aff, nil
}

// ReturnAsset closes an assignment and restores one unit of inventory.
func (s *WorkflowService) ReturnAsset(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	assignmentID = strings.TrimSpace(assignmentID)
	if assignmentID == "" {
		return nil, apperrors.NewValidationError("assignment id is required", nil)
	}

	now := s.now()
	var returned *domain.Assignment
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		assignment, err := tx.Assignments().GetByIDForUpdate(ctx, assignmentID)
		if err != nil {
			return notFoundOr(err, "assignment", map[string]any{"id": assignmentID})
		}
		if assignment.Status != domain.AssignmentStatusAssigned {
			return apperrors.NewInvalidState("already returned", map[string]any{"id": assignment.ID})
		}

		ok, err := tx.Assignments().MarkReturned(ctx, assignment.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewInvalidState("already returned", map[string]any{"id": assignment.ID})
		}

		restored, err := tx.Assets().IncrementAvailable(ctx, assignment.AssetID)
		if err != nil {
			return err
		}
		if !restored {
			if _, err := tx.Assets().GetByID(ctx, assignment.AssetID); err != nil {
				return notFoundOr(err, "asset", map[string]any{"assetId": assignment.AssetID})
			}
			return apperrors.NewInvalidState("inventory already at capacity", map[string]any{"assetId": assignment.AssetID})
		}

		assignment.Status = domain.AssignmentStatusReturned
		assignment.ReturnDate = &now
		returned = assignment
		return nil
	})

	s.metrics.RecordReturn(outcomeOf(err))
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventAssetReturned,
		ResourceID: returned.ID,
		Actor:      events.Actor{Email: returned.RequesterEmail},
		Payload: events.AssetReturnedPayload{
			AssetID:        returned.AssetID,
			RequesterEmail: returned.RequesterEmail,
			HREmail:        returned.HREmail,
		},
	})
	return returned, nil
}

// RemoveAffiliation ends an active employee link and frees its slot.
func (s *WorkflowService) RemoveAffiliation(ctx context.Context, employeeEmail, companyName, hrEmail string) error {
	employeeEmail = normalizeEmail(employeeEmail)
	companyName = strings.TrimSpace(companyName)
	hrEmail = normalizeEmail(hrEmail)

	if missing := missingFields(map[string]string{
		"employeeEmail": employeeEmail,
		"companyName":   companyName,
		"hrEmail":       hrEmail,
	}); len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", map[string]any{"missing": missing})
	}

	now := s.now()
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		removed, err := tx.Affiliations().Remove(ctx, employeeEmail, companyName, hrEmail, now)
		if err != nil {
			return err
		}
		if !removed {
			return apperrors.NewNotFound("affiliation", map[string]any{
				"employeeEmail": employeeEmail,
				"companyName":   companyName,
				"hrEmail":       hrEmail,
			})
		}
		if err := tx.Users().DecrementEmployees(ctx, hrEmail); err != nil {
			return notFoundOr(err, "hr user", map[string]any{"hrEmail": hrEmail})
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventAffiliationRemoved,
		ResourceID: employeeEmail,
		Actor:      events.Actor{Email: hrEmail, Role: domain.RoleHR},
		Payload: events.AffiliationRemovedPayload{
			EmployeeEmail: employeeEmail,
			CompanyName:   companyName,
			HREmail:       hrEmail,
		},
	})
	return nil
}

// GetRequest fetches a request by id.
func (s *WorkflowService) GetRequest(ctx context.Context, id string) (*domain.Request, error) {
	req, err := s.store.Requests().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "request", map[string]any{"id": id})
	}
	return req, nil
}

// GetAssignment fetches an assignment by id.
func (s *WorkflowService) GetAssignment(ctx context.Context, id string) (*domain.Assignment, error) {
	assignment, err := s.store.Assignments().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "assignment", map[string]any{"id": id})
	}
	return assignment, nil
}

// ListRequests lists requests, newest first.
func (s *WorkflowService) ListRequests(ctx context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	if filter.Status != nil && *filter.Status != domain.RequestStatusPending && !filter.Status.IsDecision() {
		return nil, apperrors.NewValidationError("invalid request status", map[string]any{"status": *filter.Status})
	}
	filter.Limit, filter.Offset = repository.NormalizePage(filter.Limit, filter.Offset)
	return s.store.Requests().List(ctx, filter)
}

// ListAssignments lists assignments, newest first.
func (s *WorkflowService) ListAssignments(ctx context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	filter.Limit, filter.Offset = repository.NormalizePage(filter.Limit, filter.Offset)
	return s.store.Assignments().List(ctx, filter)
}

// ListAffiliations returns the active companies of an employee.
func (s *WorkflowService) ListAffiliations(ctx context.Context, employeeEmail string) ([]domain.Affiliation, error) {
	return s.store.Affiliations().ListActiveByEmployee(ctx, employeeEmail)
}

// ListCompanyEmployees returns the active employees of an HR account.
func (s *WorkflowService) ListCompanyEmployees(ctx context.Context, hrEmail string) ([]CompanyEmployee, error) {
	affs, err := s.store.Affiliations().ListActiveByHR(ctx, hrEmail)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(affs))
	for _, aff := range affs {
		emails = append(emails, aff.EmployeeEmail)
	}
	users, err := s.store.Users().ListByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}
	byEmail := make(map[string]*domain.User, len(users))
	for i := range users {
		byEmail[users[i].Email] = &users[i]
	}

	out := make([]CompanyEmployee, 0, len(affs))
	for _, aff := range affs {
		out = append(out, CompanyEmployee{Affiliation: aff, User: byEmail[aff.EmployeeEmail]})
	}
	return out, nil
}

func (s *WorkflowService) publishTransition(ctx context.Context, result *TransitionResult, processedBy *string) {
	req := result.Request
	payload := events.RequestDecidedPayload{
		AssetID:        req.AssetID,
		RequesterEmail: req.RequesterEmail,
		HREmail:        req.HREmail,
		Status:         req.Status,
	}
	if result.Assignment != nil {
		payload.AssignmentID = &result.Assignment.ID
	}
	if result.Affiliation != nil {
		payload.AffiliationID = &result.Affiliation.ID
	}

	eventType := events.EventRequestApproved
	if req.Status == domain.RequestStatusRejected {
		eventType = events.EventRequestRejected
	}
	s.publishEvent(ctx, events.Event{
		Type:       eventType,
		ResourceID: req.ID,
		Actor:      events.Actor{Email: domain.FirstNonEmpty(processedBy, &req.HREmail), Role: domain.RoleHR},
		Payload:    payload,
	})
}

// publishEvent runs after commit; handler failures are logged only.
func (s *WorkflowService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.String("resource_id", event.ResourceID),
			zap.Error(err))
	}
}
