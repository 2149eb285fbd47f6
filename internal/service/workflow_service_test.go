package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/events"
	"github.com/assetflow/asset-service/internal/repository"
	"github.com/assetflow/asset-service/internal/repository/memory"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type workflowFixture struct {
	store  *memory.Store
	svc    *WorkflowService
	events *recordedEvents
}

type recordedEvents struct {
	mu    sync.Mutex
	types []events.EventType
}

func (r *recordedEvents) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, e.Type)
	return nil
}

func (r *recordedEvents) list() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.EventType(nil), r.types...)
}

type countingMetrics struct {
	mu          sync.Mutex
	transitions map[string]int
	returns     map[string]int
}

func (m *countingMetrics) RecordTransition(decision, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[decision+"/"+outcome]++
}

func (m *countingMetrics) RecordReturn(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returns[outcome]++
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	rec := &recordedEvents{}
	for _, et := range events.AllEventTypes() {
		dispatcher.Subscribe(et, rec.handle)
	}
	svc := NewWorkflowService(WorkflowDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Now:        func() time.Time { return fixedNow },
	})
	return &workflowFixture{store: store, svc: svc, events: rec}
}

func strPtr(s string) *string { return &s }

func (f *workflowFixture) seedHR(t *testing.T, email string, limit, current int) {
	t.Helper()
	require.NoError(t, f.store.Users().Create(context.Background(), &domain.User{
		Email:            email,
		Name:             "HR " + email,
		Role:             domain.RoleHR,
		CompanyName:      strPtr("Acme"),
		CompanyLogo:      strPtr("https://cdn.acme.io/hr-logo.png"),
		Subscription:     domain.DefaultSubscription,
		PackageLimit:     limit,
		CurrentEmployees: current,
	}))
}

func (f *workflowFixture) seedAsset(t *testing.T, hrEmail string, total, available int) *domain.Asset {
	t.Helper()
	asset := &domain.Asset{
		Name:              "Laptop",
		Type:              domain.AssetTypeReturnable,
		CompanyName:       strPtr("Acme"),
		ProductQuantity:   total,
		AvailableQuantity: available,
		HREmail:           hrEmail,
	}
	require.NoError(t, f.store.Assets().Create(context.Background(), asset))
	return asset
}

func (f *workflowFixture) submit(t *testing.T, assetID, requester, hrEmail string) *domain.Request {
	t.Helper()
	req, err := f.svc.Submit(context.Background(), SubmitInput{
		AssetID:        assetID,
		AssetName:      "Laptop",
		RequesterEmail: requester,
		RequesterName:  strPtr("Employee"),
		HREmail:        hrEmail,
	})
	require.NoError(t, err)
	return req
}

func (f *workflowFixture) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := f.store.Users().GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return u
}

func (f *workflowFixture) asset(t *testing.T, id string) *domain.Asset {
	t.Helper()
	a, err := f.store.Assets().GetByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

func (f *workflowFixture) request(t *testing.T, id string) *domain.Request {
	t.Helper()
	r, err := f.store.Requests().GetByID(context.Background(), id)
	require.NoError(t, err)
	return r
}

func (f *workflowFixture) assignments(t *testing.T, requester string) []domain.Assignment {
	t.Helper()
	list, err := f.svc.ListAssignments(context.Background(), repository.AssignmentFilter{RequesterEmail: &requester})
	require.NoError(t, err)
	return list
}

func approve(t *testing.T, f *workflowFixture, id string) (*TransitionResult, error) {
	t.Helper()
	return f.svc.Transition(context.Background(), id, domain.RequestStatusApproved, strPtr("h1@acme.io"))
}

func TestSubmit_Validation(t *testing.T) {
	f := newWorkflowFixture(t)
	_, err := f.svc.Submit(context.Background(), SubmitInput{AssetID: "A1", AssetName: " "})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	assert.Equal(t, []string{"assetName", "hrEmail", "requesterEmail"}, de.Details["missing"])
}

func TestSubmit_DuplicatePending(t *testing.T) {
	f := newWorkflowFixture(t)
	req := f.submit(t, "A1", "E1@acme.io", "h1@acme.io")
	assert.Equal(t, domain.RequestStatusPending, req.Status)
	assert.Equal(t, fixedNow, req.RequestDate)
	assert.Equal(t, "e1@acme.io", req.RequesterEmail)

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		AssetID: "A1", AssetName: "Laptop", RequesterEmail: "e1@acme.io", HREmail: "h1@acme.io",
	})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeConflict, de.Code)
	assert.Equal(t, 400, de.HTTPStatus)

	// A different asset is fine.
	f.submit(t, "A2", "e1@acme.io", "h1@acme.io")
	assert.Equal(t, []events.EventType{events.EventRequestSubmitted, events.EventRequestSubmitted}, f.events.list())
}

// First approval affiliates and assigns.
func TestTransition_ApproveNewEmployee(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 2)
	asset := f.seedAsset(t, "h1@acme.io", 3, 3)
	req := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")

	res, err := approve(t, f, req.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Affiliation)
	require.NotNil(t, res.Assignment)

	stored := f.request(t, req.ID)
	assert.Equal(t, domain.RequestStatusApproved, stored.Status)
	assert.Equal(t, "h1@acme.io", domain.StringOrEmpty(stored.ProcessedBy))
	require.NotNil(t, stored.ApprovalDate)
	assert.Equal(t, fixedNow, *stored.ApprovalDate)

	assert.Equal(t, 3, f.user(t, "h1@acme.io").CurrentEmployees)
	assert.Equal(t, 2, f.asset(t, asset.ID).AvailableQuantity)

	aff, err := f.store.Affiliations().GetActive(context.Background(), "e1@acme.io", "h1@acme.io")
	require.NoError(t, err)
	assert.Equal(t, "Acme", aff.CompanyName)
	assert.Equal(t, "https://cdn.acme.io/hr-logo.png", aff.CompanyLogo)
	assert.Equal(t, "Employee", domain.StringOrEmpty(aff.EmployeeName))

	list := f.assignments(t, "e1@acme.io")
	require.Len(t, list, 1)
	assert.Equal(t, req.ID, list[0].RequestID)
	assert.Equal(t, domain.AssignmentStatusAssigned, list[0].Status)
	assert.Contains(t, f.events.list(), events.EventRequestApproved)
}

// An already affiliated employee takes no new slot, even at the limit.
func TestTransition_ExistingAffiliationAtLimit(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 1, 0)
	asset := f.seedAsset(t, "h1@acme.io", 5, 5)

	first := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")
	_, err := approve(t, f, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.user(t, "h1@acme.io").CurrentEmployees)

	other := f.seedAsset(t, "h1@acme.io", 2, 2)
	second := f.submit(t, other.ID, "e1@acme.io", "h1@acme.io")
	res, err := approve(t, f, second.ID)
	require.NoError(t, err)
	assert.Nil(t, res.Affiliation)
	assert.Equal(t, 1, f.user(t, "h1@acme.io").CurrentEmployees)
	assert.Equal(t, 1, f.asset(t, other.ID).AvailableQuantity)

	affs, err := f.svc.ListAffiliations(context.Background(), "e1@acme.io")
	require.NoError(t, err)
	assert.Len(t, affs, 1)
}

// A full package rejects a new employee without any write.
func TestTransition_CapacityExceeded(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 5)
	asset := f.seedAsset(t, "h1@acme.io", 3, 3)
	req := f.submit(t, asset.ID, "e2@acme.io", "h1@acme.io")

	_, err := approve(t, f, req.ID)
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeCapacityExceeded, de.Code)
	assert.Equal(t, 403, de.HTTPStatus)

	assert.Equal(t, domain.RequestStatusPending, f.request(t, req.ID).Status)
	assert.Equal(t, 5, f.user(t, "h1@acme.io").CurrentEmployees)
	assert.Equal(t, 3, f.asset(t, asset.ID).AvailableQuantity)
	assert.Empty(t, f.assignments(t, "e2@acme.io"))
	assert.NotContains(t, f.events.list(), events.EventRequestApproved)
}

// Rejection only flips the request.
func TestTransition_Reject(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 5)
	asset := f.seedAsset(t, "h1@acme.io", 3, 3)
	req := f.submit(t, asset.ID, "e2@acme.io", "h1@acme.io")

	res, err := f.svc.Transition(context.Background(), req.ID, domain.RequestStatusRejected, strPtr("h1@acme.io"))
	require.NoError(t, err)
	assert.Nil(t, res.Assignment)
	assert.Nil(t, res.Affiliation)

	assert.Equal(t, domain.RequestStatusRejected, f.request(t, req.ID).Status)
	assert.Equal(t, 5, f.user(t, "h1@acme.io").CurrentEmployees)
	assert.Equal(t, 3, f.asset(t, asset.ID).AvailableQuantity)
	assert.Contains(t, f.events.list(), events.EventRequestRejected)

	// A new pending request for the same asset is allowed after a decision.
	f.submit(t, asset.ID, "e2@acme.io", "h1@acme.io")
}

func TestTransition_TerminalIsNoOp(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 0)
	asset := f.seedAsset(t, "h1@acme.io", 3, 3)
	req := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")
	_, err := approve(t, f, req.ID)
	require.NoError(t, err)

	for _, decision := range []domain.RequestStatus{domain.RequestStatusApproved, domain.RequestStatusRejected} {
		_, err := f.svc.Transition(context.Background(), req.ID, decision, nil)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidState), "decision %s", decision)
	}
	assert.Equal(t, domain.RequestStatusApproved, f.request(t, req.ID).Status)
	assert.Equal(t, 1, f.user(t, "h1@acme.io").CurrentEmployees)
	assert.Equal(t, 2, f.asset(t, asset.ID).AvailableQuantity)
	assert.Len(t, f.assignments(t, "e1@acme.io"), 1)
}

func TestTransition_InputErrors(t *testing.T) {
	f := newWorkflowFixture(t)
	_, err := f.svc.Transition(context.Background(), "missing", domain.RequestStatusApproved, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = f.svc.Transition(context.Background(), "x", domain.RequestStatusPending, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = f.svc.Transition(context.Background(), "x", domain.RequestStatus("maybe"), nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	req := f.submit(t, "A1", "e1@acme.io", "nobody@acme.io")
	_, err = approve(t, f, req.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, domain.RequestStatusPending, f.request(t, req.ID).Status)
}

func TestTransition_InventoryExhaustedRollsBack(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 0)
	asset := f.seedAsset(t, "h1@acme.io", 1, 0)
	req := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")

	_, err := approve(t, f, req.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInventoryExhausted, apperrors.CodeOf(err))

	assert.Equal(t, domain.RequestStatusPending, f.request(t, req.ID).Status)
	assert.Equal(t, 0, f.user(t, "h1@acme.io").CurrentEmployees)
	assert.Equal(t, 0, f.asset(t, asset.ID).AvailableQuantity)
	assert.Empty(t, f.assignments(t, "e1@acme.io"))
	_, err = f.store.Affiliations().GetActive(context.Background(), "e1@acme.io", "h1@acme.io")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTransition_MissingAssetRollsBack(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 0)
	req := f.submit(t, "gone", "e1@acme.io", "h1@acme.io")

	_, err := approve(t, f, req.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, domain.RequestStatusPending, f.request(t, req.ID).Status)
	assert.Equal(t, 0, f.user(t, "h1@acme.io").CurrentEmployees)
}

func TestTransition_AssetOfAnotherCompanyRejected(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 0)
	f.seedHR(t, "h2@rival.io", 5, 0)
	asset := f.seedAsset(t, "h2@rival.io", 2, 2)
	req := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")

	_, err := approve(t, f, req.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	assert.Equal(t, domain.RequestStatusPending, f.request(t, req.ID).Status)
	stored, err := f.store.Assets().GetByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AvailableQuantity)
	assert.Equal(t, 0, f.user(t, "h1@acme.io").CurrentEmployees)

	assignments, err := f.svc.ListAssignments(context.Background(), repository.AssignmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, assignments)

	_, err = f.svc.Transition(context.Background(), req.ID, domain.RequestStatusRejected, nil)
	require.NoError(t, err)
}

func TestTransition_RecordsMetrics(t *testing.T) {
	f := newWorkflowFixture(t)
	metrics := &countingMetrics{transitions: map[string]int{}, returns: map[string]int{}}
	f.svc = NewWorkflowService(WorkflowDependencies{Store: f.store, Metrics: metrics})
	f.seedHR(t, "h1@acme.io", 1, 1)
	asset := f.seedAsset(t, "h1@acme.io", 1, 1)
	req := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")

	_, err := approve(t, f, req.ID)
	require.Error(t, err)
	_, err = f.svc.Transition(context.Background(), req.ID, domain.RequestStatusRejected, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.transitions["approved/capacity_exceeded"])
	assert.Equal(t, 1, metrics.transitions["rejected/success"])
}

// N concurrent approvals for distinct employees admit exactly the free slots.
func TestTransition_ConcurrentApprovalsRespectCapacity(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 3, 0)
	asset := f.seedAsset(t, "h1@acme.io", 50, 50)

	const n = 12
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = f.submit(t, asset.ID, fmt.Sprintf("e%d@acme.io", i), "h1@acme.io").ID
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, capacity := 0, 0
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.svc.Transition(context.Background(), id, domain.RequestStatusApproved, nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperrors.HasCode(err, apperrors.CodeCapacityExceeded):
				capacity++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, n-3, capacity)
	assert.Equal(t, 3, f.user(t, "h1@acme.io").CurrentEmployees)
	assert.Equal(t, 47, f.asset(t, asset.ID).AvailableQuantity)

	employees, err := f.svc.ListCompanyEmployees(context.Background(), "h1@acme.io")
	require.NoError(t, err)
	assert.Len(t, employees, 3)
}

// Concurrent approvals for one employee never create two affiliations.
func TestTransition_ConcurrentSameEmployeeSingleAffiliation(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 10, 0)

	const n = 6
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		asset := f.seedAsset(t, "h1@acme.io", 1, 1)
		ids[i] = f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io").ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.svc.Transition(context.Background(), id, domain.RequestStatusApproved, nil)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, f.user(t, "h1@acme.io").CurrentEmployees)
	affs, err := f.svc.ListAffiliations(context.Background(), "e1@acme.io")
	require.NoError(t, err)
	assert.Len(t, affs, 1)
	assert.Len(t, f.assignments(t, "e1@acme.io"), n)
}

// Returning twice fails the second time.
func TestReturnAsset(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 0)
	asset := f.seedAsset(t, "h1@acme.io", 3, 3)
	req := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")
	res, err := approve(t, f, req.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, f.asset(t, asset.ID).AvailableQuantity)

	returned, err := f.svc.ReturnAsset(context.Background(), res.Assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, 3, f.asset(t, asset.ID).AvailableQuantity)

	_, err = f.svc.ReturnAsset(context.Background(), res.Assignment.ID)
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeInvalidState, de.Code)
	assert.Equal(t, "already returned", de.Message)
	assert.Equal(t, 3, f.asset(t, asset.ID).AvailableQuantity)

	_, err = f.svc.ReturnAsset(context.Background(), "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Contains(t, f.events.list(), events.EventAssetReturned)
}

func TestReturnAsset_AtCapacityAborts(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 0)
	asset := f.seedAsset(t, "h1@acme.io", 2, 2)
	req := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")
	res, err := approve(t, f, req.ID)
	require.NoError(t, err)

	// Inventory corrected out of band back to the full quantity.
	_, err = f.store.Assets().IncrementAvailable(context.Background(), asset.ID)
	require.NoError(t, err)

	_, err = f.svc.ReturnAsset(context.Background(), res.Assignment.ID)
	require.Error(t, err)
	assert.Equal(t, "inventory already at capacity", apperrors.ToDomainError(err).Message)

	a, err := f.store.Assignments().GetByID(context.Background(), res.Assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStatusAssigned, a.Status)
	assert.Equal(t, 2, f.asset(t, asset.ID).AvailableQuantity)
}

// Removal frees the slot and floors at zero.
func TestRemoveAffiliation(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 1, 0)
	asset := f.seedAsset(t, "h1@acme.io", 5, 5)
	req := f.submit(t, asset.ID, "e1@acme.io", "h1@acme.io")
	_, err := approve(t, f, req.ID)
	require.NoError(t, err)

	err = f.svc.RemoveAffiliation(context.Background(), "e1@acme.io", "Acme", "h1@acme.io")
	require.NoError(t, err)
	assert.Equal(t, 0, f.user(t, "h1@acme.io").CurrentEmployees)

	err = f.svc.RemoveAffiliation(context.Background(), "e1@acme.io", "Acme", "h1@acme.io")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	err = f.svc.RemoveAffiliation(context.Background(), "e1@acme.io", "", "h1@acme.io")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	// The freed slot admits a different employee.
	next := f.submit(t, asset.ID, "e2@acme.io", "h1@acme.io")
	_, err = approve(t, f, next.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.user(t, "h1@acme.io").CurrentEmployees)
	assert.Contains(t, f.events.list(), events.EventAffiliationRemoved)
}

func TestRemoveAffiliation_FloorsAtZero(t *testing.T) {
	f := newWorkflowFixture(t)
	f.seedHR(t, "h1@acme.io", 5, 0)
	require.NoError(t, f.store.Affiliations().Create(context.Background(), &domain.Affiliation{
		EmployeeEmail: "e1@acme.io",
		HREmail:       "h1@acme.io",
		CompanyName:   "Acme",
		Status:        domain.AffiliationStatusActive,
	}))

	require.NoError(t, f.svc.RemoveAffiliation(context.Background(), "e1@acme.io", "Acme", "h1@acme.io"))
	assert.Equal(t, 0, f.user(t, "h1@acme.io").CurrentEmployees)
}

func TestListRequests(t *testing.T) {
	f := newWorkflowFixture(t)
	f.submit(t, "A1", "e1@acme.io", "h1@acme.io")
	f.submit(t, "A2", "e2@acme.io", "h1@acme.io")
	f.submit(t, "A3", "e1@acme.io", "h2@acme.io")

	hr := "h1@acme.io"
	list, err := f.svc.ListRequests(context.Background(), repository.RequestFilter{HREmail: &hr})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	requester := "e1@acme.io"
	list, err = f.svc.ListRequests(context.Background(), repository.RequestFilter{RequesterEmail: &requester})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	bad := domain.RequestStatus("bogus")
	_, err = f.svc.ListRequests(context.Background(), repository.RequestFilter{Status: &bad})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}
