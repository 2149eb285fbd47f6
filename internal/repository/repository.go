package repository

import (
	"context"
	"errors"
	"time"

	"github.com/assetflow/asset-service/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness rule.
	ErrDuplicate = errors.New("duplicate record")
)

// Store groups the record stores and runs units of work across them.
type Store interface {
	Users() UserRepository
	Assets() AssetRepository
	Requests() RequestRepository
	Affiliations() AffiliationRepository
	Assignments() AssignmentRepository
	Packages() PackageRepository
	Payments() PaymentRepository

	// WithinTx runs fn against a transactional view of the store. All writes
	// made through tx commit together when fn returns nil and are discarded
	// otherwise.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

// UserRepository persists accounts and HR capacity counters.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByEmailForUpdate locks the row until the surrounding transaction ends.
	GetByEmailForUpdate(ctx context.Context, email string) (*domain.User, error)
	ListByEmails(ctx context.Context, emails []string) ([]domain.User, error)
	UpdateProfile(ctx context.Context, email, name string, photoURL *string) error
	// IncrementEmployees adds one employee only while below the package limit.
	IncrementEmployees(ctx context.Context, email string) (bool, error)
	// DecrementEmployees removes one employee, never going below zero.
	DecrementEmployees(ctx context.Context, email string) error
	UpgradePackage(ctx context.Context, email, subscription string, limit int) error
}

// AssetFilter narrows asset listings.
type AssetFilter struct {
	HREmail    *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// AssetRepository persists the asset catalog and its inventory counters.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	List(ctx context.Context, filter AssetFilter) ([]domain.Asset, int, error)
	Update(ctx context.Context, asset *domain.Asset) error
	Delete(ctx context.Context, id string) error
	// DecrementAvailable takes one unit only while any remain.
	DecrementAvailable(ctx context.Context, id string) (bool, error)
	// IncrementAvailable restores one unit only while below the total quantity.
	IncrementAvailable(ctx context.Context, id string) (bool, error)
}

// RequestFilter narrows request listings.
type RequestFilter struct {
	HREmail        *string
	RequesterEmail *string
	Status         *domain.RequestStatus
	Limit          int
	Offset         int
}

// RequestRepository is the request ledger.
type RequestRepository interface {
	// Create returns ErrDuplicate when a pending request already exists for
	// the same asset and requester.
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Request, error)
	HasPending(ctx context.Context, assetID, requesterEmail string) (bool, error)
	// Decide moves a pending request to status; false when it was not pending.
	Decide(ctx context.Context, id string, status domain.RequestStatus, processedBy *string, at time.Time) (bool, error)
	List(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
}

// AffiliationRepository persists employee to company links.
type AffiliationRepository interface {
	// Create returns ErrDuplicate when the pair already has an active link.
	Create(ctx context.Context, aff *domain.Affiliation) error
	GetActive(ctx context.Context, employeeEmail, hrEmail string) (*domain.Affiliation, error)
	// Remove marks the active link matching all keys as removed.
	Remove(ctx context.Context, employeeEmail, companyName, hrEmail string, at time.Time) (bool, error)
	ListActiveByEmployee(ctx context.Context, employeeEmail string) ([]domain.Affiliation, error)
	ListActiveByHR(ctx context.Context, hrEmail string) ([]domain.Affiliation, error)
}

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	RequesterEmail *string
	HREmail        *string
	Status         *domain.AssignmentStatus
	Limit          int
	Offset         int
}

// AssignmentRepository is the assignment ledger.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Assignment, error)
	// MarkReturned closes an assigned record; false when it was not assigned.
	MarkReturned(ctx context.Context, id string, at time.Time) (bool, error)
	List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error)
}

// PackageRepository lists capacity tiers.
type PackageRepository interface {
	List(ctx context.Context) ([]domain.Package, error)
	GetByName(ctx context.Context, name string) (*domain.Package, error)
}

// PaymentRepository records completed gateway transactions.
type PaymentRepository interface {
	// Create returns ErrDuplicate for a known transaction id.
	Create(ctx context.Context, payment *domain.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	ListByHR(ctx context.Context, hrEmail string) ([]domain.Payment, error)
}

// NormalizePage clamps paging input to sane bounds.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
