// Package memory implements repository.Store in process memory. It backs
// local runs without a database and the service tests. Every transaction
// holds a single store-wide lock and works on a copy of the data, which is
// swapped in only when the transaction succeeds.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/repository"
)

type state struct {
	users        map[string]domain.User
	assets       map[string]domain.Asset
	requests     map[string]domain.Request
	affiliations map[string]domain.Affiliation
	assignments  map[string]domain.Assignment
	packages     map[string]domain.Package
	payments     map[string]domain.Payment
}

func newState() *state {
	return &state{
		users:        map[string]domain.User{},
		assets:       map[string]domain.Asset{},
		requests:     map[string]domain.Request{},
		affiliations: map[string]domain.Affiliation{},
		assignments:  map[string]domain.Assignment{},
		packages:     map[string]domain.Package{},
		payments:     map[string]domain.Payment{},
	}
}

func (s *state) clone() *state {
	return &state{
		users:        maps.Clone(s.users),
		assets:       maps.Clone(s.assets),
		requests:     maps.Clone(s.requests),
		affiliations: maps.Clone(s.affiliations),
		assignments:  maps.Clone(s.assignments),
		packages:     maps.Clone(s.packages),
		payments:     maps.Clone(s.payments),
	}
}

// DefaultPackages mirrors the rows seeded by the SQL migrations.
func DefaultPackages() []domain.Package {
	return []domain.Package{
		{Name: "basic", EmployeeLimit: 5, Price: 5, Features: []string{"Asset Tracking", "Employee Management", "Basic Support"}},
		{Name: "standard", EmployeeLimit: 10, Price: 8, Features: []string{"All Basic features", "Advanced Analytics", "Priority Support"}},
		{Name: "premium", EmployeeLimit: 20, Price: 15, Features: []string{"All Standard features", "Custom Branding", "24/7 Support"}},
	}
}

type root struct {
	mu        sync.Mutex
	committed *state
}

// Store is an in-memory repository.Store.
type Store struct {
	root    *root
	working *state
}

// NewStore returns an empty store seeded with the default packages.
func NewStore() *Store {
	st := newState()
	for _, pkg := range DefaultPackages() {
		st.packages[pkg.Name] = pkg
	}
	return &Store{root: &root{committed: st}}
}

// do runs fn against the working copy inside a transaction, or against the
// committed data under the store lock otherwise.
func (s *Store) do(fn func(st *state) error) error {
	if s.working != nil {
		return fn(s.working)
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return fn(s.root.committed)
}

// WithinTx implements repository.Store.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.working != nil {
		return fn(s)
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &Store{root: s.root, working: s.root.committed.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.root.committed = tx.working
	return nil
}

func (s *Store) Users() repository.UserRepository               { return userRepo{s} }
func (s *Store) Assets() repository.AssetRepository             { return assetRepo{s} }
func (s *Store) Requests() repository.RequestRepository         { return requestRepo{s} }
func (s *Store) Affiliations() repository.AffiliationRepository { return affiliationRepo{s} }
func (s *Store) Assignments() repository.AssignmentRepository   { return assignmentRepo{s} }
func (s *Store) Packages() repository.PackageRepository         { return packageRepo{s} }
func (s *Store) Payments() repository.PaymentRepository         { return paymentRepo{s} }

func page[T any](items []T, limit, offset int) []T {
	limit, offset = repository.NormalizePage(limit, offset)
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
