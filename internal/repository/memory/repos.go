package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/repository"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.users[user.Email]; ok {
			return repository.ErrDuplicate
		}
		now := time.Now()
		user.CreatedAt, user.UpdatedAt = now, now
		st.users[user.Email] = *user
		return nil
	})
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	var out *domain.User
	err := r.s.do(func(st *state) error {
		u, ok := st.users[email]
		if !ok {
			return repository.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

// The store lock already serializes transactions.
func (r userRepo) GetByEmailForUpdate(ctx context.Context, email string) (*domain.User, error) {
	return r.GetByEmail(ctx, email)
}

func (r userRepo) ListByEmails(_ context.Context, emails []string) ([]domain.User, error) {
	var out []domain.User
	err := r.s.do(func(st *state) error {
		for _, email := range emails {
			if u, ok := st.users[email]; ok {
				out = append(out, u)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.User) int { return cmp.Compare(a.Name, b.Name) })
	return out, err
}

func (r userRepo) UpdateProfile(_ context.Context, email, name string, photoURL *string) error {
	return r.s.do(func(st *state) error {
		u, ok := st.users[email]
		if !ok {
			return repository.ErrNotFound
		}
		u.Name = name
		if photoURL != nil {
			u.PhotoURL = photoURL
		}
		u.UpdatedAt = time.Now()
		st.users[email] = u
		return nil
	})
}

func (r userRepo) IncrementEmployees(_ context.Context, email string) (bool, error) {
	var ok bool
	err := r.s.do(func(st *state) error {
		u, found := st.users[email]
		if !found || u.CurrentEmployees >= u.PackageLimit {
			return nil
		}
		u.CurrentEmployees++
		u.UpdatedAt = time.Now()
		st.users[email] = u
		ok = true
		return nil
	})
	return ok, err
}

func (r userRepo) DecrementEmployees(_ context.Context, email string) error {
	return r.s.do(func(st *state) error {
		u, ok := st.users[email]
		if !ok {
			return repository.ErrNotFound
		}
		if u.CurrentEmployees > 0 {
			u.CurrentEmployees--
		}
		u.UpdatedAt = time.Now()
		st.users[email] = u
		return nil
	})
}

func (r userRepo) UpgradePackage(_ context.Context, email, subscription string, limit int) error {
	return r.s.do(func(st *state) error {
		u, ok := st.users[email]
		if !ok || u.Role != domain.RoleHR {
			return repository.ErrNotFound
		}
		u.Subscription = subscription
		u.PackageLimit = limit
		u.UpdatedAt = time.Now()
		st.users[email] = u
		return nil
	})
}

type assetRepo struct{ s *Store }

func (r assetRepo) Create(_ context.Context, asset *domain.Asset) error {
	return r.s.do(func(st *state) error {
		now := time.Now()
		asset.ID = uuid.NewString()
		asset.DateAdded, asset.UpdatedAt = now, now
		st.assets[asset.ID] = *asset
		return nil
	})
}

func (r assetRepo) GetByID(_ context.Context, id string) (*domain.Asset, error) {
	var out *domain.Asset
	err := r.s.do(func(st *state) error {
		a, ok := st.assets[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

func (r assetRepo) List(_ context.Context, filter repository.AssetFilter) ([]domain.Asset, int, error) {
	var all []domain.Asset
	err := r.s.do(func(st *state) error {
		for _, a := range st.assets {
			if filter.HREmail != nil && a.HREmail != *filter.HREmail {
				continue
			}
			if filter.SearchTerm != nil {
				term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
				if term != "" && !strings.Contains(strings.ToLower(a.Name), term) {
					continue
				}
			}
			all = append(all, a)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	slices.SortFunc(all, func(a, b domain.Asset) int { return b.DateAdded.Compare(a.DateAdded) })
	return page(all, filter.Limit, filter.Offset), len(all), nil
}

func (r assetRepo) Update(_ context.Context, asset *domain.Asset) error {
	return r.s.do(func(st *state) error {
		cur, ok := st.assets[asset.ID]
		if !ok {
			return repository.ErrNotFound
		}
		cur.Name = asset.Name
		cur.Type = asset.Type
		cur.Image = asset.Image
		cur.UpdatedAt = time.Now()
		st.assets[asset.ID] = cur
		asset.UpdatedAt = cur.UpdatedAt
		return nil
	})
}

func (r assetRepo) Delete(_ context.Context, id string) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.assets[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.assets, id)
		return nil
	})
}

func (r assetRepo) DecrementAvailable(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.do(func(st *state) error {
		a, found := st.assets[id]
		if !found || a.AvailableQuantity <= 0 {
			return nil
		}
		a.AvailableQuantity--
		a.UpdatedAt = time.Now()
		st.assets[id] = a
		ok = true
		return nil
	})
	return ok, err
}

func (r assetRepo) IncrementAvailable(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.do(func(st *state) error {
		a, found := st.assets[id]
		if !found || a.AvailableQuantity >= a.ProductQuantity {
			return nil
		}
		a.AvailableQuantity++
		a.UpdatedAt = time.Now()
		st.assets[id] = a
		ok = true
		return nil
	})
	return ok, err
}

type requestRepo struct{ s *Store }

func (r requestRepo) Create(_ context.Context, req *domain.Request) error {
	return r.s.do(func(st *state) error {
		if req.Status == domain.RequestStatusPending && hasPending(st, req.AssetID, req.RequesterEmail) {
			return repository.ErrDuplicate
		}
		req.ID = uuid.NewString()
		st.requests[req.ID] = *req
		return nil
	})
}

func hasPending(st *state, assetID, requesterEmail string) bool {
	for _, existing := range st.requests {
		if existing.AssetID == assetID && existing.RequesterEmail == requesterEmail && existing.IsPending() {
			return true
		}
	}
	return false
}

func (r requestRepo) GetByID(_ context.Context, id string) (*domain.Request, error) {
	var out *domain.Request
	err := r.s.do(func(st *state) error {
		req, ok := st.requests[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &req
		return nil
	})
	return out, err
}

func (r requestRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Request, error) {
	return r.GetByID(ctx, id)
}

func (r requestRepo) HasPending(_ context.Context, assetID, requesterEmail string) (bool, error) {
	var found bool
	err := r.s.do(func(st *state) error {
		found = hasPending(st, assetID, requesterEmail)
		return nil
	})
	return found, err
}

func (r requestRepo) Decide(_ context.Context, id string, status domain.RequestStatus, processedBy *string, at time.Time) (bool, error) {
	var ok bool
	err := r.s.do(func(st *state) error {
		req, found := st.requests[id]
		if !found || !req.IsPending() {
			return nil
		}
		req.Status = status
		req.ProcessedBy = processedBy
		req.ApprovalDate = &at
		st.requests[id] = req
		ok = true
		return nil
	})
	return ok, err
}

func (r requestRepo) List(_ context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	var all []domain.Request
	err := r.s.do(func(st *state) error {
		for _, req := range st.requests {
			if filter.HREmail != nil && req.HREmail != *filter.HREmail {
				continue
			}
			if filter.RequesterEmail != nil && req.RequesterEmail != *filter.RequesterEmail {
				continue
			}
			if filter.Status != nil && req.Status != *filter.Status {
				continue
			}
			all = append(all, req)
		}
		return nil
	})
	slices.SortFunc(all, func(a, b domain.Request) int { return b.RequestDate.Compare(a.RequestDate) })
	return page(all, filter.Limit, filter.Offset), err
}

type affiliationRepo struct{ s *Store }

func (r affiliationRepo) Create(_ context.Context, aff *domain.Affiliation) error {
	return r.s.do(func(st *state) error {
		if aff.Status == domain.AffiliationStatusActive {
			if _, ok := findActive(st, aff.EmployeeEmail, aff.HREmail); ok {
				return repository.ErrDuplicate
			}
		}
		aff.ID = uuid.NewString()
		st.affiliations[aff.ID] = *aff
		return nil
	})
}

func findActive(st *state, employeeEmail, hrEmail string) (domain.Affiliation, bool) {
	for _, aff := range st.affiliations {
		if aff.EmployeeEmail == employeeEmail && aff.HREmail == hrEmail && aff.Status == domain.AffiliationStatusActive {
			return aff, true
		}
	}
	return domain.Affiliation{}, false
}

func (r affiliationRepo) GetActive(_ context.Context, employeeEmail, hrEmail string) (*domain.Affiliation, error) {
	var out *domain.Affiliation
	err := r.s.do(func(st *state) error {
		aff, ok := findActive(st, employeeEmail, hrEmail)
		if !ok {
			return repository.ErrNotFound
		}
		out = &aff
		return nil
	})
	return out, err
}

func (r affiliationRepo) Remove(_ context.Context, employeeEmail, companyName, hrEmail string, at time.Time) (bool, error) {
	var removed bool
	err := r.s.do(func(st *state) error {
		aff, ok := findActive(st, employeeEmail, hrEmail)
		if !ok || aff.CompanyName != companyName {
			return nil
		}
		aff.Status = domain.AffiliationStatusRemoved
		aff.RemovedAt = &at
		st.affiliations[aff.ID] = aff
		removed = true
		return nil
	})
	return removed, err
}

func (r affiliationRepo) ListActiveByEmployee(_ context.Context, employeeEmail string) ([]domain.Affiliation, error) {
	return r.listActive(func(aff domain.Affiliation) bool { return aff.EmployeeEmail == employeeEmail })
}

func (r affiliationRepo) ListActiveByHR(_ context.Context, hrEmail string) ([]domain.Affiliation, error) {
	return r.listActive(func(aff domain.Affiliation) bool { return aff.HREmail == hrEmail })
}

func (r affiliationRepo) listActive(match func(domain.Affiliation) bool) ([]domain.Affiliation, error) {
	var out []domain.Affiliation
	err := r.s.do(func(st *state) error {
		for _, aff := range st.affiliations {
			if aff.Status == domain.AffiliationStatusActive && match(aff) {
				out = append(out, aff)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Affiliation) int { return a.AffiliationDate.Compare(b.AffiliationDate) })
	return out, err
}

type assignmentRepo struct{ s *Store }

func (r assignmentRepo) Create(_ context.Context, a *domain.Assignment) error {
	return r.s.do(func(st *state) error {
		for _, existing := range st.assignments {
			if existing.RequestID == a.RequestID {
				return repository.ErrDuplicate
			}
		}
		a.ID = uuid.NewString()
		st.assignments[a.ID] = *a
		return nil
	})
}

func (r assignmentRepo) GetByID(_ context.Context, id string) (*domain.Assignment, error) {
	var out *domain.Assignment
	err := r.s.do(func(st *state) error {
		a, ok := st.assignments[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

func (r assignmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Assignment, error) {
	return r.GetByID(ctx, id)
}

func (r assignmentRepo) MarkReturned(_ context.Context, id string, at time.Time) (bool, error) {
	var ok bool
	err := r.s.do(func(st *state) error {
		a, found := st.assignments[id]
		if !found || a.Status != domain.AssignmentStatusAssigned {
			return nil
		}
		a.Status = domain.AssignmentStatusReturned
		a.ReturnDate = &at
		st.assignments[id] = a
		ok = true
		return nil
	})
	return ok, err
}

func (r assignmentRepo) List(_ context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	var all []domain.Assignment
	err := r.s.do(func(st *state) error {
		for _, a := range st.assignments {
			if filter.RequesterEmail != nil && a.RequesterEmail != *filter.RequesterEmail {
				continue
			}
			if filter.HREmail != nil && a.HREmail != *filter.HREmail {
				continue
			}
			if filter.Status != nil && a.Status != *filter.Status {
				continue
			}
			all = append(all, a)
		}
		return nil
	})
	slices.SortFunc(all, func(a, b domain.Assignment) int { return b.AssignmentDate.Compare(a.AssignmentDate) })
	return page(all, filter.Limit, filter.Offset), err
}

type packageRepo struct{ s *Store }

func (r packageRepo) List(_ context.Context) ([]domain.Package, error) {
	var out []domain.Package
	err := r.s.do(func(st *state) error {
		for _, pkg := range st.packages {
			out = append(out, pkg)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Package) int { return cmp.Compare(a.EmployeeLimit, b.EmployeeLimit) })
	return out, err
}

func (r packageRepo) GetByName(_ context.Context, name string) (*domain.Package, error) {
	var out *domain.Package
	err := r.s.do(func(st *state) error {
		pkg, ok := st.packages[name]
		if !ok {
			return repository.ErrNotFound
		}
		out = &pkg
		return nil
	})
	return out, err
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) Create(_ context.Context, p *domain.Payment) error {
	return r.s.do(func(st *state) error {
		for _, existing := range st.payments {
			if existing.TransactionID == p.TransactionID {
				return repository.ErrDuplicate
			}
		}
		p.ID = uuid.NewString()
		st.payments[p.ID] = *p
		return nil
	})
}

func (r paymentRepo) GetByTransactionID(_ context.Context, transactionID string) (*domain.Payment, error) {
	var out *domain.Payment
	err := r.s.do(func(st *state) error {
		for _, p := range st.payments {
			if p.TransactionID == transactionID {
				out = &p
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r paymentRepo) ListByHR(_ context.Context, hrEmail string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.s.do(func(st *state) error {
		for _, p := range st.payments {
			if p.HREmail == hrEmail {
				out = append(out, p)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Payment) int { return b.PaymentDate.Compare(a.PaymentDate) })
	return out, err
}
