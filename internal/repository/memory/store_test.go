package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/repository"
)

func seedHR(t *testing.T, s *Store, email string, limit int) {
	t.Helper()
	require.NoError(t, s.Users().Create(context.Background(), &domain.User{
		Email:        email,
		Name:         "HR",
		Role:         domain.RoleHR,
		PackageLimit: limit,
		Subscription: domain.DefaultSubscription,
	}))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedHR(t, s, "hr@acme.io", 2)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx repository.Store) error {
		ok, err := tx.Users().IncrementEmployees(ctx, "hr@acme.io")
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	u, err := s.Users().GetByEmail(ctx, "hr@acme.io")
	require.NoError(t, err)
	assert.Equal(t, 0, u.CurrentEmployees)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedHR(t, s, "hr@acme.io", 2)

	err := s.WithinTx(ctx, func(tx repository.Store) error {
		_, err := tx.Users().IncrementEmployees(ctx, "hr@acme.io")
		return err
	})
	require.NoError(t, err)

	u, err := s.Users().GetByEmail(ctx, "hr@acme.io")
	require.NoError(t, err)
	assert.Equal(t, 1, u.CurrentEmployees)
}

func TestIncrementEmployees_RespectsLimitUnderContention(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedHR(t, s, "hr@acme.io", 3)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Users().IncrementEmployees(ctx, "hr@acme.io")
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	u, _ := s.Users().GetByEmail(ctx, "hr@acme.io")
	assert.Equal(t, 3, u.CurrentEmployees)
}

func TestAssetCounters_StayInBounds(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	asset := &domain.Asset{Name: "Laptop", Type: domain.AssetTypeReturnable, ProductQuantity: 1, AvailableQuantity: 1, HREmail: "hr@acme.io"}
	require.NoError(t, s.Assets().Create(ctx, asset))

	ok, err := s.Assets().IncrementAvailable(ctx, asset.ID)
	require.NoError(t, err)
	assert.False(t, ok, "cannot exceed product quantity")

	ok, _ = s.Assets().DecrementAvailable(ctx, asset.ID)
	assert.True(t, ok)
	ok, _ = s.Assets().DecrementAvailable(ctx, asset.ID)
	assert.False(t, ok, "cannot go negative")

	got, err := s.Assets().GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableQuantity)
}

func TestRequests_OnePendingPerAssetAndRequester(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	first := &domain.Request{AssetID: "A1", AssetName: "Laptop", RequesterEmail: "e1@acme.io", HREmail: "hr@acme.io", Status: domain.RequestStatusPending, RequestDate: time.Now()}
	require.NoError(t, s.Requests().Create(ctx, first))

	dup := *first
	dup.ID = ""
	assert.ErrorIs(t, s.Requests().Create(ctx, &dup), repository.ErrDuplicate)

	ok, err := s.Requests().Decide(ctx, first.ID, domain.RequestStatusRejected, nil, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Requests().Decide(ctx, first.ID, domain.RequestStatusApproved, nil, time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "terminal request cannot be decided again")

	assert.NoError(t, s.Requests().Create(ctx, &dup), "new pending request allowed once the first is decided")
}

func TestAffiliations_RemoveAndReaffiliate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	aff := &domain.Affiliation{EmployeeEmail: "e1@acme.io", HREmail: "hr@acme.io", CompanyName: "Acme", Status: domain.AffiliationStatusActive, AffiliationDate: time.Now()}
	require.NoError(t, s.Affiliations().Create(ctx, aff))

	again := *aff
	assert.ErrorIs(t, s.Affiliations().Create(ctx, &again), repository.ErrDuplicate)

	removed, err := s.Affiliations().Remove(ctx, "e1@acme.io", "Other Co", "hr@acme.io", time.Now())
	require.NoError(t, err)
	assert.False(t, removed, "company name must match")

	removed, err = s.Affiliations().Remove(ctx, "e1@acme.io", "Acme", "hr@acme.io", time.Now())
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = s.Affiliations().GetActive(ctx, "e1@acme.io", "hr@acme.io")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, s.Affiliations().Create(ctx, &again))
}

func TestPackagesSeeded(t *testing.T) {
	s := NewStore()
	pkgs, err := s.Packages().List(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 3)
	assert.Equal(t, "basic", pkgs[0].Name)
	assert.Equal(t, 20, pkgs[2].EmployeeLimit)
}
