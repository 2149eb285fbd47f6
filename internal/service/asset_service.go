package service

import (
	"context"
	"errors"
	"strings"

	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/repository"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

// AssetService manages the HR asset catalog.
type AssetService struct {
	assets repository.AssetRepository
}

// NewAssetService constructs the service.
func NewAssetService(assets repository.AssetRepository) *AssetService {
	return &AssetService{assets: assets}
}

// AssetCreateInput describes a new catalog entry.
type AssetCreateInput struct {
	Name            string
	Type            domain.AssetType
	Image           *string
	CompanyLogo     *string
	ProductQuantity int
}

// AssetPatch lists the mutable asset fields. Quantities are not editable.
type AssetPatch struct {
	Name  *string
	Type  *domain.AssetType
	Image *string
}

// Create adds an asset owned by hr with all units available.
func (s *AssetService) Create(ctx context.Context, hr *domain.User, input AssetCreateInput) (*domain.Asset, error) {
	if !hr.IsHR() {
		return nil, apperrors.NewForbidden("hr role required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("asset name is required", nil)
	}
	if input.ProductQuantity <= 0 {
		return nil, apperrors.NewValidationError("productQuantity must be positive", map[string]any{"productQuantity": input.ProductQuantity})
	}
	assetType := input.Type
	if assetType == "" {
		assetType = domain.AssetTypeReturnable
	}
	if !assetType.Valid() {
		return nil, apperrors.NewValidationError("invalid asset type", map[string]any{"type": assetType})
	}

	logo := hr.CompanyLogo
	if input.CompanyLogo != nil && strings.TrimSpace(*input.CompanyLogo) != "" {
		logo = input.CompanyLogo
	}

	asset := &domain.Asset{
		Name:              name,
		Type:              assetType,
		Image:             input.Image,
		CompanyName:       hr.CompanyName,
		CompanyLogo:       logo,
		ProductQuantity:   input.ProductQuantity,
		AvailableQuantity: input.ProductQuantity,
		HREmail:           hr.Email,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// List returns a page of assets and the total match count.
func (s *AssetService) List(ctx context.Context, filter repository.AssetFilter) ([]domain.Asset, int, error) {
	filter.Limit, filter.Offset = repository.NormalizePage(filter.Limit, filter.Offset)
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) == "" {
		filter.SearchTerm = nil
	}
	return s.assets.List(ctx, filter)
}

// Get fetches one asset.
func (s *AssetService) Get(ctx context.Context, id string) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "asset", map[string]any{"id": id})
	}
	return asset, nil
}

// Update applies patch to an asset owned by hrEmail.
func (s *AssetService) Update(ctx context.Context, hrEmail, id string, patch AssetPatch) (*domain.Asset, error) {
	asset, err := s.owned(ctx, hrEmail, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("asset name is required", nil)
		}
		asset.Name = name
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, apperrors.NewValidationError("invalid asset type", map[string]any{"type": *patch.Type})
		}
		asset.Type = *patch.Type
	}
	if patch.Image != nil {
		asset.Image = patch.Image
	}

	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, notFoundOr(err, "asset", map[string]any{"id": id})
	}
	return asset, nil
}

// Delete removes an asset owned by hrEmail.
func (s *AssetService) Delete(ctx context.Context, hrEmail, id string) error {
	if _, err := s.owned(ctx, hrEmail, id); err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		return notFoundOr(err, "asset", map[string]any{"id": id})
	}
	return nil
}

func (s *AssetService) owned(ctx context.Context, hrEmail, id string) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"id": id})
		}
		return nil, err
	}
	if !asset.OwnedBy(hrEmail) {
		return nil, apperrors.NewForbidden("asset belongs to another company")
	}
	return asset, nil
}
