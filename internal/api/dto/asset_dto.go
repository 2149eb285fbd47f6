package dto

import (
	"time"

	"github.com/assetflow/asset-service/internal/domain"
)

// CreateAssetRequest payload for POST /assets.
type CreateAssetRequest struct {
	Name            string           `json:"name"`
	Type            domain.AssetType `json:"type"`
	Image           *string          `json:"image"`
	CompanyLogo     *string          `json:"companyLogo"`
	ProductQuantity int              `json:"productQuantity"`
}

// UpdateAssetRequest payload for PUT /assets/:id.
type UpdateAssetRequest struct {
	Name  *string           `json:"name"`
	Type  *domain.AssetType `json:"type"`
	Image *string           `json:"image"`
}

// AssetResponse is the public view of an asset.
type AssetResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Type              domain.AssetType `json:"type"`
	Image             *string          `json:"image,omitempty"`
	CompanyName       *string          `json:"companyName,omitempty"`
	CompanyLogo       *string          `json:"companyLogo,omitempty"`
	ProductQuantity   int              `json:"productQuantity"`
	AvailableQuantity int              `json:"availableQuantity"`
	HREmail           string           `json:"hrEmail"`
	DateAdded         time.Time        `json:"dateAdded"`
}

// NewAssetResponse maps an asset.
func NewAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:                a.ID,
		Name:              a.Name,
		Type:              a.Type,
		Image:             a.Image,
		CompanyName:       a.CompanyName,
		CompanyLogo:       a.CompanyLogo,
		ProductQuantity:   a.ProductQuantity,
		AvailableQuantity: a.AvailableQuantity,
		HREmail:           a.HREmail,
		DateAdded:         a.DateAdded,
	}
}

// PageMeta describes a paged listing.
type PageMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
