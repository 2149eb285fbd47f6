package domain

import "time"

// AssetType distinguishes assets that come back from those that are consumed.
type AssetType string

const (
	AssetTypeReturnable    AssetType = "returnable"
	AssetTypeNonReturnable AssetType = "non-returnable"
)

// Asset is a company-owned item with a fixed total quantity.
type Asset struct {
	ID                string
	Name              string
	Type              AssetType
	Image             *string
	CompanyName       *string
	CompanyLogo       *string
	ProductQuantity   int
	AvailableQuantity int
	HREmail           string
	DateAdded         time.Time
	UpdatedAt         time.Time
}

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	return t == AssetTypeReturnable || t == AssetTypeNonReturnable
}

// OwnedBy reports whether the asset belongs to the given HR account.
func (a *Asset) OwnedBy(hrEmail string) bool {
	return a != nil && a.HREmail == hrEmail
}
