package events

import (
	"time"

	"github.com/assetflow/asset-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestSubmitted   EventType = "request_submitted"
	EventRequestApproved    EventType = "request_approved"
	EventRequestRejected    EventType = "request_rejected"
	EventAssetReturned      EventType = "asset_returned"
	EventAffiliationRemoved EventType = "affiliation_removed"
	EventPackageUpgraded    EventType = "package_upgraded"
)

// AllEventTypes lists every type the services publish.
func AllEventTypes() []EventType {
	return []EventType{
		EventRequestSubmitted,
		EventRequestApproved,
		EventRequestRejected,
		EventAssetReturned,
		EventAffiliationRemoved,
		EventPackageUpgraded,
	}
}

// Actor identifies who caused an event.
type Actor struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services after commit.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// RequestSubmittedPayload payload.
type RequestSubmittedPayload struct {
	AssetID        string `json:"asset_id"`
	AssetName      string `json:"asset_name"`
	RequesterEmail string `json:"requester_email"`
	HREmail        string `json:"hr_email"`
	CompanyName    string `json:"company_name"`
}

// RequestDecidedPayload is shared by approved and rejected events.
type RequestDecidedPayload struct {
	AssetID        string               `json:"asset_id"`
	RequesterEmail string               `json:"requester_email"`
	HREmail        string               `json:"hr_email"`
	Status         domain.RequestStatus `json:"status"`
	AssignmentID   *string              `json:"assignment_id,omitempty"`
	AffiliationID  *string              `json:"affiliation_id,omitempty"`
}

// AssetReturnedPayload payload.
type AssetReturnedPayload struct {
	AssetID        string `json:"asset_id"`
	RequesterEmail string `json:"requester_email"`
	HREmail        string `json:"hr_email"`
}

// AffiliationRemovedPayload payload.
type AffiliationRemovedPayload struct {
	EmployeeEmail string `json:"employee_email"`
	CompanyName   string `json:"company_name"`
	HREmail       string `json:"hr_email"`
}

// PackageUpgradedPayload payload.
type PackageUpgradedPayload struct {
	HREmail       string `json:"hr_email"`
	PackageName   string `json:"package_name"`
	EmployeeLimit int    `json:"employee_limit"`
	TransactionID string `json:"transaction_id"`
}
