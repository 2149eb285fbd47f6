package domain

import "time"

// RequestStatus enumerates request lifecycle states.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsDecision reports whether s is a valid outcome for a pending request.
func (s RequestStatus) IsDecision() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Request is an employee's ask for one unit of an asset.
type Request struct {
	ID             string
	AssetID        string
	AssetName      string
	AssetType      *AssetType
	RequesterEmail string
	RequesterName  *string
	HREmail        string
	CompanyName    *string
	Note           *string
	Status         RequestStatus
	RequestDate    time.Time
	ApprovalDate   *time.Time
	ProcessedBy    *string
}

// IsPending reports whether the request can still be decided.
func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}
