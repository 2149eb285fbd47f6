package dto

import (
	"time"

	"github.com/assetflow/asset-service/internal/domain"
)

// CreateRequestRequest payload for POST /requests.
type CreateRequestRequest struct {
	AssetID        string            `json:"assetId"`
	AssetName      string            `json:"assetName"`
	AssetType      *domain.AssetType `json:"assetType"`
	RequesterEmail string            `json:"requesterEmail"`
	RequesterName  *string           `json:"requesterName"`
	HREmail        string            `json:"hrEmail"`
	CompanyName    *string           `json:"companyName"`
	Note           *string           `json:"note"`
}

// UpdateRequestStatusRequest payload for PUT /requests/:id.
type UpdateRequestStatusRequest struct {
	RequestStatus domain.RequestStatus `json:"requestStatus"`
	ProcessedBy   *string              `json:"processedBy"`
}

// RequestResponse is the public view of a request.
type RequestResponse struct {
	ID             string               `json:"id"`
	AssetID        string               `json:"assetId"`
	AssetName      string               `json:"assetName"`
	AssetType      *domain.AssetType    `json:"assetType,omitempty"`
	RequesterEmail string               `json:"requesterEmail"`
	RequesterName  *string              `json:"requesterName,omitempty"`
	HREmail        string               `json:"hrEmail"`
	CompanyName    *string              `json:"companyName,omitempty"`
	Note           *string              `json:"note,omitempty"`
	RequestStatus  domain.RequestStatus `json:"requestStatus"`
	RequestDate    time.Time            `json:"requestDate"`
	ApprovalDate   *time.Time           `json:"approvalDate,omitempty"`
	ProcessedBy    *string              `json:"processedBy,omitempty"`
}

// NewRequestResponse maps a request.
func NewRequestResponse(r *domain.Request) RequestResponse {
	return RequestResponse{
		ID:             r.ID,
		AssetID:        r.AssetID,
		AssetName:      r.AssetName,
		AssetType:      r.AssetType,
		RequesterEmail: r.RequesterEmail,
		RequesterName:  r.RequesterName,
		HREmail:        r.HREmail,
		CompanyName:    r.CompanyName,
		Note:           r.Note,
		RequestStatus:  r.Status,
		RequestDate:    r.RequestDate,
		ApprovalDate:   r.ApprovalDate,
		ProcessedBy:    r.ProcessedBy,
	}
}

// AssignmentResponse is the public view of an assignment.
type AssignmentResponse struct {
	ID             string                  `json:"id"`
	RequestID      string                  `json:"requestId"`
	AssetID        string                  `json:"assetId"`
	AssetName      string                  `json:"assetName"`
	AssetType      *domain.AssetType       `json:"assetType,omitempty"`
	RequesterEmail string                  `json:"requesterEmail"`
	RequesterName  *string                 `json:"requesterName,omitempty"`
	HREmail        string                  `json:"hrEmail"`
	CompanyName    *string                 `json:"companyName,omitempty"`
	Status         domain.AssignmentStatus `json:"status"`
	AssignmentDate time.Time               `json:"assignmentDate"`
	ReturnDate     *time.Time              `json:"returnDate,omitempty"`
}

// NewAssignmentResponse maps an assignment.
func NewAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		RequestID:      a.RequestID,
		AssetID:        a.AssetID,
		AssetName:      a.AssetName,
		AssetType:      a.AssetType,
		RequesterEmail: a.RequesterEmail,
		RequesterName:  a.RequesterName,
		HREmail:        a.HREmail,
		CompanyName:    a.CompanyName,
		Status:         a.Status,
		AssignmentDate: a.AssignmentDate,
		ReturnDate:     a.ReturnDate,
	}
}

// RemoveAffiliationRequest payload for DELETE /employee-affiliation.
type RemoveAffiliationRequest struct {
	EmployeeEmail string `json:"employeeEmail"`
	CompanyName   string `json:"companyName"`
	HREmail       string `json:"hrEmail"`
}

// AffiliationResponse is the public view of an affiliation.
type AffiliationResponse struct {
	ID              string                   `json:"id"`
	EmployeeEmail   string                   `json:"employeeEmail"`
	EmployeeName    *string                  `json:"employeeName,omitempty"`
	HREmail         string                   `json:"hrEmail"`
	CompanyName     string                   `json:"companyName"`
	CompanyLogo     string                   `json:"companyLogo"`
	Status          domain.AffiliationStatus `json:"status"`
	AffiliationDate time.Time                `json:"affiliationDate"`
}

// NewAffiliationResponse maps an affiliation.
func NewAffiliationResponse(a *domain.Affiliation) AffiliationResponse {
	return AffiliationResponse{
		ID:              a.ID,
		EmployeeEmail:   a.EmployeeEmail,
		EmployeeName:    a.EmployeeName,
		HREmail:         a.HREmail,
		CompanyName:     a.CompanyName,
		CompanyLogo:     a.CompanyLogo,
		Status:          a.Status,
		AffiliationDate: a.AffiliationDate,
	}
}

// CompanyEmployeeResponse joins an affiliation with the employee profile.
type CompanyEmployeeResponse struct {
	AffiliationResponse
	PhotoURL *string `json:"photoURL,omitempty"`
}
