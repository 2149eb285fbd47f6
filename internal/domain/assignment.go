package domain

import "time"

// AssignmentStatus enumerates assignment states.
type AssignmentStatus string

const (
	AssignmentStatusAssigned AssignmentStatus = "assigned"
	AssignmentStatusReturned AssignmentStatus = "returned"
)

// Assignment records one unit of an asset checked out to an employee.
type Assignment struct {
	ID             string
	RequestID      string
	AssetID        string
	AssetName      string
	AssetType      *AssetType
	RequesterEmail string
	RequesterName  *string
	HREmail        string
	CompanyName    *string
	Status         AssignmentStatus
	AssignmentDate time.Time
	ReturnDate     *time.Time
}

// NewAssignmentFromRequest copies the request fields onto a fresh assignment.
func NewAssignmentFromRequest(req *Request, at time.Time) *Assignment {
	return &Assignment{
		RequestID:      req.ID,
		AssetID:        req.AssetID,
		AssetName:      req.AssetName,
		AssetType:      req.AssetType,
		RequesterEmail: req.RequesterEmail,
		RequesterName:  req.RequesterName,
		HREmail:        req.HREmail,
		CompanyName:    req.CompanyName,
		Status:         AssignmentStatusAssigned,
		AssignmentDate: at,
	}
}
