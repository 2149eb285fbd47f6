package domain

import "time"

// AffiliationStatus enumerates affiliation states.
type AffiliationStatus string

const (
	AffiliationStatusActive  AffiliationStatus = "active"
	AffiliationStatusRemoved AffiliationStatus = "removed"
)

// Affiliation links an employee to the HR account of one company.
// CompanyName and CompanyLogo are denormalized copies; CompanyLogo is ""
// when neither the asset nor the HR profile carries one.
type Affiliation struct {
	ID              string
	EmployeeEmail   string
	EmployeeName    *string
	HREmail         string
	CompanyName     string
	CompanyLogo     string
	Status          AffiliationStatus
	AffiliationDate time.Time
	RemovedAt       *time.Time
}
