package domain

import "time"

// Package is a purchasable employee capacity tier.
type Package struct {
	Name          string
	EmployeeLimit int
	Price         int64
	Features      []string
}

// PaymentStatus enumerates gateway transaction states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Payment is a completed gateway transaction for a package upgrade.
type Payment struct {
	ID            string
	TransactionID string
	HREmail       string
	PackageName   string
	EmployeeLimit int
	Amount        int64
	Status        PaymentStatus
	PaymentDate   time.Time
}
