package dto

import (
	"time"

	"github.com/assetflow/asset-service/internal/domain"
)

// PackageResponse is the public view of a capacity tier.
type PackageResponse struct {
	Name          string   `json:"name"`
	EmployeeLimit int      `json:"employeeLimit"`
	Price         int64    `json:"price"`
	Features      []string `json:"features"`
}

// NewPackageResponse maps a package.
func NewPackageResponse(p *domain.Package) PackageResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PackageResponse{Name: p.Name, EmployeeLimit: p.EmployeeLimit, Price: p.Price, Features: features}
}

// PaymentResponse is the public view of a payment.
type PaymentResponse struct {
	ID            string               `json:"id"`
	TransactionID string               `json:"transactionId"`
	HREmail       string               `json:"hrEmail"`
	PackageName   string               `json:"packageName"`
	EmployeeLimit int                  `json:"employeeLimit"`
	Amount        int64                `json:"amount"`
	Status        domain.PaymentStatus `json:"status"`
	PaymentDate   time.Time            `json:"paymentDate"`
}

// NewPaymentResponse maps a payment.
func NewPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		HREmail:       p.HREmail,
		PackageName:   p.PackageName,
		EmployeeLimit: p.EmployeeLimit,
		Amount:        p.Amount,
		Status:        p.Status,
		PaymentDate:   p.PaymentDate,
	}
}
