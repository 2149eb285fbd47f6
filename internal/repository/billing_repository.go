package repository

import (
	"context"

	"github.com/assetflow/asset-service/internal/domain"
)

type packageRepository struct {
	db DBTX
}

// NewPackageRepository instantiates repository.
func NewPackageRepository(db DBTX) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) List(ctx context.Context) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx, `SELECT name, employee_limit, price, features FROM packages ORDER BY employee_limit ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Package
	for rows.Next() {
		var pkg domain.Package
		if err := rows.Scan(&pkg.Name, &pkg.EmployeeLimit, &pkg.Price, &pkg.Features); err != nil {
			return nil, err
		}
		result = append(result, pkg)
	}
	return result, rows.Err()
}

func (r *packageRepository) GetByName(ctx context.Context, name string) (*domain.Package, error) {
	var pkg domain.Package
	err := r.db.QueryRow(ctx,
		`SELECT name, employee_limit, price, features FROM packages WHERE name=$1`, name,
	).Scan(&pkg.Name, &pkg.EmployeeLimit, &pkg.Price, &pkg.Features)
	if err != nil {
		return nil, translate(err)
	}
	return &pkg, nil
}

type paymentRepository struct {
	db DBTX
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(db DBTX) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	const query = `
        INSERT INTO payments (transaction_id, hr_email, package_name, employee_limit, amount, status, payment_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	err := r.db.QueryRow(ctx, query,
		p.TransactionID,
		p.HREmail,
		p.PackageName,
		p.EmployeeLimit,
		p.Amount,
		p.Status,
		p.PaymentDate,
	).Scan(&p.ID)
	return translate(err)
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	const query = `
        SELECT id, transaction_id, hr_email, package_name, employee_limit, amount, status, payment_date
        FROM payments WHERE transaction_id=$1`
	var p domain.Payment
	err := r.db.QueryRow(ctx, query, transactionID).Scan(&p.ID, &p.TransactionID, &p.HREmail, &p.PackageName,
		&p.EmployeeLimit, &p.Amount, &p.Status, &p.PaymentDate)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *paymentRepository) ListByHR(ctx context.Context, hrEmail string) ([]domain.Payment, error) {
	const query = `
        SELECT id, transaction_id, hr_email, package_name, employee_limit, amount, status, payment_date
        FROM payments WHERE hr_email=$1 ORDER BY payment_date DESC`
	rows, err := r.db.Query(ctx, query, hrEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.HREmail, &p.PackageName,
			&p.EmployeeLimit, &p.Amount, &p.Status, &p.PaymentDate); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
