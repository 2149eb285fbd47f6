package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/assetflow/asset-service/internal/domain"
)

type affiliationRepository struct {
	db DBTX
}

// NewAffiliationRepository instantiates repository.
func NewAffiliationRepository(db DBTX) AffiliationRepository {
	return &affiliationRepository{db: db}
}

const affiliationColumns = `id, employee_email, employee_name, hr_email, company_name, company_logo,
               status, affiliation_date, removed_at`

// Only one active row per pair is allowed by affiliations_one_active_idx.
func (r *affiliationRepository) Create(ctx context.Context, aff *domain.Affiliation) error {
	const query = `
        INSERT INTO affiliations (employee_email, employee_name, hr_email, company_name, company_logo, status, affiliation_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	err := r.db.QueryRow(ctx, query,
		aff.EmployeeEmail,
		aff.EmployeeName,
		aff.HREmail,
		aff.CompanyName,
		aff.CompanyLogo,
		aff.Status,
		aff.AffiliationDate,
	).Scan(&aff.ID)
	return translate(err)
}

func (r *affiliationRepository) GetActive(ctx context.Context, employeeEmail, hrEmail string) (*domain.Affiliation, error) {
	const query = `SELECT ` + affiliationColumns + ` FROM affiliations
        WHERE employee_email=$1 AND hr_email=$2 AND status='active'`
	rows, err := r.db.Query(ctx, query, employeeEmail, hrEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	affs, err := scanAffiliations(rows)
	if err != nil {
		return nil, err
	}
	if len(affs) == 0 {
		return nil, ErrNotFound
	}
	return &affs[0], nil
}

func (r *affiliationRepository) Remove(ctx context.Context, employeeEmail, companyName, hrEmail string, at time.Time) (bool, error) {
	const query = `
        UPDATE affiliations SET status='removed', removed_at=$1
        WHERE employee_email=$2 AND company_name=$3 AND hr_email=$4 AND status='active'`
	cmd, err := r.db.Exec(ctx, query, at, employeeEmail, companyName, hrEmail)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *affiliationRepository) ListActiveByEmployee(ctx context.Context, employeeEmail string) ([]domain.Affiliation, error) {
	const query = `SELECT ` + affiliationColumns + ` FROM affiliations
        WHERE employee_email=$1 AND status='active' ORDER BY affiliation_date ASC`
	rows, err := r.db.Query(ctx, query, employeeEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAffiliations(rows)
}

func (r *affiliationRepository) ListActiveByHR(ctx context.Context, hrEmail string) ([]domain.Affiliation, error) {
	const query = `SELECT ` + affiliationColumns + ` FROM affiliations
        WHERE hr_email=$1 AND status='active' ORDER BY affiliation_date ASC`
	rows, err := r.db.Query(ctx, query, hrEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAffiliations(rows)
}

func scanAffiliations(rows pgx.Rows) ([]domain.Affiliation, error) {
	var result []domain.Affiliation
	for rows.Next() {
		var aff domain.Affiliation
		if err := rows.Scan(
			&aff.ID,
			&aff.EmployeeEmail,
			&aff.EmployeeName,
			&aff.HREmail,
			&aff.CompanyName,
			&aff.CompanyLogo,
			&aff.Status,
			&aff.AffiliationDate,
			&aff.RemovedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, aff)
	}
	return result, rows.Err()
}
