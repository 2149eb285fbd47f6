package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/assetflow/asset-service/internal/domain"
)

type assignmentRepository struct {
	db DBTX
}

// NewAssignmentRepository instantiates repository.
func NewAssignmentRepository(db DBTX) AssignmentRepository {
	return &assignmentRepository{db: db}
}

const assignmentColumns = `id, request_id, asset_id, asset_name, asset_type, requester_email, requester_name,
               hr_email, company_name, status, assignment_date, return_date`

func (r *assignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (request_id, asset_id, asset_name, asset_type, requester_email, requester_name,
            hr_email, company_name, status, assignment_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id`
	err := r.db.QueryRow(ctx, query,
		a.RequestID,
		a.AssetID,
		a.AssetName,
		assetTypeArg(a.AssetType),
		a.RequesterEmail,
		a.RequesterName,
		a.HREmail,
		a.CompanyName,
		a.Status,
		a.AssignmentDate,
	).Scan(&a.ID)
	return translate(err)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	return r.fetchSingle(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id=$1`, id)
}

func (r *assignmentRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Assignment, error) {
	return r.fetchSingle(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id=$1 FOR UPDATE`, id)
}

func (r *assignmentRepository) fetchSingle(ctx context.Context, query, id string) (*domain.Assignment, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := scanAssignments(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

func (r *assignmentRepository) MarkReturned(ctx context.Context, id string, at time.Time) (bool, error) {
	const query = `
        UPDATE assignments SET status='returned', return_date=$1
        WHERE id=$2 AND status='assigned'`
	cmd, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterEmail != nil {
		args = append(args, *filter.RequesterEmail)
		clauses = append(clauses, fmt.Sprintf("requester_email=$%d", len(args)))
	}
	if filter.HREmail != nil {
		args = append(args, *filter.HREmail)
		clauses = append(clauses, fmt.Sprintf("hr_email=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	limit, offset := NormalizePage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM assignments WHERE %s ORDER BY assignment_date DESC LIMIT %d OFFSET %d`,
		assignmentColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func scanAssignments(rows pgx.Rows) ([]domain.Assignment, error) {
	var result []domain.Assignment
	for rows.Next() {
		var (
			a         domain.Assignment
			assetType *string
		)
		if err := rows.Scan(
			&a.ID,
			&a.RequestID,
			&a.AssetID,
			&a.AssetName,
			&assetType,
			&a.RequesterEmail,
			&a.RequesterName,
			&a.HREmail,
			&a.CompanyName,
			&a.Status,
			&a.AssignmentDate,
			&a.ReturnDate,
		); err != nil {
			return nil, err
		}
		a.AssetType = assetTypeFrom[domain.AssetType](assetType)
		result = append(result, a)
	}
	return result, rows.Err()
}
