package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/assetflow/asset-service/internal/domain"
)

type requestRepository struct {
	db DBTX
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(db DBTX) RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, asset_id, asset_name, asset_type, requester_email, requester_name, hr_email,
               company_name, note, request_status, request_date, approval_date, processed_by`

// Uniqueness of pending requests is enforced by requests_one_pending_idx.
func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	const query = `
        INSERT INTO requests (asset_id, asset_name, asset_type, requester_email, requester_name, hr_email,
            company_name, note, request_status, request_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id`
	err := r.db.QueryRow(ctx, query,
		req.AssetID,
		req.AssetName,
		assetTypeArg(req.AssetType),
		req.RequesterEmail,
		req.RequesterName,
		req.HREmail,
		req.CompanyName,
		req.Note,
		req.Status,
		req.RequestDate,
	).Scan(&req.ID)
	return translate(err)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	return r.fetchSingle(ctx, `SELECT `+requestColumns+` FROM requests WHERE id=$1`, id)
}

func (r *requestRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Request, error) {
	return r.fetchSingle(ctx, `SELECT `+requestColumns+` FROM requests WHERE id=$1 FOR UPDATE`, id)
}

func (r *requestRepository) fetchSingle(ctx context.Context, query, id string) (*domain.Request, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reqs, err := scanRequests(rows)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, ErrNotFound
	}
	return &reqs[0], nil
}

func (r *requestRepository) HasPending(ctx context.Context, assetID, requesterEmail string) (bool, error) {
	const query = `
        SELECT EXISTS (SELECT 1 FROM requests
            WHERE asset_id=$1 AND requester_email=$2 AND request_status='pending')`
	var exists bool
	if err := r.db.QueryRow(ctx, query, assetID, requesterEmail).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *requestRepository) Decide(ctx context.Context, id string, status domain.RequestStatus, processedBy *string, at time.Time) (bool, error) {
	const query = `
        UPDATE requests SET request_status=$1, processed_by=$2, approval_date=$3
        WHERE id=$4 AND request_status='pending'`
	cmd, err := r.db.Exec(ctx, query, status, processedBy, at, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.HREmail != nil {
		args = append(args, *filter.HREmail)
		clauses = append(clauses, fmt.Sprintf("hr_email=$%d", len(args)))
	}
	if filter.RequesterEmail != nil {
		args = append(args, *filter.RequesterEmail)
		clauses = append(clauses, fmt.Sprintf("requester_email=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("request_status=$%d", len(args)))
	}

	limit, offset := NormalizePage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM requests WHERE %s ORDER BY request_date DESC LIMIT %d OFFSET %d`,
		requestColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		var (
			req       domain.Request
			assetType *string
		)
		if err := rows.Scan(
			&req.ID,
			&req.AssetID,
			&req.AssetName,
			&assetType,
			&req.RequesterEmail,
			&req.RequesterName,
			&req.HREmail,
			&req.CompanyName,
			&req.Note,
			&req.Status,
			&req.RequestDate,
			&req.ApprovalDate,
			&req.ProcessedBy,
		); err != nil {
			return nil, err
		}
		req.AssetType = assetTypeFrom[domain.AssetType](assetType)
		result = append(result, req)
	}
	return result, rows.Err()
}
