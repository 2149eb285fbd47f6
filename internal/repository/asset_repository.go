package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/assetflow/asset-service/internal/domain"
)

type assetRepository struct {
	db DBTX
}

// NewAssetRepository instantiates repository.
func NewAssetRepository(db DBTX) AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `id, name, type, image, company_name, company_logo, product_quantity,
               available_quantity, hr_email, date_added, updated_at`

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (name, type, image, company_name, company_logo, product_quantity, available_quantity, hr_email)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, date_added, updated_at`
	err := r.db.QueryRow(ctx, query,
		asset.Name,
		asset.Type,
		asset.Image,
		asset.CompanyName,
		asset.CompanyLogo,
		asset.ProductQuantity,
		asset.AvailableQuantity,
		asset.HREmail,
	).Scan(&asset.ID, &asset.DateAdded, &asset.UpdatedAt)
	return translate(err)
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	rows, err := r.db.Query(ctx, `SELECT `+assetColumns+` FROM assets WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	assets, err := scanAssets(rows)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrNotFound
	}
	return &assets[0], nil
}

func (r *assetRepository) List(ctx context.Context, filter AssetFilter) ([]domain.Asset, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.HREmail != nil {
		args = append(args, *filter.HREmail)
		clauses = append(clauses, fmt.Sprintf("hr_email=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM assets WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := NormalizePage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE %s ORDER BY date_added DESC LIMIT %d OFFSET %d`,
		assetColumns, where, limit, offset)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	assets, err := scanAssets(rows)
	if err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	const query = `
        UPDATE assets SET name=$1, type=$2, image=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, asset.Name, asset.Type, asset.Image, asset.ID).Scan(&asset.UpdatedAt)
	return translate(err)
}

func (r *assetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assetRepository) DecrementAvailable(ctx context.Context, id string) (bool, error) {
	const query = `
        UPDATE assets SET available_quantity = available_quantity - 1, updated_at=NOW()
        WHERE id=$1 AND available_quantity > 0`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *assetRepository) IncrementAvailable(ctx context.Context, id string) (bool, error) {
	const query = `
        UPDATE assets SET available_quantity = available_quantity + 1, updated_at=NOW()
        WHERE id=$1 AND available_quantity < product_quantity`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func scanAssets(rows pgx.Rows) ([]domain.Asset, error) {
	var result []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Name,
			&asset.Type,
			&asset.Image,
			&asset.CompanyName,
			&asset.CompanyLogo,
			&asset.ProductQuantity,
			&asset.AvailableQuantity,
			&asset.HREmail,
			&asset.DateAdded,
			&asset.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}
