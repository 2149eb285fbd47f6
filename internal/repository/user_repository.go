package repository

import (
	"context"

	"github.com/assetflow/asset-service/internal/domain"
)

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `email, name, role, password_hash, company_name, company_logo, photo_url,
        subscription, package_limit, current_employees, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, name, role, password_hash, company_name, company_logo, photo_url,
            subscription, package_limit, current_employees)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.Role,
		user.PasswordHash,
		user.CompanyName,
		user.CompanyLogo,
		user.PhotoURL,
		user.Subscription,
		user.PackageLimit,
		user.CurrentEmployees,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return translate(err)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByEmailForUpdate(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1 FOR UPDATE`, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.QueryRow(ctx, query, email).Scan(
		&user.Email,
		&user.Name,
		&user.Role,
		&user.PasswordHash,
		&user.CompanyName,
		&user.CompanyLogo,
		&user.PhotoURL,
		&user.Subscription,
		&user.PackageLimit,
		&user.CurrentEmployees,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) ListByEmails(ctx context.Context, emails []string) ([]domain.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE email = ANY($1) ORDER BY name ASC`, emails)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.Email,
			&user.Name,
			&user.Role,
			&user.PasswordHash,
			&user.CompanyName,
			&user.CompanyLogo,
			&user.PhotoURL,
			&user.Subscription,
			&user.PackageLimit,
			&user.CurrentEmployees,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) UpdateProfile(ctx context.Context, email, name string, photoURL *string) error {
	const query = `
        UPDATE users SET name=$1, photo_url=COALESCE($2, photo_url), updated_at=NOW()
        WHERE email=$3`
	cmd, err := r.db.Exec(ctx, query, name, photoURL, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) IncrementEmployees(ctx context.Context, email string) (bool, error) {
	const query = `
        UPDATE users SET current_employees = current_employees + 1, updated_at=NOW()
        WHERE email=$1 AND current_employees < package_limit`
	cmd, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *userRepository) DecrementEmployees(ctx context.Context, email string) error {
	const query = `
        UPDATE users SET current_employees = GREATEST(current_employees - 1, 0), updated_at=NOW()
        WHERE email=$1`
	cmd, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) UpgradePackage(ctx context.Context, email, subscription string, limit int) error {
	const query = `
        UPDATE users SET subscription=$1, package_limit=$2, updated_at=NOW()
        WHERE email=$3 AND role='hr'`
	cmd, err := r.db.Exec(ctx, query, subscription, limit, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
