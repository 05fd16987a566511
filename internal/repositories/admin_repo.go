package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/fuelease/fuelease/internal/database"
	"github.com/fuelease/fuelease/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AdminRepository struct {
	db *database.DB
	principalStore
}

func NewAdminRepository(db *database.DB) *AdminRepository {
	return &AdminRepository{
		db:             db,
		principalStore: principalStore{db: db, table: "admins", role: models.RoleAdmin},
	}
}

// adminColumns excludes password and OTP material; those only travel
// through the principal projection.
const adminColumns = `id, full_name, email, nid_number, nid_image, profile_image, age, phone_no, status, created_at, updated_at`

func scanAdminRow(scanner rowScanner) (*models.Admin, error) {
	var a models.Admin
	err := scanner.Scan(
		&a.ID, &a.FullName, &a.Email, &a.NIDNumber, &a.NIDImage,
		&a.ProfileImage, &a.Age, &a.PhoneNo, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &a, nil
}

func scanAdminRows(rows pgx.Rows) ([]*models.Admin, error) {
	defer rows.Close()

	admins := make([]*models.Admin, 0)
	for rows.Next() {
		admin, err := scanAdminRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return admins, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE id = $1`, adminColumns)
	return scanAdminRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE email = $1`, adminColumns)
	return scanAdminRow(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *AdminRepository) List(ctx context.Context, limit, offset int) ([]*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins ORDER BY created_at DESC LIMIT $1 OFFSET $2`, adminColumns)

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}

	return scanAdminRows(rows)
}

// FindConflicting returns an existing admin sharing the email, NID number
// or phone number, or ErrNotFound when all three are free.
func (r *AdminRepository) FindConflicting(ctx context.Context, email, nidNumber, phoneNo string) (*models.Admin, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM admins
		WHERE email = $1 OR nid_number = $2 OR phone_no = $3
		LIMIT 1
	`, adminColumns)
	return scanAdminRow(r.db.Pool.QueryRow(ctx, query, email, nidNumber, phoneNo))
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin, passwordHash string) (*models.Admin, error) {
	admin.ID = uuid.New().String()
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	if admin.Status == "" {
		admin.Status = "active"
	}

	query := fmt.Sprintf(`
		INSERT INTO admins (id, full_name, email, password_hash, nid_number, nid_image, profile_image, age, phone_no, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`, adminColumns)

	return scanAdminRow(r.db.Pool.QueryRow(ctx, query,
		admin.ID, admin.FullName, admin.Email, passwordHash,
		admin.NIDNumber, admin.NIDImage, admin.ProfileImage,
		admin.Age, admin.PhoneNo, admin.Status,
		admin.CreatedAt, admin.UpdatedAt,
	))
}

func (r *AdminRepository) Update(ctx context.Context, id string, admin *models.Admin) (*models.Admin, error) {
	query := fmt.Sprintf(`
		UPDATE admins
		SET full_name = $1, age = $2, phone_no = $3, status = $4, updated_at = now()
		WHERE id = $5
		RETURNING %s
	`, adminColumns)

	return scanAdminRow(r.db.Pool.QueryRow(ctx, query,
		admin.FullName, admin.Age, admin.PhoneNo, admin.Status, id,
	))
}

func (r *AdminRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Admin, error) {
	query := fmt.Sprintf(`
		UPDATE admins SET status = $1, updated_at = now() WHERE id = $2
		RETURNING %s
	`, adminColumns)
	return scanAdminRow(r.db.Pool.QueryRow(ctx, query, status, id))
}

func (r *AdminRepository) ListByStatus(ctx context.Context, status string) ([]*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE status = $1 ORDER BY created_at DESC`, adminColumns)

	rows, err := r.db.Pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins by status: %w", err)
	}

	return scanAdminRows(rows)
}

func (r *AdminRepository) ListOlderThan(ctx context.Context, age int) ([]*models.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE age > $1 ORDER BY age DESC`, adminColumns)

	rows, err := r.db.Pool.Query(ctx, query, age)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins by age: %w", err)
	}

	return scanAdminRows(rows)
}

func (r *AdminRepository) UpdateProfileImage(ctx context.Context, id, path string) (*models.Admin, error) {
	query := fmt.Sprintf(`
		UPDATE admins SET profile_image = $1, updated_at = now() WHERE id = $2
		RETURNING %s
	`, adminColumns)
	return scanAdminRow(r.db.Pool.QueryRow(ctx, query, path, id))
}

func (r *AdminRepository) UpdateNIDImage(ctx context.Context, id, path string) (*models.Admin, error) {
	query := fmt.Sprintf(`
		UPDATE admins SET nid_image = $1, updated_at = now() WHERE id = $2
		RETURNING %s
	`, adminColumns)
	return scanAdminRow(r.db.Pool.QueryRow(ctx, query, path, id))
}

func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
