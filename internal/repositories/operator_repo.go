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

type OperatorRepository struct {
	db *database.DB
	principalStore
}

func NewOperatorRepository(db *database.DB) *OperatorRepository {
	return &OperatorRepository{
		db:             db,
		principalStore: principalStore{db: db, table: "operators", role: models.RoleOperator},
	}
}

const operatorColumns = `id, name, email, phone_no, joining_date, age, gender, address, last_login, profile_image, status, created_at, updated_at`

func scanOperatorRow(scanner rowScanner) (*models.Operator, error) {
	var o models.Operator
	err := scanner.Scan(
		&o.ID, &o.Name, &o.Email, &o.PhoneNo, &o.JoiningDate,
		&o.Age, &o.Gender, &o.Address, &o.LastLogin,
		&o.ProfileImage, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &o, nil
}

func scanOperatorRows(rows pgx.Rows) ([]*models.Operator, error) {
	defer rows.Close()

	operators := make([]*models.Operator, 0)
	for rows.Next() {
		operator, err := scanOperatorRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		operators = append(operators, operator)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return operators, nil
}

func (r *OperatorRepository) GetByID(ctx context.Context, id string) (*models.Operator, error) {
	query := fmt.Sprintf(`SELECT %s FROM operators WHERE id = $1`, operatorColumns)
	return scanOperatorRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *OperatorRepository) GetByEmail(ctx context.Context, email string) (*models.Operator, error) {
	query := fmt.Sprintf(`SELECT %s FROM operators WHERE email = $1`, operatorColumns)
	return scanOperatorRow(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *OperatorRepository) List(ctx context.Context, limit, offset int) ([]*models.Operator, error) {
	query := fmt.Sprintf(`SELECT %s FROM operators ORDER BY created_at DESC LIMIT $1 OFFSET $2`, operatorColumns)

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query operators: %w", err)
	}

	return scanOperatorRows(rows)
}

func (r *OperatorRepository) Create(ctx context.Context, operator *models.Operator, passwordHash string) (*models.Operator, error) {
	operator.ID = uuid.New().String()
	now := time.Now()
	operator.CreatedAt = now
	operator.UpdatedAt = now

	if operator.Status == "" {
		operator.Status = "active"
	}

	query := fmt.Sprintf(`
		INSERT INTO operators (id, name, email, password_hash, phone_no, joining_date, age, gender, address, profile_image, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`, operatorColumns)

	return scanOperatorRow(r.db.Pool.QueryRow(ctx, query,
		operator.ID, operator.Name, operator.Email, passwordHash,
		operator.PhoneNo, operator.JoiningDate, operator.Age, operator.Gender,
		operator.Address, operator.ProfileImage, operator.Status,
		operator.CreatedAt, operator.UpdatedAt,
	))
}

func (r *OperatorRepository) Update(ctx context.Context, id string, operator *models.Operator) (*models.Operator, error) {
	query := fmt.Sprintf(`
		UPDATE operators
		SET name = $1, phone_no = $2, age = $3, address = $4, status = $5, updated_at = now()
		WHERE id = $6
		RETURNING %s
	`, operatorColumns)

	return scanOperatorRow(r.db.Pool.QueryRow(ctx, query,
		operator.Name, operator.PhoneNo, operator.Age, operator.Address, operator.Status, id,
	))
}

func (r *OperatorRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Operator, error) {
	query := fmt.Sprintf(`
		UPDATE operators SET status = $1, updated_at = now() WHERE id = $2
		RETURNING %s
	`, operatorColumns)
	return scanOperatorRow(r.db.Pool.QueryRow(ctx, query, status, id))
}

func (r *OperatorRepository) UpdateProfileImage(ctx context.Context, id, path string) (*models.Operator, error) {
	query := fmt.Sprintf(`
		UPDATE operators SET profile_image = $1, updated_at = now() WHERE id = $2
		RETURNING %s
	`, operatorColumns)
	return scanOperatorRow(r.db.Pool.QueryRow(ctx, query, path, id))
}

// RecordLogin stamps last_login after a successful password check
func (r *OperatorRepository) RecordLogin(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx,
		`UPDATE operators SET last_login = now(), updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *OperatorRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM operators WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
