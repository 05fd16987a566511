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

type CustomerRepository struct {
	db *database.DB
	principalStore
}

func NewCustomerRepository(db *database.DB) *CustomerRepository {
	return &CustomerRepository{
		db:             db,
		principalStore: principalStore{db: db, table: "customers", role: models.RoleCustomer},
	}
}

const customerColumns = `id, username, full_name, email, is_active, created_at, updated_at`

func scanCustomerRow(scanner rowScanner) (*models.Customer, error) {
	var c models.Customer
	err := scanner.Scan(
		&c.ID, &c.Username, &c.FullName, &c.Email, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &c, nil
}

func scanCustomerRows(rows pgx.Rows) ([]*models.Customer, error) {
	defer rows.Close()

	customers := make([]*models.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, customerColumns)
	return scanCustomerRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE email = $1`, customerColumns)
	return scanCustomerRow(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`, customerColumns)

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	return scanCustomerRows(rows)
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer, passwordHash string) (*models.Customer, error) {
	customer.ID = uuid.New().String()
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO customers (id, username, full_name, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, customerColumns)

	return scanCustomerRow(r.db.Pool.QueryRow(ctx, query,
		customer.ID, customer.Username, customer.FullName, customer.Email,
		passwordHash, customer.IsActive, customer.CreatedAt, customer.UpdatedAt,
	))
}

func (r *CustomerRepository) Update(ctx context.Context, id string, customer *models.Customer) (*models.Customer, error) {
	query := fmt.Sprintf(`
		UPDATE customers
		SET full_name = $1, is_active = $2, updated_at = now()
		WHERE id = $3
		RETURNING %s
	`, customerColumns)

	return scanCustomerRow(r.db.Pool.QueryRow(ctx, query,
		customer.FullName, customer.IsActive, id,
	))
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
