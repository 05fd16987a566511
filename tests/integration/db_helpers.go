package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fuelease/fuelease/internal/database"
	"github.com/fuelease/fuelease/internal/models"
	pkgauth "github.com/fuelease/fuelease/pkg/auth"
)

// TestDB manages a PostgreSQL testcontainer and its connection pool
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase starts a PostgreSQL container and runs the embedded
// migrations against it.
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("fuelease"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := database.Migrate(connStr); err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         &database.DB{Pool: pool},
	}, nil
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates all tables for test isolation
func (db *TestDB) CleanupTables(ctx context.Context) error {
	tables := []string{
		"fuel_stations",
		"customers",
		"operators",
		"admins",
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// SeedAdmin inserts an administrator with a hashed password
func SeedAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string, twoFactorEnabled bool) (*models.Admin, error) {
	hashedPassword, err := pkgauth.HashSecret(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// nid_number and phone_no are short unique columns; derive them randomly
	query := `
		INSERT INTO admins (id, full_name, email, password_hash, nid_number, age, phone_no, status, is_two_factor_enabled, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Seed Admin', $1, $2, substr(md5(random()::text), 1, 10), 30, substr(md5(random()::text), 1, 11), 'active', $3, NOW(), NOW())
		RETURNING id, full_name, email, nid_number, age, phone_no, status, created_at, updated_at
	`

	var admin models.Admin
	err = pool.QueryRow(ctx, query, email, hashedPassword, twoFactorEnabled).Scan(
		&admin.ID,
		&admin.FullName,
		&admin.Email,
		&admin.NIDNumber,
		&admin.Age,
		&admin.PhoneNo,
		&admin.Status,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert admin: %w", err)
	}

	return &admin, nil
}

// SeedOperator inserts an operator with a hashed password
func SeedOperator(ctx context.Context, pool *pgxpool.Pool, email, password string) (*models.Operator, error) {
	hashedPassword, err := pkgauth.HashSecret(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO operators (id, name, email, password_hash, phone_no, joining_date, gender, status, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Seed Operator', $1, $2, substr(md5(random()::text), 1, 11), '2024-01-15', 'female', 'active', NOW(), NOW())
		RETURNING id, name, email, phone_no, joining_date, gender, status, created_at, updated_at
	`

	var operator models.Operator
	err = pool.QueryRow(ctx, query, email, hashedPassword).Scan(
		&operator.ID,
		&operator.Name,
		&operator.Email,
		&operator.PhoneNo,
		&operator.JoiningDate,
		&operator.Gender,
		&operator.Status,
		&operator.CreatedAt,
		&operator.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert operator: %w", err)
	}

	return &operator, nil
}
