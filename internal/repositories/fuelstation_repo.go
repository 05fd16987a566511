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

type FuelStationRepository struct {
	db *database.DB
}

func NewFuelStationRepository(db *database.DB) *FuelStationRepository {
	return &FuelStationRepository{db: db}
}

const fuelStationColumns = `id, fuel_type, quantity, price, status, operator_id, created_at, updated_at`

func scanFuelStationRow(scanner rowScanner) (*models.FuelStation, error) {
	var fs models.FuelStation
	err := scanner.Scan(
		&fs.ID, &fs.FuelType, &fs.Quantity, &fs.Price, &fs.Status,
		&fs.OperatorID, &fs.CreatedAt, &fs.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &fs, nil
}

func scanFuelStationRows(rows pgx.Rows) ([]*models.FuelStation, error) {
	defer rows.Close()

	stations := make([]*models.FuelStation, 0)
	for rows.Next() {
		station, err := scanFuelStationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fuel station: %w", err)
		}
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stations, nil
}

func (r *FuelStationRepository) GetByID(ctx context.Context, id string) (*models.FuelStation, error) {
	query := fmt.Sprintf(`SELECT %s FROM fuel_stations WHERE id = $1`, fuelStationColumns)
	return scanFuelStationRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *FuelStationRepository) List(ctx context.Context, limit, offset int) ([]*models.FuelStation, error) {
	query := fmt.Sprintf(`SELECT %s FROM fuel_stations ORDER BY created_at DESC LIMIT $1 OFFSET $2`, fuelStationColumns)

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query fuel stations: %w", err)
	}

	return scanFuelStationRows(rows)
}

func (r *FuelStationRepository) ListByOperator(ctx context.Context, operatorID string) ([]*models.FuelStation, error) {
	query := fmt.Sprintf(`SELECT %s FROM fuel_stations WHERE operator_id = $1 ORDER BY created_at DESC`, fuelStationColumns)

	rows, err := r.db.Pool.Query(ctx, query, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fuel stations by operator: %w", err)
	}

	return scanFuelStationRows(rows)
}

func (r *FuelStationRepository) Create(ctx context.Context, station *models.FuelStation) (*models.FuelStation, error) {
	station.ID = uuid.New().String()
	now := time.Now()
	station.CreatedAt = now
	station.UpdatedAt = now

	if station.Status == "" {
		station.Status = "available"
	}

	query := fmt.Sprintf(`
		INSERT INTO fuel_stations (id, fuel_type, quantity, price, status, operator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, fuelStationColumns)

	return scanFuelStationRow(r.db.Pool.QueryRow(ctx, query,
		station.ID, station.FuelType, station.Quantity, station.Price,
		station.Status, station.OperatorID, station.CreatedAt, station.UpdatedAt,
	))
}

func (r *FuelStationRepository) Update(ctx context.Context, id string, station *models.FuelStation) (*models.FuelStation, error) {
	query := fmt.Sprintf(`
		UPDATE fuel_stations
		SET fuel_type = $1, quantity = $2, price = $3, status = $4, updated_at = now()
		WHERE id = $5
		RETURNING %s
	`, fuelStationColumns)

	return scanFuelStationRow(r.db.Pool.QueryRow(ctx, query,
		station.FuelType, station.Quantity, station.Price, station.Status, id,
	))
}

func (r *FuelStationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM fuel_stations WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
