package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/fuelease/fuelease/internal/database"
	"github.com/fuelease/fuelease/internal/models"
	"github.com/jackc/pgx/v5"
)

// rowScanner covers both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// principalColumns is the authentication projection of an account row.
// Password hash and OTP material are only selected here, never by the
// CRUD queries, so unrelated callers can't see them.
const principalColumns = `id, email, password_hash, is_two_factor_enabled, two_factor_email, two_factor_otp_hash, two_factor_otp_expires_at`

// principalStore implements the authentication-facing view over one
// account table. The admin, operator and customer repositories embed it,
// each bound to its own table and role tag.
type principalStore struct {
	db    *database.DB
	table string
	role  string
}

func (s *principalStore) Kind() string {
	return s.role
}

func (s *principalStore) scanPrincipal(scanner rowScanner) (*models.Principal, error) {
	var p models.Principal
	err := scanner.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.TwoFactorEnabled,
		&p.TwoFactorEmail, &p.TwoFactorOTPHash, &p.TwoFactorOTPExpiresAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	p.Role = s.role
	return &p, nil
}

func (s *principalStore) GetPrincipalByEmail(ctx context.Context, email string) (*models.Principal, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1`, principalColumns, s.table)
	return s.scanPrincipal(s.db.Pool.QueryRow(ctx, query, email))
}

func (s *principalStore) GetPrincipalByID(ctx context.Context, id string) (*models.Principal, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, principalColumns, s.table)
	return s.scanPrincipal(s.db.Pool.QueryRow(ctx, query, id))
}

// SetTwoFactorPending stores the hash and expiry of a freshly issued code,
// overwriting whatever was pending before. Last writer wins: any earlier
// code for the same principal stops verifying the moment this commits.
// A non-nil notifyEmail also rebinds the OTP delivery address.
func (s *principalStore) SetTwoFactorPending(ctx context.Context, id string, notifyEmail *string, otpHash string, expiresAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET two_factor_email = COALESCE($2, two_factor_email),
		    two_factor_otp_hash = $3,
		    two_factor_otp_expires_at = $4,
		    updated_at = now()
		WHERE id = $1
	`, s.table)

	result, err := s.db.Pool.Exec(ctx, query, id, notifyEmail, otpHash, expiresAt)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ConsumeOTP runs verify against the row's OTP state while holding a row
// lock, and clears that state when verify returns nil. Two concurrent
// verification attempts therefore serialize on the row: the first winner
// clears the columns and the loser observes them gone. When enable is
// true the two-factor flag is set in the same statement, which is the
// enrollment commit.
func (s *principalStore) ConsumeOTP(ctx context.Context, id string, enable bool, verify func(otpHash *string, expiresAt *time.Time) error) error {
	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		selectQuery := fmt.Sprintf(`
			SELECT two_factor_otp_hash, two_factor_otp_expires_at
			FROM %s WHERE id = $1 FOR UPDATE
		`, s.table)

		var otpHash *string
		var expiresAt *time.Time
		if err := tx.QueryRow(ctx, selectQuery, id).Scan(&otpHash, &expiresAt); err != nil {
			return database.MapPostgresError(err)
		}

		if err := verify(otpHash, expiresAt); err != nil {
			return err
		}

		enableClause := ""
		if enable {
			enableClause = ", is_two_factor_enabled = TRUE"
		}

		clearQuery := fmt.Sprintf(`
			UPDATE %s
			SET two_factor_otp_hash = NULL,
			    two_factor_otp_expires_at = NULL%s,
			    updated_at = now()
			WHERE id = $1
		`, s.table, enableClause)

		if _, err := tx.Exec(ctx, clearQuery, id); err != nil {
			return database.MapPostgresError(err)
		}

		return nil
	})
}
