package integration

import (
	"context"
	"testing"
	"time"

	"github.com/fuelease/fuelease/internal/models"
	"github.com/fuelease/fuelease/internal/repositories"
	pkgauth "github.com/fuelease/fuelease/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := SetupTestDatabase(ctx)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Teardown(context.Background())
	})

	return db
}

func pendingState(t *testing.T, db *TestDB, code string, expiresIn time.Duration) (hash string, expiresAt time.Time) {
	t.Helper()
	hash, err := pkgauth.HashSecret(code)
	require.NoError(t, err)
	return hash, time.Now().Add(expiresIn)
}

func TestPrincipalStore_LookupAndRoleTag(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seeded, err := SeedAdmin(ctx, db.Pool, "lookup@fuelease.app", "Password123", false)
	require.NoError(t, err)

	repo := repositories.NewAdminRepository(db.DB)

	principal, err := repo.GetPrincipalByEmail(ctx, "lookup@fuelease.app")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, principal.ID)
	assert.Equal(t, models.RoleAdmin, principal.Role)
	assert.False(t, principal.TwoFactorEnabled)
	require.NoError(t, pkgauth.CompareSecret(principal.PasswordHash, "Password123"))

	_, err = repo.GetPrincipalByEmail(ctx, "nobody@fuelease.app")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConsumeOTP_SingleUse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seeded, err := SeedAdmin(ctx, db.Pool, "single-use@fuelease.app", "Password123", true)
	require.NoError(t, err)

	repo := repositories.NewAdminRepository(db.DB)

	hash, expiresAt := pendingState(t, db, "482913", 10*time.Minute)
	require.NoError(t, repo.SetTwoFactorPending(ctx, seeded.ID, nil, hash, expiresAt))

	verify := func(otpHash *string, otpExpiresAt *time.Time) error {
		if otpHash == nil || otpExpiresAt == nil {
			return models.ErrNoPendingVerification
		}
		if time.Now().After(*otpExpiresAt) {
			return models.ErrOTPExpired
		}
		if err := pkgauth.CompareSecret(*otpHash, "482913"); err != nil {
			return models.ErrInvalidCode
		}
		return nil
	}

	require.NoError(t, repo.ConsumeOTP(ctx, seeded.ID, false, verify))

	// The row state was cleared in the same transaction
	principal, err := repo.GetPrincipalByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, principal.TwoFactorOTPHash)
	assert.Nil(t, principal.TwoFactorOTPExpiresAt)

	err = repo.ConsumeOTP(ctx, seeded.ID, false, verify)
	assert.ErrorIs(t, err, models.ErrNoPendingVerification)
}

func TestConsumeOTP_FailedVerifyKeepsState(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seeded, err := SeedAdmin(ctx, db.Pool, "keep-state@fuelease.app", "Password123", true)
	require.NoError(t, err)

	repo := repositories.NewAdminRepository(db.DB)

	hash, expiresAt := pendingState(t, db, "482913", 10*time.Minute)
	require.NoError(t, repo.SetTwoFactorPending(ctx, seeded.ID, nil, hash, expiresAt))

	err = repo.ConsumeOTP(ctx, seeded.ID, false, func(otpHash *string, otpExpiresAt *time.Time) error {
		return models.ErrInvalidCode
	})
	require.ErrorIs(t, err, models.ErrInvalidCode)

	principal, err := repo.GetPrincipalByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.NotNil(t, principal.TwoFactorOTPHash)
	assert.NotNil(t, principal.TwoFactorOTPExpiresAt)
}

func TestConsumeOTP_EnableCommitsEnrollment(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seeded, err := SeedAdmin(ctx, db.Pool, "enroll@fuelease.app", "Password123", false)
	require.NoError(t, err)

	repo := repositories.NewAdminRepository(db.DB)

	alt := "second-factor@fuelease.app"
	hash, expiresAt := pendingState(t, db, "271828", 10*time.Minute)
	require.NoError(t, repo.SetTwoFactorPending(ctx, seeded.ID, &alt, hash, expiresAt))

	require.NoError(t, repo.ConsumeOTP(ctx, seeded.ID, true, func(otpHash *string, otpExpiresAt *time.Time) error {
		return pkgauth.CompareSecret(*otpHash, "271828")
	}))

	principal, err := repo.GetPrincipalByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, principal.TwoFactorEnabled)
	require.NotNil(t, principal.TwoFactorEmail)
	assert.Equal(t, alt, *principal.TwoFactorEmail)
	assert.Nil(t, principal.TwoFactorOTPHash)
}

func TestSetTwoFactorPending_SupersedesPreviousCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seeded, err := SeedAdmin(ctx, db.Pool, "supersede@fuelease.app", "Password123", true)
	require.NoError(t, err)

	repo := repositories.NewAdminRepository(db.DB)

	firstHash, firstExpiry := pendingState(t, db, "111111", 10*time.Minute)
	require.NoError(t, repo.SetTwoFactorPending(ctx, seeded.ID, nil, firstHash, firstExpiry))

	secondHash, secondExpiry := pendingState(t, db, "222222", 10*time.Minute)
	require.NoError(t, repo.SetTwoFactorPending(ctx, seeded.ID, nil, secondHash, secondExpiry))

	principal, err := repo.GetPrincipalByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, principal.TwoFactorOTPHash)
	assert.Error(t, pkgauth.CompareSecret(*principal.TwoFactorOTPHash, "111111"))
	assert.NoError(t, pkgauth.CompareSecret(*principal.TwoFactorOTPHash, "222222"))
}

func TestOperatorRecordLogin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seeded, err := SeedOperator(ctx, db.Pool, "operator@fuelease.app", "Password123")
	require.NoError(t, err)

	repo := repositories.NewOperatorRepository(db.DB)
	require.NoError(t, repo.RecordLogin(ctx, seeded.ID))

	operator, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, operator.LastLogin)
	assert.WithinDuration(t, time.Now(), *operator.LastLogin, 10*time.Second)
}
