package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Suly-ms/ThisIsNotFine/internal/database"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
)

const accountColumns = `id, first_name, last_name, email, password_hash, role, admin,
	 email_verified, admin_verified, verification_code, ban_expires_at, school_id,
	 created_at, updated_at`

type PostgresAccountRepository struct {
	db database.DB
}

func NewPostgresAccountRepository(db database.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) Create(ctx context.Context, a account.Account, sp *account.StudentProfile, cp *account.CompanyProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO accounts
		 (id, first_name, last_name, email, password_hash, role, admin,
		  email_verified, admin_verified, verification_code, school_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.FirstName, a.LastName, a.Email, a.PasswordHash, a.Role, a.Admin,
		a.EmailVerified, a.AdminVerified, a.VerificationCode, a.SchoolID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrDuplicateEmail
		}
		return err
	}

	if sp != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO student_profiles (account_id, search_type, search_status)
			 VALUES ($1, $2, $3)`,
			a.ID, sp.SearchType, sp.SearchStatus,
		)
		if err != nil {
			return err
		}
	}

	if cp != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO company_profiles (account_id, name, website, description)
			 VALUES ($1, $2, $3, $4)`,
			a.ID, cp.Name, cp.Website, cp.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (account.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

func (r *PostgresAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresAccountRepository) List(ctx context.Context) ([]account.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *PostgresAccountRepository) ListPendingCompanies(ctx context.Context) ([]account.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+`
		 FROM accounts
		 WHERE role = $1 AND admin_verified = FALSE
		 ORDER BY created_at ASC`,
		account.RoleCompany,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *PostgresAccountRepository) ConsumeVerificationCode(ctx context.Context, id uuid.UUID, code string) error {
	// The code match is part of the WHERE clause so two concurrent
	// submissions of the same code cannot both succeed.
	return r.updateOne(ctx,
		`UPDATE accounts
		 SET email_verified = TRUE, verification_code = NULL, updated_at = now()
		 WHERE id = $1 AND verification_code = $2`, id, code)
}

func (r *PostgresAccountRepository) SetAdminVerified(ctx context.Context, id uuid.UUID) error {
	// Approval substitutes for the email proof, so both flags flip together.
	return r.updateOne(ctx,
		`UPDATE accounts
		 SET admin_verified = TRUE, email_verified = TRUE, updated_at = now()
		 WHERE id = $1`, id)
}

func (r *PostgresAccountRepository) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.updateOne(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
}

func (r *PostgresAccountRepository) SetBanExpiry(ctx context.Context, id uuid.UUID, until *time.Time) error {
	return r.updateOne(ctx,
		`UPDATE accounts SET ban_expires_at = $2, updated_at = now() WHERE id = $1`, id, until)
}

func (r *PostgresAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *PostgresAccountRepository) updateOne(ctx context.Context, query string, args ...any) error {
	affected, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return account.ErrNotFound
	}
	return nil
}

func scanAccount(row database.Row) (account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.Role, &a.Admin,
		&a.EmailVerified, &a.AdminVerified, &a.VerificationCode, &a.BanExpiresAt, &a.SchoolID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}

func collectAccounts(rows database.Rows) ([]account.Account, error) {
	out := make([]account.Account, 0)
	for rows.Next() {
		var a account.Account
		err := rows.Scan(
			&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.Role, &a.Admin,
			&a.EmailVerified, &a.AdminVerified, &a.VerificationCode, &a.BanExpiresAt, &a.SchoolID,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
