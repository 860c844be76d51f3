package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Suly-ms/ThisIsNotFine/internal/database"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetStudentProfile(ctx context.Context, accountID uuid.UUID) (account.StudentProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, account_id, search_type, search_status, bio, study_domain,
		        linkedin, github, portfolio, cv_path, created_at, updated_at
		 FROM student_profiles WHERE account_id = $1`,
		accountID,
	)
	return scanStudentProfile(row)
}

func (r *PostgresProfileRepository) UpsertStudentProfile(ctx context.Context, p account.StudentProfile) (account.StudentProfile, error) {
	if p.SearchType == "" {
		p.SearchType = account.DefaultSearchType
	}
	if p.SearchStatus == "" {
		p.SearchStatus = account.DefaultSearchStatus
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO student_profiles
		 (account_id, search_type, search_status, bio, study_domain, linkedin, github, portfolio, cv_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (account_id) DO UPDATE SET
		   search_type = EXCLUDED.search_type,
		   search_status = EXCLUDED.search_status,
		   bio = EXCLUDED.bio,
		   study_domain = EXCLUDED.study_domain,
		   linkedin = EXCLUDED.linkedin,
		   github = EXCLUDED.github,
		   portfolio = EXCLUDED.portfolio,
		   cv_path = COALESCE(EXCLUDED.cv_path, student_profiles.cv_path),
		   updated_at = now()
		 RETURNING id, account_id, search_type, search_status, bio, study_domain,
		           linkedin, github, portfolio, cv_path, created_at, updated_at`,
		p.AccountID, p.SearchType, p.SearchStatus, p.Bio, p.StudyDomain,
		p.Linkedin, p.Github, p.Portfolio, p.CVPath,
	)
	return scanStudentProfile(row)
}

func (r *PostgresProfileRepository) GetCompanyProfile(ctx context.Context, accountID uuid.UUID) (account.CompanyProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, account_id, name, website, description, created_at, updated_at
		 FROM company_profiles WHERE account_id = $1`,
		accountID,
	)
	return scanCompanyProfile(row)
}

func (r *PostgresProfileRepository) UpsertCompanyProfile(ctx context.Context, p account.CompanyProfile) (account.CompanyProfile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO company_profiles (account_id, name, website, description)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (account_id) DO UPDATE SET
		   name = EXCLUDED.name,
		   website = EXCLUDED.website,
		   description = EXCLUDED.description,
		   updated_at = now()
		 RETURNING id, account_id, name, website, description, created_at, updated_at`,
		p.AccountID, p.Name, p.Website, p.Description,
	)
	return scanCompanyProfile(row)
}

func scanStudentProfile(row database.Row) (account.StudentProfile, error) {
	var p account.StudentProfile
	err := row.Scan(
		&p.ID, &p.AccountID, &p.SearchType, &p.SearchStatus, &p.Bio, &p.StudyDomain,
		&p.Linkedin, &p.Github, &p.Portfolio, &p.CVPath, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.StudentProfile{}, account.ErrNotFound
		}
		return account.StudentProfile{}, err
	}
	return p, nil
}

func scanCompanyProfile(row database.Row) (account.CompanyProfile, error) {
	var p account.CompanyProfile
	err := row.Scan(&p.ID, &p.AccountID, &p.Name, &p.Website, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.CompanyProfile{}, account.ErrNotFound
		}
		return account.CompanyProfile{}, err
	}
	return p, nil
}
