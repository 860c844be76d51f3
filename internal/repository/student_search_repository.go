package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/database"
)

// StudentRow is a search/browse projection: the account joined with its
// student profile and school. Credentials never leave the store here.
type StudentRow struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	SchoolID     *int64
	SchoolName   *string
	SearchType   string
	SearchStatus string
	Bio          *string
	StudyDomain  *string
	Linkedin     *string
	Github       *string
	Portfolio    *string
	CVPath       *string
	CreatedAt    time.Time
}

type StudentSearchRepository interface {
	Search(ctx context.Context, query string, limit int) ([]StudentRow, error)
	ListBySchool(ctx context.Context, schoolID int64) ([]StudentRow, error)
}

type PostgresStudentSearchRepository struct {
	db database.DB
}

func NewPostgresStudentSearchRepository(db database.DB) *PostgresStudentSearchRepository {
	return &PostgresStudentSearchRepository{db: db}
}

// likeEscaper neutralizes ILIKE metacharacters in user input, so searching
// for "100%" matches the literal text instead of everything.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const studentRowSelect = `
	SELECT a.id, a.first_name, a.last_name, a.school_id, s.name,
	       p.search_type, p.search_status, p.bio, p.study_domain,
	       p.linkedin, p.github, p.portfolio, p.cv_path, a.created_at
	FROM accounts a
	JOIN student_profiles p ON p.account_id = a.id
	LEFT JOIN schools s ON s.id = a.school_id`

func (r *PostgresStudentSearchRepository) Search(ctx context.Context, query string, limit int) ([]StudentRow, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	if query == "" {
		rows, err := r.db.Query(ctx, studentRowSelect+` ORDER BY a.created_at DESC LIMIT $1`, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return collectStudentRows(rows)
	}

	pattern := "%" + likeEscaper.Replace(query) + "%"
	rows, err := r.db.Query(ctx, studentRowSelect+`
		 WHERE a.first_name ILIKE $1
		    OR a.last_name ILIKE $1
		    OR p.bio ILIKE $1
		    OR p.study_domain ILIKE $1
		 ORDER BY a.created_at DESC
		 LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStudentRows(rows)
}

func (r *PostgresStudentSearchRepository) ListBySchool(ctx context.Context, schoolID int64) ([]StudentRow, error) {
	rows, err := r.db.Query(ctx, studentRowSelect+`
		 WHERE a.school_id = $1
		 ORDER BY a.last_name ASC, a.first_name ASC`,
		schoolID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStudentRows(rows)
}

func collectStudentRows(rows database.Rows) ([]StudentRow, error) {
	out := make([]StudentRow, 0)
	for rows.Next() {
		var s StudentRow
		err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.SchoolID, &s.SchoolName,
			&s.SearchType, &s.SearchStatus, &s.Bio, &s.StudyDomain,
			&s.Linkedin, &s.Github, &s.Portfolio, &s.CVPath, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
