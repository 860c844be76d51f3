package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Suly-ms/ThisIsNotFine/internal/database"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/school"
)

type PostgresSchoolRepository struct {
	db database.DB
}

func NewPostgresSchoolRepository(db database.DB) *PostgresSchoolRepository {
	return &PostgresSchoolRepository{db: db}
}

func (r *PostgresSchoolRepository) List(ctx context.Context) ([]school.School, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, latitude, longitude, created_at FROM schools ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]school.School, 0)
	for rows.Next() {
		var s school.School
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSchoolRepository) GetByName(ctx context.Context, name string) (school.School, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, latitude, longitude, created_at FROM schools WHERE name = $1`, name)

	var s school.School
	if err := row.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return school.School{}, school.ErrNotFound
		}
		return school.School{}, err
	}
	return s, nil
}

func (r *PostgresSchoolRepository) Create(ctx context.Context, s school.School) (school.School, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO schools (name, latitude, longitude)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, latitude, longitude, created_at`,
		s.Name, s.Latitude, s.Longitude,
	)

	var created school.School
	err := row.Scan(&created.ID, &created.Name, &created.Latitude, &created.Longitude, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return school.School{}, school.ErrDuplicateName
		}
		return school.School{}, err
	}
	return created, nil
}
