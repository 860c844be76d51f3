package school

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/Suly-ms/ThisIsNotFine/internal/domain/school"
	"github.com/Suly-ms/ThisIsNotFine/internal/repository"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("school not found")
	ErrDuplicateName = errors.New("school already exists")
	ErrInternal      = errors.New("internal error")
)

type Service struct {
	schools  domain.Repository
	students repository.StudentSearchRepository
}

func NewService(schools domain.Repository, students repository.StudentSearchRepository) *Service {
	return &Service{schools: schools, students: students}
}

func (s *Service) List(ctx context.Context) ([]domain.School, error) {
	out, err := s.schools.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, name string, latitude, longitude float64) (domain.School, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.School{}, ErrInvalidInput
	}

	created, err := s.schools.Create(ctx, domain.School{Name: name, Latitude: latitude, Longitude: longitude})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return domain.School{}, ErrDuplicateName
		}
		return domain.School{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return created, nil
}

func (s *Service) Students(ctx context.Context, schoolName string) ([]repository.StudentRow, error) {
	sch, err := s.schools.GetByName(ctx, schoolName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	rows, err := s.students.ListBySchool(ctx, sch.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return rows, nil
}
