package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Suly-ms/ThisIsNotFine/internal/repository"
)

var ErrInternal = errors.New("internal error")

const maxResults = 50

type Service struct {
	students repository.StudentSearchRepository
}

func NewService(students repository.StudentSearchRepository) *Service {
	return &Service{students: students}
}

// Students runs a case-insensitive substring search over names, bio and
// study domain. Only accounts with a student profile are discoverable.
func (s *Service) Students(ctx context.Context, query string) ([]repository.StudentRow, error) {
	rows, err := s.students.Search(ctx, strings.TrimSpace(query), maxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return rows, nil
}
