package school

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("school not found")
	ErrDuplicateName = errors.New("school name already exists")
)

type School struct {
	ID        int64
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

type Repository interface {
	List(ctx context.Context) ([]School, error)
	GetByName(ctx context.Context, name string) (School, error)
	Create(ctx context.Context, s School) (School, error)
}
