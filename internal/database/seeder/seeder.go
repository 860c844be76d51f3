package seeder

import (
	"context"

	"github.com/Suly-ms/ThisIsNotFine/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
