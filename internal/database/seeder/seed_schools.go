package seeder

import (
	"context"
	"fmt"

	"github.com/Suly-ms/ThisIsNotFine/internal/database"
)

type SchoolsSeeder struct{}

func (SchoolsSeeder) Name() string { return "schools" }

func (SchoolsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "schools", "id", "name", "latitude", "longitude"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Lat, Lon float64
	}{
		{Name: "Université de Strasbourg", Lat: 48.5806, Lon: 7.7645},
		{Name: "Sorbonne Université", Lat: 48.8472, Lon: 2.3444},
		{Name: "Université Paris-Saclay", Lat: 48.7107, Lon: 2.1678},
		{Name: "Aix-Marseille Université", Lat: 43.5283, Lon: 5.4497},
		{Name: "Université de Bordeaux", Lat: 44.8258, Lon: -0.5907},
		{Name: "Université de Lorraine", Lat: 48.6961, Lon: 6.1738},
		{Name: "Université Claude Bernard Lyon 1", Lat: 45.7808, Lon: 4.8660},
		{Name: "Université de Montpellier", Lat: 43.6309, Lon: 3.8617},
		{Name: "Université de Lille", Lat: 50.6091, Lon: 3.1384},
		{Name: "Université Grenoble Alpes", Lat: 45.1916, Lon: 5.7667},
		{Name: "Université de Rennes", Lat: 48.1189, Lon: -1.6372},
		{Name: "Université de Nantes", Lat: 47.2458, Lon: -1.5519},
		{Name: "Université Côte d'Azur", Lat: 43.7167, Lon: 7.2750},
		{Name: "Université Toulouse III - Paul Sabatier", Lat: 43.5613, Lon: 1.4673},
		{Name: "Université Paris Cité", Lat: 48.8549, Lon: 2.3385},
		{Name: "Université de Rouen Normandie", Lat: 49.4632, Lon: 1.0706},
		{Name: "Université de Poitiers", Lat: 46.5684, Lon: 0.3846},
		{Name: "Université de Caen Normandie", Lat: 49.1925, Lon: -0.3643},
		{Name: "Université de Bourgogne", Lat: 47.3115, Lon: 5.0685},
		{Name: "Université de Tours", Lat: 47.3559, Lon: 0.6865},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO schools (name, latitude, longitude) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Lat,
			it.Lon,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
