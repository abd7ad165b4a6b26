// Package seed provisions initial data: the default credentials and, for an
// empty catalog, product records from a semicolon-delimited CSV file.
package seed

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/dbx"
	"github.com/mkragh/cereald/internal/logging"
	"github.com/mkragh/cereald/internal/server/auth"
	"github.com/mkragh/cereald/internal/server/config"
	"github.com/mkragh/cereald/internal/server/models"
	"github.com/mkragh/cereald/internal/server/repositories/cereals"
	"github.com/mkragh/cereald/internal/server/repositories/repomanager"
)

// csvColumnCount is the number of fields per record in the seed file:
// name;mfr;type;calories;protein;fat;sodium;fiber;carbo;sugars;potass;
// vitamins;shelf;weight;cups;rating
const csvColumnCount = 16

type Seeder struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cfg         *config.Config
	logger      logging.Logger
}

func NewSeeder(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *Seeder {
	return &Seeder{db: db, repomanager: m, cfg: cfg, logger: l.With("module", "seed")}
}

// Run provisions credentials and catalog data. Both steps are idempotent:
// existing users are left alone and a non-empty catalog is not reseeded.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureUsers(ctx); err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	if err := s.ensureCereals(ctx); err != nil {
		return fmt.Errorf("seeding cereals: %w", err)
	}
	return nil
}

func (s *Seeder) ensureUsers(ctx context.Context) error {
	defaults := []struct {
		username string
		password string
		role     string
	}{
		{"admin", s.cfg.SeedAdminPassword, common.RoleAdmin},
		{"user", s.cfg.SeedUserPassword, common.RoleUser},
	}

	repo := s.repomanager.Users(s.db)

	for _, d := range defaults {
		_, err := repo.GetByUsername(ctx, d.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		hash, err := auth.HashPassword(d.password)
		if err != nil {
			return err
		}

		_, err = repo.Create(ctx, &models.User{Username: d.username, PasswordHash: hash, Role: d.role})
		if err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
			return err
		}

		s.logger.Info(ctx, "provisioned credential", "username", d.username, "role", d.role)
	}

	return nil
}

func (s *Seeder) ensureCereals(ctx context.Context) error {
	repo := s.repomanager.Cereals(s.db)

	existing, err := repo.List(ctx, cereals.Filter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	file, err := os.Open(s.cfg.SeedDataFile)
	if err != nil {
		return fmt.Errorf("opening seed file: %w", err)
	}
	defer file.Close()

	records, err := ParseCSV(file)
	if err != nil {
		return err
	}

	// All-or-nothing: a bad record must not leave a half-seeded catalog.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Cereals(tx)
		for i := range records {
			if _, err := repo.Create(ctx, &records[i]); err != nil {
				return fmt.Errorf("inserting %q: %w", records[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "seeded catalog", "records", len(records))

	return nil
}

// ParseCSV reads semicolon-delimited cereal records. The first row is
// expected to be a header and is skipped.
func ParseCSV(r io.Reader) ([]models.Cereal, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = csvColumnCount

	// header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading seed header: %w", err)
	}

	var records []models.Cereal
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading seed row: %w", err)
		}

		c, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, c)
	}

	return records, nil
}

func parseRow(row []string) (models.Cereal, error) {
	var c models.Cereal
	var err error

	c.Name = row[0]
	c.Mfr = row[1]
	c.Type = row[2]

	ints := []struct {
		dst *int
		idx int
	}{
		{&c.Calories, 3}, {&c.Protein, 4}, {&c.Fat, 5}, {&c.Sodium, 6},
		{&c.Sugars, 9}, {&c.Potass, 10}, {&c.Vitamins, 11}, {&c.Shelf, 12},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(row[f.idx]); err != nil {
			return c, fmt.Errorf("record %q, column %d: %w", c.Name, f.idx, err)
		}
	}

	floats := []struct {
		dst *float64
		idx int
	}{
		{&c.Fiber, 7}, {&c.Carbo, 8}, {&c.Weight, 13}, {&c.Cups, 14}, {&c.Rating, 15},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(row[f.idx], 64); err != nil {
			return c, fmt.Errorf("record %q, column %d: %w", c.Name, f.idx, err)
		}
	}

	return c, nil
}
