package cereals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/dbx"
	"github.com/mkragh/cereald/internal/server/models"
)

const cerealColumns = "id, name, mfr, type, calories, protein, fat, sodium, fiber, carbo, sugars, potass, vitamins, shelf, weight, cups, rating"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// buildListQuery assembles the SELECT for List: one positional predicate per
// supplied filter field, ANDed together, plus the whitelisted ORDER BY.
func buildListQuery(filter Filter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + cerealColumns + " FROM cereals")

	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Mfr != nil {
		add("mfr = $%d", *filter.Mfr)
	}
	if filter.CaloriesMin != nil {
		add("calories >= $%d", *filter.CaloriesMin)
	}
	if filter.CaloriesMax != nil {
		add("calories <= $%d", *filter.CaloriesMax)
	}
	if filter.SugarsMin != nil {
		add("sugars >= $%d", *filter.SugarsMin)
	}
	if filter.SugarsMax != nil {
		add("sugars <= $%d", *filter.SugarsMax)
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	if order := filter.OrderClause(); order != "" {
		sb.WriteString(" ORDER BY " + order)
	}

	return sb.String(), args
}

func scanCereal(row interface{ Scan(...any) error }, c *models.Cereal) error {
	return row.Scan(&c.ID, &c.Name, &c.Mfr, &c.Type, &c.Calories, &c.Protein, &c.Fat,
		&c.Sodium, &c.Fiber, &c.Carbo, &c.Sugars, &c.Potass, &c.Vitamins, &c.Shelf,
		&c.Weight, &c.Cups, &c.Rating)
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]models.Cereal, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	cereals := []models.Cereal{}
	for rows.Next() {
		var c models.Cereal
		if err := scanCereal(rows, &c); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		cereals = append(cereals, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cereals, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Cereal, error) {
	query := "SELECT " + cerealColumns + " FROM cereals WHERE id = $1"

	c := &models.Cereal{}
	err := scanCereal(r.db.QueryRowContext(ctx, query, id), c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, cereal *models.Cereal) (*models.Cereal, error) {

	query :=
		`INSERT INTO cereals (name, mfr, type, calories, protein, fat, sodium, fiber, carbo, sugars, potass, vitamins, shelf, weight, cups, rating)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		cereal.Name, cereal.Mfr, cereal.Type, cereal.Calories, cereal.Protein,
		cereal.Fat, cereal.Sodium, cereal.Fiber, cereal.Carbo, cereal.Sugars,
		cereal.Potass, cereal.Vitamins, cereal.Shelf, cereal.Weight, cereal.Cups,
		cereal.Rating).Scan(&cereal.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cereal, nil
}

func (r *PostgresRepository) Update(ctx context.Context, cereal *models.Cereal) error {

	query :=
		`UPDATE cereals
		 SET name = $2, mfr = $3, type = $4, calories = $5, protein = $6, fat = $7,
		     sodium = $8, fiber = $9, carbo = $10, sugars = $11, potass = $12,
		     vitamins = $13, shelf = $14, weight = $15, cups = $16, rating = $17
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		cereal.ID, cereal.Name, cereal.Mfr, cereal.Type, cereal.Calories,
		cereal.Protein, cereal.Fat, cereal.Sodium, cereal.Fiber, cereal.Carbo,
		cereal.Sugars, cereal.Potass, cereal.Vitamins, cereal.Shelf, cereal.Weight,
		cereal.Cups, cereal.Rating)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {

	res, err := r.db.ExecContext(ctx, "DELETE FROM cereals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
