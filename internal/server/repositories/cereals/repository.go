// Package cereals stores the product catalog and implements the filtered,
// sorted listing the HTTP surface exposes.
package cereals

import (
	"context"
	"strings"

	"github.com/mkragh/cereald/internal/server/models"
)

// Filter describes an optional conjunction of listing predicates plus a sort
// token. Nil bound fields impose no constraint; bounds are inclusive.
type Filter struct {
	Mfr         *string
	CaloriesMin *int
	CaloriesMax *int
	SugarsMin   *int
	SugarsMax   *int
	Sort        string
}

// sortColumns whitelists the recognized sort tokens. Anything else leaves
// the result in the store's natural order.
var sortColumns = map[string]string{
	"calories_asc":  "calories ASC",
	"calories_desc": "calories DESC",
	"sugars_asc":    "sugars ASC",
	"sugars_desc":   "sugars DESC",
	"rating_asc":    "rating ASC",
	"rating_desc":   "rating DESC",
}

// OrderClause resolves the filter's sort token (case-insensitive) to an SQL
// ORDER BY body. Ties are broken by id ascending so that listings are stable
// across repeated reads. An unrecognized or empty token yields "".
func (f Filter) OrderClause() string {
	col, ok := sortColumns[strings.ToLower(f.Sort)]
	if !ok {
		return ""
	}
	return col + ", id ASC"
}

type Repository interface {
	// List returns the records satisfying every supplied predicate, sorted
	// per the filter's sort token.
	List(ctx context.Context, filter Filter) ([]models.Cereal, error)
	// GetByID returns common.ErrorNotFound when no record matches.
	GetByID(ctx context.Context, id int64) (*models.Cereal, error)
	// Create persists a new record and assigns its id. A duplicate name
	// fails with common.ErrorAlreadyExists without mutating the store.
	Create(ctx context.Context, cereal *models.Cereal) (*models.Cereal, error)
	// Update replaces the full record matching cereal.ID and returns
	// common.ErrorNotFound when no such id exists.
	Update(ctx context.Context, cereal *models.Cereal) error
	// Delete removes the record by id, common.ErrorNotFound when absent.
	Delete(ctx context.Context, id int64) error
}
