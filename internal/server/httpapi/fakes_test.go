package httpapi

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/dbx"
	"github.com/mkragh/cereald/internal/server/models"
	cerealsrepo "github.com/mkragh/cereald/internal/server/repositories/cereals"
	usersrepo "github.com/mkragh/cereald/internal/server/repositories/users"
)

// In-memory repositories backing the handler tests. List mirrors the SQL
// semantics: conjunctive predicates, whitelisted sort keys with id tiebreak,
// insertion order otherwise.

type memUsersRepo struct {
	nextID int64
	users  []models.User
}

func (r *memUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, *user)
	return user, nil
}

func (r *memUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memCerealsRepo struct {
	nextID  int64
	cereals []models.Cereal
}

func (r *memCerealsRepo) List(ctx context.Context, filter cerealsrepo.Filter) ([]models.Cereal, error) {
	out := []models.Cereal{}
	for _, c := range r.cereals {
		if filter.Mfr != nil && c.Mfr != *filter.Mfr {
			continue
		}
		if filter.CaloriesMin != nil && c.Calories < *filter.CaloriesMin {
			continue
		}
		if filter.CaloriesMax != nil && c.Calories > *filter.CaloriesMax {
			continue
		}
		if filter.SugarsMin != nil && c.Sugars < *filter.SugarsMin {
			continue
		}
		if filter.SugarsMax != nil && c.Sugars > *filter.SugarsMax {
			continue
		}
		out = append(out, c)
	}

	type keyFunc func(c models.Cereal) float64
	keys := map[string]keyFunc{
		"calories": func(c models.Cereal) float64 { return float64(c.Calories) },
		"sugars":   func(c models.Cereal) float64 { return float64(c.Sugars) },
		"rating":   func(c models.Cereal) float64 { return c.Rating },
	}

	token := strings.ToLower(filter.Sort)
	field, dir, ok := strings.Cut(token, "_")
	key, known := keys[field]
	if ok && known && (dir == "asc" || dir == "desc") {
		sort.SliceStable(out, func(i, j int) bool {
			ki, kj := key(out[i]), key(out[j])
			if ki == kj {
				return out[i].ID < out[j].ID
			}
			if dir == "desc" {
				return ki > kj
			}
			return ki < kj
		})
	}

	return out, nil
}

func (r *memCerealsRepo) GetByID(ctx context.Context, id int64) (*models.Cereal, error) {
	for _, c := range r.cereals {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memCerealsRepo) Create(ctx context.Context, cereal *models.Cereal) (*models.Cereal, error) {
	for _, c := range r.cereals {
		if c.Name == cereal.Name {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.nextID++
	cereal.ID = r.nextID
	r.cereals = append(r.cereals, *cereal)
	return cereal, nil
}

func (r *memCerealsRepo) Update(ctx context.Context, cereal *models.Cereal) error {
	for i, c := range r.cereals {
		if c.ID == cereal.ID {
			r.cereals[i] = *cereal
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memCerealsRepo) Delete(ctx context.Context, id int64) error {
	for i, c := range r.cereals {
		if c.ID == id {
			r.cereals = append(r.cereals[:i], r.cereals[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func cerealFilterAll() cerealsrepo.Filter { return cerealsrepo.Filter{} }

type memRepoManager struct {
	u *memUsersRepo
	c *memCerealsRepo
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *memRepoManager) Cereals(db dbx.DBTX) cerealsrepo.Repository  { return m.c }
