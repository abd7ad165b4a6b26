package services

import (
	"context"
	"database/sql"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/dbx"
	"github.com/mkragh/cereald/internal/server/models"
	cerealsrepo "github.com/mkragh/cereald/internal/server/repositories/cereals"
	usersrepo "github.com/mkragh/cereald/internal/server/repositories/users"
)

// --- fakes shared by the service tests ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeCerealsRepo struct {
	listOut []models.Cereal
	listErr error

	getOut *models.Cereal
	getErr error

	created   *models.Cereal
	createErr error

	updated   *models.Cereal
	updateErr error

	deletedID int64
	deleteErr error

	lastFilter cerealsrepo.Filter
}

func (f *fakeCerealsRepo) List(ctx context.Context, filter cerealsrepo.Filter) ([]models.Cereal, error) {
	f.lastFilter = filter
	return f.listOut, f.listErr
}

func (f *fakeCerealsRepo) GetByID(ctx context.Context, id int64) (*models.Cereal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil {
		return nil, common.ErrorNotFound
	}
	return f.getOut, nil
}

func (f *fakeCerealsRepo) Create(ctx context.Context, c *models.Cereal) (*models.Cereal, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = 7
	f.created = c
	return c, nil
}

func (f *fakeCerealsRepo) Update(ctx context.Context, c *models.Cereal) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = c
	return nil
}

func (f *fakeCerealsRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCerealsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Cereals(db dbx.DBTX) cerealsrepo.Repository  { return m.c }
