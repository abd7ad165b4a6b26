package services

import (
	"context"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/dbx"
	"github.com/mkragh/cereald/internal/server/models"
	"github.com/mkragh/cereald/internal/server/repositories/cereals"
	"github.com/mkragh/cereald/internal/server/repositories/repomanager"
)

type CerealService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewCerealService(db dbx.DBTX, m repomanager.RepositoryManager) *CerealService {
	return &CerealService{db: db, repomanager: m}
}

// List applies the filter's conjunction of predicates and sort order. An
// empty filter returns the whole catalog in natural order.
func (s *CerealService) List(ctx context.Context, filter cereals.Filter) ([]models.Cereal, error) {
	return s.repomanager.Cereals(s.db).List(ctx, filter)
}

func (s *CerealService) Get(ctx context.Context, id int64) (*models.Cereal, error) {
	return s.repomanager.Cereals(s.db).GetByID(ctx, id)
}

// Create persists a new record; the id is assigned by the store and any id
// supplied by the caller is ignored.
func (s *CerealService) Create(ctx context.Context, cereal *models.Cereal) (*models.Cereal, error) {
	if cereal.Name == "" {
		return nil, common.ErrorValidation
	}
	cereal.ID = 0
	return s.repomanager.Cereals(s.db).Create(ctx, cereal)
}

// Update replaces the record at id with the supplied payload. The payload's
// id must match the addressed record; a mismatch is a validation failure.
func (s *CerealService) Update(ctx context.Context, id int64, cereal *models.Cereal) error {
	if cereal.ID != id {
		return common.ErrorValidation
	}
	if cereal.Name == "" {
		return common.ErrorValidation
	}
	return s.repomanager.Cereals(s.db).Update(ctx, cereal)
}

func (s *CerealService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Cereals(s.db).Delete(ctx, id)
}
