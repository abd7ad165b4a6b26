package services

import (
	"context"
	"testing"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/server/models"
	cerealsrepo "github.com/mkragh/cereald/internal/server/repositories/cereals"
)

func TestCerealList_PassesFilterThrough(t *testing.T) {
	repo := &fakeCerealsRepo{listOut: []models.Cereal{{ID: 1, Name: "Corn Flakes"}}}
	s := NewCerealService(nil, &fakeRepoManager{c: repo})

	mfr := "K"
	filter := cerealsrepo.Filter{Mfr: &mfr, Sort: "rating_desc"}

	got, err := s.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Corn Flakes" {
		t.Fatalf("unexpected list: %+v", got)
	}
	if repo.lastFilter.Mfr == nil || *repo.lastFilter.Mfr != "K" || repo.lastFilter.Sort != "rating_desc" {
		t.Fatalf("filter not passed through: %+v", repo.lastFilter)
	}
}

func TestCerealCreate_IgnoresSuppliedID(t *testing.T) {
	repo := &fakeCerealsRepo{}
	s := NewCerealService(nil, &fakeRepoManager{c: repo})

	created, err := s.Create(context.Background(), &models.Cereal{ID: 999, Name: "Crunchy Oats"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("expected store-assigned id, got %d", created.ID)
	}
}

func TestCerealCreate_EmptyName(t *testing.T) {
	s := NewCerealService(nil, &fakeRepoManager{c: &fakeCerealsRepo{}})

	_, err := s.Create(context.Background(), &models.Cereal{})
	if err != common.ErrorValidation {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
}

func TestCerealCreate_DuplicateName(t *testing.T) {
	repo := &fakeCerealsRepo{createErr: common.ErrorAlreadyExists}
	s := NewCerealService(nil, &fakeRepoManager{c: repo})

	_, err := s.Create(context.Background(), &models.Cereal{Name: "Corn Flakes"})
	if err != common.ErrorAlreadyExists {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCerealUpdate_IDMismatch(t *testing.T) {
	repo := &fakeCerealsRepo{}
	s := NewCerealService(nil, &fakeRepoManager{c: repo})

	err := s.Update(context.Background(), 1, &models.Cereal{ID: 2, Name: "Corn Flakes"})
	if err != common.ErrorValidation {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("store must not be touched on id mismatch")
	}
}

func TestCerealUpdate_NotFound(t *testing.T) {
	repo := &fakeCerealsRepo{updateErr: common.ErrorNotFound}
	s := NewCerealService(nil, &fakeRepoManager{c: repo})

	err := s.Update(context.Background(), 99, &models.Cereal{ID: 99, Name: "Ghost"})
	if err != common.ErrorNotFound {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestCerealGet_Idempotent(t *testing.T) {
	repo := &fakeCerealsRepo{getOut: &models.Cereal{ID: 3, Name: "Cheerios", Rating: 50.76}}
	s := NewCerealService(nil, &fakeRepoManager{c: repo})

	first, err := s.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	second, err := s.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if *first != *second {
		t.Fatalf("expected identical records, got %+v and %+v", first, second)
	}
}

func TestCerealDelete_PassesID(t *testing.T) {
	repo := &fakeCerealsRepo{}
	s := NewCerealService(nil, &fakeRepoManager{c: repo})

	if err := s.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if repo.deletedID != 5 {
		t.Fatalf("expected delete of id 5, got %d", repo.deletedID)
	}
}
