package appeals

import (
	"context"
	"time"

	"appeal-archive/internal/models"
)

// Store is the persistence the listing needs.
type Store interface {
	ListAppeals(ctx context.Context, where string, args []any) ([]models.Appeal, error)
	DistinctStatuses(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Listing is everything the archive page renders.
type Listing struct {
	Appeals    []models.Appeal
	Statuses   []string
	Categories []models.Category

	DateFrom         string
	DateTo           string
	SelectedCategory string
	SelectedStatus   string
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the source of "today" used for the default window.
func (s *Service) WithClock(now func() time.Time) *Service {
	return &Service{store: s.store, now: now}
}

func (s *Service) List(ctx context.Context, p Params) (*Listing, error) {
	where, args := ParseFilter(p, s.now()).Where()

	items, err := s.store.ListAppeals(ctx, where, args)
	if err != nil {
		return nil, err
	}
	statuses, err := s.store.DistinctStatuses(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	l := &Listing{
		Appeals:          items,
		Statuses:         statuses,
		Categories:       categories,
		DateFrom:         p.DateFrom,
		DateTo:           p.DateTo,
		SelectedCategory: p.CategoryID,
		SelectedStatus:   p.Status,
	}
	if l.SelectedCategory == "" {
		l.SelectedCategory = Any
	}
	if l.SelectedStatus == "" {
		l.SelectedStatus = Any
	}
	return l, nil
}
