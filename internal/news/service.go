// Package news validates archive news and renders its content safely.
//
// Title and content are stored as the editor typed them (trimmed). Content
// may carry simple markup and is passed through Sanitize when displayed.
package news

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"appeal-archive/internal/models"
)

var ErrEmptyFields = errors.New("title and content are required")

var contentPolicy = bluemonday.UGCPolicy()

// Sanitize reduces content to the markup allowed in news bodies.
func Sanitize(content string) string {
	return contentPolicy.Sanitize(content)
}

type Store interface {
	LatestNews(ctx context.Context, limit int) ([]models.News, error)
	ListNews(ctx context.Context) ([]models.News, error)
	GetNews(ctx context.Context, id int64) (*models.News, error)
	CreateNews(ctx context.Context, n models.News) (int64, error)
	UpdateNews(ctx context.Context, id int64, title, content string) error
	DeleteNews(ctx context.Context, id int64) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Latest(ctx context.Context, n int) ([]models.News, error) {
	return s.store.LatestNews(ctx, n)
}

func (s *Service) List(ctx context.Context) ([]models.News, error) {
	return s.store.ListNews(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*models.News, error) {
	return s.store.GetNews(ctx, id)
}

func (s *Service) Create(ctx context.Context, title, content string) (*models.News, error) {
	title, content, err := s.clean(title, content)
	if err != nil {
		return nil, err
	}
	n := models.News{Title: title, Content: content, CreatedAt: s.now().UTC()}
	id, err := s.store.CreateNews(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = id
	return &n, nil
}

func (s *Service) Update(ctx context.Context, id int64, title, content string) (*models.News, error) {
	title, content, err := s.clean(title, content)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateNews(ctx, id, title, content); err != nil {
		return nil, err
	}
	return s.store.GetNews(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteNews(ctx, id)
}

// clean trims both fields. A blank field, or content that displays as
// nothing once sanitised, rejects the whole submission.
func (s *Service) clean(title, content string) (string, string, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" || strings.TrimSpace(Sanitize(content)) == "" {
		return "", "", ErrEmptyFields
	}
	return title, content, nil
}
