package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"appeal-archive/internal/models"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData is the on-disk shape of seed.yaml.
type SeedData struct {
	Categories []string `yaml:"categories"`
	Appeals    []struct {
		Number    string `yaml:"number"`
		Date      string `yaml:"date"`
		Category  string `yaml:"category"`
		Status    string `yaml:"status"`
		Applicant string `yaml:"applicant"`
		Subject   string `yaml:"subject"`
	} `yaml:"appeals"`
	News []struct {
		Title     string    `yaml:"title"`
		Content   string    `yaml:"content"`
		CreatedAt time.Time `yaml:"created_at"`
	} `yaml:"news"`
}

// DefaultSeed parses the embedded demo data set.
func DefaultSeed() (*SeedData, error) {
	return ParseSeed(defaultSeed)
}

func ParseSeed(raw []byte) (*SeedData, error) {
	var sd SeedData
	if err := yaml.Unmarshal(raw, &sd); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &sd, nil
}

// Seed loads categories, appeals and news when the categories table is
// empty. It reports whether anything was inserted. The whole data set is
// inserted in one transaction, so a failure leaves the database empty and
// the next start tries again.
func (s *Store) Seed(ctx context.Context, sd *SeedData) (seeded bool, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("seed: begin: %w", err)
	}
	defer func() {
		if err != nil || !seeded {
			tx.Rollback()
		}
	}()

	n, err := count(ctx, tx, "categories")
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	ids := make(map[string]int64, len(sd.Categories))
	for _, name := range sd.Categories {
		id, err := createCategory(ctx, tx, name)
		if err != nil {
			return false, fmt.Errorf("seed category %q: %w", name, err)
		}
		ids[name] = id
	}

	for _, a := range sd.Appeals {
		catID, ok := ids[a.Category]
		if !ok {
			return false, fmt.Errorf("seed appeal %s: unknown category %q", a.Number, a.Category)
		}
		date, err := models.ParseDate(a.Date)
		if err != nil {
			return false, fmt.Errorf("seed appeal %s: %w", a.Number, err)
		}
		_, err = createAppeal(ctx, tx, models.Appeal{
			Number:     a.Number,
			Date:       date,
			CategoryID: catID,
			Status:     a.Status,
			Applicant:  a.Applicant,
			Subject:    a.Subject,
		})
		if err != nil {
			return false, fmt.Errorf("seed appeal %s: %w", a.Number, err)
		}
	}

	for _, item := range sd.News {
		_, err := createNews(ctx, tx, models.News{Title: item.Title, Content: item.Content, CreatedAt: item.CreatedAt.UTC()})
		if err != nil {
			return false, fmt.Errorf("seed news %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("seed: commit: %w", err)
	}
	return true, nil
}

// SeedAdmin creates the first administrator when no users exist yet.
func (s *Store) SeedAdmin(ctx context.Context, username, passwordHash string) (bool, error) {
	n, err := count(ctx, s.db, "users")
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.CreateUser(ctx, username, passwordHash, true); err != nil {
		return false, err
	}
	return true, nil
}
