package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"appeal-archive/internal/models"
)

// Store runs the archive's queries against a migrated database.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewStore(conn *sqlx.DB, dialect Dialect) *Store {
	return &Store{db: conn, dialect: dialect}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// --- categories & statistics ---

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := s.db.SelectContext(ctx, &out, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *Store) CreateCategory(ctx context.Context, name string) (int64, error) {
	return createCategory(ctx, s.db, name)
}

func createCategory(ctx context.Context, ext sqlx.ExtContext, name string) (int64, error) {
	return insert(ctx, ext, "INSERT INTO categories (name) VALUES (?) RETURNING id", name)
}

func (s *Store) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	var out []models.CategoryStat
	err := s.db.SelectContext(ctx, &out, `SELECT c.name AS name, COUNT(a.id) AS count
		FROM categories c JOIN appeals a ON a.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return out, nil
}

func (s *Store) YearStats(ctx context.Context) ([]models.YearStat, error) {
	year := "strftime('%Y', date)"
	if s.dialect == Postgres {
		year = "to_char(date, 'YYYY')"
	}
	q := fmt.Sprintf(`SELECT %s AS year, COUNT(id) AS count
		FROM appeals GROUP BY year ORDER BY year`, year)

	var out []models.YearStat
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("year stats: %w", err)
	}
	return out, nil
}

// --- appeals ---

// ListAppeals returns appeals matching where, newest first. where is a
// ?-placeholder fragment over the columns of appeals aliased as "a"; an
// empty where selects everything.
func (s *Store) ListAppeals(ctx context.Context, where string, args []any) ([]models.Appeal, error) {
	var b strings.Builder
	b.WriteString(`SELECT a.id, a.number, a.date, a.category_id, c.name AS category_name,
		a.status, a.applicant, a.subject
		FROM appeals a JOIN categories c ON c.id = a.category_id`)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	b.WriteString(" ORDER BY a.date DESC, a.id DESC")

	var out []models.Appeal
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(b.String()), args...); err != nil {
		return nil, fmt.Errorf("list appeals: %w", err)
	}
	return out, nil
}

// DistinctStatuses returns every status present in the appeals table,
// ascending, regardless of any listing filter.
func (s *Store) DistinctStatuses(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.SelectContext(ctx, &out, "SELECT DISTINCT status FROM appeals ORDER BY status")
	if err != nil {
		return nil, fmt.Errorf("distinct statuses: %w", err)
	}
	return out, nil
}

func (s *Store) CreateAppeal(ctx context.Context, a models.Appeal) (int64, error) {
	return createAppeal(ctx, s.db, a)
}

func createAppeal(ctx context.Context, ext sqlx.ExtContext, a models.Appeal) (int64, error) {
	return insert(ctx, ext, `INSERT INTO appeals (number, date, category_id, status, applicant, subject)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		a.Number, a.Date, a.CategoryID, a.Status, a.Applicant, a.Subject)
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (int64, error) {
	if _, err := s.UserByUsername(ctx, username); err == nil {
		return 0, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return 0, err
	}
	return insert(ctx, s.db, "INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, ?) RETURNING id",
		username, passwordHash, isAdmin)
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.user(ctx, "SELECT id, username, password_hash, is_admin FROM users WHERE username = ?", username)
}

func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.user(ctx, "SELECT id, username, password_hash, is_admin FROM users WHERE id = ?", id)
}

func (s *Store) user(ctx context.Context, q string, arg any) (*models.User, error) {
	u := &models.User{}
	err := s.db.GetContext(ctx, u, s.db.Rebind(q), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// --- sessions ---

func (s *Store) CreateSession(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind("INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)"),
		token, userID, time.Now().Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *Store) SessionUser(ctx context.Context, token string) (int64, error) {
	var userID int64
	err := s.db.GetContext(ctx, &userID, s.db.Rebind("SELECT user_id FROM sessions WHERE token = ? AND expires_at > ?"),
		token, time.Now().Unix())
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM sessions WHERE token = ?"), token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// --- news ---

func (s *Store) LatestNews(ctx context.Context, limit int) ([]models.News, error) {
	var out []models.News
	err := s.db.SelectContext(ctx, &out, s.db.Rebind("SELECT id, title, content, created_at FROM news ORDER BY created_at DESC, id DESC LIMIT ?"), limit)
	if err != nil {
		return nil, fmt.Errorf("latest news: %w", err)
	}
	return out, nil
}

func (s *Store) ListNews(ctx context.Context) ([]models.News, error) {
	var out []models.News
	err := s.db.SelectContext(ctx, &out, "SELECT id, title, content, created_at FROM news ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return out, nil
}

func (s *Store) GetNews(ctx context.Context, id int64) (*models.News, error) {
	n := &models.News{}
	err := s.db.GetContext(ctx, n, s.db.Rebind("SELECT id, title, content, created_at FROM news WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNewsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get news %d: %w", id, err)
	}
	return n, nil
}

func (s *Store) CreateNews(ctx context.Context, n models.News) (int64, error) {
	return createNews(ctx, s.db, n)
}

func createNews(ctx context.Context, ext sqlx.ExtContext, n models.News) (int64, error) {
	return insert(ctx, ext, "INSERT INTO news (title, content, created_at) VALUES (?, ?, ?) RETURNING id",
		n.Title, n.Content, n.CreatedAt)
}

func (s *Store) UpdateNews(ctx context.Context, id int64, title, content string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("UPDATE news SET title = ?, content = ? WHERE id = ?"), title, content, id)
	if err != nil {
		return fmt.Errorf("update news %d: %w", id, err)
	}
	return expectRow(res, ErrNewsNotFound)
}

func (s *Store) DeleteNews(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM news WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete news %d: %w", id, err)
	}
	return expectRow(res, ErrNewsNotFound)
}

// --- helpers ---

func count(ctx context.Context, q sqlx.QueryerContext, table string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// insert runs an INSERT ... RETURNING id on the pool or inside a transaction.
func insert(ctx context.Context, ext sqlx.ExtContext, q string, args ...any) (int64, error) {
	var id int64
	if err := ext.QueryRowxContext(ctx, ext.Rebind(q), args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}
	return id, nil
}

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
