package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/khrees2412/cvforge/pkg/models"
)

// Template operations

// TemplateRepository is a templates.Store backed by SQLite
type TemplateRepository struct {
	DB *sql.DB
}

var _ templates.Store = (*TemplateRepository)(nil)

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) List(ctx context.Context) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT name, content FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	all := map[string]string{}
	for rows.Next() {
		var name, content string
		if err := rows.Scan(&name, &content); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		all[name] = content
	}
	return all, rows.Err()
}

func (r *TemplateRepository) Get(ctx context.Context, name string) (string, error) {
	var content string
	err := r.DB.QueryRowContext(ctx, `SELECT content FROM templates WHERE name=?`, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", templates.ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get template: %w", err)
	}
	return content, nil
}

func (r *TemplateRepository) Save(ctx context.Context, name, content string) error {
	query := `INSERT INTO templates (name, content) VALUES (?, ?)
			  ON CONFLICT(name) DO UPDATE SET content=excluded.content, updated_at=?`
	if _, err := r.DB.ExecContext(ctx, query, name, content, time.Now()); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, name string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM templates WHERE name=?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", templates.ErrNotFound, name)
	}
	return nil
}

// Generation operations

// Generation is one recorded CV generation
type Generation struct {
	ID          int
	Title       string
	Company     string
	Location    string
	Link        string
	Language    string
	CVTxt       string
	CVFilename  string
	Rendered    bool
	GeneratedAt time.Time
}

// Stats summarizes the generation history
type Stats struct {
	Total     int
	Rendered  int
	Companies int
	ByLang    map[string]int
}

// HistoryRepository records generated CVs
type HistoryRepository struct {
	DB *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) Record(ctx context.Context, result models.CVResult) error {
	query := `INSERT INTO generations (title, company, location, link, language, cv_txt, cv_filename, rendered)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query, result.Title, result.Company, result.Location, result.Link,
		result.Language, result.CVTxt, result.CVFilename, result.Rendered)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// Recent returns the latest generations, newest first
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, title, company, location, link, language, cv_txt, cv_filename, rendered, generated_at
			  FROM generations ORDER BY generated_at DESC, id DESC LIMIT ?`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	gens := []Generation{}
	for rows.Next() {
		var g Generation
		var location, link sql.NullString
		if err := rows.Scan(&g.ID, &g.Title, &g.Company, &location, &link, &g.Language,
			&g.CVTxt, &g.CVFilename, &g.Rendered, &g.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		g.Location = location.String
		g.Link = link.String
		gens = append(gens, g)
	}
	return gens, rows.Err()
}

func (r *HistoryRepository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByLang: map[string]int{}}

	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(rendered), 0), COUNT(DISTINCT company) FROM generations`).
		Scan(&stats.Total, &stats.Rendered, &stats.Companies)
	if err != nil {
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT language, COUNT(*) FROM generations GROUP BY language`)
	if err != nil {
		return nil, fmt.Errorf("failed to group generations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var language string
		var count int
		if err := rows.Scan(&language, &count); err != nil {
			return nil, err
		}
		stats.ByLang[language] = count
	}
	return stats, rows.Err()
}
