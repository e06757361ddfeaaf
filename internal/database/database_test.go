package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/khrees2412/cvforge/internal/templates"
	"github.com/khrees2412/cvforge/pkg/models"
)

// createTestDB creates a temporary test database
func createTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := createTestDB(t)
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
}

func TestTemplateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(createTestDB(t))

	if err := repo.Save(ctx, "backend", "v1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, "backend", "v2"); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	if err := repo.Save(ctx, "data", "sql"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "backend")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "v2" {
		t.Errorf("Get = %q, want v2", got)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all["data"] != "sql" {
		t.Errorf("unexpected List: %v", all)
	}

	if err := repo.Delete(ctx, "backend"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "backend"); !errors.Is(err, templates.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "backend"); !errors.Is(err, templates.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestTemplateRepositoryWorksWithResolver(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(createTestDB(t))
	resolver := templates.NewResolver(repo, nil, nil)

	_, err := resolver.Resolve(ctx, models.JobPosting{}, templates.Input{CustomTemplate: "CV", TemplateName: "saved"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	res, err := resolver.Resolve(ctx, models.JobPosting{}, templates.Input{TemplateName: "saved"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.BaseText != "CV" {
		t.Errorf("BaseText = %q", res.BaseText)
	}
}

func TestTemplateRepositoryQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewTemplateRepository(db)
	mock.ExpectQuery("SELECT content FROM templates").
		WithArgs("x").
		WillReturnError(errors.New("database is locked"))

	_, err = repo.Get(context.Background(), "x")
	if err == nil || errors.Is(err, templates.ErrNotFound) {
		t.Fatalf("expected a non-NotFound error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestTemplateRepositorySaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO templates").
		WithArgs("n", "c", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	if err := NewTemplateRepository(db).Save(context.Background(), "n", "c"); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestHistoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(createTestDB(t))

	results := []models.CVResult{
		{JobPosting: models.JobPosting{Title: "Go Dev", Company: "Acme"}, Language: "english", CVTxt: "a.txt", CVFilename: "a.pdf", Rendered: true},
		{JobPosting: models.JobPosting{Title: "Programista", Company: "Acme"}, Language: "polish", CVTxt: "b.txt", CVFilename: "b.pdf"},
		{JobPosting: models.JobPosting{Title: "SRE", Company: "Beta", Location: "Remote"}, Language: "english", CVTxt: "c.txt", CVFilename: "c.pdf", Rendered: true},
	}
	for _, r := range results {
		if err := repo.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 generations, got %d", len(recent))
	}
	if recent[0].Title != "SRE" || recent[0].Location != "Remote" {
		t.Errorf("expected newest first, got %+v", recent[0])
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 || stats.Rendered != 2 || stats.Companies != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.ByLang["english"] != 2 || stats.ByLang["polish"] != 1 {
		t.Errorf("unexpected language breakdown %v", stats.ByLang)
	}
}
