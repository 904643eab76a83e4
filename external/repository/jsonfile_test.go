package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ratelab/greencast/internal/repository"
)

func TestLoadProfile_Absent(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := repo.LoadProfile(); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveLoadProfile(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	in := repository.Profile{
		Name:             "work",
		APIURL:           "https://1103.api.green-api.com",
		MediaURL:         "https://1103.media.green-api.com",
		InstanceID:       "1101000001",
		APITokenInstance: "secret",
	}
	if err := repo.SaveProfile(in); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out, err := repo.LoadProfile()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestSeedDefaults(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.SeedDefaults(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, name := range []string{"profile.json", "interval.json", "templates.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to exist, got %v", name, err)
		}
	}
	setting, err := repo.LoadInterval()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if setting.Interval != repository.DefaultIntervalSeconds {
		t.Fatalf("expected default interval %d, got %d", repository.DefaultIntervalSeconds, setting.Interval)
	}
}

func TestSeedDefaults_KeepsExisting(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.SaveInterval(repository.IntervalSetting{Interval: 30}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.SeedDefaults(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	setting, err := repo.LoadInterval()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if setting.Interval != 30 {
		t.Fatalf("expected existing interval 30 to survive seeding, got %d", setting.Interval)
	}
}

func TestSaveLoadTemplates(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	in := repository.TemplateCatalog{Templates: []repository.Template{
		{ID: "a", Name: "Скидка", Text: "Скидка 20% до пятницы", HasFile: true, FilePath: "files/promo.jpg"},
		{ID: "b", Name: "Напоминание", Text: "Ждём вас завтра"},
	}}
	if err := repo.SaveTemplates(in); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out, err := repo.LoadTemplates()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(out.Templates))
	}
	if out.Templates[0] != in.Templates[0] || out.Templates[1] != in.Templates[1] {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestLoad_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "interval.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := repo.LoadInterval(); err == nil {
		t.Fatal("expected error for malformed document")
	}
}
