package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ratelab/greencast/internal/repository"
)

const (
	profileFile   = "profile.json"
	intervalFile  = "interval.json"
	templatesFile = "templates.json"
)

// FileRepository stores each configuration document as a pretty-printed
// JSON file under a single directory.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

// SeedDefaults writes the initial documents for any file that does not
// exist yet, so a fresh install starts with an editable profile, the
// default interval and an empty template catalog.
func (r *FileRepository) SeedDefaults() error {
	if _, err := r.LoadProfile(); errors.Is(err, repository.ErrNotFound) {
		if err := r.SaveProfile(repository.DefaultProfile()); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	if _, err := r.LoadInterval(); errors.Is(err, repository.ErrNotFound) {
		if err := r.SaveInterval(repository.IntervalSetting{Interval: repository.DefaultIntervalSeconds}); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	if _, err := r.LoadTemplates(); errors.Is(err, repository.ErrNotFound) {
		if err := r.SaveTemplates(repository.TemplateCatalog{Templates: []repository.Template{}}); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}

func (r *FileRepository) LoadProfile() (repository.Profile, error) {
	var p repository.Profile
	err := r.load(profileFile, &p)
	return p, err
}

func (r *FileRepository) SaveProfile(p repository.Profile) error {
	return r.save(profileFile, p)
}

func (r *FileRepository) LoadInterval() (repository.IntervalSetting, error) {
	var s repository.IntervalSetting
	err := r.load(intervalFile, &s)
	return s, err
}

func (r *FileRepository) SaveInterval(s repository.IntervalSetting) error {
	return r.save(intervalFile, s)
}

func (r *FileRepository) LoadTemplates() (repository.TemplateCatalog, error) {
	var c repository.TemplateCatalog
	err := r.load(templatesFile, &c)
	return c, err
}

func (r *FileRepository) SaveTemplates(c repository.TemplateCatalog) error {
	return r.save(templatesFile, c)
}

func (r *FileRepository) load(name string, out any) error {
	b, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (r *FileRepository) save(name string, doc any) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, name), append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
