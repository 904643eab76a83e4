// Package templates implements CRUD over the persisted template catalog.
// Every mutation is a full read-modify-write of the catalog document.
package templates

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ratelab/greencast/internal/repository"
)

var ErrTemplateNotFound = errors.New("templates: template not found")

type Store struct {
	repo repository.TemplateRepository
}

func NewStore(repo repository.TemplateRepository) *Store {
	return &Store{repo: repo}
}

// List returns every template in catalog order. An absent catalog document
// reads as an empty list.
func (s *Store) List() ([]repository.Template, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	return catalog.Templates, nil
}

func (s *Store) Get(id string) (repository.Template, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return repository.Template{}, err
	}
	for _, t := range catalog.Templates {
		if t.ID == id {
			return t, nil
		}
	}
	return repository.Template{}, ErrTemplateNotFound
}

// FindByName returns the first template with the given display name.
// Names are unique by convention only, so first-match is the rule.
func (s *Store) FindByName(name string) (repository.Template, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return repository.Template{}, err
	}
	for _, t := range catalog.Templates {
		if t.Name == name {
			return t, nil
		}
	}
	return repository.Template{}, ErrTemplateNotFound
}

// Create appends a new template with a generated id and returns it.
func (s *Store) Create(name, text, filePath string) (repository.Template, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return repository.Template{}, err
	}
	t := repository.Template{
		ID:       uuid.NewString(),
		Name:     name,
		Text:     text,
		HasFile:  filePath != "",
		FilePath: filePath,
	}
	catalog.Templates = append(catalog.Templates, t)
	if err := s.repo.SaveTemplates(catalog); err != nil {
		return repository.Template{}, fmt.Errorf("failed to persist template catalog: %w", err)
	}
	return t, nil
}

func (s *Store) Rename(id, name string) (repository.Template, error) {
	return s.update(id, func(t *repository.Template) {
		t.Name = name
	})
}

func (s *Store) SetText(id, text string) (repository.Template, error) {
	return s.update(id, func(t *repository.Template) {
		t.Text = text
	})
}

// SetFile attaches (or replaces) the template's media file. The previous
// file, if any, stays on disk untouched.
func (s *Store) SetFile(id, filePath string) (repository.Template, error) {
	return s.update(id, func(t *repository.Template) {
		t.HasFile = true
		t.FilePath = filePath
	})
}

func (s *Store) ClearFile(id string) (repository.Template, error) {
	return s.update(id, func(t *repository.Template) {
		t.HasFile = false
		t.FilePath = ""
	})
}

// Delete removes exactly the template with the given id.
func (s *Store) Delete(id string) error {
	catalog, err := s.loadCatalog()
	if err != nil {
		return err
	}
	kept := catalog.Templates[:0]
	found := false
	for _, t := range catalog.Templates {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrTemplateNotFound
	}
	catalog.Templates = kept
	if err := s.repo.SaveTemplates(catalog); err != nil {
		return fmt.Errorf("failed to persist template catalog: %w", err)
	}
	return nil
}

func (s *Store) update(id string, mutate func(*repository.Template)) (repository.Template, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return repository.Template{}, err
	}
	for i := range catalog.Templates {
		if catalog.Templates[i].ID != id {
			continue
		}
		mutate(&catalog.Templates[i])
		if err := s.repo.SaveTemplates(catalog); err != nil {
			return repository.Template{}, fmt.Errorf("failed to persist template catalog: %w", err)
		}
		return catalog.Templates[i], nil
	}
	return repository.Template{}, ErrTemplateNotFound
}

func (s *Store) loadCatalog() (repository.TemplateCatalog, error) {
	catalog, err := s.repo.LoadTemplates()
	if errors.Is(err, repository.ErrNotFound) {
		return repository.TemplateCatalog{}, nil
	}
	if err != nil {
		return repository.TemplateCatalog{}, fmt.Errorf("failed to load template catalog: %w", err)
	}
	return catalog, nil
}
