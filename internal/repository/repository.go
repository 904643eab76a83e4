// Package repository defines the persisted configuration documents of the
// bot and the store contract over them. The documents are read-modify-
// written whole; there is no partial update and no cross-process locking,
// which is acceptable for a single-operator tool.
package repository

import "errors"

// ErrNotFound is returned when a document has never been saved.
var ErrNotFound = errors.New("repository: document not found")

type ProfileRepository interface {
	LoadProfile() (Profile, error)
	SaveProfile(Profile) error
}

type IntervalRepository interface {
	LoadInterval() (IntervalSetting, error)
	SaveInterval(IntervalSetting) error
}

type TemplateRepository interface {
	LoadTemplates() (TemplateCatalog, error)
	SaveTemplates(TemplateCatalog) error
}

type Repository interface {
	ProfileRepository
	IntervalRepository
	TemplateRepository
}
