package sanction

import (
	"strings"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
)

// Entity is a sanctioned individual or organization as published on a
// government list. Entities are immutable once loaded: they are owned by the
// index snapshot that was built from them and are replaced wholesale on
// rebuild, never mutated in place.
type Entity struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Aliases   []string          `json:"aliases,omitempty"`
	Type      values.EntityType `json:"type"`
	Source    values.ListSource `json:"source"`
	Programs  []string          `json:"programs,omitempty"`
	Countries []string          `json:"countries,omitempty"`
}

// NewEntity creates a validated sanction list entity
func NewEntity(id, name string, entityType values.EntityType, source values.ListSource) (*Entity, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("EMPTY_ENTITY_ID", "entity ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewValidationError("EMPTY_ENTITY_NAME", "entity name is required")
	}
	if !entityType.IsValid() {
		return nil, errors.NewValidationError("INVALID_ENTITY_TYPE", "entity type is invalid")
	}
	if !source.IsValid() {
		return nil, errors.NewValidationError("INVALID_LIST_SOURCE", "list source is invalid")
	}

	return &Entity{
		ID:     strings.TrimSpace(id),
		Name:   strings.TrimSpace(name),
		Type:   entityType,
		Source: source,
	}, nil
}

// WithAliases sets alias names, dropping empties and duplicates of the
// canonical name. Insertion order is preserved for audit output; matching
// itself does not depend on it.
func (e *Entity) WithAliases(aliases ...string) *Entity {
	for _, a := range aliases {
		a = strings.TrimSpace(a)
		if a == "" || strings.EqualFold(a, e.Name) {
			continue
		}
		if e.hasAlias(a) {
			continue
		}
		e.Aliases = append(e.Aliases, a)
	}
	return e
}

// WithPrograms sets sanctions program tags
func (e *Entity) WithPrograms(programs ...string) *Entity {
	for _, p := range programs {
		p = strings.TrimSpace(p)
		if p != "" {
			e.Programs = append(e.Programs, strings.ToUpper(p))
		}
	}
	return e
}

// WithCountries sets associated ISO country codes
func (e *Entity) WithCountries(countries ...string) *Entity {
	for _, c := range countries {
		c = strings.TrimSpace(c)
		if c != "" {
			e.Countries = append(e.Countries, strings.ToUpper(c))
		}
	}
	return e
}

func (e *Entity) hasAlias(alias string) bool {
	for _, existing := range e.Aliases {
		if strings.EqualFold(existing, alias) {
			return true
		}
	}
	return false
}

// AllNames returns the canonical name followed by all aliases. The matcher
// scores a subject against every variant and reports only the best one.
func (e *Entity) AllNames() []string {
	names := make([]string, 0, len(e.Aliases)+1)
	names = append(names, e.Name)
	names = append(names, e.Aliases...)
	return names
}

// HasAnyProgram reports whether the entity is tagged under any of the given
// program codes (upper-cased comparison).
func (e *Entity) HasAnyProgram(programs map[string]bool) bool {
	for _, p := range e.Programs {
		if programs[p] {
			return true
		}
	}
	return false
}

// HasCountry reports whether the entity is associated with the country code
func (e *Entity) HasCountry(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range e.Countries {
		if c == code {
			return true
		}
	}
	return false
}
