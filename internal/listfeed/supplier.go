// Package listfeed supplies sanction list entities to the index builder.
// Suppliers hand over fully-built records; acquiring and parsing the raw
// OFAC or UN publications happens upstream of this service.
package listfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/sanction"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
)

// Supplier yields the entities of one sanction list. An empty slice is a
// valid result and builds an empty index for that source.
type Supplier interface {
	Source() values.ListSource
	Entities(ctx context.Context) ([]*sanction.Entity, error)
}

// Static serves a fixed in-memory list. Used in tests and development
// setups that do not carry snapshot files.
type Static struct {
	source   values.ListSource
	entities []*sanction.Entity
}

func NewStatic(source values.ListSource, entities []*sanction.Entity) *Static {
	return &Static{source: source, entities: entities}
}

func (s *Static) Source() values.ListSource {
	return s.source
}

func (s *Static) Entities(_ context.Context) ([]*sanction.Entity, error) {
	return s.entities, nil
}

// snapshotRecord is the on-disk shape of one list entry. Snapshots carry
// already-canonical records; no list-format parsing happens here.
type snapshotRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Aliases   []string `json:"aliases,omitempty"`
	Programs  []string `json:"programs,omitempty"`
	Countries []string `json:"countries,omitempty"`
}

// FileSupplier reads a JSON snapshot file from disk on every call, so a
// rebuild picks up a replaced file without a restart.
type FileSupplier struct {
	source values.ListSource
	path   string
}

func NewFileSupplier(source values.ListSource, path string) *FileSupplier {
	return &FileSupplier{source: source, path: path}
}

func (f *FileSupplier) Source() values.ListSource {
	return f.source
}

func (f *FileSupplier) Entities(ctx context.Context) ([]*sanction.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s snapshot %s: %w", f.source, f.path, err)
	}

	var records []snapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s snapshot %s: %w", f.source, f.path, err)
	}

	entities := make([]*sanction.Entity, 0, len(records))
	for i, rec := range records {
		entityType, err := values.NewEntityType(rec.Type)
		if err != nil {
			return nil, fmt.Errorf("%s snapshot record %d (%s): %w", f.source, i, rec.ID, err)
		}
		entity, err := sanction.NewEntity(rec.ID, rec.Name, entityType, f.source)
		if err != nil {
			return nil, fmt.Errorf("%s snapshot record %d: %w", f.source, i, err)
		}
		entities = append(entities,
			entity.WithAliases(rec.Aliases...).
				WithPrograms(rec.Programs...).
				WithCountries(rec.Countries...))
	}

	return entities, nil
}
