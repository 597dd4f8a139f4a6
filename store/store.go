// Package store provides the entity persistence hooks used by node
// implementations (work orders, schedules, parts orders). The workflow
// runtime never sees this interface; only specific executors depend on it.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no entity exists for the requested id.
var ErrNotFound = errors.New("entity not found")

// Entity is a generic persisted record: a stable id, a kind discriminator
// and flat string attributes.
type Entity struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	c := Entity{ID: e.ID, Kind: e.Kind}
	if e.Attributes != nil {
		c.Attributes = make(map[string]string, len(e.Attributes))
		for k, v := range e.Attributes {
			c.Attributes[k] = v
		}
	}
	return c
}

// EntityStore abstracts entity persistence. Implementations must be safe
// for concurrent use.
type EntityStore interface {
	// Load returns the entity for id, or ErrNotFound.
	Load(ctx context.Context, id string) (Entity, error)

	// Save persists the entity, replacing any previous version.
	Save(ctx context.Context, e Entity) error
}
