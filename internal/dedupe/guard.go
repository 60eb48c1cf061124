// Package dedupe implements the duplicate-detection protocol for global
// reference entities (companies, sources) created by free-text name.
//
// The protocol is "advisory check + authoritative constraint": the guard's
// lookup avoids most collisions and produces a friendly error, while the
// store's uniqueness constraint on (kind, normalized_name) is the authority
// of last resort for concurrent writers. No in-process locking is involved;
// it could not help across service instances anyway.
package dedupe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Entity is the minimal shape the guard needs from a reference entity.
// *domain.Company and *domain.Source implement it.
type Entity interface {
	EntityID() uuid.UUID
	DisplayName() string
}

// FindFunc looks up an entity of the guard's kind by canonical key.
// It must return domain.ErrNotFound (possibly wrapped) when no entity
// holds the key.
type FindFunc[E Entity] func(ctx context.Context, normalized string) (E, error)

// Guard decides whether a create or rename may proceed for a given kind.
// It is stateless; every call is a single decision over current store
// contents.
type Guard[E Entity] struct {
	kind domain.EntityKind
	find FindFunc[E]
}

// New creates a guard for one entity kind over the given lookup.
func New[E Entity](kind domain.EntityKind, find FindFunc[E]) *Guard[E] {
	return &Guard[E]{kind: kind, find: find}
}

// Key returns the canonical key for name under the guard's kind.
func (g *Guard[E]) Key(name string) string {
	return domain.NormalizeName(g.kind, name)
}

// Lookup returns the entity currently holding name's canonical key, or
// domain.ErrNotFound.
func (g *Guard[E]) Lookup(ctx context.Context, name string) (E, error) {
	return g.find(ctx, g.Key(name))
}

// CheckAvailable verifies that no entity of the guard's kind holds name's
// canonical key. On success it returns the key for the caller to persist
// alongside the display name. If the key is taken it returns a
// *domain.DuplicateEntityError carrying the existing entity's id and name.
func (g *Guard[E]) CheckAvailable(ctx context.Context, name string) (string, error) {
	return g.check(ctx, name, uuid.Nil)
}

// CheckRename is CheckAvailable with the entity being renamed excluded from
// the collision check, so renaming "Acme Corp" to "ACME, Inc." collides only
// with other entities.
func (g *Guard[E]) CheckRename(ctx context.Context, name string, selfID uuid.UUID) (string, error) {
	return g.check(ctx, name, selfID)
}

func (g *Guard[E]) check(ctx context.Context, name string, selfID uuid.UUID) (string, error) {
	key := g.Key(name)

	existing, err := g.find(ctx, key)
	switch {
	case err == nil:
		if selfID != uuid.Nil && existing.EntityID() == selfID {
			return key, nil
		}
		return "", domain.NewDuplicateEntityError(g.kind, existing.EntityID(), existing.DisplayName())
	case errors.Is(err, domain.ErrNotFound):
		return key, nil
	default:
		return "", fmt.Errorf("find %s by normalized name: %w", strings.ToLower(g.kind.String()), err)
	}
}

// ResolveWriteError translates a uniqueness-constraint violation surfaced by
// the store (domain.ErrAlreadyExists) into the same DuplicateEntityError the
// optimistic pre-check produces, re-reading the winning row so callers see
// one contract regardless of which path detected the collision. Any other
// error, including nil, passes through unchanged.
func (g *Guard[E]) ResolveWriteError(ctx context.Context, writeErr error, name string) error {
	if writeErr == nil || !errors.Is(writeErr, domain.ErrAlreadyExists) {
		return writeErr
	}

	existing, err := g.find(ctx, g.Key(name))
	if err != nil {
		// The winner may have been renamed or deleted between the failed
		// insert and this read; surface the raw conflict.
		return writeErr
	}

	return domain.NewDuplicateEntityError(g.kind, existing.EntityID(), existing.DisplayName())
}
