package db

import (
	"context"

	"github.com/toeirei/contactbook/internal/model"
	"github.com/uptrace/bun"
)

// ContactSearcher defines a minimal interface for searching contacts.
// Consumers can depend on this instead of concrete Store implementations.
type ContactSearcher interface {
	SearchContacts(ctx context.Context, query string) ([]model.Contact, error)
}

// BunContactSearcher is a Bun-based implementation of ContactSearcher.
type BunContactSearcher struct {
	bdb *bun.DB
}

// NewBunContactSearcher creates a new BunContactSearcher.
func NewBunContactSearcher(bdb *bun.DB) ContactSearcher {
	return &BunContactSearcher{bdb: bdb}
}

// SearchContacts delegates to the centralized Bun search helper.
func (s *BunContactSearcher) SearchContacts(ctx context.Context, q string) ([]model.Contact, error) {
	return SearchContactsBun(ctx, s.bdb, q)
}
