package db

import (
	"context"

	"github.com/toeirei/contactbook/internal/model"
)

// FakeContactSearcher is a minimal, configurable fake used by tests.
type FakeContactSearcher struct {
	// Results to return from SearchContacts. If nil, an empty slice is returned.
	Results []model.Contact
	// Err to return from SearchContacts if non-nil.
	Err error
	// Queries records every query received.
	Queries []string
}

// SearchContacts implements ContactSearcher for the fake.
func (f *FakeContactSearcher) SearchContacts(ctx context.Context, query string) ([]model.Contact, error) {
	f.Queries = append(f.Queries, query)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Results == nil {
		return []model.Contact{}, nil
	}
	return f.Results, nil
}
