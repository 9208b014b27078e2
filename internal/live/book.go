// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// Package live exposes the contact store as a reactive list. A Book
// serialises mutations and pushes a fresh snapshot of all contacts to every
// subscriber after each change, whether made through the Book or detected on
// disk by a FileWatcher.
package live

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/toeirei/contactbook/internal/db"
	"github.com/toeirei/contactbook/internal/logging"
	"github.com/toeirei/contactbook/internal/model"
)

// ErrClosed is returned by operations on a closed Book.
var ErrClosed = errors.New("live: book closed")

// Book is a reactive facade over a db.Store.
type Book struct {
	mu       sync.Mutex
	store    db.Store
	searcher db.ContactSearcher
	subs     map[*subscription]struct{}
	last     []model.Contact
	closed   bool
	done     chan struct{}
	wg       sync.WaitGroup
}

// Option configures a Book.
type Option func(*Book)

// WithSearcher replaces the searcher used by Search. By default Search runs
// against the store's bun handle.
func WithSearcher(s db.ContactSearcher) Option {
	return func(b *Book) { b.searcher = s }
}

type subscription struct {
	ch chan []model.Contact
}

// NewBook wraps store. The Book does not own the store; closing the Book
// leaves the store open.
func NewBook(store db.Store, opts ...Option) *Book {
	b := &Book{
		store: store,
		subs:  make(map[*subscription]struct{}),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.searcher == nil {
		b.searcher = db.NewBunContactSearcher(store.BunDB())
	}
	return b
}

// Store returns the underlying store.
func (b *Book) Store() db.Store { return b.store }

// Upsert inserts c or replaces the phone of the contact with the same name,
// then publishes the new list.
func (b *Book) Upsert(ctx context.Context, c model.Contact) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if err := b.store.UpsertContact(ctx, c); err != nil {
		return fmt.Errorf("upsert contact %q: %w", c.Name, err)
	}
	return b.publishLocked(ctx, true)
}

// Delete removes the contact with c's name. Deleting an absent contact is
// not an error.
func (b *Book) Delete(ctx context.Context, c model.Contact) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if err := b.store.DeleteContact(ctx, c.Name); err != nil {
		return fmt.Errorf("delete contact %q: %w", c.Name, err)
	}
	return b.publishLocked(ctx, true)
}

// Import restores a backup. With full set the table is wiped first,
// otherwise every contact of the backup is upserted.
func (b *Book) Import(ctx context.Context, backup *model.BackupData, full bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	var err error
	if full {
		err = b.store.ImportDataFromBackup(ctx, backup)
	} else {
		err = b.store.IntegrateDataFromBackup(ctx, backup)
	}
	if err != nil {
		return fmt.Errorf("import backup: %w", err)
	}
	return b.publishLocked(ctx, true)
}

// List returns a one-shot snapshot of all contacts in insertion order.
func (b *Book) List(ctx context.Context) ([]model.Contact, error) {
	return b.store.GetAllContacts(ctx)
}

// Get returns the contact with the given name or db.ErrNotFound.
func (b *Book) Get(ctx context.Context, name string) (*model.Contact, error) {
	return b.store.GetContact(ctx, name)
}

// Search filters contacts by the tokens of query.
func (b *Book) Search(ctx context.Context, query string) ([]model.Contact, error) {
	return b.searcher.SearchContacts(ctx, query)
}

// Refresh reloads the list from the store and publishes it if it differs
// from the last published snapshot.
func (b *Book) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return b.publishLocked(ctx, false)
}

// Subscribe returns a channel carrying the current list immediately and a
// new list after every change. Delivery is latest-wins: a receiver that
// falls behind only ever sees the newest snapshot. The channel is closed
// when ctx is done or the Book is closed.
func (b *Book) Subscribe(ctx context.Context) (<-chan []model.Contact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	snap, err := b.store.GetAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	b.last = snap
	sub := &subscription{ch: make(chan []model.Contact, 1)}
	sub.ch <- slices.Clone(snap)
	b.subs[sub] = struct{}{}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.mu.Lock()
		delete(b.subs, sub)
		close(sub.ch)
		b.mu.Unlock()
	}()
	return sub.ch, nil
}

// Close closes every subscription channel and waits for their goroutines.
func (b *Book) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}

func (b *Book) publishLocked(ctx context.Context, force bool) error {
	snap, err := b.store.GetAllContacts(ctx)
	if err != nil {
		return fmt.Errorf("reload contacts: %w", err)
	}
	if !force && b.last != nil && slices.Equal(b.last, snap) {
		return nil
	}
	b.last = snap
	logging.Debugf("live: publishing %d contacts to %d subscribers", len(snap), len(b.subs))
	for sub := range b.subs {
		// Only publishers send, and they hold b.mu, so after draining the
		// buffer the send cannot block.
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- slices.Clone(snap)
	}
	return nil
}
