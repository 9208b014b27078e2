package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/toeirei/contactbook/internal/model"
	"github.com/uptrace/bun"
)

// backupSchemaVersion is written into every export and checked on import.
const backupSchemaVersion = 1

// ContactModel maps the `contacts` table for Bun queries.
type ContactModel struct {
	bun.BaseModel `bun:"table:contacts"`
	Name          string    `bun:"name,pk"`
	Phone         string    `bun:"phone,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// --- Mapping helpers (centralized conversions) ---
func contactModelToModel(cm ContactModel) model.Contact {
	return model.Contact{Name: cm.Name, Phone: cm.Phone}
}

func contactModelsToModels(cms []ContactModel) []model.Contact {
	out := make([]model.Contact, 0, len(cms))
	for _, cm := range cms {
		out = append(out, contactModelToModel(cm))
	}
	return out
}

// UpsertContactBun inserts a contact or, when a row with the same name
// exists, replaces its phone and updated_at. created_at is left untouched on
// conflict so the row keeps its position in the list.
func UpsertContactBun(ctx context.Context, idb bun.IDB, dbType string, c model.Contact) error {
	now := time.Now().UTC()
	m := &ContactModel{Name: c.Name, Phone: c.Phone, CreatedAt: now, UpdatedAt: now}
	q := idb.NewInsert().Model(m)
	if dbType == TypeMySQL {
		q = q.On("DUPLICATE KEY UPDATE").
			Set("phone = VALUES(phone)").
			Set("updated_at = VALUES(updated_at)")
	} else {
		q = q.On("CONFLICT (name) DO UPDATE").
			Set("phone = EXCLUDED.phone").
			Set("updated_at = EXCLUDED.updated_at")
	}
	if _, err := q.Exec(ctx); err != nil {
		return MapDBError(err)
	}
	return nil
}

// DeleteContactBun removes the contact with the given name. Deleting a name
// that does not exist is not an error.
func DeleteContactBun(ctx context.Context, idb bun.IDB, name string) error {
	_, err := idb.NewDelete().Model((*ContactModel)(nil)).Where("name = ?", name).Exec(ctx)
	return err
}

// GetContactBun returns the contact stored under name or ErrNotFound.
func GetContactBun(ctx context.Context, idb bun.IDB, name string) (*model.Contact, error) {
	var cm ContactModel
	err := idb.NewSelect().Model(&cm).Where("name = ?", name).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c := contactModelToModel(cm)
	return &c, nil
}

// GetAllContactsBun returns every contact in insertion order.
func GetAllContactsBun(ctx context.Context, idb bun.IDB) ([]model.Contact, error) {
	var cms []ContactModel
	if err := idb.NewSelect().Model(&cms).Order("created_at ASC", "name ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return contactModelsToModels(cms), nil
}

// likeEscaper makes %, _ and the escape character itself literal inside a
// LIKE pattern. '!' is used because backslash handling differs per dialect.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchContactsBun returns contacts whose name or phone contains every token
// of q (case-insensitive). When nothing matches literally it falls back to
// FilterContactsByTokens, which tolerates small typos in names.
func SearchContactsBun(ctx context.Context, idb bun.IDB, q string) ([]model.Contact, error) {
	tokens := TokenizeSearchQuery(q)
	if len(tokens) == 0 {
		return GetAllContactsBun(ctx, idb)
	}

	var cms []ContactModel
	sel := idb.NewSelect().Model(&cms)
	for _, tok := range tokens {
		like := "%" + likeEscaper.Replace(tok) + "%"
		sel = sel.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Where("LOWER(name) LIKE ? ESCAPE '!'", like).
				WhereOr("LOWER(phone) LIKE ? ESCAPE '!'", like)
		})
	}
	if err := sel.Order("created_at ASC", "name ASC").Scan(ctx); err != nil {
		return nil, err
	}
	if len(cms) > 0 {
		return contactModelsToModels(cms), nil
	}

	all, err := GetAllContactsBun(ctx, idb)
	if err != nil {
		return nil, err
	}
	return FilterContactsByTokens(all, tokens), nil
}

// ExportDataForBackupBun collects every contact into a BackupData.
func ExportDataForBackupBun(ctx context.Context, idb bun.IDB) (*model.BackupData, error) {
	contacts, err := GetAllContactsBun(ctx, idb)
	if err != nil {
		return nil, fmt.Errorf("export contacts: %w", err)
	}
	return &model.BackupData{SchemaVersion: backupSchemaVersion, Contacts: contacts}, nil
}

func checkBackup(backup *model.BackupData) error {
	if backup == nil {
		return errors.New("backup data is nil")
	}
	if backup.SchemaVersion > backupSchemaVersion {
		return fmt.Errorf("backup schema version %d is newer than supported version %d", backup.SchemaVersion, backupSchemaVersion)
	}
	return nil
}

// ImportDataFromBackupBun performs a full wipe-and-replace using a Bun transaction.
func ImportDataFromBackupBun(ctx context.Context, bdb *bun.DB, dbType string, backup *model.BackupData) error {
	if err := checkBackup(backup); err != nil {
		return err
	}
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		// Raw DELETE because Bun requires a WHERE clause for Delete queries to
		// prevent accidental full-table deletes.
		if _, err := ExecRaw(ctx, tx, "DELETE FROM contacts"); err != nil {
			return fmt.Errorf("failed to clear contacts: %w", err)
		}
		for _, c := range backup.Contacts {
			if err := UpsertContactBun(ctx, tx, dbType, c); err != nil {
				return fmt.Errorf("failed to restore contact %q: %w", c.Name, err)
			}
		}
		return nil
	})
}

// IntegrateDataFromBackupBun upserts every backed-up contact inside one
// transaction and leaves contacts absent from the backup alone.
func IntegrateDataFromBackupBun(ctx context.Context, bdb *bun.DB, dbType string, backup *model.BackupData) error {
	if err := checkBackup(backup); err != nil {
		return err
	}
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		for _, c := range backup.Contacts {
			if err := UpsertContactBun(ctx, tx, dbType, c); err != nil {
				return fmt.Errorf("failed to integrate contact %q: %w", c.Name, err)
			}
		}
		return nil
	})
}

// bunStore carries the Store implementation shared by every dialect. The
// per-engine types embed it and add engine-specific helpers.
type bunStore struct {
	bun    *bun.DB
	dbType string
	dsn    string
}

func (s *bunStore) UpsertContact(ctx context.Context, c model.Contact) error {
	if err := UpsertContactBun(ctx, s.bun, s.dbType, c); err != nil {
		return fmt.Errorf("upsert contact %q: %w", c.Name, err)
	}
	dbLogf("db: upserted contact %q", c.Name)
	return nil
}

func (s *bunStore) DeleteContact(ctx context.Context, name string) error {
	if err := DeleteContactBun(ctx, s.bun, name); err != nil {
		return fmt.Errorf("delete contact %q: %w", name, err)
	}
	dbLogf("db: deleted contact %q", name)
	return nil
}

func (s *bunStore) GetContact(ctx context.Context, name string) (*model.Contact, error) {
	return GetContactBun(ctx, s.bun, name)
}

func (s *bunStore) GetAllContacts(ctx context.Context) ([]model.Contact, error) {
	return GetAllContactsBun(ctx, s.bun)
}

func (s *bunStore) SearchContacts(ctx context.Context, query string) ([]model.Contact, error) {
	return SearchContactsBun(ctx, s.bun, query)
}

func (s *bunStore) ExportDataForBackup(ctx context.Context) (*model.BackupData, error) {
	return ExportDataForBackupBun(ctx, s.bun)
}

func (s *bunStore) ImportDataFromBackup(ctx context.Context, backup *model.BackupData) error {
	return ImportDataFromBackupBun(ctx, s.bun, s.dbType, backup)
}

func (s *bunStore) IntegrateDataFromBackup(ctx context.Context, backup *model.BackupData) error {
	return IntegrateDataFromBackupBun(ctx, s.bun, s.dbType, backup)
}

func (s *bunStore) Type() string { return s.dbType }

func (s *bunStore) BunDB() *bun.DB { return s.bun }

func (s *bunStore) Close() error { return s.bun.Close() }
