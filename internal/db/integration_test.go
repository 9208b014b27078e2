// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/toeirei/contactbook/internal/model"
)

// TestIntegration_Smoke runs a minimal integration test against a real DB.
// It requires two env vars to be set by CI: INTEGRATION_DB ("postgres" or "mysql")
// and INTEGRATION_DSN (the driver DSN). If not present the test is skipped.
func TestIntegration_Smoke(t *testing.T) {
	dbType := os.Getenv("INTEGRATION_DB")
	dsn := os.Getenv("INTEGRATION_DSN")
	if dbType == "" || dsn == "" {
		t.Skip("integration DB env not set; skipping")
	}

	// Retry connecting for a short while to allow service startup in CI.
	var storeInst Store
	var err error
	for i := 0; i < 30; i++ {
		storeInst, err = NewStoreFromDSN(dbType, dsn)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		t.Fatalf("failed to initialize store for integration DB (%s): %v", dbType, err)
	}
	defer func() { _ = storeInst.Close() }()
	ctx := context.Background()

	// Start from an empty table.
	if err := storeInst.ImportDataFromBackup(ctx, &model.BackupData{SchemaVersion: backupSchemaVersion}); err != nil {
		t.Fatalf("ImportDataFromBackup(empty) failed on %s: %v", dbType, err)
	}

	// Upsert twice under the same name: one row, latest phone.
	if err := storeInst.UpsertContact(ctx, model.Contact{Name: "Ana", Phone: "111"}); err != nil {
		t.Fatalf("UpsertContact failed on %s: %v", dbType, err)
	}
	if err := storeInst.UpsertContact(ctx, model.Contact{Name: "Ana", Phone: "222"}); err != nil {
		t.Fatalf("UpsertContact (update) failed on %s: %v", dbType, err)
	}
	all, err := storeInst.GetAllContacts(ctx)
	if err != nil {
		t.Fatalf("GetAllContacts failed on %s: %v", dbType, err)
	}
	if len(all) != 1 || all[0] != (model.Contact{Name: "Ana", Phone: "222"}) {
		t.Fatalf("unexpected contacts on %s: %v", dbType, all)
	}

	backup, err := storeInst.ExportDataForBackup(ctx)
	if err != nil {
		t.Fatalf("ExportDataForBackup failed on %s: %v", dbType, err)
	}

	if err := storeInst.DeleteContact(ctx, "Ana"); err != nil {
		t.Fatalf("DeleteContact failed on %s: %v", dbType, err)
	}
	if err := storeInst.DeleteContact(ctx, "Ana"); err != nil {
		t.Fatalf("DeleteContact of missing row should be a no-op on %s: %v", dbType, err)
	}

	// Restore from backup
	if err := storeInst.ImportDataFromBackup(ctx, backup); err != nil {
		t.Fatalf("ImportDataFromBackup restore failed on %s: %v", dbType, err)
	}
	restored, err := storeInst.GetAllContacts(ctx)
	if err != nil {
		t.Fatalf("GetAllContacts after restore failed on %s: %v", dbType, err)
	}
	if len(restored) != len(backup.Contacts) {
		t.Fatalf("restore mismatch on %s: want %d got %d", dbType, len(backup.Contacts), len(restored))
	}
}
