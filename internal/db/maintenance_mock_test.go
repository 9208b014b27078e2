// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// mockMaintenanceDB routes sqlOpenFunc to a sqlmock handle for one test.
func mockMaintenanceDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	dbMock, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	orig := sqlOpenFunc
	sqlOpenFunc = func(driverName, dsn string) (*sql.DB, error) { return dbMock, nil }
	t.Cleanup(func() {
		sqlOpenFunc = orig
		_ = dbMock.Close()
	})
	return mock
}

// contactsSchemaTables is what SHOW TABLES reports after the MySQL migrations.
func contactsSchemaTables() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Tables_in_contactbook"}).
		AddRow("contacts").
		AddRow("schema_migrations")
}

func TestRunDBMaintenance_Sqlite_WithMock(t *testing.T) {
	tests := []struct {
		name          string
		skipIntegrity bool
		integrity     string
		wantErr       bool
	}{
		{name: "healthy contacts file", integrity: "ok"},
		{name: "corrupt contacts page", integrity: "*** in database main ***\nPage 3: btreeInitPage() returns error code 11", wantErr: true},
		{name: "integrity skipped", skipIntegrity: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := mockMaintenanceDB(t)
			mock.ExpectExec("PRAGMA optimize").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("VACUUM").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("PRAGMA wal_checkpoint\\(").WillReturnResult(sqlmock.NewResult(0, 0))
			if !tt.skipIntegrity {
				mock.ExpectQuery("PRAGMA integrity_check").
					WillReturnRows(sqlmock.NewRows([]string{"integrity_check"}).AddRow(tt.integrity))
			}

			err := RunDBMaintenanceContext(context.Background(), TypeSQLite, "contacts.db", tt.skipIntegrity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RunDBMaintenanceContext error = %v, wantErr %v", err, tt.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestRunDBMaintenance_Sqlite_WithMock_OptimizeFailure(t *testing.T) {
	mock := mockMaintenanceDB(t)
	mock.ExpectExec("PRAGMA optimize").WillReturnError(errors.New("optimize fail"))

	if err := RunDBMaintenanceContext(context.Background(), TypeSQLite, "contacts.db", false); err == nil {
		t.Fatalf("expected error when PRAGMA optimize fails")
	}
}

func TestRunDBMaintenance_Postgres_WithMock(t *testing.T) {
	mock := mockMaintenanceDB(t)
	mock.ExpectExec("VACUUM ANALYZE").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := RunDBMaintenanceContext(context.Background(), TypePostgres, "dsn", false); err != nil {
		t.Fatalf("expected postgres maintenance to succeed, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunDBMaintenance_Postgres_WithMock_Failure(t *testing.T) {
	mock := mockMaintenanceDB(t)
	mock.ExpectExec("VACUUM ANALYZE").WillReturnError(errors.New("vacuum fail"))
	if err := RunDBMaintenanceContext(context.Background(), TypePostgres, "dsn", false); err == nil {
		t.Fatalf("expected error when VACUUM ANALYZE fails")
	}
}

func TestRunDBMaintenance_MySQL_OptimizesContactsAndMigrations(t *testing.T) {
	mock := mockMaintenanceDB(t)
	mock.ExpectQuery("SHOW TABLES").WillReturnRows(contactsSchemaTables())
	mock.ExpectExec("OPTIMIZE TABLE contacts").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("OPTIMIZE TABLE schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := RunDBMaintenanceContext(context.Background(), TypeMySQL, "dsn", false); err != nil {
		t.Fatalf("expected mysql maintenance to succeed, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunDBMaintenance_MySQL_ContactsFailureStillOptimizesRest(t *testing.T) {
	mock := mockMaintenanceDB(t)
	optimizeErr := errors.New("table is locked")
	mock.ExpectQuery("SHOW TABLES").WillReturnRows(contactsSchemaTables())
	mock.ExpectExec("OPTIMIZE TABLE contacts").WillReturnError(optimizeErr)
	mock.ExpectExec("OPTIMIZE TABLE schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

	err := RunDBMaintenanceContext(context.Background(), TypeMySQL, "dsn", false)
	if !errors.Is(err, optimizeErr) {
		t.Fatalf("expected wrapped optimize error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("schema_migrations should still be optimized: %v", err)
	}
}
