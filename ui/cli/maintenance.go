// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/toeirei/contactbook/config"
	"github.com/toeirei/contactbook/internal/db"
	"github.com/toeirei/contactbook/internal/i18n"
)

// nowFunc is replaced in tests to get a stable default backup name.
var nowFunc = time.Now

// newBackupCmd creates the 'backup' command.
//
// If an output file is specified, '.zst' is appended when missing. Without
// one, 'contactbook-backup-YYYY-MM-DD.json.zst' is used.
func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: i18n.T("cli.backup.short"),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := fmt.Sprintf("contactbook-backup-%s.json.zst", nowFunc().Format("2006-01-02"))
			if len(args) == 1 {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}

			data, err := a.store.ExportDataForBackup(cmd.Context())
			if err != nil {
				return fmt.Errorf("export contacts: %w", err)
			}
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("create backup file: %w", err)
			}
			if err := db.WriteBackup(f, data); err != nil {
				_ = f.Close()
				return fmt.Errorf("write backup: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.backup.done", len(data.Contacts), outputFile))
			return nil
		},
	}
}

// newRestoreCmd creates the 'restore' command. By default it integrates the
// backup (upserting every contact); --full wipes all contacts first and asks
// for confirmation unless --yes is given.
func newRestoreCmd(a *app) *cobra.Command {
	var full, yes bool
	cmd := &cobra.Command{
		Use:   "restore <backup-file.zst>",
		Short: i18n.T("cli.restore.short"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.restore.started", inputFile))

			f, err := os.Open(inputFile)
			if err != nil {
				return fmt.Errorf("open backup: %w", err)
			}
			defer func() { _ = f.Close() }()
			backup, err := db.ReadBackup(f)
			if err != nil {
				return err
			}

			if full && !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), i18n.T("cli.restore.confirm", len(backup.Contacts)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restore.aborted"))
					return nil
				}
			}

			if err := a.book.Import(cmd.Context(), backup, full); err != nil {
				return fmt.Errorf("import backup: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restore.done", len(backup.Contacts), inputFile))
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Perform a full, destructive restore (wipes all existing contacts first)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// confirm asks question on out and reads a y/yes answer from in. A stdin
// that is not a terminal cannot answer, so it is refused.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, errors.New("refusing to ask for confirmation on a non-interactive stdin; pass --yes")
	}
	fmt.Fprint(out, question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "j", "ja", "s", "sim":
		return true, nil
	}
	return false, nil
}

// newDBMaintainCmd creates the 'db-maintain' command which runs
// engine-specific maintenance (VACUUM, OPTIMIZE TABLE, PRAGMA optimize).
func newDBMaintainCmd(a *app) *cobra.Command {
	var (
		skipIntegrity bool
		timeoutSec    int
	)
	cmd := &cobra.Command{
		Use:   "db-maintain",
		Short: i18n.T("cli.db_maintain.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeoutSec > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
				defer cancel()
			}
			if err := db.RunDBMaintenanceContext(ctx, a.cfg.Database.Type, a.cfg.Database.Dsn, skipIntegrity); err != nil {
				return fmt.Errorf("maintenance failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.db_maintain.done"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipIntegrity, "skip-integrity", false, "Skip integrity_check (SQLite) during maintenance")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Timeout in seconds for maintenance (0 means no timeout)")
	return cmd
}

// newConfigCmd creates the 'config' command which persists the effective
// configuration (defaults, file, environment and flags merged).
func newConfigCmd(a *app) *cobra.Command {
	var system bool
	cmd := &cobra.Command{
		Use:         "config",
		Short:       i18n.T("cli.config.short"),
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteConfigFile(&a.cfg, system)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.config.written", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, "Write the system-wide config instead of the user config")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       i18n.T("cli.version.short"),
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoStore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}
