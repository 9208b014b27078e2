// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/toeirei/contactbook/buildvars"
	"github.com/toeirei/contactbook/config"
	"github.com/toeirei/contactbook/internal/core"
	"github.com/toeirei/contactbook/internal/db"
	"github.com/toeirei/contactbook/internal/i18n"
	"github.com/toeirei/contactbook/internal/live"
	"github.com/toeirei/contactbook/internal/logging"
	"github.com/toeirei/contactbook/ui/tui"
)

// annotationNoStore marks commands that only need the configuration.
const annotationNoStore = "contactbook/no-store"

// app is the state shared by the root command and its subcommands for one
// invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg   config.Config
	store db.Store
	book  *live.Book
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initLanguage(os.Args[1:])

	a := &app{}
	defer func() {
		if err := a.teardown(); err != nil {
			logging.Errorf("Error during final cleanup: %v", err)
		}
	}()

	return newRootCmd(a).ExecuteContext(ctx)
}

// NewRootCmd creates and configures a new root cobra command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "contactbook",
		Short:        i18n.T("cli.short"),
		Long:         i18n.T("cli.long"),
		SilenceUsage: true,
		Version:      compositeVersion(),
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	defaults := config.Defaults()
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("database.type", defaults["database.type"].(string), "Database type (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("database.dsn", defaults["database.dsn"].(string), "Database connection string (DSN)")
	cmd.PersistentFlags().String("language", defaults["language"].(string), `UI language ("en", "de", "pt")`)

	cmd.AddCommand(
		newAddCmd(a),
		newEditCmd(a),
		newRmCmd(a),
		newLsCmd(a),
		newWatchCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newDBMaintainCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// initLanguage selects the UI language before the command tree is built, so
// help and usage text are translated too. It resolves --language, the
// environment and the config file the way setup does; anything it cannot
// read leaves the default language in place.
func initLanguage(args []string) {
	fs := pflag.NewFlagSet("contactbook", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.BoolP("help", "h", false, "")
	cfgFile := fs.String("config", "", "")
	lang := fs.String("language", "", "")
	_ = fs.Parse(args)

	if fs.Changed("language") {
		i18n.Init(*lang)
		return
	}
	cfg, err := config.LoadConfig[config.Config](nil, config.Defaults(), cfgFile)
	if err != nil {
		logging.Debugf("cli: language from config: %v", err)
		i18n.Init(config.Defaults()["language"].(string))
		return
	}
	i18n.Init(cfg.Language)
}

// setup loads the configuration, initialises i18n and, unless the command
// is annotated otherwise, opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	if a.verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	var configFile *string
	if cmd.Flags().Changed("config") && a.cfgFile != "" {
		if _, err := os.Stat(a.cfgFile); err != nil {
			return fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		configFile = &a.cfgFile
	}

	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), configFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg
	i18n.Init(cfg.Language)

	if cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}

	store, err := db.New(cfg.Database.Type, cfg.Database.Dsn)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	a.store = store
	a.book = live.NewBook(store)
	logging.Debugf("cli: opened %s store", cfg.Database.Type)
	return nil
}

// teardown closes the Book and the store. It is safe to call more than once.
func (a *app) teardown() error {
	var errs []error
	if a.book != nil {
		errs = append(errs, a.book.Close())
		a.book = nil
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	return errors.Join(errs...)
}

// startWatcher watches the SQLite file behind the store for writes by other
// processes. It returns nil when the store is not file backed.
func (a *app) startWatcher(ctx context.Context) (*live.FileWatcher, error) {
	fileStore, ok := a.store.(interface{ FilePath() string })
	if !ok || fileStore.FilePath() == "" {
		return nil, nil
	}
	fw, err := live.NewFileWatcher(fileStore.FilePath(), a.book)
	if err != nil {
		return nil, fmt.Errorf("watch database file: %w", err)
	}
	if err := fw.Start(ctx); err != nil {
		fw.Stop()
		return nil, fmt.Errorf("watch database file: %w", err)
	}
	return fw, nil
}

// logPath is log.file, or contactbook.log beside the user config file.
func (a *app) logPath() string {
	if a.cfg.Log.File != "" {
		return a.cfg.Log.File
	}
	p, err := config.GetConfigPath(false)
	if err != nil {
		return filepath.Join(os.TempDir(), "contactbook.log")
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filepath.Join(os.TempDir(), "contactbook.log")
	}
	return filepath.Join(dir, "contactbook.log")
}

func (a *app) runTUI(ctx context.Context) error {
	// Log lines would draw over the alternate screen.
	if closeLog, err := logging.SetOutputFile(a.logPath()); err != nil {
		logging.Warnf("could not redirect log output: %v", err)
	} else {
		defer func() { _ = closeLog() }()
	}

	if a.cfg.Watch.External {
		fw, err := a.startWatcher(ctx)
		if err != nil {
			logging.Warnf("%v", err)
		} else if fw != nil {
			defer fw.Stop()
		}
	}

	return tui.Run(ctx, a.book, core.NewController(a.book))
}

// version, gitCommit and buildDate fall back to buildvars and then to the
// module build info.
var (
	version   = buildvars.VersionOrDefault("dev")
	gitCommit = buildvars.CommitOrDefault("dev")
	buildDate = buildvars.Date
)

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := version
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && resolvedCommit == "dev" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort show the commit to aid support.
	if resolvedVersion == "dev" && resolvedCommit != "dev" && resolvedCommit != "" {
		resolvedVersion = resolvedCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" && c != v {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}
