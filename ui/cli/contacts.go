// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/toeirei/contactbook/internal/core"
	"github.com/toeirei/contactbook/internal/db"
	"github.com/toeirei/contactbook/internal/i18n"
	"github.com/toeirei/contactbook/internal/logging"
	"github.com/toeirei/contactbook/internal/model"
)

// newAddCmd creates the 'add' command. It goes through the same controller
// as the TUI form, so an existing name gets its phone replaced.
func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME PHONE",
		Short: i18n.T("cli.add.short"),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := core.NewController(a.book)
			ctrl.SetName(args[0])
			ctrl.SetPhone(args[1])
			saved, err := ctrl.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.saved", saved.String()))
			return nil
		},
	}
}

// newEditCmd creates the 'edit' command. Unlike 'add' it fails when NAME
// does not exist.
func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit NAME PHONE",
		Short: i18n.T("cli.edit.short"),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := a.book.Get(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				if errors.Is(err, db.ErrNotFound) {
					return fmt.Errorf("contact %q: %w", args[0], err)
				}
				return err
			}
			ctrl := core.NewController(a.book)
			ctrl.Edit(*existing)
			ctrl.SetPhone(args[1])
			saved, err := ctrl.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.saved", saved.String()))
			return nil
		},
	}
}

// newRmCmd creates the 'rm' command. Removing a missing name succeeds.
func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   i18n.T("cli.rm.short"),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return model.ErrEmptyName
			}
			ctrl := core.NewController(a.book)
			if err := ctrl.Delete(cmd.Context(), model.Contact{Name: name}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.removed", name))
			return nil
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   i18n.T("cli.ls.short"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				contacts []model.Contact
				err      error
			)
			if strings.TrimSpace(search) != "" {
				contacts, err = a.book.Search(cmd.Context(), search)
			} else {
				contacts, err = a.book.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(contacts) == 0 {
				fmt.Fprintln(out, i18n.T("cli.ls.empty"))
				return nil
			}
			printContacts(out, contacts, isTerminal(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only list contacts matching the query (typos tolerated)")
	return cmd
}

// newWatchCmd creates the 'watch' command. It prints every snapshot of the
// live list until interrupted; with an SQLite file it also sees writes made
// by other processes.
func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: i18n.T("cli.watch.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ctx := errgroup.WithContext(cmd.Context())

			sub, err := a.book.Subscribe(ctx)
			if err != nil {
				return err
			}
			if a.cfg.Watch.External {
				fw, err := a.startWatcher(ctx)
				if err != nil {
					return err
				}
				if fw != nil {
					g.Go(func() error {
						<-ctx.Done()
						fw.Stop()
						return nil
					})
				}
			}

			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.watch.started"))
			out := cmd.OutOrStdout()
			g.Go(func() error {
				for contacts := range sub {
					fmt.Fprintln(out, i18n.T("cli.watch.snapshot", len(contacts)))
					printContacts(out, contacts, false)
				}
				logging.Debugf("cli: watch subscription closed")
				return nil
			})
			return g.Wait()
		},
	}
}

// printContacts writes contacts as a bordered table on a terminal, and as
// tab separated "name<TAB>phone" lines otherwise.
func printContacts(w io.Writer, contacts []model.Contact, pretty bool) {
	if !pretty {
		for _, c := range contacts {
			fmt.Fprintf(w, "%s\t%s\n", c.Name, c.Phone)
		}
		return
	}

	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{c.Name, c.Phone})
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(strings.ToUpper(i18n.T("form.name")), strings.ToUpper(i18n.T("form.phone"))).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
