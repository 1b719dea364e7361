package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/montrey/sift/notes"
	"github.com/montrey/sift/search"
	"github.com/montrey/sift/session"
	"github.com/montrey/sift/store"
	"github.com/montrey/sift/ui"
)

var flagNoWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui [dir]",
	Short: "Search notes interactively",
	Long: `Search notes as you type. Enter opens the best match and prints its path;
Ctrl+O opens it with the configured opener and keeps searching.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload when notes change")
	}
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp(args)
	if err != nil {
		return err
	}
	defer a.Close()

	weights, err := a.weights()
	if err != nil {
		return err
	}
	c, err := a.load()
	if err != nil {
		return err
	}
	idx, err := a.buildIndex(c, weights)
	if err != nil {
		return err
	}

	var current atomic.Pointer[notes.Collection]
	current.Store(c)

	pages, feed := ui.PageFeed()
	sess := session.New(
		session.FlatRunner{Index: idx, Limit: a.cfg.Limit},
		session.WithDelay(a.cfg.Debounce()),
		feed,
	)
	defer sess.Close()

	last, err := store.LastQuery(a.db)
	if err != nil {
		slog.Warn("could not read last query", "error", err)
	}
	initial := sess.Init(last)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if a.cfg.Loader.Watch && !flagNoWatch {
		w, err := notes.NewWatcher(a.dir, a.cfg.WalkOptions(), 0, func(fresh *notes.Collection) {
			if err := store.ApplyTags(a.db, fresh.Units); err != nil {
				slog.Warn("ignoring user tags", "error", err)
			}
			idx, err := a.buildIndex(fresh, weights)
			if err != nil {
				slog.Error("reindex failed", "error", err)
				return
			}
			current.Store(fresh)
			sess.SetRunner(session.FlatRunner{Index: idx, Limit: a.cfg.Limit})
		})
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				slog.Error("watcher stopped", "error", err)
			}
		}()
	}

	onCommit := func(t session.Target) error {
		if err := store.RecordVisit(a.db, t.Key); err != nil {
			slog.Warn("could not record visit", "error", err)
		}
		if err := store.RecordQuery(a.db, sess.Query()); err != nil {
			slog.Warn("could not record query", "error", err)
		}
		if !t.NewContext {
			return nil
		}
		file, ok := localPath(current.Load(), t.Key)
		if !ok {
			return fmt.Errorf("%s is not on disk", t.Key)
		}
		return runCommandTemplate(a.cfg.Opener, file)
	}

	m := ui.NewModel(sess, pages, initial, ui.Options{
		Mode:         ui.ModeFlat,
		MaxDisplayed: a.cfg.MaxDisplayed,
		OnCommit:     onCommit,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if fm, ok := final.(ui.Model); ok && fm.Target != nil {
		if file, ok := localPath(current.Load(), fm.Target.Key); ok {
			fmt.Fprintln(cmd.OutOrStdout(), file)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), fm.Target.URL)
		}
	}
	return nil
}

// localPath maps a unit key back to the file or directory it came from.
func localPath(c *notes.Collection, key string) (string, bool) {
	u, ok := c.Lookup(key)
	if !ok {
		return "", false
	}
	return unitPath(c, u), true
}

func unitPath(c *notes.Collection, u search.Unit) string {
	return filepath.Join(c.Root, filepath.FromSlash(u.Path))
}
