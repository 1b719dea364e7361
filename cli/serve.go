package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/montrey/sift/notes"
	"github.com/montrey/sift/store"
	"github.com/montrey/sift/web"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve search over HTTP",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload when notes change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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
	srv, err := web.New(c, web.Options{
		Weights:      weights,
		IndexOptions: a.cfg.IndexOptions(),
		Limit:        a.cfg.Limit,
		MaxDisplayed: a.cfg.MaxDisplayed,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.Loader.Watch && !flagNoWatch {
		w, err := notes.NewWatcher(a.dir, a.cfg.WalkOptions(), 0, func(fresh *notes.Collection) {
			if err := store.ApplyTags(a.db, fresh.Units); err != nil {
				slog.Warn("ignoring user tags", "error", err)
			}
			if err := srv.Reload(fresh); err != nil {
				slog.Error("reindex failed", "error", err)
			}
		})
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Error("watcher stopped", "error", err)
			}
		}()
	}

	addr := flagAddr
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	return web.Run(ctx, addr, srv.Handler())
}

