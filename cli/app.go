package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/montrey/sift/config"
	"github.com/montrey/sift/notes"
	"github.com/montrey/sift/search"
	"github.com/montrey/sift/store"
)

// app bundles what every command loads: configuration, the history store
// and the notes directory.
type app struct {
	cfg *config.Config
	db  *sql.DB
	dir string
}

func newApp(args []string) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	dbPath := flagDB
	if dbPath == "" {
		dbPath = store.DefaultPath()
	}
	db, err := store.InitDB(dbPath)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, db: db, dir: cfg.NotesDir}
	if len(args) > 0 && args[0] != "" {
		a.dir = args[0]
	}
	a.applySettings()
	return a, nil
}

func (a *app) Close() {
	a.db.Close()
}

// applySettings lets values saved in the store override the config file.
func (a *app) applySettings() {
	if v, ok, err := store.GetFloatSetting(a.db, store.SettingThreshold); err == nil && ok && v >= 0 && v <= 1 {
		a.cfg.Threshold = v
	}
	if v, ok, err := store.GetFloatSetting(a.db, store.SettingLimit); err == nil && ok && v >= 1 && v <= search.MaxLimit {
		a.cfg.Limit = int(v)
	}
}

// load reads the notes tree and overlays user tags.
func (a *app) load() (*notes.Collection, error) {
	c, err := notes.Load(a.dir, a.cfg.WalkOptions())
	if err != nil {
		return nil, err
	}
	if err := store.ApplyTags(a.db, c.Units); err != nil {
		slog.Warn("ignoring user tags", "error", err)
	}
	return c, nil
}

func (a *app) buildIndex(c *notes.Collection, weights search.Weights) (*search.Index, error) {
	return search.BuildIndex(c.Units, weights, a.cfg.IndexOptions()...)
}

func (a *app) weights() (search.Weights, error) {
	return a.cfg.SearchWeights()
}

// runCommandTemplate starts a shell command with {path} substituted.
func runCommandTemplate(cmdTemplate, path string) error {
	if strings.TrimSpace(cmdTemplate) == "" {
		return fmt.Errorf("no opener configured")
	}
	cmdStr := strings.ReplaceAll(cmdTemplate, "{path}", path)
	cmd := exec.Command("bash", "-lc", cmdStr)
	return cmd.Start()
}
