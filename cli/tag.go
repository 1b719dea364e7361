package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/montrey/sift/notes"
	"github.com/montrey/sift/store"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage user tags",
	Long: `User tags are kept in the history database and searched alongside the
tags written in note frontmatter.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <tag> <path>",
	Short: "Tag a note or directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTagKey(args, store.AddTag)
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <tag> <path>",
	Short: "Remove a tag from a note or directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTagKey(args, store.RemoveTag)
	},
}

var tagLsCmd = &cobra.Command{
	Use:   "ls [tag]",
	Short: "List tags, or the notes carrying one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(dirArgs(flagDir))
		if err != nil {
			return err
		}
		defer a.Close()

		var lines []string
		if len(args) == 0 {
			lines, err = store.GetAllTags(a.db)
		} else {
			lines, err = store.GetKeysForTag(a.db, args[0])
		}
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

func init() {
	tagCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Notes directory (default from config)")
	tagCmd.AddCommand(tagAddCmd, tagRmCmd, tagLsCmd)
	rootCmd.AddCommand(tagCmd)
}

func withTagKey(args []string, fn func(db *sql.DB, tag, key string) error) error {
	a, err := newApp(dirArgs(flagDir))
	if err != nil {
		return err
	}
	defer a.Close()

	tag := strings.TrimSpace(args[0])
	if tag == "" {
		return fmt.Errorf("tag must not be empty")
	}
	key, err := noteKey(a.dir, args[1])
	if err != nil {
		return err
	}
	return fn(a.db, tag, key)
}

// noteKey accepts either a web path or a filesystem path inside root.
func noteKey(root, p string) (string, error) {
	if strings.HasPrefix(p, notes.WebRoot+"/") || p == notes.WebRoot {
		return p, nil
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not inside %s", p, absRoot)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		rel = ""
	}
	return notes.WebPath(rel, info.IsDir()), nil
}
