package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/montrey/sift/config"
	"github.com/montrey/sift/notes"
	"github.com/montrey/sift/session"
	"github.com/montrey/sift/toc"
	"github.com/montrey/sift/ui"
)

var flagInteractive bool

var tocCmd = &cobra.Command{
	Use:   "toc <file.md> [query...]",
	Short: "Search the headings of a markdown file",
	Long: `Print the heading tree of a markdown file. With a query only matching
headings are shown, under the sections that contain them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTOC,
}

func init() {
	tocCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Search the headings as you type")
	rootCmd.AddCommand(tocCmd)
}

func interactiveTOC(cmd *cobra.Command) bool {
	return cmd == tocCmd && flagInteractive
}

func runTOC(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	_, body, err := notes.ParseFrontmatter(content)
	if err != nil {
		return err
	}
	tree := toc.FromMarkdown(body)
	idx, err := toc.NewIndex(tree, cfg.IndexOptions()...)
	if err != nil {
		return err
	}
	runner := session.TOCRunner{Tree: tree, Index: idx, Limit: cfg.Limit}
	query := strings.Join(args[1:], " ")

	if !flagInteractive {
		page := runner.Run(query)
		if query != "" && len(page.Results) == 0 {
			return errNoMatch
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTree(page.Tree))
		return nil
	}

	pages, feed := ui.PageFeed()
	sess := session.New(runner, session.WithDelay(cfg.Debounce()), feed)
	defer sess.Close()
	initial := sess.Init(query)

	m := ui.NewModel(sess, pages, initial, ui.Options{
		Mode:         ui.ModeTOC,
		MaxDisplayed: cfg.MaxDisplayed,
	})
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	if fm, ok := final.(ui.Model); ok && fm.Target != nil {
		fmt.Fprintln(cmd.OutOrStdout(), args[0]+fm.Target.URL)
	}
	return nil
}
