package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/ui"
)

var (
	flagTitleOnly bool
	flagLimit     int
	flagAll       bool
	flagDir       string
)

var queryCmd = &cobra.Command{
	Use:   "query <terms...>",
	Short: "Print the path of the best match",
	Long: `Search notes without the interface. The best match's path is printed and
the command exits with status 1 when nothing matches.`,
	Example: `  cd "$(sift query install linux)"
  sift query --all --limit 10 'install !windows'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.BoolVar(&flagTitleOnly, "title-only", false, "Match titles only")
	f.IntVar(&flagLimit, "limit", 0, "Maximum number of results with --all")
	f.BoolVar(&flagAll, "all", false, "Print every result instead of the best one")
	f.StringVar(&flagDir, "dir", "", "Notes directory (default from config)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := newApp(dirArgs(flagDir))
	if err != nil {
		return err
	}
	defer a.Close()

	weights, err := a.weights()
	if err != nil {
		return err
	}
	limit := a.cfg.Limit
	if flagTitleOnly {
		weights = search.IndexWeights()
		limit = search.IndexLimit
	}
	if flagLimit > 0 {
		limit = min(flagLimit, search.MaxLimit)
	}

	c, err := a.load()
	if err != nil {
		return err
	}
	idx, err := a.buildIndex(c, weights)
	if err != nil {
		return err
	}

	results := idx.Search(strings.Join(args, " "), limit)
	if len(results) == 0 {
		return errNoMatch
	}

	out := cmd.OutOrStdout()
	if !flagAll {
		fmt.Fprintln(out, unitPath(c, *results[0].Unit))
		return nil
	}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprintln(out, ui.RenderResults(results, -1, a.cfg.MaxDisplayed))
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%.4f\t%s\n", r.Score, unitPath(c, *r.Unit))
	}
	return nil
}

func dirArgs(dir string) []string {
	if dir == "" {
		return nil
	}
	return []string{dir}
}
