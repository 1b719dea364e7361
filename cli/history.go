package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/montrey/sift/store"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently opened notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := store.GetRecentHistory(a.db, flagHistoryLimit)
		if err != nil {
			return err
		}
		for _, it := range items {
			tags, err := store.GetTagsForKey(a.db, it.Key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n",
				it.LastVisited.Format("2006-01-02 15:04"), it.Frequency, it.Key, strings.Join(tags, ","))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of entries")
	rootCmd.AddCommand(historyCmd)
}
