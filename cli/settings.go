package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [key] [value]",
	Short: "Show or change saved settings",
	Long: `Saved settings override the config file. Known keys are limit and
threshold. With no arguments every key is printed.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	a, err := newApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()
	out := cmd.OutOrStdout()

	switch len(args) {
	case 0:
		fmt.Fprintf(out, "%s\t%d\n", store.SettingLimit, a.cfg.Limit)
		fmt.Fprintf(out, "%s\t%g\n", store.SettingThreshold, a.cfg.Threshold)
		return nil
	case 1:
		v, err := store.GetSetting(a.db, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
		return nil
	}

	key, raw := args[0], args[1]
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number: %w", key, err)
	}
	switch key {
	case store.SettingLimit:
		if v < 1 || v > search.MaxLimit || v != float64(int(v)) {
			return fmt.Errorf("limit must be a whole number between 1 and %d", search.MaxLimit)
		}
	case store.SettingThreshold:
		if v < 0 || v > 1 {
			return fmt.Errorf("threshold must be between 0 and 1")
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return store.SetSetting(a.db, key, raw)
}
