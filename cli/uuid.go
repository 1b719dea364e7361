package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/montrey/sift/notes"
)

var flagWrite bool

var uuidCmd = &cobra.Command{
	Use:   "uuid <file.md...>",
	Short: "Give notes a permanent uuid",
	Long: `Add a uuid to the frontmatter of notes that lack one, so they can be
reached at /permalink/<uuid> wherever they move. Without --write the
resulting files are only checked and their uuids printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUUID,
}

func init() {
	uuidCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "Write the uuid back to the file")
	rootCmd.AddCommand(uuidCmd)
}

func runUUID(cmd *cobra.Command, args []string) error {
	for _, file := range args {
		info, err := os.Stat(file)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		out, id, added, err := notes.EnsureUUID(content)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if added && flagWrite {
			if err := os.WriteFile(file, out, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}
		}
		state := "existing"
		if added {
			state = "new"
			if !flagWrite {
				state = "new (not written)"
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", id, state, file)
	}
	return nil
}
