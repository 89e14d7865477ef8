package cli

import (
	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/index"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Refresh the frontmatter index",
	Long: `Re-reads notes whose modification time changed and drops notes that no
longer exist from the index in .comic/index.db. Commands refresh the index
on their own; this is for inspecting it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vaultPath := getVaultPath()
		db, err := index.Open(vaultPath)
		if err != nil {
			return handleErrorMsg(ErrDatabaseError, err.Error(), "")
		}
		defer db.Close()

		result, err := db.Sync(vault.NewFSStore(vaultPath))
		if err != nil {
			return handleErrorMsg(ErrDatabaseError, err.Error(), "")
		}
		stats, err := db.Stats()
		if err != nil {
			return handleErrorMsg(ErrDatabaseError, err.Error(), "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"sync":  result,
				"stats": stats,
			}, nil)
			return nil
		}

		printLine(ui.Successf("Indexed %s, removed %d",
			ui.Count(result.Indexed, "note", "notes"), result.Removed))
		if stats.ParseErrors > 0 {
			printLine(ui.Warningf("%s with unreadable headers",
				ui.Count(stats.ParseErrors, "note", "notes")))
		}
		printLine(ui.Hint(ui.Count(stats.Notes, "note", "notes") + " in index"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
