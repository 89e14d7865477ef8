package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/config"
	"github.com/aidanlsb/comic/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the vault's comic.yaml",
	Long: `Reads and writes the comic settings stored in comic.yaml at the vault root.

Settings:
  comicTitle       display label
  updateSchedule   days between episodes (default 14)
  episodeFolder    where episode notes go (default publishing/episodes)
  characterFolder  where character notes go (default characters)
  plotFolder       which notes count as plot events (default plot)
  chapters         comma-separated chapter names
  slugFilenames    slugify new note file names (true/false)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all comic settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vaultPath := getVaultPath()
		comicCfg, err := config.LoadComicConfig(vaultPath)
		var warnings []Warning
		if err != nil {
			if !errors.Is(err, config.ErrComicConfigCorrupt) {
				return handleError(err)
			}
			warnings = append(warnings, Warning{Code: ErrConfigInvalid, Message: err.Error()})
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"path":     config.ComicConfigPath(vaultPath),
				"settings": comicCfg,
			}, warnings, nil)
			return nil
		}

		for _, w := range warnings {
			printLine(ui.Warning(w.Message + " (showing defaults)"))
		}
		printLine(ui.Hint(config.ComicConfigPath(vaultPath)))
		tbl := ui.NewTable(2)
		for _, key := range config.ComicKeys() {
			v, _ := comicCfg.Get(key)
			tbl.AddRow(key, ui.NoteName(v))
		}
		printf("%s", tbl.String())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one comic setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comicCfg := loadComicConfig(getVaultPath())
		v, err := comicCfg.Get(args[0])
		if err != nil {
			return handleError(err)
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"key": args[0], "value": v}, nil)
			return nil
		}
		printLine(v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one comic setting",
	Example: `  comic config set updateSchedule 7
  comic config set chapters "Arrival, The Job, Aftermath"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		vaultPath := getVaultPath()
		comicCfg := loadComicConfig(vaultPath)
		if err := comicCfg.Set(args[0], args[1]); err != nil {
			return handleError(err)
		}
		if err := config.SaveComicConfig(vaultPath, comicCfg); err != nil {
			return handleErrorMsg(ErrFileWriteError, err.Error(), "")
		}

		v, _ := comicCfg.Get(args[0])
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"key": args[0], "value": v}, nil)
			return nil
		}
		printLine(ui.Successf("%s = %s", args[0], v))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
