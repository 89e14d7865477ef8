package cli

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/log"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

// now is the clock for relative date arguments.
var now = time.Now

var openCmd = &cobra.Command{
	Use:   "open <reference>",
	Short: "Make a note active and open it in your editor",
	Long: `Makes a note the active note and opens it in your editor.

Plot commands link from the active note. The reference can be a basename
("The Heist"), a path ("plot/The Heist"), or a wikilink ("[[The Heist]]").

The editor is the 'editor' setting in config.toml, then $EDITOR.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := vault.Resolve(vault.NewFSStore(getVaultPath()), args[0], "")
		if err != nil {
			return handleError(err)
		}
		if err := setActiveNote(note.Path); err != nil {
			return handleError(err)
		}

		noEditor, _ := cmd.Flags().GetBool("no-editor")
		if isJSONOutput() {
			opened := false
			if !noEditor {
				opened, _ = openInEditor(note.Path)
			}
			outputSuccess(map[string]interface{}{
				"path":   note.Path,
				"active": true,
				"opened": opened,
				"editor": getConfig().GetEditor(),
			}, nil)
			return nil
		}

		printLine(ui.Successf("Active note: %s", ui.NoteName(note.Path)))
		if !noEditor {
			reportEditor(note.Path)
		}
		return nil
	},
}

// finishCreate makes a new note active, reports it and opens it unless
// --no-open was given.
func finishCreate(cmd *cobra.Command, relPath string, data interface{}) error {
	if err := setActiveNote(relPath); err != nil {
		log.WithComponent("cli").Warn("could not record active note", "path", relPath, "error", err)
	}
	if isJSONOutput() {
		outputSuccess(data, nil)
		return nil
	}

	printLine(ui.Successf("Created %s", ui.NoteName(relPath)))
	if noOpen, _ := cmd.Flags().GetBool("no-open"); !noOpen {
		reportEditor(relPath)
	}
	return nil
}

func openInEditor(relPath string) (bool, error) {
	full := filepath.Join(getVaultPath(), filepath.FromSlash(relPath))
	return vault.OpenInEditor(getConfig().GetEditor(), full)
}

func reportEditor(relPath string) {
	opened, err := openInEditor(relPath)
	switch {
	case err != nil:
		printLine(ui.Warningf("could not start editor: %v", err))
	case !opened:
		printLine(ui.Hint("No editor configured; set 'editor' in config.toml or $EDITOR"))
	default:
		printLine(ui.Hint("Opening " + relPath))
	}
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the active note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if clearActive, _ := cmd.Flags().GetBool("clear"); clearActive {
			if err := setActiveNote(""); err != nil {
				return handleError(err)
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"active": nil}, nil)
			} else {
				printLine(ui.Success("Cleared active note"))
			}
			return nil
		}

		active, err := activeNotePath("")
		if err != nil {
			return handleError(err)
		}
		svc, done := openService()
		defer done()

		if isJSONOutput() {
			var data interface{}
			if active != "" {
				data = map[string]interface{}{
					"path":       active,
					"plot_event": svc.CanLinkPlot(active),
				}
			}
			outputSuccess(map[string]interface{}{"active": data}, nil)
			return nil
		}
		if active == "" {
			printLine(ui.Hint("No active note. Run 'comic open <note>'."))
			return nil
		}
		line := ui.NoteName(active)
		if svc.CanLinkPlot(active) {
			line += " " + ui.Hint("(plot event)")
		}
		printLine(line)
		return nil
	},
}

func init() {
	openCmd.Flags().Bool("no-editor", false, "Only mark the note active")
	activeCmd.Flags().Bool("clear", false, "Clear the active note")
	rootCmd.AddCommand(openCmd, activeCmd)
}
