package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/comic"
	"github.com/aidanlsb/comic/internal/ui"
)

var characterCmd = &cobra.Command{
	Use:     "character",
	Aliases: []string{"ch"},
	Short:   "Create character notes and show palettes",
}

var characterNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a character note",
	Long: `Creates a character note in the character folder with a palette block
and the standard trait headings. Every field is required.

Examples:
  comic character new Mira --gender ♀ --color "#ff8800" --location Harbor --weapon harpoon`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done := openService()
		defer done()

		in, err := characterForm(cmd, svc.UI, args)
		if err != nil {
			return handleError(err)
		}
		note, err := svc.NewCharacter(in)
		if err != nil {
			return handleError(err)
		}
		return finishCreate(cmd, note.Path, map[string]interface{}{
			"path":  note.Path,
			"color": strings.ToLower(in.Color),
		})
	},
}

func characterForm(cmd *cobra.Command, p ui.Prompter, args []string) (comic.CharacterInput, error) {
	fs := cmd.Flags()
	var in comic.CharacterInput
	var err error

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if in.Name, err = requiredValue(fs, p, "name", "name", name); err != nil {
		return in, err
	}
	if in.Gender, err = formChoice(fs, p, "gender", "gender", comic.Genders, ""); err != nil {
		return in, err
	}
	if in.Color, err = formValue(fs, p, "color", "color", comic.DefaultColor); err != nil {
		return in, err
	}
	if in.Location, err = requiredValue(fs, p, "location", "location", ""); err != nil {
		return in, err
	}
	if in.Weapon, err = requiredValue(fs, p, "weapon", "weapon", ""); err != nil {
		return in, err
	}
	return in, nil
}

var characterPaletteCmd = &cobra.Command{
	Use:   "palette <character>",
	Short: "Show a character's palette colors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done := openService()
		defer done()

		palette, err := svc.Palette(args[0])
		if err != nil {
			return handleError(err)
		}
		if isJSONOutput() {
			outputSuccess(palette, &Meta{Count: len(palette.Colors)})
			return nil
		}

		printLine(ui.Header(palette.Note.Basename))
		for i, color := range palette.Colors {
			label := ""
			if i < len(palette.Aliases) {
				label = ui.Hint(palette.Aliases[i])
			}
			printf("  %s  %s\n", ui.Swatch(color), label)
		}
		return nil
	},
}

var characterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List character notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done := openService()
		defer done()

		notes, err := svc.Characters()
		if err != nil {
			return handleError(err)
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"characters": notes}, &Meta{Count: len(notes)})
			return nil
		}
		if len(notes) == 0 {
			printLine(ui.Hint("No characters yet. Run 'comic character new <name>'."))
			return nil
		}
		for _, n := range notes {
			printLine(ui.NoteName(n.Basename) + "  " + ui.Hint(n.Path))
		}
		return nil
	},
}

func init() {
	characterNewCmd.Flags().String("name", "", "Character name (alternative to the argument)")
	characterNewCmd.Flags().String("gender", "", "Gender: ♀ or ♂")
	characterNewCmd.Flags().String("color", "", "Main palette color (#rrggbb)")
	characterNewCmd.Flags().String("location", "", "Home location")
	characterNewCmd.Flags().String("weapon", "", "Weapon")
	characterNewCmd.Flags().Bool("no-open", false, "Do not open the note in the editor")

	characterCmd.AddCommand(characterNewCmd, characterListCmd, characterPaletteCmd)
	rootCmd.AddCommand(characterCmd)
}
