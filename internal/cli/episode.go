package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/comic"
	"github.com/aidanlsb/comic/internal/dates"
	"github.com/aidanlsb/comic/internal/ui"
)

var episodeCmd = &cobra.Command{
	Use:   "episode",
	Short: "Create and list episode notes",
}

var episodeNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create an episode note",
	Long: `Creates an episode note in the episode folder.

Values not given as flags are asked for on a terminal. The suggestions
follow the episode with the largest number: the next number, the same
chapter, and its date advanced by the update schedule.

Examples:
  comic episode new "Harbor"
  comic episode new "Harbor" --pages 4 --status buffer --date 2024-03-02
  comic episode new "Harbor" --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done := openService()
		defer done()

		draft, err := svc.EpisodeDefaults()
		if err != nil {
			return handleError(err)
		}
		in, err := episodeForm(cmd, svc.UI, args, draft)
		if err != nil {
			return handleError(err)
		}

		note, err := svc.NewEpisode(in)
		if err != nil {
			return handleError(err)
		}
		return finishCreate(cmd, note.Path, map[string]interface{}{
			"path":  note.Path,
			"no":    in.No,
			"date":  in.Date,
			"draft": draft,
		})
	},
}

func episodeForm(cmd *cobra.Command, p ui.Prompter, args []string, draft *comic.EpisodeDraft) (comic.EpisodeInput, error) {
	fs := cmd.Flags()
	var in comic.EpisodeInput
	var err error

	title := ""
	if len(args) > 0 {
		title = args[0]
	}
	if in.Title, err = requiredValue(fs, p, "title", "title", title); err != nil {
		return in, err
	}
	if in.No, err = formInt(fs, p, "no", "no", draft.No); err != nil {
		return in, err
	}
	if in.Chapter, err = formInt(fs, p, "chapter", "chapter", draft.Chapter); err != nil {
		return in, err
	}
	rawDate, err := formValue(fs, p, "date", "date", draft.Date)
	if err != nil {
		return in, err
	}
	if rawDate != "" {
		if in.Date, err = dates.ParseDateArg(rawDate, now()); err != nil {
			return in, err
		}
	}
	if in.Pages, err = formInt(fs, p, "pages", fmt.Sprintf("pages %d-%d", comic.MinPages, comic.MaxPages), draft.Pages); err != nil {
		return in, err
	}
	if in.Status, err = formChoice(fs, p, "status", "status", comic.Statuses, draft.Status); err != nil {
		return in, err
	}
	if in.Transcript, err = formText(fs, p, "transcript", "transcript"); err != nil {
		return in, err
	}
	return in, nil
}

var episodeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List episodes by number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done := openService()
		defer done()

		episodes, err := svc.Episodes()
		if err != nil {
			return handleError(err)
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"episodes": episodes}, &Meta{Count: len(episodes)})
			return nil
		}
		if len(episodes) == 0 {
			printLine(ui.Hint("No episodes yet. Run 'comic episode new <title>'."))
			return nil
		}

		printLine(ui.Header(svc.Config.ComicTitle))
		tbl := ui.NewTable(6)
		for _, ep := range episodes {
			tbl.AddRow(
				numberOrDash(ep.No),
				ui.NoteName(ep.Basename),
				chapterLabel(svc.Config.Chapters, ep.Chapter),
				dashIfEmpty(ep.Date),
				numberOrDash(ep.Pages),
				ui.Hint(ep.Status),
			)
		}
		printf("%s", tbl.String())
		printLine(ui.Hint(ui.Count(len(episodes), "episode", "episodes")))
		return nil
	},
}

// chapterLabel names a chapter from the configured list when it has one.
func chapterLabel(chapters []string, n int) string {
	if n <= 0 {
		return "-"
	}
	if n <= len(chapters) {
		return fmt.Sprintf("ch.%d %s", n, chapters[n-1])
	}
	return "ch." + strconv.Itoa(n)
}

func numberOrDash(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	episodeNewCmd.Flags().String("title", "", "Episode title (alternative to the argument)")
	episodeNewCmd.Flags().Int("no", 0, "Episode number")
	episodeNewCmd.Flags().Int("chapter", 0, "Chapter number")
	episodeNewCmd.Flags().String("date", "", "Release date (YYYY-MM-DD, today, tomorrow)")
	episodeNewCmd.Flags().Int("pages", comic.DefaultPages, "Page count")
	episodeNewCmd.Flags().String("status", comic.DefaultStatus, "Status: sketched, buffer, published")
	episodeNewCmd.Flags().String("transcript", "", "Transcript placed in the note body")
	episodeNewCmd.Flags().Bool("no-open", false, "Do not open the note in the editor")

	episodeCmd.AddCommand(episodeNewCmd, episodeListCmd)
	rootCmd.AddCommand(episodeCmd)
}
