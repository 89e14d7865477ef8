package cli

import (
	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/comic"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Link plot events into a chain",
	Long: `Plot events are notes under the plot folder. Linking appends a line
"next: [[<event>]]" to the earlier event.

'prev' and 'next' link from the active note (see 'comic open') unless
--from names another event.`,
}

type linkDirection int

const (
	linkPrevious linkDirection = iota
	linkNext
)

func newLinkCmd(use, short, prompt string, dir linkDirection) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [event]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done := openService()
			defer done()

			from, _ := cmd.Flags().GetString("from")
			activePath, err := activeNotePath(from)
			if err != nil {
				return handleError(err)
			}
			active, err := svc.ActiveEvent(activePath)
			if err != nil {
				return handleError(err)
			}

			chosen, err := chooseEvent(svc, args, prompt, active)
			if err != nil {
				return handleError(err)
			}

			var link *comic.Link
			if dir == linkPrevious {
				link, err = svc.ConnectPrevious(active, chosen)
			} else {
				link, err = svc.ConnectNext(active, chosen)
			}
			if err != nil {
				return handleError(err)
			}

			if isJSONOutput() {
				outputSuccess(link, nil)
			}
			return nil
		},
	}
	cmd.Flags().String("from", "", "Event to link from instead of the active note")
	return cmd
}

// chooseEvent resolves the event argument or asks with the picker.
func chooseEvent(svc *comic.Service, args []string, prompt string, active *vault.Note) (*vault.Note, error) {
	if len(args) > 0 {
		return svc.ResolveEvent(args[0])
	}
	if !interactive() {
		return nil, handleErrorMsg(ErrMissingArgument, "no event given",
			interactivePickerSuggestion())
	}
	return svc.PickEvent(prompt, active.Path)
}

func interactivePickerSuggestion() string {
	if ui.HasFZF() {
		return "Pass the event name, or run on a terminal to pick one"
	}
	return "Pass the event name, or run on a terminal to pick one (install fzf for a richer picker)"
}

var plotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plot events and their next links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done := openService()
		defer done()

		events, err := svc.PlotEvents()
		if err != nil {
			return handleError(err)
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"events": events}, &Meta{Count: len(events)})
			return nil
		}
		if len(events) == 0 {
			printLine(ui.Hint("No plot events under " + svc.Config.PlotFolder))
			return nil
		}

		for _, ev := range events {
			if len(ev.Next) == 0 {
				printLine(ui.NoteName(ev.Basename) + " " + ui.Hint("(no next event)"))
				continue
			}
			for _, next := range ev.Next {
				printLine(ui.Link(ev.Basename, next))
			}
		}
		printLine(ui.Hint(ui.Count(len(events), "event", "events")))
		return nil
	},
}

var plotChainCmd = &cobra.Command{
	Use:   "chain [start]",
	Short: "Follow next links from an event",
	Long: `Follows "next:" links forward from an event and prints the run of events.
Without an argument the chain starts at the active note.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done := openService()
		defer done()

		start := ""
		if len(args) > 0 {
			start = args[0]
		} else {
			active, err := activeNotePath("")
			if err != nil {
				return handleError(err)
			}
			note, err := svc.ActiveEvent(active)
			if err != nil {
				return handleError(err)
			}
			start = note.Path
		}

		chain, err := svc.PlotChain(start)
		if err != nil {
			return handleError(err)
		}
		if isJSONOutput() {
			outputSuccess(chain, &Meta{Count: len(chain.Events)})
			return nil
		}

		for i, ev := range chain.Events {
			prefix := "  "
			if i > 0 {
				prefix = ui.Muted.Render(ui.SymbolLink) + " "
			}
			printLine(prefix + ui.NoteName(ev.Basename))
		}
		switch {
		case chain.Cycle:
			printLine(ui.Warning("chain loops back to an earlier event"))
		case chain.Dangling != "":
			printLine(ui.Warningf("next link points at missing event %q", chain.Dangling))
		}
		return nil
	},
}

func init() {
	plotCmd.AddCommand(
		newLinkCmd("prev", "Connect previous event: link an event to the active note", "previous event", linkPrevious),
		newLinkCmd("next", "Connect next event: link the active note to an event", "next event", linkNext),
		plotListCmd,
		plotChainCmd,
	)
	rootCmd.AddCommand(plotCmd)
}
