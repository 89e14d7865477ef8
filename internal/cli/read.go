package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/frontmatter"
	"github.com/aidanlsb/comic/internal/index"
	"github.com/aidanlsb/comic/internal/log"
	"github.com/aidanlsb/comic/internal/ui"
	"github.com/aidanlsb/comic/internal/vault"
)

var readCmd = &cobra.Command{
	Use:   "read <reference>",
	Short: "Print a note",
	Long: `Prints a note from the vault. The header is shown as a table and the
body is rendered as markdown; --raw prints the file as is.

Examples:
  comic read "The Heist"
  comic read characters/Mira --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done := openService()
		defer done()

		note, err := vault.Resolve(svc.Store, args[0], "")
		if err != nil {
			return handleError(err)
		}
		content, err := svc.Store.Read(note.Path)
		if err != nil {
			return handleError(err)
		}

		raw, _ := cmd.Flags().GetBool("raw")
		if raw && !isJSONOutput() {
			printf("%s", content)
			return nil
		}

		fields, err := svc.NoteFields(note.Path)
		if errors.Is(err, index.ErrNotIndexed) {
			return handleError(err)
		}
		if err != nil {
			log.WithComponent("cli").Warn("unreadable note header", "path", note.Path, "error", err)
			fields = nil
		}

		if isJSONOutput() {
			data := map[string]interface{}{"path": note.Path, "content": content}
			if len(fields) > 0 {
				data["frontmatter"] = fields
			}
			outputSuccess(data, nil)
			return nil
		}

		body := content
		if fm, err := frontmatter.Parse(content); err == nil && fm.Present {
			body = fm.Body
		}
		printLine(ui.Header(note.Path))
		if len(fields) > 0 {
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			tbl := ui.NewTable(2)
			for _, k := range keys {
				v, ok := frontmatter.ToString(fields[k])
				if !ok && fields[k] != nil {
					v = fmt.Sprint(fields[k])
				}
				tbl.AddRow(ui.Hint(k), v)
			}
			printf("%s", tbl.String())
		}

		rendered, err := ui.RenderMarkdown(body, ui.NewDisplayContext().ContentWidth())
		if err != nil {
			printf("%s\n", body)
			return nil
		}
		printf("%s", rendered)
		return nil
	},
}

func init() {
	readCmd.Flags().Bool("raw", false, "Print the file without rendering")
	rootCmd.AddCommand(readCmd)
}
