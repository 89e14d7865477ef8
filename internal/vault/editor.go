package vault

import (
	"os/exec"
	"strings"
)

// startCommand is swapped in tests.
var startCommand = func(cmd *exec.Cmd) error { return cmd.Start() }

// OpenInEditor launches editor on filePath in the background.
// Returns false when no editor is configured.
//
// Editors with arguments (e.g. "open -a Typora") are run via sh -c.
func OpenInEditor(editor, filePath string) (bool, error) {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return false, nil
	}

	var cmd *exec.Cmd
	if strings.Contains(editor, " ") {
		cmd = exec.Command("sh", "-c", editor+" "+shellQuote(filePath))
	} else {
		cmd = exec.Command(editor, filePath)
	}

	if err := startCommand(cmd); err != nil {
		return false, err
	}
	return true, nil
}

// shellQuote quotes a string for safe use in shell commands.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
