package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/config"
	"github.com/aidanlsb/comic/internal/index"
	"github.com/aidanlsb/comic/internal/paths"
	"github.com/aidanlsb/comic/internal/ui"
)

var gitignoreEntries = []string{index.DirName + "/", ".trash/"}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a comic vault",
	Long: `Creates a comic vault at the given path (default: current directory).

Creates:
  - comic.yaml  (comic settings)
  - the episode, character and plot folders
  - .comic/     (index directory)
  - .gitignore  (ignores derived files)

With --name the vault is also registered in config.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		title, _ := cmd.Flags().GetString("title")
		name, _ := cmd.Flags().GetString("name")

		result, err := initVault(path, title)
		if err != nil {
			return handleErrorMsg(ErrFileWriteError, err.Error(), "")
		}
		if name != "" {
			if err := registerVault(name, path); err != nil {
				return handleErrorMsg(ErrConfigInvalid, err.Error(), "")
			}
			result.Registered = name
		}

		if isJSONOutput() {
			outputSuccess(result, nil)
			return nil
		}

		printLine(ui.Header("Comic vault: " + path))
		if result.CreatedConfig {
			printLine(ui.Success("Created " + config.ComicFileName))
		} else {
			printLine(ui.Hint("• " + config.ComicFileName + " already exists (kept)"))
		}
		for _, f := range result.Folders {
			printLine(ui.Successf("Ensured %s/", f))
		}
		if result.Gitignore != "" {
			printLine(ui.Successf("%s .gitignore", result.Gitignore))
		}
		if result.Registered != "" {
			printLine(ui.Successf("Registered vault %q in %s", result.Registered, resolvedConfigPath))
		}
		return nil
	},
}

type initResult struct {
	Path          string   `json:"path"`
	CreatedConfig bool     `json:"created_config"`
	Folders       []string `json:"folders"`
	Gitignore     string   `json:"gitignore,omitempty"`
	Registered    string   `json:"registered,omitempty"`
}

func initVault(path, title string) (*initResult, error) {
	result := &initResult{Path: path}

	created, err := config.CreateDefaultComicConfig(path)
	if err != nil {
		return nil, err
	}
	result.CreatedConfig = created

	comicCfg, err := config.LoadComicConfig(path)
	if err != nil {
		return nil, err
	}
	if created && strings.TrimSpace(title) != "" {
		comicCfg.ComicTitle = strings.TrimSpace(title)
		if err := config.SaveComicConfig(path, comicCfg); err != nil {
			return nil, err
		}
	}

	for _, folder := range []string{index.DirName, comicCfg.EpisodeFolder, comicCfg.CharacterFolder, comicCfg.PlotFolder} {
		folder = strings.TrimSuffix(paths.NormalizeFolder(folder), "/")
		if folder == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Join(path, filepath.FromSlash(folder)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", folder, err)
		}
		if folder != index.DirName {
			result.Folders = append(result.Folders, folder)
		}
	}

	status, err := ensureGitignore(filepath.Join(path, ".gitignore"))
	if err != nil {
		return nil, err
	}
	result.Gitignore = status
	return result, nil
}

// ensureGitignore adds the derived-file entries. It returns "Created",
// "Updated" or "" when nothing changed.
func ensureGitignore(gitignorePath string) (string, error) {
	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range gitignoreEntries {
		if !strings.Contains(existing, entry) {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return "", nil
	}

	status := "Created"
	content := "# comic: derived files, the markdown is the source of truth\n" + strings.Join(missing, "\n") + "\n"
	if existing != "" {
		status = "Updated"
		content = strings.TrimRight(existing, "\n") + "\n\n" + content
	}
	if err := os.WriteFile(gitignorePath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return status, nil
}

// registerVault adds the vault to config.toml and makes it the default when
// none is set.
func registerVault(name, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	c := getConfig()
	if c.Vaults == nil {
		c.Vaults = make(map[string]string)
	}
	c.Vaults[name] = abs
	if c.DefaultVault == "" {
		c.DefaultVault = name
	}
	return config.SaveTo(resolvedConfigPath, c)
}

func init() {
	initCmd.Flags().String("title", "", "Comic title written to comic.yaml")
	initCmd.Flags().String("name", "", "Register the vault in config.toml under this name")
	rootCmd.AddCommand(initCmd)
}
