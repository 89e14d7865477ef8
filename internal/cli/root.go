// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/comic/internal/config"
	"github.com/aidanlsb/comic/internal/log"
	"github.com/aidanlsb/comic/internal/ui"
)

var (
	// Global flags
	vaultName     string // Named vault from config
	vaultPathFlag string // Explicit path
	configPath    string
	statePathFlag string
	logLevelFlag  string

	// Resolved values
	resolvedVaultPath  string
	resolvedConfigPath string
	resolvedStatePath  string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "comic",
	Short: "Comic - authoring helpers for a markdown vault",
	Long: `Comic keeps a webcomic's notes in a plain markdown vault.

It creates episode and character notes from templates, suggests the next
episode's number and release date, and links plot events into a chain
with "next: [[...]]" lines.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		resolvedStatePath = config.ResolveStatePath(statePathFlag, resolvedConfigPath, cfg)
		ui.ConfigureTheme(cfg.UI.Accent)
		log.Init(log.Layered(log.Options{Level: logLevelFlag}, log.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			File:   cfg.Log.File,
		}))

		if skipsVaultResolution(cmd) {
			return nil
		}
		return resolveVault()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Close()
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to vault directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file (overrides state_file in config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

func skipsVaultResolution(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "init", "completion", "help", "version":
			return true
		}
	}
	return false
}

// resolveVault picks the vault: explicit path > named vault > active vault
// in state > default vault in config > current directory when it holds a
// comic.yaml.
func resolveVault() error {
	var err error
	switch {
	case vaultPathFlag != "":
		resolvedVaultPath = vaultPathFlag
	case vaultName != "":
		resolvedVaultPath, err = cfg.GetVaultPath(vaultName)
		if err != nil {
			return handleErrorMsg(ErrVaultNotFound, fmt.Sprintf("vault '%s' not found", vaultName),
				"Add it under [vaults] in config.toml or use --vault-path")
		}
	default:
		state, stateErr := config.LoadState(resolvedStatePath)
		if stateErr != nil {
			return fmt.Errorf("failed to load state: %w", stateErr)
		}
		if active := strings.TrimSpace(state.ActiveVault); active != "" {
			if resolvedVaultPath, err = cfg.GetVaultPath(active); err == nil {
				break
			}
			log.WithComponent("cli").Warn("active vault not in config, falling back", "vault", active)
		}
		if resolvedVaultPath, err = cfg.GetDefaultVaultPath(); err == nil {
			break
		}
		if _, statErr := os.Stat(config.ComicConfigPath(".")); statErr == nil {
			resolvedVaultPath = "."
			break
		}
		return handleErrorMsg(ErrVaultNotSpecified, "no vault specified", `Either:
  1. Use --vault <name> (from config)
  2. Use --vault-path /path/to/vault
  3. Set default_vault in config.toml
  4. Run 'comic init /path/to/vault' to create one`)
	}

	if info, err := os.Stat(resolvedVaultPath); err != nil || !info.IsDir() {
		return handleErrorMsg(ErrVaultNotFound, fmt.Sprintf("vault not found: %s", resolvedVaultPath),
			fmt.Sprintf("Run 'comic init %s' to create it", resolvedVaultPath))
	}
	return nil
}

// getVaultPath returns the resolved vault path.
func getVaultPath() string {
	return resolvedVaultPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			return &config.Config{}, resolvedPath, nil
		}
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}
	return loadedCfg, resolvedPath, nil
}
