// Package cli implements the keypair command-line interface using Cobra.
// It authenticates configured profiles, verifies them against AWS, and
// manages secrets stored in the system keychain.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/majorcontext/keypair/internal/config"
	"github.com/majorcontext/keypair/internal/log"
)

var (
	verbose    bool
	jsonOut    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "keypair",
	Short: "keypair - access key / secret key credential providers",
	Long: `keypair turns provider profiles into access-key / secret-key pairs.

Each profile in ~/.keypair/providers.yaml names a strategy with its "type"
key (static, env, keyring) and the strategy produces the credentials.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		globalCfg, _ := config.LoadGlobal()
		debugDir := filepath.Join(config.GlobalConfigDir(), "debug")

		if err := log.Init(log.Options{
			Verbose:       verbose,
			JSONFormat:    jsonOut,
			DebugDir:      debugDir,
			RetentionDays: globalCfg.Debug.RetentionDays,
		}); err != nil {
			// Logging is optional; keep going with the default logger.
			cmd.PrintErrf("Warning: failed to initialize debug logging: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "provider config file (env: KEYPAIR_CONFIG, default ~/.keypair/providers.yaml)")
}
