// Command wizard compiles a database schema into dialogue artifacts from the command
// line: discover a baseline, reconcile a saved configuration, compile the outputs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "dbwizard/internal/db/extractors"
	"dbwizard/internal/logger"
	"dbwizard/pkg/config"
)

var (
	cfgPath string
	appCfg  config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Compile a database schema into task, template and domain files",
	Long: `wizard reads the tables and stored routines of a database, lets an operator
annotate them in a configuration file and compiles that configuration into the
task export, the template export and the training domain of a dialogue agent.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// loadConfig reads the config file if one is given, the environment otherwise
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgPath != "" {
		appCfg, err = config.LoadFile(cfgPath)
	} else {
		appCfg, err = config.LoadEnv()
	}
	if err != nil {
		return err
	}
	return logger.Init(appCfg.Log.Level, appCfg.Log.Development)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config YAML (default: environment only)")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(compileCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
