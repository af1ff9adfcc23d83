package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dbwizard/internal/schema"
	"dbwizard/internal/templates"
	"dbwizard/internal/wizard"
	"dbwizard/pkg/config"
)

var (
	driverFlag    string
	dsnFlag       string
	outputPath    string
	baselinePath  string
	outputDir     string
	templatesPath string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Write the baseline configuration of a database",
	Long: `Connects to the configured database and writes the configuration derived from its
tables, foreign keys and stored routines. The result is the starting point an operator
annotates with natural language expressions.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <configuration.json>",
	Short: "Reconcile a saved configuration against a baseline",
	Long: `Repairs a saved configuration so it matches the baseline: missing entries are
restored, unknown ones dropped and stale values updated. Every correction is printed
as a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

var compileCmd = &cobra.Command{
	Use:   "compile <configuration.json>",
	Short: "Compile tasks, templates and the training domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	discoverCmd.Flags().StringVar(&driverFlag, "driver", "", "db driver override (postgres,mysql,sqlite,sqlserver,godror)")
	discoverCmd.Flags().StringVar(&dsnFlag, "dsn", "", "dsn override")
	discoverCmd.Flags().StringVarP(&outputPath, "output", "o", "configuration.json", "file to write the baseline to")

	reconcileCmd.Flags().StringVar(&driverFlag, "driver", "", "db driver override used when discovering the baseline")
	reconcileCmd.Flags().StringVar(&dsnFlag, "dsn", "", "dsn override used when discovering the baseline")
	reconcileCmd.Flags().StringVarP(&baselinePath, "baseline", "b", "", "baseline configuration file (default: discover from the database)")
	reconcileCmd.Flags().StringVarP(&outputPath, "output", "o", "configuration.json", "file to write the reconciled configuration to")

	compileCmd.Flags().StringVarP(&outputDir, "out", "d", ".", "directory to write the compiled files to")
	compileCmd.Flags().StringVarP(&templatesPath, "templates", "t", "", "saved template export to reconcile against the compiled one")
}

// database applies the --driver and --dsn overrides to the configured database
func database() config.DBConfig {
	if driverFlag != "" && dsnFlag != "" {
		return config.DBConfig{Type: driverFlag, DSN: dsnFlag}
	}
	return appCfg.Database
}

func runDiscover(cmd *cobra.Command, args []string) error {
	baseline, err := wizard.Discover(cmd.Context(), database(), appCfg.Discovery)
	if err != nil {
		return err
	}
	if err := wizard.WriteJSON(outputPath, baseline); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d tables and %d procedures to %s\n",
		len(baseline.Tables), len(baseline.Procedures), outputPath)
	return nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	baseline, err := loadBaseline(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	res, err := wizard.Import(f, baseline)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	if err := wizard.WriteJSON(outputPath, res.Configuration); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s with %d corrections\n", outputPath, len(res.Warnings))
	return nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := wizard.ReadConfiguration(args[0])
	if err != nil {
		return err
	}
	c := wizard.Compile(cfg)

	if templatesPath != "" {
		saved, err := readTemplates(templatesPath)
		if err != nil {
			return err
		}
		var warnings []string
		c.Templates, warnings = wizard.ImportTemplates(cfg, saved)
		for _, w := range warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
		}
		c.Domain = templates.BuildDomain(c.Tasks, c.Templates.Responses, c.Templates.Intents)
	}

	if err := c.WriteFiles(outputDir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s, %s and %s to %s\n",
		wizard.TasksFile, wizard.TemplatesFile, wizard.DomainFile, filepath.Clean(outputDir))
	return nil
}

// loadBaseline reads the --baseline file, or discovers the baseline when none is given
func loadBaseline(cmd *cobra.Command) (schema.Configuration, error) {
	if baselinePath == "" {
		return wizard.Discover(cmd.Context(), database(), appCfg.Discovery)
	}
	return wizard.ReadConfiguration(baselinePath)
}

func readTemplates(path string) (templates.Export, error) {
	var export templates.Export
	data, err := os.ReadFile(path)
	if err != nil {
		return export, err
	}
	if err := json.Unmarshal(data, &export); err != nil {
		return export, fmt.Errorf("%s: %w", path, err)
	}
	return export, nil
}
