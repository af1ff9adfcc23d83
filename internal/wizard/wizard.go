// Package wizard runs the compiler stages in the order an operator goes through them:
// discover the schema, reconcile a saved configuration against it, then compile tasks,
// templates and the training domain.
package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"dbwizard/internal/db"
	"dbwizard/internal/introspect"
	"dbwizard/internal/logger"
	"dbwizard/internal/reconcile"
	"dbwizard/internal/schema"
	"dbwizard/internal/slots"
	"dbwizard/internal/tasks"
	"dbwizard/internal/templates"
	"dbwizard/pkg/config"
)

// Output file names written by Compilation.WriteFiles.
const (
	TasksFile     = "tasks.json"
	TemplatesFile = "templates.json"
	DomainFile    = "domain.yml"
)

// Discover connects to the configured database and returns its baseline configuration.
func Discover(ctx context.Context, dbCfg config.DBConfig, disc config.DiscoveryConfig) (schema.Configuration, error) {
	driver, dsn, err := config.BuildDriverAndDSN(dbCfg)
	if err != nil {
		return schema.Configuration{}, err
	}
	catalog, err := db.ConnectAndExtract(ctx, driver, dsn, time.Duration(disc.Timeout)*time.Second)
	if err != nil {
		return schema.Configuration{}, fmt.Errorf("discover %s: %w", driver, err)
	}
	return Baseline(catalog, disc), nil
}

// Baseline applies the discovery defaults to catalog.
func Baseline(catalog introspect.Catalog, disc config.DiscoveryConfig) schema.Configuration {
	opts := introspect.DefaultOptions()
	if disc.DefaultResolveDepth > 0 {
		opts.ResolveDepth = disc.DefaultResolveDepth
	}
	tables, procedures := introspect.Baseline(catalog, opts)
	logger.Info("discovered %d tables, %d procedures", len(tables), len(procedures))
	return schema.Configuration{Tables: tables, Procedures: procedures}
}

// Import decodes a saved configuration from r and reconciles it against baseline.
// Every correction is logged as a warning.
func Import(r io.Reader, baseline schema.Configuration) (reconcile.Result, error) {
	imported, err := reconcile.DecodeConfiguration(r)
	if err != nil {
		return reconcile.Result{}, err
	}
	res := reconcile.Reconcile(imported, baseline.Tables, baseline.Procedures)
	for _, w := range res.Warnings {
		logger.Warn("%s", w)
	}
	return res, nil
}

// Compilation is every artifact compiled from one configuration.
type Compilation struct {
	Tasks     []tasks.Task
	Templates templates.Export
	Domain    templates.Domain
}

// Compile runs the slot, task and template stages over cfg.
func Compile(cfg schema.Configuration) Compilation {
	ts := tasks.SynthesizeWith(slots.NewExtractor(cfg.Tables), cfg.Procedures)
	export := templates.Export{
		Responses: templates.SynthesizeResponses(ts, cfg.Tables),
		Intents:   templates.SynthesizeIntents(ts),
	}
	logger.Info("compiled %d tasks, %d responses, %d intents", len(ts), len(export.Responses), len(export.Intents))
	return Compilation{
		Tasks:     ts,
		Templates: export,
		Domain:    templates.BuildDomain(ts, export.Responses, export.Intents),
	}
}

// ImportTemplates reconciles a saved template document against the templates cfg
// compiles to.
func ImportTemplates(cfg schema.Configuration, imported templates.Export) (templates.Export, []string) {
	out, warnings := templates.Reconcile(imported, Compile(cfg).Templates)
	for _, w := range warnings {
		logger.Warn("%s", w)
	}
	return out, warnings
}

// WriteFiles writes the task export, the template export and the training domain into
// dir, creating it if needed.
func (c Compilation) WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := WriteJSON(filepath.Join(dir, TasksFile), c.Tasks); err != nil {
		return err
	}
	if err := WriteJSON(filepath.Join(dir, TemplatesFile), c.Templates); err != nil {
		return err
	}
	domain, err := c.Domain.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, DomainFile), domain, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", DomainFile, err)
	}
	return nil
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadConfiguration reads a configuration file without reconciling it.
func ReadConfiguration(path string) (schema.Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return schema.Configuration{}, err
	}
	defer f.Close()
	cfg, err := reconcile.DecodeConfiguration(f)
	if err != nil {
		return schema.Configuration{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
