// Package cli implements the tame command: describe loaded apps, generate
// their schemas and validate documents against their models.
package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tameorm/tame"
	"github.com/tameorm/tame/connection"
	"github.com/tameorm/tame/internal/config"
)

// Version set at build time
var Version = "dev"

// Options of the root command
type Options struct {
	// Opener opens connection pools, sql.Open when nil
	Opener connection.Opener
}

type runner struct {
	opts       Options
	configPath string
}

// NewRootCommand creates the root command
func NewRootCommand(opts Options) *cobra.Command {
	r := &runner{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "tame",
		Short: "Load tame apps, inspect their models and generate their schemas",
		Long: color.CyanString(`tame - multi app schema wiring

Apps are declared in tame.yaml, each with its model locations and database url.
Apps are loaded in order, a model may reference models of apps loaded before it.`),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&r.configPath, "config", "c", "", "config file (default ./tame.yaml)")

	rootCmd.AddCommand(r.describeCommand())
	rootCmd.AddCommand(r.schemasCommand())
	rootCmd.AddCommand(r.validateCommand())
	return rootCmd
}

// load loads every configured app, schemas are generated only when generate is set
func (r *runner) load(ctx context.Context, generate bool) (*tame.Tame, *config.Config, error) {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}

	opts := []tame.ConfigOption{tame.WithLogger(log)}
	if r.opts.Opener != nil {
		opts = append(opts, tame.WithOpener(r.opts.Opener))
	}
	tm := tame.New(opts...)

	for _, app := range cfg.Apps {
		loadOpts := cfg.LoadOptions(app)
		loadOpts.GenerateSchemas = generate && loadOpts.GenerateSchemas
		if err := tm.LoadApp(ctx, loadOpts); err != nil {
			tm.Close()
			return nil, nil, err
		}
	}
	return tm, cfg, nil
}
