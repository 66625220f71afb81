package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tameorm/tame/migrator"
	"github.com/tameorm/tame/schema"
)

func (r *runner) schemasCommand() *cobra.Command {
	var (
		safe   bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "schemas [app]",
		Short: "Create the tables of loaded apps on their connections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, cfg, err := r.load(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer tm.Close()

			out := cmd.OutOrStdout()
			if dryRun {
				for _, conn := range tm.Connections.All() {
					var models []*schema.Model
					for _, app := range tm.Apps() {
						for _, model := range tm.Models(app) {
							if model.DefaultConnection == conn.Alias {
								models = append(models, model)
							}
						}
					}

					stmts, err := migrator.New(conn).Statements(models, safe)
					if err != nil {
						return err
					}
					color.New(color.FgCyan).Fprintf(out, "-- connection %s\n", conn.Alias)
					for _, stmt := range stmts {
						fmt.Fprintf(out, "%s;\n", stmt)
					}
				}
				return nil
			}

			app := ""
			if len(args) > 0 {
				app = args[0]
			} else if len(cfg.Apps) > 0 {
				app = cfg.Apps[0].Name
			}

			if err := tm.GenerateAppSchemas(cmd.Context(), app, safe); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(out, "✓ schemas generated on %d connection(s)\n", len(tm.Connections.All()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&safe, "safe", true, "only create missing tables")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print statements instead of running them")
	return cmd
}
