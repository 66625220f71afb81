package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tameorm/tame/contrib/validation"
	"github.com/tameorm/tame/schema"
)

func (r *runner) validateCommand() *cobra.Command {
	var (
		opts       validation.Options
		jsonSchema bool
	)

	cmd := &cobra.Command{
		Use:   "validate <app.Model> [file.json|-]",
		Short: "Validate a json document against the validation model of a model",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appName, modelName, err := schema.SplitReference(args[0])
			if err != nil {
				return err
			}

			tm, _, err := r.load(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer tm.Close()

			model, err := tm.GetModel(appName, modelName)
			if err != nil {
				return err
			}

			vm, err := validation.Build(model, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonSchema || len(args) == 1 {
				data, err := vm.JSONSchema()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			var in io.Reader = cmd.InOrStdin()
			if args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var values map[string]interface{}
			dec := json.NewDecoder(in)
			dec.UseNumber()
			if err := dec.Decode(&values); err != nil {
				return fmt.Errorf("failed to decode %s: %w", args[1], err)
			}

			if err := vm.Validate(values); err != nil {
				color.New(color.FgRed, color.Bold).Fprintf(out, "✗ %s\n", vm.Name)
				fmt.Fprintln(out, err)
				return err
			}
			color.New(color.FgGreen).Fprintf(out, "✓ %s\n", vm.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "validation model name")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "fields to leave out")
	cmd.Flags().StringSliceVar(&opts.Include, "include", nil, "fields to keep, all when empty")
	cmd.Flags().StringSliceVar(&opts.Computed, "computed", nil, "computed properties to add")
	cmd.Flags().StringSliceVar(&opts.Optional, "optional", nil, "fields made optional")
	cmd.Flags().StringSliceVar(&opts.Required, "required", nil, "fields made required")
	cmd.Flags().BoolVar(&opts.SortAlphabetically, "sort", false, "sort fields by name")
	cmd.Flags().BoolVar(&jsonSchema, "schema", false, "print the json schema of the validation model")
	return cmd
}
