package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tameorm/tame"
	"github.com/tameorm/tame/schema"
	"github.com/tameorm/tame/utils"
)

type modelDoc struct {
	Model       string     `yaml:"model"`
	Table       string     `yaml:"table"`
	Connection  string     `yaml:"connection"`
	PK          string     `yaml:"pk"`
	Description string     `yaml:"description,omitempty"`
	Fields      []fieldDoc `yaml:"fields"`
	Filters     []string   `yaml:"filters,omitempty"`
	Query       string     `yaml:"query"`
}

type fieldDoc struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Type       string `yaml:"type,omitempty"`
	Column     string `yaml:"column,omitempty"`
	References string `yaml:"references,omitempty"`
	Through    string `yaml:"through,omitempty"`
	Null       bool   `yaml:"null,omitempty"`
}

func (r *runner) describeCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "describe [app...]",
		Short: "Describe the resolved models of loaded apps",
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, _, err := r.load(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer tm.Close()

			for _, app := range args {
				if !utils.Contains(tm.Apps(), app) {
					return fmt.Errorf("app %q is not loaded", app)
				}
			}

			docs := describe(tm, args)
			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(docs)
			}

			printDocs(cmd.OutOrStdout(), docs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print a yaml document")
	return cmd
}

func describe(tm *tame.Tame, apps []string) []modelDoc {
	if len(apps) == 0 {
		apps = tm.Apps()
	}

	var docs []modelDoc
	for _, app := range apps {
		for _, model := range tm.Models(app) {
			docs = append(docs, describeModel(model))
		}
	}
	return docs
}

func describeModel(model *schema.Model) modelDoc {
	sql, _ := model.SelectAll()
	doc := modelDoc{
		Model:       model.Qualified(),
		Table:       model.Table,
		Connection:  model.DefaultConnection,
		PK:          model.PKAttr,
		Description: model.Description,
		Query:       sql,
	}

	for _, field := range model.Fields {
		fd := fieldDoc{
			Name:    field.Name,
			Kind:    field.Kind.String(),
			Type:    string(field.DataType),
			Through: field.Through,
			Null:    field.Null,
		}
		if field.Persisted() {
			fd.Column = field.SourceField
		}
		if field.RelatedModel != nil {
			fd.References = field.RelatedModel.Qualified()
		} else if field.Kind.Relational() {
			fd.References = field.ModelName
		}
		doc.Fields = append(doc.Fields, fd)
	}

	for name := range model.Filters {
		doc.Filters = append(doc.Filters, name)
	}
	sort.Strings(doc.Filters)
	return doc
}

func printDocs(w io.Writer, docs []modelDoc) {
	var (
		titleColor = color.New(color.FgCyan, color.Bold)
		kindColor  = color.New(color.FgYellow)
		dimColor   = color.New(color.Faint)
	)

	for _, doc := range docs {
		titleColor.Fprintf(w, "%s", doc.Model)
		fmt.Fprintf(w, " table=%s connection=%s pk=%s\n", doc.Table, doc.Connection, doc.PK)

		for _, field := range doc.Fields {
			fmt.Fprintf(w, "  %-20s ", field.Name)
			kindColor.Fprintf(w, "%-22s", field.Kind)

			var details []string
			if field.Type != "" {
				details = append(details, field.Type)
			}
			if field.Column != "" && field.Column != field.Name {
				details = append(details, "column="+field.Column)
			}
			if field.References != "" {
				details = append(details, "-> "+field.References)
			}
			if field.Through != "" {
				details = append(details, "through="+field.Through)
			}
			if field.Null {
				details = append(details, "null")
			}
			fmt.Fprintln(w, strings.Join(details, " "))
		}

		if len(doc.Filters) > 0 {
			fmt.Fprintf(w, "  filters: %s\n", strings.Join(doc.Filters, ", "))
		}
		dimColor.Fprintf(w, "  %s\n\n", doc.Query)
	}
}
