package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/autoloader/internal/cli/output"
	"github.com/leapstack-labs/autoloader/internal/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// List formats.
const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list [ref...]",
		Short: "List the views and models that would be registered",
		Long: `List every exported class found under src/view and src/model, in the order
it would appear in the generated Packages module. Nothing is written.

Refs select single entries by registry key (e.g. user.Profile) or, failing
that, by class name (e.g. Profile). An unknown ref is an error.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --format to override: table, markdown, json, yaml`,
		Example: `  # List registry entries
  autoloader list

  # List as YAML
  autoloader list --format yaml

  # Show where a model is declared
  autoloader list user.Profile`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, format, args)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (table|markdown|json|yaml)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{formatTable, formatMarkdown, formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runList(cmd *cobra.Command, format string, refs []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	reg, err := cmdCtx.Engine.Inspect()
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if format == "" {
		format = defaultListFormat(r.EffectiveMode())
	}

	listing, err := listOutput(reg, refs)
	if err != nil {
		return err
	}
	w := r.Writer()

	switch format {
	case formatJSON:
		return r.JSON(listing)
	case formatYAML:
		return writeYAML(w, listing)
	case formatMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Registry (%d entries)", listing.Summary.Total)))
		r.Println("")
		listTable(w, listing).RenderMarkdown()
		r.Println("")
		r.Println(output.FormatKeyValue("Views", listing.Summary.Views))
		r.Println(output.FormatKeyValue("Models", listing.Summary.Models))
	case formatTable:
		listTable(w, listing).Render()
		r.Println(r.Muted(fmt.Sprintf("%d views, %d models", listing.Summary.Views, listing.Summary.Models)))
	default:
		return fmt.Errorf("unknown format %q: expected %s", format, strings.Join([]string{formatTable, formatMarkdown, formatJSON, formatYAML}, ", "))
	}
	return nil
}

func defaultListFormat(mode output.OutputMode) string {
	switch mode {
	case output.ModeJSON:
		return formatJSON
	case output.ModeMarkdown:
		return formatMarkdown
	default:
		return formatTable
	}
}

// listOutput converts the registry to its listing form. With refs, only the
// entries they resolve to are listed, in ref order.
func listOutput(reg *registry.Registry, refs []string) (*output.ListOutput, error) {
	entries := reg.Entries()
	if len(refs) > 0 {
		entries = entries[:0:0]
		for _, ref := range refs {
			e, ok := reg.Resolve(ref)
			if !ok {
				return nil, fmt.Errorf("no registry entry for %q", ref)
			}
			entries = append(entries, e)
		}
	}

	out := &output.ListOutput{
		Entries:    make([]output.ListEntry, 0, len(entries)),
		Collisions: reg.Collisions(),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, output.ListEntry{
			Role:   string(e.Role),
			Key:    e.Key,
			Name:   e.Name,
			Alias:  e.Alias,
			Module: e.Module,
			Path:   e.Path,
		})
		switch e.Role {
		case registry.RoleView:
			out.Summary.Views++
		case registry.RoleModel:
			out.Summary.Models++
		}
	}
	out.Summary.Total = len(out.Entries)
	return out, nil
}

func listTable(w io.Writer, listing *output.ListOutput) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Role", "Key", "Alias", "Path"})
	for i, e := range listing.Entries {
		t.AppendRow(table.Row{i + 1, output.Title(e.Role), e.Key, e.Alias, e.Path})
	}
	return t
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
