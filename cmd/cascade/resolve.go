package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yacobolo/cascade"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [class...]",
	Short: "Show the computed styles of a class chain",
	Long: `Flatten a chain of classes (by name or id) or the chain attached to an
element into the properties that apply at one breakpoint and pseudo-state.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.String("element", "", "Resolve the chain attached to this element")
	f.StringP("breakpoint", "b", "", "Breakpoint id (default: base)")
	f.StringP("state", "s", "", "Pseudo-state: hover|focus|active|visited")
	f.StringP("format", "f", "table", "Output format: table|json")
	addDocumentFlags(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := loadDocument(cmd.Context(), log)
	if err != nil {
		return err
	}

	state, ok := cascade.ParsePseudoState(k.String("state"))
	if !ok {
		return fmt.Errorf("%w: %q", cascade.ErrUnknownState, k.String("state"))
	}
	breakpoint := k.String("breakpoint")

	var props map[string]string
	if element := k.String("element"); element != "" {
		props, err = doc.ElementStyles(element, breakpoint, state)
	} else {
		var ids []string
		ids, err = sourceIDs(doc, args)
		if err != nil {
			return err
		}
		props, err = doc.ComputedStyles(ids, breakpoint, state)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch k.String("format") {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(props)
	default:
		renderComputed(w, props)
		return nil
	}
}

// sourceIDs maps class names or ids to source ids, keeping the given order.
func sourceIDs(doc *cascade.Document, refs []string) ([]string, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("no classes given (pass class names or --element)")
	}
	byName := make(map[string]string)
	for _, src := range doc.Sources() {
		byName[strings.ToLower(src.Name)] = src.ID
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if _, ok := doc.Source(ref); ok {
			ids = append(ids, ref)
			continue
		}
		id, ok := byName[strings.ToLower(strings.TrimPrefix(ref, "."))]
		if !ok {
			return nil, fmt.Errorf("%q: %w", ref, cascade.ErrSourceNotFound)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func renderComputed(w io.Writer, props map[string]string) {
	if len(props) == 0 {
		_, _ = fmt.Fprintln(w, "(no properties)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Property", "Value"})

	groups := cascade.CategorizeProperties(props)
	for _, cat := range cascade.Categories {
		for _, p := range groups[cat] {
			t.AppendRow(table.Row{string(cat), p.Name, p.Value})
		}
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d properties)\n", len(props))
}
