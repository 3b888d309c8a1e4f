package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yacobolo/cascade"
)

var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Aliases: []string{"classes", "ls"},
	Short:   "List the classes of a document",
	Long: `List every class with its declaration count and dependents. A class is
editable when no other class is layered on it.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runSources,
}

func init() {
	addDocumentFlags(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := loadDocument(cmd.Context(), log)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for key := range doc.Declarations() {
		sk, err := cascade.ParseStyleKey(key)
		if err != nil {
			continue
		}
		counts[sk.SourceID]++
	}

	w := cmd.OutOrStdout()
	sources := doc.Sources()
	if len(sources) == 0 {
		_, _ = fmt.Fprintln(w, "(no classes)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Declarations", "Dependents", "Editable"})
	for _, src := range sources {
		var deps []string
		for _, id := range doc.DependentsOf(src.ID) {
			if d, ok := doc.Source(id); ok {
				deps = append(deps, d.Name)
			}
		}
		editable := "yes"
		if !doc.IsEditable(src.ID) {
			editable = "no"
		}
		t.AppendRow(table.Row{src.ID, src.Name, counts[src.ID], strings.Join(deps, ", "), editable})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d classes, %d raw rules)\n", len(sources), len(doc.RawRules()))
	return nil
}
