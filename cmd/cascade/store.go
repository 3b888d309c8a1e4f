package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage documents saved in the SQLite store",
}

var storeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored documents",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, err := commandLogger(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer s.Close()

		docs, err := s.List(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(docs) == 0 {
			_, _ = fmt.Fprintln(w, "(no documents)")
			return nil
		}
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Name", "Title", "Revision", "Classes", "Declarations", "Updated"})
		for _, d := range docs {
			t.AppendRow(table.Row{d.Name, d.Title, d.Revision, d.Sources, d.Declarations, d.UpdatedAt.Local().Format(time.DateTime)})
		}
		t.Render()
		return nil
	},
}

var storeHistoryCmd = &cobra.Command{
	Use:   "history <document>",
	Short: "List the revisions of a document",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := commandLogger(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer s.Close()

		revs, err := s.Revisions(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Revision", "Classes", "Declarations", "Saved"})
		for _, r := range revs {
			t.AppendRow(table.Row{r.Number, r.Sources, r.Declarations, r.SavedAt.Local().Format(time.DateTime)})
		}
		t.Render()
		return nil
	},
}

var storePruneCmd = &cobra.Command{
	Use:   "prune <document>",
	Short: "Drop all but the newest revisions of a document",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := commandLogger(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Prune(cmd.Context(), args[0], getIntWithFallback("keep", "store.keep", 10))
		if err != nil {
			return err
		}
		if !quiet() {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d revisions\n", n)
		}
		return nil
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:     "delete <document>",
	Aliases: []string{"rm"},
	Short:   "Delete a document and its history",
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := commandLogger(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		if !quiet() {
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		}
		return nil
	},
}

func init() {
	storeCmd.PersistentFlags().String("db", "", "SQLite store path")
	storePruneCmd.Flags().Int("keep", 10, "Revisions to keep")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeHistoryCmd)
	storeCmd.AddCommand(storePruneCmd)
	storeCmd.AddCommand(storeDeleteCmd)
}
