package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cascade"
	"github.com/yacobolo/cascade/internal/store"
)

var nameCmd = &cobra.Command{
	Use:   "name <component>",
	Short: "Generate sequential class names for a component type",
	Long: `Create classes named after a component type (ButtonPrimitive -> button-1,
button-2, ...). Counters only move forward, so deleted names are not reused.
Without --snapshot or --doc, or for a document not yet stored, the names are
generated in an empty document.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runName,
}

func init() {
	f := nameCmd.Flags()
	f.IntP("count", "n", 1, "Number of classes to create")
	f.String("separator", "", "Separator between base name and index")
	addDocumentFlags(nameCmd)
}

func runName(cmd *cobra.Command, args []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := loadDocument(cmd.Context(), log)
	if errors.Is(err, errNoDocument) || errors.Is(err, store.ErrNotFound) {
		var opts cascade.Options
		if opts, err = buildOptions(log); err == nil {
			doc, err = cascade.New(opts)
		}
	}
	if err != nil {
		return err
	}
	// A separator flag also applies to documents that carry their own config.
	if sep := k.String("separator"); sep != "" {
		cfg := doc.Namer().Config()
		cfg.Separator = sep
		doc.Namer().SetConfig(cfg)
	}

	count := k.Int("count")
	if count <= 0 {
		count = 1
	}
	out := cmd.OutOrStdout()
	for i := 0; i < count; i++ {
		src, err := doc.CreateClass(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, src.Name)
	}

	if _, err := saveDocument(cmd.Context(), log, doc); err != nil {
		return err
	}
	return nil
}
