package main

import (
	"context"
	"fmt"
	"io"

	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newTreeCmd())
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <page>",
		Short: "Display the parsed node tree",
		Long: `The tree command parses the page and prints the resulting node tree,
text and comment nodes included.

Example:
  scriptdom tree index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func runTree(ctx context.Context, out io.Writer, location string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	page, err := loader.Load(ctx, location)
	if err != nil {
		return err
	}

	root, err := dom.ParseHTML(page.Source)
	if err != nil {
		return fmt.Errorf("failed to parse page: %w", err)
	}
	_, err = io.WriteString(out, dom.Dump(root))
	return err
}
