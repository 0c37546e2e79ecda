package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/spf13/cobra"
)

var (
	queryTag  string
	queryName string
)

func init() {
	cmd := newQueryCmd()
	cmd.Flags().StringVar(&queryTag, "tag", "", "Match elements by exact tag name")
	cmd.Flags().StringVar(&queryName, "name", "", "Match elements by name attribute")
	cmd.MarkFlagsMutuallyExclusive("tag", "name")
	cmd.MarkFlagsOneRequired("tag", "name")
	rootCmd.AddCommand(cmd)
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <page>",
		Short: "List elements matching a tag or name",
		Long: `The query command runs getElementsByTagName or getElementsByName on the
page's document and prints the matches in document order.

Example:
  scriptdom query index.html --tag p
  scriptdom query index.html --name email`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd.OutOrStdout(), args[0], queryTag, queryName)
		},
	}
}

func runQuery(ctx context.Context, out io.Writer, location, tag, name string) (err error) {
	s, err := openSession(ctx, location)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.close())
	}()

	var c *dom.HTMLCollection
	if tag != "" {
		c, err = s.doc.GetElementsByTagName(tag)
	} else {
		c, err = s.doc.GetElementsByName(name)
	}
	if err != nil {
		return err
	}

	for i, el := range c.ToSlice() {
		fmt.Fprintf(out, "%d\t%s\n", i, formatElement(el))
	}
	printVerbose(out, "%d match(es)\n", c.Length())
	return nil
}

func formatElement(el *dom.Element) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(el.TagName())
	for _, a := range el.Attributes() {
		fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
	}
	b.WriteString(">")
	return b.String()
}

// printVerbose prints a message if verbose mode is enabled
func printVerbose(out io.Writer, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(out, format, args...)
	}
}
