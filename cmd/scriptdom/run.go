package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dop251/goja"
	"github.com/spf13/cobra"
)

var (
	runEval   string
	runScript string
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVarP(&runEval, "eval", "e", "", "Script source to evaluate")
	cmd.Flags().StringVarP(&runScript, "script", "s", "", "Script file to run")
	cmd.MarkFlagsMutuallyExclusive("eval", "script")
	cmd.MarkFlagsOneRequired("eval", "script")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <page>",
		Short: "Run a script against a page",
		Long: `The run command loads the page as window.document and evaluates a script
in the same compartment. The value of the last expression is printed.

Example:
  scriptdom run index.html -e "document.getElementsByTagName('p').length"
  scriptdom run index.html -s check.js
  scriptdom run https://example.com -e "document.getElementsByTagName('a').length"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := runEval
			if runScript != "" {
				data, err := os.ReadFile(runScript)
				if err != nil {
					return fmt.Errorf("failed to read script: %w", err)
				}
				code = string(data)
			}
			return runPage(cmd.Context(), cmd.OutOrStdout(), args[0], code, runScript)
		},
	}
}

// runPage evaluates code against the page at location. A non-empty scriptName
// runs code as a script program, which has no completion value to print.
func runPage(ctx context.Context, out io.Writer, location, code, scriptName string) (err error) {
	s, err := openSession(ctx, location)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.close())
	}()

	var result goja.Value
	if scriptName == "" {
		result, err = s.rt.Execute(code)
	} else {
		err = s.rt.ExecuteScript(code, scriptName)
	}
	if err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	if result != nil && !goja.IsUndefined(result) {
		fmt.Fprintln(out, result.String())
	}
	return nil
}
