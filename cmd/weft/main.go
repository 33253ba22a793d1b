// Package main provides the Weft DSL command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weft-ml/weft/lang"
)

const version = "v0.1.0-dev"

func main() {
	root := &cobra.Command{
		Use:   "weft",
		Short: "Weft - an embedded tensor-program DSL for Go",
	}
	root.AddCommand(builtinsCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// builtinsCmd lists the math builtin catalog: name, arity, and the
// admissible dtype set of each entry.
func builtinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "List the math builtin catalog",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range lang.Names() {
				b, _ := lang.Lookup(name)
				allowed := "unrestricted"
				if b.Allowed != nil {
					allowed = fmt.Sprint(b.Allowed)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s arity=%d  dtypes=%s\n", b.Name, b.Arity, allowed)
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Weft %s\n", version)
		},
	}
}
