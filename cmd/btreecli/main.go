// btreecli is an interactive playground for B-trees of string keys.
//
// Every modification prints the resulting tree. Structural changes like
// splits and merges can be watched as they happen:
//
//	$ btreecli --order 3 --trace debug
//	> watch on
//	> set kyle KYLE
//	…
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/btindex/formatter"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var (
		order      int
		tracelevel string
		colors     string
	)
	var rootCmd = &cobra.Command{
		Use:   "btreecli",
		Short: "Interactive B-tree playground",
		Long: `An interactive session on an in-memory B-tree of string keys and values.
Commands are read from stdin, one per line; type HELP for a list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tracelevel != "" {
				setupTracing(tracelevel)
			}
			format, err := formatConfig(colors)
			if err != nil {
				return err
			}
			cli, err := NewCli(cmd.InOrStdin(), cmd.OutOrStdout(), order, format)
			if err != nil {
				return err
			}
			return cli.Run()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().IntVar(&order, "order", 4, "Maximum number of entries per node (at least 3)")
	rootCmd.Flags().StringVar(&tracelevel, "trace", "", "Trace level to log with (Debug, Info or Error)")
	rootCmd.Flags().StringVar(&colors, "color", "auto", "Colorize output: auto, always or never")
	return rootCmd
}

// setupTracing routes all tracers to the standard logger.
func setupTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.New))
	gtrace.CoreTracer = tracing.Select("btindex")
	gtrace.CoreTracer.SetTraceLevel(tracing.TraceLevelFromString(level))
}

func formatConfig(colors string) (*formatter.Config, error) {
	config := formatter.ConfigFromTerminal()
	switch colors {
	case "auto":
	case "always":
		config.Color = true
	case "never":
		config.Color = false
	default:
		return nil, fmt.Errorf("invalid value for --color: %q", colors)
	}
	return config, nil
}
