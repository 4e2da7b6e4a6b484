// Command closurenet reads a program from standard input (or a file
// argument), parses it, runs the pre-pass GC, reduces it to normal
// form, runs the I/O interpreter if the result is an IO value, and
// prints the final form. Exit code zero on success, non-zero on parse
// or evaluation error.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/vic/closurenet/pkg/builtins"
	"github.com/vic/closurenet/pkg/driver"
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/invariants"
	"github.com/vic/closurenet/pkg/reduce"
	"github.com/vic/closurenet/pkg/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		trace bool
		check bool
	)

	cmd := &cobra.Command{
		Use:   "closurenet [file]",
		Short: "Reduce a closure-graph lambda calculus program to normal form",
		Long: `closurenet parses a program (from a file argument, or standard input
when none is given), reduces it to normal form using the call-by-need
closure-graph reducer, runs its I/O program if the result is one, and
prints the final value.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := hclog.New(&hclog.LoggerOptions{
				Name:  "closurenet",
				Level: hclog.Warn,
			})
			if trace {
				log.SetLevel(hclog.Debug)
			}
			return run(cmd, args, log, trace, check)
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "log every rewrite rule the reducer fires and a dump of the final graph")
	cmd.Flags().BoolVar(&check, "check", false, "run the structural invariant checks before and after reduction")
	return cmd
}

func run(cmd *cobra.Command, args []string, log hclog.Logger, trace, check bool) error {
	source, err := readSource(args)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	t, err := term.Parse(string(source))
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	g := graph.New()
	root, err := term.Build(g, t)
	if err != nil {
		return fmt.Errorf("build error: %w", err)
	}
	g.SetRoot(root)

	removed, err := reduce.PrePassGC(g)
	if err != nil {
		return fmt.Errorf("pre-pass GC: %w", err)
	}
	log.Debug("pre-pass GC complete", "closures_removed", removed)

	if check {
		if err := invariants.CheckAll(g); err != nil {
			return fmt.Errorf("invariant violation after pre-pass GC: %w", err)
		}
	}

	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)
	if trace {
		ev.Trace = driver.NewTracer(log).Hook()
	}

	whnf, err := driver.Interpret(ev, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), g.Root())
	if err != nil {
		return fmt.Errorf("evaluation error: %w", err)
	}

	if check {
		if err := invariants.CheckAll(g); err != nil {
			return fmt.Errorf("invariant violation after reduction: %w", err)
		}
	}
	if trace {
		driver.DumpGraph(log, g, whnf)
	}

	result, err := term.Read(g, whnf)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
