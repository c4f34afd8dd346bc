// Command tlpsolve reads a transportation problem from a YAML or JSON file,
// solves it and prints the optimal plan.
//
//	tlpsolve -f problem.yaml
//	tlpsolve -f problem.json -o yaml -max-iterations 50
//	cat problem.json | tlpsolve -f - -i json
//
// The exit status is 0 for an optimal plan, 1 when the solver reports a
// failure and 2 for bad usage or unreadable input.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/tlp/codec"
	"github.com/katalvlaran/tlp/internal/config"
	"github.com/katalvlaran/tlp/modi"
	"github.com/katalvlaran/tlp/report"
	"github.com/katalvlaran/tlp/solver"
	"github.com/katalvlaran/tlp/transport"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tlpsolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("f", "", "problem file (.yaml, .yml, .json), or - for stdin")
	input := fs.String("i", "", "input format when reading stdin: json or yaml")
	output := fs.String("o", "text", "output format: text, json or yaml")
	maxIter := fs.Int("max-iterations", modi.DefaultMaxIterations, "optimizer iteration cap")
	policy := fs.String("degenerate", modi.DegenerateZeroStep.String(), "degenerate pivot policy: zero-step or smallest-positive")
	complete := fs.Bool("complete-basis", false, "complete a degenerate initial basis before optimizing")
	showInitial := fs.Bool("show-initial", false, "also print the initial basic feasible solution (text output)")
	verbose := fs.Bool("v", false, "log solver progress to stderr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *file == "" {
		logger.Error("missing problem file", "flag", "-f")
		fs.Usage()
		return exitUsage
	}
	if *output != "text" {
		if _, err := codec.ParseFormat(*output); err != nil {
			logger.Error("invalid output format", "error", err)
			return exitUsage
		}
	}

	p, err := readProblem(*file, *input, stdin)
	if err != nil {
		logger.Error("failed to read problem", "error", err)
		return exitUsage
	}

	degenerate, err := config.SolverConfig{DegeneratePolicy: *policy}.Degenerate()
	if err != nil {
		logger.Error("invalid solver options", "error", err)
		return exitUsage
	}
	opts := []modi.Option{
		modi.WithDegeneratePolicy(degenerate),
		modi.WithOnPivot(func(st modi.Step) {
			logger.Debug("pivot",
				"iteration", st.Iteration,
				"entering", st.Entering,
				"reduced_cost", st.ReducedCost,
				"theta", st.Theta,
				"leaving", st.Leaving,
				"left", st.Left,
			)
		}),
	}
	if *complete {
		opts = append(opts, modi.WithBasisCompletion())
	}
	s := solver.New(
		solver.WithMaxIterations(*maxIter),
		solver.WithOptimizerOptions(opts...),
	)

	solved := s.Run(p)
	logger.Debug("solve finished",
		"status", solved.Result.Status,
		"dummy", solved.Dummy,
		"iterations", solved.Result.Iterations,
	)

	if err := write(stdout, *output, solved.Result, solved.Dummy, *showInitial, solved.Initial, solved.Problem); err != nil {
		logger.Error("failed to write result", "error", err)
		return exitFailure
	}
	if !solved.Result.IsOptimal() {
		return exitFailure
	}
	return exitOK
}

func readProblem(path, input string, stdin io.Reader) (transport.Problem, error) {
	if path != "-" {
		return codec.DecodeFile(path)
	}
	f := codec.FormatJSON
	if input != "" {
		var err error
		if f, err = codec.ParseFormat(input); err != nil {
			return transport.Problem{}, err
		}
	}
	return codec.Decode(stdin, f)
}

func write(w io.Writer, output string, res transport.Result, dummy transport.DummyKind, showInitial bool, initial *transport.BFSolution, p transport.Problem) error {
	if output != "text" {
		f, err := codec.ParseFormat(output)
		if err != nil {
			return err
		}
		return codec.EncodeResult(w, res, f)
	}

	if showInitial && initial != nil {
		rows, cols := report.Labels(p.NumSuppliers(), p.NumConsumers(), dummy)
		if _, err := fmt.Fprintf(w, "Initial solution (%s)\n%s\n\n",
			report.CostLine(transport.TotalCost(initial.Allocation, p.Costs)),
			report.Table(initial.Allocation, rows, cols)); err != nil {
			return err
		}
	}
	return report.Write(w, res, dummy)
}
