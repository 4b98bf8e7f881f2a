package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly"
)

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Canonical string        `json:"canonical"`
	Degree    int           `json:"degree"`
	Zero      bool          `json:"zero"`
	Terms     []gopoly.Term `json:"terms"`
}

// EvalResult is the JSON payload of the eval command.
type EvalResult struct {
	Canonical string  `json:"canonical"`
	X         float64 `json:"x"`
	Value     float64 `json:"value"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "show <polynomial>",
		Short: "Print the canonical form of a polynomial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			p, err := parseArg(args[0], strict)
			if err != nil {
				return f.Failure(ExitFailure, "parse polynomial", err)
			}
			terms := p.Terms()
			if terms == nil {
				terms = []gopoly.Term{}
			}
			res := ShowResult{Canonical: p.String(), Degree: p.Degree(), Zero: p.IsZero(), Terms: terms}
			text := res.Canonical
			if rootOpts.Verbose {
				text = fmt.Sprintf("%s\ndegree: %d\nterms: %d", res.Canonical, res.Degree, len(res.Terms))
			}
			return f.Success(text, res)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject malformed terms instead of skipping them")
	return cmd
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <polynomial> <x>",
		Short: "Evaluate a polynomial at x",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			p, err := parseArg(args[0], false)
			if err != nil {
				return f.Failure(ExitFailure, "parse polynomial", err)
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return f.Failure(ExitCommandError, "parse x", err)
			}
			v := p.Evaluate(x)
			return f.Success(strconv.FormatFloat(v, 'g', -1, 64), EvalResult{Canonical: p.String(), X: x, Value: v})
		},
	}
	return cmd
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <polynomial> <polynomial>...",
		Short: "Add two or more polynomials",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			sum := gopoly.New()
			for i, arg := range args {
				p, err := parseArg(arg, false)
				if err != nil {
					return f.Failure(ExitFailure, fmt.Sprintf("parse polynomial %d", i+1), err)
				}
				if sum, err = sum.Add(p); err != nil {
					return f.Failure(ExitFailure, "add", err)
				}
			}
			return f.Success(sum.String(), sum)
		},
	}
	return cmd
}

func parseArg(text string, strict bool) (*gopoly.Poly, error) {
	if strict {
		return gopoly.ParseStrict(text)
	}
	return gopoly.Parse(text)
}

func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
