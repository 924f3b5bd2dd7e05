package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/parsco/check"
	"github.com/gnolang/parsco/formatter"
)

// errParseFailed signals that at least one file did not parse. The
// diagnostics have already been printed.
var errParseFailed = errors.New("parse failed")

var (
	grammarName     string
	parseJsonOutput bool
	watchMode       bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [paths...]",
	Short: "Parse files and report diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("please provide file or directory paths")
		}
		out := cmd.OutOrStdout()
		catalog := check.DefaultCatalog()

		opts := []check.ProcessOption{check.WithProgress(os.Stderr)}
		if grammarName != "" {
			if _, ok := catalog[grammarName]; !ok {
				return fmt.Errorf("unknown grammar %q", grammarName)
			}
			opts = append(opts, check.WithGrammar(grammarName))
		}

		if watchMode {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return runWatch(ctx, logger, out, catalog, config, args, opts)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return runParse(ctx, logger, out, catalog, config, args, parseJsonOutput, opts...)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&grammarName, "grammar", "g", "", "Parse every file with this grammar instead of choosing by extension")
	parseCmd.Flags().BoolVar(&parseJsonOutput, "json", false, "Output results in JSON format")
	parseCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-check files whenever they change")
}

func runParse(
	ctx context.Context,
	logger *zap.Logger,
	out io.Writer,
	catalog check.Catalog,
	cfg check.Config,
	paths []string,
	isJson bool,
	opts ...check.ProcessOption,
) error {
	reports, err := check.ProcessFiles(ctx, logger, catalog, cfg, paths, opts...)
	if err != nil {
		return fmt.Errorf("error processing files: %w", err)
	}

	if isJson {
		if err := printJSON(out, reports); err != nil {
			return err
		}
	} else {
		printReports(out, reports)
	}

	for _, r := range reports {
		if !r.OK() {
			return errParseFailed
		}
	}
	return nil
}

func printReports(out io.Writer, reports []check.Report) {
	for _, r := range reports {
		switch {
		case r.Diagnostic != nil:
			fmt.Fprint(out, formatter.FormatDiagnostic(r.Diagnostic, r.Source))
		case r.Err != nil:
			fmt.Fprint(out, formatter.FormatError(fmt.Errorf("%s: %w", r.Path, r.Err), ""))
		}
	}
}

type jsonReport struct {
	Path    string `json:"path"`
	Grammar string `json:"grammar,omitempty"`
	OK      bool   `json:"ok"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message,omitempty"`
}

func printJSON(out io.Writer, reports []check.Report) error {
	results := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		jr := jsonReport{Path: r.Path, Grammar: r.Grammar, OK: r.OK()}
		switch {
		case r.Diagnostic != nil:
			jr.Line = r.Diagnostic.Line
			jr.Column = r.Diagnostic.Column
			jr.Message = r.Diagnostic.Msg
		case r.Err != nil:
			jr.Message = r.Err.Error()
		}
		results = append(results, jr)
	}

	d, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(d))
	return err
}

// runWatch checks paths once and then again for every file that
// changes, until ctx is done.
func runWatch(
	ctx context.Context,
	logger *zap.Logger,
	out io.Writer,
	catalog check.Catalog,
	cfg check.Config,
	paths []string,
	opts []check.ProcessOption,
) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append(opts, check.WithCache(check.NewCache()))
	if err := runParse(ctx, logger, out, catalog, cfg, paths, false, opts...); err != nil && !errors.Is(err, errParseFailed) {
		return err
	}
	logger.Info("Watching for changes", zap.Strings("paths", paths))

	return check.Watch(ctx, logger, paths, func(path string) {
		if _, ok := cfg.GrammarFor(path); !ok && grammarName == "" {
			return
		}
		err := runParse(ctx, logger, out, catalog, cfg, []string{path}, false, opts...)
		switch {
		case err == nil:
			fmt.Fprintf(out, "%s: ok\n", path)
		case !errors.Is(err, errParseFailed):
			logger.Error("Error checking file", zap.String("file", path), zap.Error(err))
		}
	})
}
