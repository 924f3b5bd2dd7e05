package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/parsco"
)

// Report is the outcome of checking one file.
type Report struct {
	Path    string
	Grammar string
	Source  string
	// Diagnostic is set when the file failed to parse.
	Diagnostic *parsco.Diagnostic
	// Err is set when the file could not be checked at all, or the
	// checker failed with something other than a diagnostic.
	Err error
}

// OK reports whether the file parsed cleanly.
func (r Report) OK() bool {
	return r.Diagnostic == nil && r.Err == nil
}

type options struct {
	grammar  string
	progress io.Writer
	workers  int
	cache    *Cache
}

// ProcessOption configures ProcessFiles.
type ProcessOption func(*options)

// WithGrammar checks every file with the named grammar instead of
// choosing one by extension.
func WithGrammar(name string) ProcessOption {
	return func(o *options) { o.grammar = name }
}

// WithProgress draws a progress bar on w while directories are processed.
func WithProgress(w io.Writer) ProcessOption {
	return func(o *options) { o.progress = w }
}

// WithWorkers limits the number of files checked concurrently.
func WithWorkers(n int) ProcessOption {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithCache reuses reports from c for files whose content is unchanged
// and records new ones in it.
func WithCache(c *Cache) ProcessOption {
	return func(o *options) { o.cache = c }
}

// ProcessFiles checks every file named by paths. Directories are walked
// and contribute the files whose extension maps to a grammar. Reports are
// returned in path order. A cancelled context stops the remaining work;
// the reports gathered so far are returned along with ctx's error.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	catalog Catalog,
	config Config,
	paths []string,
	opts ...ProcessOption,
) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}

	files, walked, err := collectFiles(config, o.grammar, paths)
	if err != nil {
		logger.Error("Error collecting files", zap.Error(err))
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if walked && o.progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(o.progress),
			progressbar.OptionSetDescription("checking"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	reports := make([]Report, len(files))
	done := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = checkFile(logger, catalog, config, o, path)
			done[i] = true
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if err != nil {
		partial := make([]Report, 0, len(files))
		for i, r := range reports {
			if done[i] {
				partial = append(partial, r)
			}
		}
		return partial, err
	}
	return reports, nil
}

// collectFiles expands directories and reports whether any were walked.
func collectFiles(config Config, grammar string, paths []string) ([]string, bool, error) {
	var (
		files  []string
		walked bool
	)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, false, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		walked = true
		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if name, ok := config.GrammarFor(p); ok && (grammar == "" || name == grammar) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, false, fmt.Errorf("error walking directory %s: %w", path, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, walked, nil
}

func checkFile(logger *zap.Logger, catalog Catalog, config Config, o options, path string) Report {
	report := Report{Path: path, Grammar: o.grammar}
	if report.Grammar == "" {
		name, ok := config.GrammarFor(path)
		if !ok {
			report.Err = fmt.Errorf("no grammar configured for %s", path)
			return report
		}
		report.Grammar = name
	}

	checker, ok := catalog[report.Grammar]
	if !ok {
		report.Err = fmt.Errorf("unknown grammar %q", report.Grammar)
		return report
	}

	src, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Error reading file", zap.String("file", path), zap.Error(err))
		report.Err = err
		return report
	}
	report.Source = string(src)

	if o.cache != nil {
		if cached, ok := o.cache.Get(path, report.Grammar, src); ok {
			logger.Debug("Using cached report", zap.String("file", path))
			return cached
		}
		defer func() { o.cache.Set(path, report.Grammar, src, report) }()
	}

	err = checker.Check(path, src)
	var diag *parsco.Diagnostic
	switch {
	case err == nil:
		logger.Debug("File parsed", zap.String("file", path), zap.String("grammar", report.Grammar))
	case errors.As(err, &diag):
		logger.Debug("File failed to parse",
			zap.String("file", path),
			zap.String("grammar", report.Grammar),
			zap.Int("line", diag.Line),
			zap.Int("column", diag.Column))
		report.Diagnostic = diag
	default:
		logger.Error("Error checking file", zap.String("file", path), zap.Error(err))
		report.Err = err
	}
	return report
}
