package inspect

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/nt-version/internal/config"
	"github.com/oshokin/nt-version/internal/logger"
	"github.com/oshokin/nt-version/internal/repository/report"
	"github.com/oshokin/nt-version/internal/service/query"
)

// Options controls which report is printed and how.
type Options struct {
	// ConfigPath specifies the settings YAML file; a missing file means defaults.
	ConfigPath string
	// ReportFile overrides the configured report location.
	ReportFile string
	// Output overrides the configured output format.
	Output string
	// Out receives the rendered report; defaults to os.Stdout.
	Out io.Writer
}

// Run loads the saved report and renders it.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "ntver-inspect")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	path := cfg.ReportFile
	if opts.ReportFile != "" {
		path = opts.ReportFile
	}

	output := cfg.Output
	if opts.Output != "" {
		output = opts.Output
	}

	snapshot, err := report.NewFileRepository(path).Load(ctx)
	if err != nil {
		return fmt.Errorf("load report %s: %w", path, err)
	}

	logger.DebugKV(ctx, "Report loaded", "path", path, "taken_at", snapshot.Timestamp)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return query.Render(out, snapshot, output)
}
