package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	goversion "github.com/hashicorp/go-version"

	"github.com/oshokin/nt-version/internal/api/grpc/kernel"
	"github.com/oshokin/nt-version/internal/config"
	"github.com/oshokin/nt-version/internal/domain/host"
	"github.com/oshokin/nt-version/internal/logger"
	"github.com/oshokin/nt-version/internal/repository/report"
	"github.com/oshokin/nt-version/internal/service/common"
)

// Options controls a single kernel version query.
type Options struct {
	// ConfigPath specifies the settings YAML file; a missing file means defaults.
	ConfigPath string
	// ServerAddress queries a remote ntver server instead of the local kernel.
	ServerAddress string
	// Output overrides the configured output format.
	Output string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Require is a version constraint such as ">= 10.0.17763" the kernel must satisfy.
	Require string
	// Save writes the report to ReportFile (or the configured report_file).
	Save bool
	// ReportFile overrides the configured report location.
	ReportFile string
	// Source reads the local kernel; it is only used when no server address is set.
	Source kernel.Service
	// Out receives the rendered report; defaults to os.Stdout.
	Out io.Writer
}

var (
	// ErrRequirementNotMet is returned when the kernel does not satisfy Options.Require.
	ErrRequirementNotMet = errors.New("kernel version requirement not met")

	// errNoSource is returned when neither a local source nor a server is available.
	errNoSource = errors.New("no local source and no server address")
	// errNoSnapshot is returned when rendering a nil snapshot.
	errNoSnapshot = errors.New("snapshot is not set")
)

// Run performs the query, saves and prints the report, then checks the requirement.
// The report is printed even when the requirement fails so the caller sees why.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "ntver")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if err = applyOverrides(cfg, opts); err != nil {
		return err
	}

	snapshot, err := fetch(ctx, cfg, opts)
	if err != nil {
		return err
	}

	if opts.Save {
		repo := report.NewFileRepository(cfg.ReportFile)
		if err = repo.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("save report: %w", err)
		}

		logger.InfoKV(ctx, "Report saved", "path", repo.Path())
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if err = Render(out, snapshot, cfg.Output); err != nil {
		return err
	}

	if opts.Require == "" {
		return nil
	}

	return CheckRequirement(snapshot, opts.Require)
}

// applyOverrides merges command-line overrides into cfg and applies the log level.
func applyOverrides(cfg *config.Config, opts *Options) error {
	if opts.ServerAddress != "" {
		cfg.ServerAddress = opts.ServerAddress
	}

	if opts.Output != "" {
		cfg.Output = opts.Output
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.ReportFile != "" {
		cfg.ReportFile = opts.ReportFile
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validate options: %w", err)
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	return nil
}

// fetch reads the snapshot from the configured server or the local source.
func fetch(ctx context.Context, cfg *config.Config, opts *Options) (*host.Snapshot, error) {
	if cfg.ServerAddress == "" {
		if opts.Source == nil {
			return nil, errNoSource
		}

		snapshot, err := opts.Source.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("read local kernel version: %w", err)
		}

		return snapshot, nil
	}

	client, err := common.Dial(ctx, cfg.ServerAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Querying remote kernel version", "server_address", cfg.ServerAddress)

	snapshot, err := client.GetKernelVersion(ctx)
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// CheckRequirement reports ErrRequirementNotMet unless the snapshot satisfies constraint.
func CheckRequirement(snapshot *host.Snapshot, constraint string) error {
	constraints, err := goversion.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parse requirement %q: %w", constraint, err)
	}

	current, err := goversion.NewVersion(snapshot.Version())
	if err != nil {
		return fmt.Errorf("parse kernel version %q: %w", snapshot.Version(), err)
	}

	if !constraints.Check(current) {
		return fmt.Errorf("%w: %s does not satisfy %q", ErrRequirementNotMet, snapshot.Version(), constraint)
	}

	return nil
}
