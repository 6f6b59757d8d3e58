package query

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/nt-version/internal/api/grpc/kernel"
	"github.com/oshokin/nt-version/internal/config"
	"github.com/oshokin/nt-version/internal/domain/host"
	"github.com/oshokin/nt-version/internal/repository/report"
)

// yamlReport is the YAML layout of a snapshot.
type yamlReport struct {
	Major     uint32      `yaml:"major"`
	Minor     uint32      `yaml:"minor"`
	Build     uint32      `yaml:"build"`
	Strategy  string      `yaml:"strategy,omitempty"`
	Timestamp time.Time   `yaml:"timestamp,omitempty"`
	Reporter  *host.Actor `yaml:"reporter,omitempty"`
}

// Render writes snapshot to w in the requested output format.
func Render(w io.Writer, snapshot *host.Snapshot, output string) error {
	if snapshot == nil {
		return errNoSnapshot
	}

	if err := config.ValidateOutput(output); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)

	switch output {
	case config.OutputJSON:
		message, convErr := kernel.ToProto(snapshot)
		if convErr != nil {
			return fmt.Errorf("encode report: %w", convErr)
		}

		data, err = report.Marshal(message)
	case config.OutputYAML:
		data, err = yaml.Marshal(&yamlReport{
			Major:     snapshot.Major,
			Minor:     snapshot.Minor,
			Build:     snapshot.Build,
			Strategy:  snapshot.Strategy,
			Timestamp: snapshot.Timestamp,
			Reporter:  snapshot.Reporter,
		})
	default:
		data = []byte(snapshot.Version() + "\n")
	}

	if err != nil {
		return fmt.Errorf("render %s: %w", output, err)
	}

	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
