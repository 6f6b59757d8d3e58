package kernel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/nt-version/internal/domain/host"
)

// Struct field names.
const (
	fieldMajor      = "major"
	fieldMinor      = "minor"
	fieldBuild      = "build"
	fieldStrategy   = "strategy"
	fieldTimestamp  = "timestamp"
	fieldReporter   = "reporter"
	fieldHostname   = "hostname"
	fieldUsername   = "username"
	fieldExecutable = "executable"
)

var (
	// ErrMalformedSnapshot is returned when a Struct does not describe a snapshot.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// errNilSnapshot is returned when converting a nil snapshot.
	errNilSnapshot = errors.New("snapshot is not set")
)

// ToProto converts a domain snapshot into its Struct form.
func ToProto(snapshot *host.Snapshot) (*structpb.Struct, error) {
	if snapshot == nil {
		return nil, errNilSnapshot
	}

	fields := map[string]any{
		fieldMajor:    float64(snapshot.Major),
		fieldMinor:    float64(snapshot.Minor),
		fieldBuild:    float64(snapshot.Build),
		fieldStrategy: snapshot.Strategy,
	}

	if !snapshot.Timestamp.IsZero() {
		fields[fieldTimestamp] = snapshot.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	if r := snapshot.Reporter; r != nil {
		fields[fieldReporter] = map[string]any{
			fieldHostname:   r.Hostname,
			fieldUsername:   r.Username,
			fieldExecutable: r.Executable,
		}
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build snapshot struct: %w", err)
	}

	return s, nil
}

// FromProto converts a Struct produced by ToProto back into a domain snapshot.
func FromProto(s *structpb.Struct) (*host.Snapshot, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: empty message", ErrMalformedSnapshot)
	}

	fields := s.GetFields()
	snapshot := &host.Snapshot{
		Strategy: fields[fieldStrategy].GetStringValue(),
	}

	var err error

	if snapshot.Major, err = uint32Field(fields, fieldMajor); err != nil {
		return nil, err
	}

	if snapshot.Minor, err = uint32Field(fields, fieldMinor); err != nil {
		return nil, err
	}

	if snapshot.Build, err = uint32Field(fields, fieldBuild); err != nil {
		return nil, err
	}

	if ts := fields[fieldTimestamp].GetStringValue(); ts != "" {
		if snapshot.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("%w: timestamp: %w", ErrMalformedSnapshot, err)
		}
	}

	if reporter := fields[fieldReporter].GetStructValue(); reporter != nil {
		rf := reporter.GetFields()
		snapshot.Reporter = &host.Actor{
			Hostname:   rf[fieldHostname].GetStringValue(),
			Username:   rf[fieldUsername].GetStringValue(),
			Executable: rf[fieldExecutable].GetStringValue(),
		}
	}

	return snapshot, nil
}

// uint32Field reads a required number field that must be a whole uint32.
func uint32Field(fields map[string]*structpb.Value, name string) (uint32, error) {
	value, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s is missing", ErrMalformedSnapshot, name)
	}

	number, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a number", ErrMalformedSnapshot, name)
	}

	n := number.NumberValue
	if n < 0 || n > math.MaxUint32 || n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: %s=%v does not fit uint32", ErrMalformedSnapshot, name, n)
	}

	return uint32(n), nil
}
