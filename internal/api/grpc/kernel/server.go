package kernel

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/nt-version/internal/domain/host"
	"github.com/oshokin/nt-version/internal/logger"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Snapshot(ctx context.Context) (*host.Snapshot, error)
}

// Server implements KernelServiceServer on top of a Service.
type Server struct {
	// service provides the kernel version readings.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetKernelVersion returns the host's kernel version snapshot.
func (s *Server) GetKernelVersion(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot, err := s.service.Snapshot(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Kernel version query failed", "error", err)

		return nil, status.Error(codes.Internal, "unable to query kernel version")
	}

	if snapshot == nil {
		return nil, status.Error(codes.Unavailable, "kernel version is not available")
	}

	response, err := ToProto(snapshot)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode kernel version")
	}

	return response, nil
}
