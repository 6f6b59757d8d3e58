package kernel

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "ntversion.v1.KernelService"
	// GetKernelVersionMethod is the full method name used by clients.
	GetKernelVersionMethod = "/" + ServiceName + "/GetKernelVersion"
)

// KernelServiceServer is the server API for KernelService.
type KernelServiceServer interface {
	GetKernelVersion(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterKernelServiceServer registers srv on s.
func RegisterKernelServiceServer(s grpc.ServiceRegistrar, srv KernelServiceServer) {
	s.RegisterService(&kernelServiceDesc, srv)
}

//nolint:gochecknoglobals // grpc.ServiceRegistrar takes the descriptor by pointer.
var kernelServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KernelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetKernelVersion",
			Handler:    getKernelVersionHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ntversion/v1/kernel.proto",
}

func getKernelVersionHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(KernelServiceServer).GetKernelVersion(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetKernelVersionMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(KernelServiceServer).GetKernelVersion(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}
