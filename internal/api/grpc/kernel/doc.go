// Package kernel exposes kernel version snapshots over gRPC.
//
// The service is described by hand with well-known protobuf types, so no
// generated code is needed:
//
//	service ntversion.v1.KernelService {
//	  rpc GetKernelVersion(google.protobuf.Empty) returns (google.protobuf.Struct);
//	}
//
// ToProto and FromProto define the Struct layout shared by the wire and by
// saved reports.
package kernel
