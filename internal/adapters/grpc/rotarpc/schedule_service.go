// Package rotarpc は rota.v1.ScheduleService の gRPC 定義です。
//
// メッセージには protobuf の well-known type を使うため、既定の proto コーデックのまま
// コード生成なしでサーバーとクライアントを登録できます。
//
//	GenerateSchedule(google.protobuf.Struct) returns (google.protobuf.StringValue)
//	GetSchedule(google.protobuf.Empty) returns (google.protobuf.Struct)
package rotarpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "rota.v1.ScheduleService"

	GenerateScheduleFullMethodName = "/" + ServiceName + "/GenerateSchedule"
	GetScheduleFullMethodName      = "/" + ServiceName + "/GetSchedule"
)

// ScheduleServiceServer はサーバー側の実装が満たすインターフェースです。
type ScheduleServiceServer interface {
	GenerateSchedule(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	GetSchedule(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedScheduleServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedScheduleServiceServer struct{}

func (UnimplementedScheduleServiceServer) GenerateSchedule(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateSchedule not implemented")
}

func (UnimplementedScheduleServiceServer) GetSchedule(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSchedule not implemented")
}

// RegisterScheduleServiceServer は srv を s に登録します。
func RegisterScheduleServiceServer(s grpc.ServiceRegistrar, srv ScheduleServiceServer) {
	s.RegisterService(&ScheduleServiceDesc, srv)
}

func generateScheduleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).GenerateSchedule(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GenerateScheduleFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScheduleServiceServer).GenerateSchedule(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getScheduleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScheduleServiceServer).GetSchedule(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetScheduleFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScheduleServiceServer).GetSchedule(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// ScheduleServiceDesc は rota.v1.ScheduleService のサービス定義です。
var ScheduleServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScheduleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateSchedule", Handler: generateScheduleHandler},
		{MethodName: "GetSchedule", Handler: getScheduleHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rota/v1/schedule.proto",
}

// ScheduleServiceClient は rota.v1.ScheduleService のクライアントです。
type ScheduleServiceClient interface {
	GenerateSchedule(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetSchedule(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type scheduleServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewScheduleServiceClient は cc を使うクライアントを返します。
func NewScheduleServiceClient(cc grpc.ClientConnInterface) ScheduleServiceClient {
	return &scheduleServiceClient{cc: cc}
}

func (c *scheduleServiceClient) GenerateSchedule(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GenerateScheduleFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *scheduleServiceClient) GetSchedule(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetScheduleFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
