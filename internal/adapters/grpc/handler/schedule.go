package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ogurasousui/office-rota/internal/adapters/grpc/rotarpc"
	"github.com/ogurasousui/office-rota/internal/core/rota"
)

// GeneratedMessage は生成成功時に返す確認メッセージです。
const GeneratedMessage = "schedule generated successfully"

// ScheduleGrpcHandler は ScheduleService の gRPC 実装です。
type ScheduleGrpcHandler struct {
	svc rota.UseCase
	rotarpc.UnimplementedScheduleServiceServer
}

// NewScheduleGrpcHandler は ScheduleGrpcHandler を生成します。
func NewScheduleGrpcHandler(svc rota.UseCase) *ScheduleGrpcHandler {
	return &ScheduleGrpcHandler{svc: svc}
}

// GenerateSchedule はスケジュールを生成し、現在のスケジュールとして保存します。
func (h *ScheduleGrpcHandler) GenerateSchedule(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	employees, numWeeks, err := rotarpc.ParseGenerateRequest(req)
	if err != nil {
		return nil, toStatusError(err)
	}

	if _, err := h.svc.GenerateSchedule(ctx, rota.GenerateScheduleInput{
		Employees: employees,
		NumWeeks:  numWeeks,
	}); err != nil {
		return nil, toStatusError(err)
	}

	return wrapperspb.String(GeneratedMessage), nil
}

// GetSchedule は現在のスケジュールを返します。
func (h *ScheduleGrpcHandler) GetSchedule(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	found, err := h.svc.GetSchedule(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := toScheduleMessage(found).ToStruct()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func toScheduleMessage(s *rota.Schedule) rotarpc.ScheduleMessage {
	weeks := make([]rotarpc.WeekMessage, len(s.Weeks))
	for i, w := range s.Weeks {
		weeks[i] = rotarpc.WeekMessage{Present: w.Present, Remote: w.Remote}
	}
	return rotarpc.ScheduleMessage{
		ID:                 s.ID,
		GeneratedAt:        s.GeneratedAt,
		WorkingDaysPerWeek: s.WorkingDaysPerWeek,
		Weeks:              weeks,
	}
}
