package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ogurasousui/office-rota/internal/adapters/grpc/rotarpc"
	"github.com/ogurasousui/office-rota/internal/core/rota"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rota.ErrEmptyEmployees),
		errors.Is(err, rota.ErrInvalidWeekCount),
		errors.Is(err, rotarpc.ErrMalformedRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, rota.ErrScheduleNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
