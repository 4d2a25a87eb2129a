package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error onto a gRPC status. Only validation
// details, which echo the caller's own input, are passed through; anything
// unexpected is logged and reported as Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument,
			strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": "))
	case errors.Is(err, common.ErrDuplicateAccount):
		return status.Error(codes.AlreadyExists, "account already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid email or password")
	case errors.Is(err, common.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, "too many attempts, try again later")
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "invalid or expired token")
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "record not found")
	case errors.Is(err, common.ErrInvalidKey):
		return status.Error(codes.PermissionDenied, "invalid master key")
	case errors.Is(err, common.ErrExportDisabled):
		return status.Error(codes.FailedPrecondition, "export is not configured")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return errInternal
	}
}

// errInternal is the only detail a caller sees for unexpected failures.
var errInternal = status.Error(codes.Internal, common.ErrInternal.Error())
