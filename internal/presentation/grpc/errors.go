package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// toStatusError maps domain errors to gRPC status codes. Unknown errors come
// back as Internal without leaking their message chain.
func toStatusError(err error) error {
	if err == nil {
		return nil
	}

	var below *valueobject.BelowMinimumError
	if errors.As(err, &below) {
		return status.Error(codes.FailedPrecondition, below.Error())
	}
	if errors.Is(err, valueobject.ErrInvalidStatusTransition) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	var de *valueobject.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case valueobject.ErrCodeValidation:
			return status.Error(codes.InvalidArgument, de.Message)
		case valueobject.ErrCodeNotFound:
			return status.Error(codes.NotFound, de.Message)
		case valueobject.ErrCodeInvalidState, valueobject.ErrCodeBelowMinimum:
			return status.Error(codes.FailedPrecondition, de.Message)
		case valueobject.ErrCodeConflict:
			return status.Error(codes.Aborted, de.Message)
		case valueobject.ErrCodeCollaborator:
			return status.Error(codes.Unavailable, de.Message)
		}
	}

	return status.Error(codes.Internal, "internal error")
}

func permissionDenied(role string) error {
	return status.Errorf(codes.PermissionDenied, "role %s may not call this method", role)
}
