package grpc

import (
	"context"
	"errors"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var codeMap = map[mdwerror.Code]codes.Code{
	mdwerror.CodeInvalidInput:       codes.InvalidArgument,
	mdwerror.CodeInputTooLarge:      codes.InvalidArgument,
	mdwerror.CodeSyntax:             codes.InvalidArgument,
	mdwerror.CodeIllegalToken:       codes.InvalidArgument,
	mdwerror.CodeNotFound:           codes.NotFound,
	mdwerror.CodeTimeout:            codes.DeadlineExceeded,
	mdwerror.CodeServiceUnavailable: codes.Unavailable,
	mdwerror.CodeNetworkError:       codes.Unavailable,
	mdwerror.CodeDatabaseError:      codes.Internal,
	mdwerror.CodeInternal:           codes.Internal,
	mdwerror.CodeConfigError:        codes.FailedPrecondition,
	mdwerror.CodeInvalidConfig:      codes.FailedPrecondition,
}

// ToStatus converts an error into a gRPC status error. Structured errors
// map by code; context errors map to their gRPC counterparts.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}

	code := codes.Unknown
	if c, ok := codeMap[mdwerror.GetCode(err)]; ok {
		code = c
	}
	return status.Error(code, err.Error())
}

// FromStatus converts a gRPC status error back into a structured error
func FromStatus(err error, operation string) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	code := mdwerror.CodeUnknown
	switch st.Code() {
	case codes.InvalidArgument:
		code = mdwerror.CodeInvalidInput
	case codes.NotFound:
		code = mdwerror.CodeNotFound
	case codes.DeadlineExceeded:
		code = mdwerror.CodeTimeout
	case codes.Unavailable:
		code = mdwerror.CodeServiceUnavailable
	case codes.Internal:
		code = mdwerror.CodeInternal
	}
	return mdwerror.New(st.Message()).
		WithCode(code).
		WithOperation(operation).
		WithDetail("grpc_code", st.Code().String())
}
