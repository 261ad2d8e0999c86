package rpc

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// toStatus 应用错误 → gRPC状态
// 映射与HTTP错误分类一致；字段错误以errdetails.BadRequest附加
func toStatus(err error, exposeInternal bool) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	appErr := apperrors.GetAppError(err)
	var code codes.Code
	message := appErr.Message

	switch appErr.Kind() {
	case apperrors.KindNotFound:
		code = codes.NotFound
	case apperrors.KindValidation, apperrors.KindInvalidArgument:
		code = codes.InvalidArgument
	case apperrors.KindUnauthorized:
		code = codes.Unauthenticated
	case apperrors.KindForbidden:
		code = codes.PermissionDenied
	case apperrors.KindTooManyRequests:
		code = codes.ResourceExhausted
	default:
		code = codes.Internal
		if !exposeInternal {
			message = "internal server error"
		} else if appErr.Err != nil {
			message = appErr.Err.Error()
		}
	}

	st := status.New(code, message)
	if len(appErr.Fields) == 0 {
		return st.Err()
	}

	br := &errdetails.BadRequest{}
	for _, fe := range appErr.Fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       fe.Field,
			Description: fe.Message,
		})
	}
	if withDetails, detailErr := st.WithDetails(br); detailErr == nil {
		st = withDetails
	}
	return st.Err()
}
