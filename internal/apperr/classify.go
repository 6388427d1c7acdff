package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	MsgValidationFailed  = "Validation failed."
	MsgBadRequest        = "Bad Request. "
	MsgUnauthorized      = "Unauthorized access."
	MsgDuplicateKey      = "Conflict: Duplicate key violation."
	MsgForeignKey        = "Conflict: This entity is referenced in other records and cannot be deleted."
	MsgDatabaseError     = "Database error: "
	MsgInternalError     = "Internal Server Error"
	MsgInvalidPagination = "Invalid pagination parameters."
)

// SQLSTATE codes the classifier distinguishes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Response is the uniform error body.
type Response struct {
	ResponseCode    int    `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}

// Classify maps err onto the fixed taxonomy. The first matching rule wins.
func Classify(err error) Response {
	var (
		validationErrs validator.ValidationErrors
		validationErr  *ValidationError
		argumentErr    *ArgumentError
		operationErr   *OperationError
		syntaxErr      *json.SyntaxError
		typeErr        *json.UnmarshalTypeError
		pgErr          *pgconn.PgError
		storeErr       *StoreError
	)

	switch {
	case err == nil:
		return Response{ResponseCode: http.StatusInternalServerError, ResponseMessage: MsgInternalError}
	case errors.As(err, &validationErrs), errors.As(err, &validationErr):
		return Response{ResponseCode: http.StatusBadRequest, ResponseMessage: MsgValidationFailed}
	case errors.As(err, &argumentErr):
		return Response{ResponseCode: http.StatusBadRequest, ResponseMessage: MsgBadRequest + argumentErr.Detail}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return Response{ResponseCode: http.StatusBadRequest, ResponseMessage: MsgBadRequest + err.Error()}
	case errors.As(err, &operationErr):
		return Response{ResponseCode: http.StatusBadRequest, ResponseMessage: MsgBadRequest + operationErr.Detail}
	case errors.Is(err, ErrUnauthorized):
		return Response{ResponseCode: http.StatusUnauthorized, ResponseMessage: MsgUnauthorized}
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case pgUniqueViolation:
			return Response{ResponseCode: http.StatusConflict, ResponseMessage: MsgDuplicateKey}
		case pgForeignKeyViolation:
			return Response{ResponseCode: http.StatusConflict, ResponseMessage: MsgForeignKey}
		}
		// TODO: stop echoing raw store messages once clients no longer depend on them; they can leak schema detail.
		return Response{ResponseCode: http.StatusInternalServerError, ResponseMessage: MsgDatabaseError + pgErr.Message}
	case errors.As(err, &storeErr):
		return Response{ResponseCode: http.StatusInternalServerError, ResponseMessage: MsgDatabaseError + storeErr.Err.Error()}
	default:
		return Response{ResponseCode: http.StatusInternalServerError, ResponseMessage: MsgInternalError}
	}
}
