package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST       ErrCode = "REQUEST_FAILED"
	BAD_REQUEST          ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND            ErrCode = "NOT_FOUND"
	VALIDATION_FAILED    ErrCode = "VALIDATION_FAILED"
	INVALID_CREDENTIALS  ErrCode = "INVALID_CREDENTIALS"
	MALFORMED_TOKEN      ErrCode = "MALFORMED_TOKEN"
	UNAUTHORIZED         ErrCode = "UNAUTHORIZED"
	FORBIDDEN            ErrCode = "FORBIDDEN"
	TIMEOUT              ErrCode = "TIMEOUT"
	UNREACHABLE          ErrCode = "UNREACHABLE"
	SERVER_ERROR         ErrCode = "SERVER_ERROR"
	GENERATION_IN_FLIGHT ErrCode = "GENERATION_IN_FLIGHT"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedToken     = errors.New("malformed token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrTimeout            = errors.New("request timed out")
	ErrUnreachable        = errors.New("backend unreachable")
	ErrServer             = errors.New("backend server error")
	ErrParse              = errors.New("unexpected response shape")
	ErrGenerationInFlight = errors.New("generation already in flight")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsg []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is required", err.Field()))
		case "min":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param()))
		case "max":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at most %s", err.Field(), err.Param()))
		case "gte":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param()))
		case "lte":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at most %s", err.Field(), err.Param()))
		default:
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is invalid", err.Field()))
		}
	}

	return Response{
		ResponseError: ResponseError{
			Code:    string(VALIDATION_FAILED),
			Message: strings.Join(errMsg, ", "),
		},
	}
}
