package models

const (
	BadRequestErrorCode     = 400
	UnauthorizedErrorCode   = 401
	NotFoundErrorCode       = 404
	InternalServerErrorCode = 500
	BadGatewayErrorCode     = 502
	ServiceUnavailableCode  = 503
)

// AppError is an error safe to show to API callers.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}
