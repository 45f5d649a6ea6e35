package errors

import (
	"errors"
	"net/http"
)

// Messages returned to clients. They are part of the public API.
const (
	MsgSeminarNotFound          = "해당 세미나가 존재하지 않습니다."
	MsgOnlyInstructorCanCreate  = "세미나 진행자만 세미나를 생성할 수 있습니다."
	MsgOnlyOwnerCanModify       = "세미나 진행자만 세미나를 수정할 수 있습니다."
	MsgAlreadyHasSeminar        = "이미 참여하고 있는 세미나가 존재합니다."
	MsgMissingFields            = "필요한 정보를 모두 입력해주세요"
	MsgNonPositiveCapacityCount = "수강 정원과 세미나 횟수는 1 이상이어야 합니다."
	MsgInvalidTime              = "올바른 시간 값을 입력해주세요"
	MsgCapacityTooSmall         = "수강 정원은 1명 이상이어야 합니다."
	MsgCapacityBelowActive      = "현재 참여 인원보다 적은 정원으로 변경할 수 없습니다."
	MsgInvalidRole              = "올바른 role을 입력해주세요."
	MsgNotRegistered            = "활성회원이 아닙니다."
	MsgNotInstructor            = "세미나 진행 자격이 없습니다."
	MsgNotParticipant           = "세미나 참여 자격이 없습니다."
	MsgAlreadyInstructing       = "이미 진행하는 세미나가 존재합니다."
	MsgDroppedBefore            = "중도포기한 세미나는 다시 참여할 수 없습니다."
	MsgAlreadyJoined            = "이미 세미나에 참여하고 있습니다."
	MsgSeminarFull              = "이미 수강 정원이 가득찼습니다."
	MsgInstructorCannotDrop     = "세미나 진행자는 세미나를 드랍할 수 없습니다."
	MsgAlreadyDropped           = "이미 드랍한 세미나입니다."

	MsgEmailExists         = "이미 존재하는 이메일입니다."
	MsgEmailNotFound       = "존재하지 않는 이메일입니다."
	MsgWrongPassword       = "비밀번호가 일치하지 않습니다."
	MsgUserNotFound        = "존재하지 않는 사용자입니다."
	MsgInvalidYear         = "올바른 연차를 입력해주세요."
	MsgAlreadyParticipant  = "이미 참여자로 등록되어 있습니다."
	MsgInvalidToken        = "유효하지 않은 토큰입니다."
	MsgUnidentifiedUser    = "사용자를 식별할 수 없습니다"
	MsgInvalidRequestBody  = "잘못된 요청입니다."
	MsgInternalServerError = "internal server error"
)

// SeminarError is a business-rule violation carrying its HTTP status.
type SeminarError struct {
	Status  int
	Message string
	Code    string
}

func (e *SeminarError) Error() string {
	return e.Message
}

// Is matches any SeminarError with the same status and message, so tests and
// callers can compare against a freshly built value.
func (e *SeminarError) Is(target error) bool {
	t, ok := target.(*SeminarError)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

// NotFound builds a 404 error.
func NotFound(message string) *SeminarError {
	return &SeminarError{Status: http.StatusNotFound, Message: message, Code: "NOT_FOUND"}
}

// BadRequest builds a 400 error.
func BadRequest(message string) *SeminarError {
	return &SeminarError{Status: http.StatusBadRequest, Message: message, Code: "BAD_REQUEST"}
}

// Forbidden builds a 403 error.
func Forbidden(message string) *SeminarError {
	return &SeminarError{Status: http.StatusForbidden, Message: message, Code: "FORBIDDEN"}
}

// Conflict builds a 409 error.
func Conflict(message string) *SeminarError {
	return &SeminarError{Status: http.StatusConflict, Message: message, Code: "CONFLICT"}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *SeminarError {
	return &SeminarError{Status: http.StatusUnauthorized, Message: message, Code: "UNAUTHORIZED"}
}

// AsSeminarError unwraps err to a SeminarError if it is one.
func AsSeminarError(err error) (*SeminarError, bool) {
	var se *SeminarError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// StatusOf returns the HTTP status of err, or 500 when err is not a SeminarError.
func StatusOf(err error) int {
	var se *SeminarError
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ValidationErrorResponse maps request fields to messages.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything that is not a
// SeminarError is reported as an internal error without leaking its text.
func MapErrorToHTTP(err error) *HTTPError {
	var se *SeminarError
	if errors.As(err, &se) {
		return NewHTTPError(se.Status, se.Message, se.Code)
	}
	return NewHTTPError(http.StatusInternalServerError, MsgInternalServerError, "INTERNAL_ERROR")
}
