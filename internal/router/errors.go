package router

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"seminar/internal/errors"
)

// NewHTTPErrorHandler renders every error as errors.ErrorResponse, or as a
// field map for validation failures.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := renderError(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func renderError(err error) (int, interface{}) {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		return http.StatusBadRequest, errors.ValidationErrorResponse{
			Error:  errors.MsgMissingFields,
			Code:   "VALIDATION_ERROR",
			Fields: fields,
		}
	}

	if _, ok := errors.AsSeminarError(err); ok {
		he := errors.MapErrorToHTTP(err)
		return he.StatusCode, he.ToErrorResponse()
	}

	var ee *echo.HTTPError
	if stderrors.As(err, &ee) {
		if resp, ok := ee.Message.(errors.ErrorResponse); ok {
			return ee.Code, resp
		}
		msg, ok := ee.Message.(string)
		if !ok {
			msg = http.StatusText(ee.Code)
		}
		return ee.Code, errors.ErrorResponse{Error: msg, Code: http.StatusText(ee.Code)}
	}

	he := errors.MapErrorToHTTP(err)
	return he.StatusCode, he.ToErrorResponse()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}
