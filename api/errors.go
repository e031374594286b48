package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekmark/trekmark-api/store"
)

// ErrorResponse is the failure envelope: status is "fail" for client
// errors and "error" for server errors.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// operational errors surfaced to clients with their own message
var (
	errInvalidID        = errors.New("invalid ID")
	errCannotParse      = errors.New("cannot parse request")
	errNotLoggedIn      = errors.New("you are not logged in, please log in to get access")
	errTokenInvalid     = errors.New("invalid token, please log in again")
	errTokenExpired     = errors.New("your token has expired, please log in again")
	errTokenUserGone    = errors.New("the user belonging to this token no longer exists")
	errWrongCredentials = errors.New("incorrect email or password")
	errForbidden        = errors.New("you do not have permission to perform this action")
	errPasswordWeak     = errors.New("a password must have at least 8 characters")
	errPasswordMismatch = errors.New("passwords do not match")
	errPasswordRoute    = errors.New("this route is not for password updates")
	errBadLatLng        = errors.New("please provide latitude and longitude in the format lat,lng")
	errBadYear          = errors.New("please provide a valid year")
)

// translateError is the single point mapping internal failure shapes to
// client visible responses. Programming errors keep their detail only in
// development mode.
func translateError(err error) (int, ErrorResponse) {
	var (
		code    int
		message string

		validationErrs validator.ValidationErrors
		invalidQuery   *store.ErrInvalidQuery
	)

	switch {
	case errors.Is(err, store.ErrNotFound):
		code, message = http.StatusNotFound, "no document found with that ID"
	case errors.As(err, &validationErrs):
		code, message = http.StatusBadRequest, validationMessage(validationErrs)
	case errors.As(err, &invalidQuery):
		code, message = http.StatusBadRequest, invalidQuery.Error()
	case mongo.IsDuplicateKeyError(err):
		code, message = http.StatusBadRequest, "duplicate field value, please use another value"
	case errors.Is(err, errInvalidID), errors.Is(err, primitive.ErrInvalidHex):
		code, message = http.StatusBadRequest, errInvalidID.Error()
	case errors.Is(err, errCannotParse),
		errors.Is(err, errPasswordWeak),
		errors.Is(err, errPasswordMismatch),
		errors.Is(err, errPasswordRoute),
		errors.Is(err, errBadLatLng),
		errors.Is(err, errBadYear):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, errNotLoggedIn),
		errors.Is(err, errTokenInvalid),
		errors.Is(err, errTokenExpired),
		errors.Is(err, errTokenUserGone),
		errors.Is(err, errWrongCredentials):
		code, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, errForbidden):
		code, message = http.StatusForbidden, err.Error()
	default:
		code = http.StatusInternalServerError
		if developmentMode() {
			message = err.Error()
		} else {
			message = "something went very wrong"
		}
	}

	return code, ErrorResponse{Status: statusWord(code), Message: message}
}

func statusWord(code int) string {
	if code >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

func validationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("invalid value for %s (%s)", fe.Field(), fe.Tag()))
	}
	return "invalid input data: " + strings.Join(parts, ", ")
}

// developmentMode reports whether detailed diagnostics may be returned to
// the caller. The configured mode is normalized before comparison.
func developmentMode() bool {
	mode := strings.TrimSpace(viper.GetString("server.environment"))
	return strings.EqualFold(mode, "development")
}

func abortWithError(c *gin.Context, err error) {
	code, resp := translateError(err)
	if code >= http.StatusInternalServerError {
		log.WithError(err).Error("unexpected error")
		sentry.CaptureException(err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, resp)
}
