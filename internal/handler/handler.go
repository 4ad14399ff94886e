package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/apperror"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/middleware"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator engine.
// Field errors report JSON names instead of Go field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("notblank", notBlank)
	})
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// notBlank rejects strings made of whitespace only; nil pointers are left to "required"
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(c *gin.Context, logger *slog.Logger, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("❌ [Handler] Internal server error", "path", c.FullPath(), "error", err)
	} else {
		logger.Debug("⚠️ [Handler] Request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": apperror.Message(err)})
}

// bindJSON decodes the body into req and writes a 400 on failure
func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("⚠️ [Handler] Invalid request body", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return false
	}
	return true
}

func bindingErrorMessage(err error) string {
	var numErr *NumberError
	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &numErr):
		return numErr.Error()
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		return fieldErrorMessage(fieldErrs[0])
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Invalid type for field '%s'", typeErr.Field)
	case errors.As(err, &syntaxErr):
		return "Malformed JSON payload"
	default:
		return "Invalid JSON payload"
	}
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("Field '%s' is required", fe.Field())
	case "max":
		return fmt.Sprintf("Field '%s' must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return "Invalid email format"
	default:
		return fmt.Sprintf("Field '%s' is invalid", fe.Field())
	}
}

// canonicalUUID accepts only the hyphenated 36 character form.
// uuid.Parse also takes braces, urn:uuid: and bare hex, which would alias one entity under several paths.
func canonicalUUID(raw string) (string, bool) {
	if len(raw) != 36 {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// parseID validates a UUID path parameter and writes a 400 when it is malformed
func parseID(c *gin.Context, param, entity string) (string, bool) {
	id, ok := canonicalUUID(c.Param(param))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s ID format. Must be a UUID.", entity)})
		return "", false
	}
	return id, true
}

// principal returns the authenticated caller or writes a 401
func principal(c *gin.Context) (*service.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return nil, false
	}
	return p, true
}

// canModify reports whether the caller owns the resource or is an admin
func canModify(p *service.Principal, ownerID string) bool {
	return p.IsAdmin || p.UserID == ownerID
}

func forbidden(c *gin.Context, logger *slog.Logger, p *service.Principal, action string) {
	logger.Warn("⚠️ [Handler] Forbidden", "user_id", p.UserID, "action", action)
	handleServiceError(c, logger, apperror.Forbidden("Unauthorized action"))
}
