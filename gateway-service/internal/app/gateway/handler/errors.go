package handler

import (
	"errors"
	"net/http"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/infrastructure"
	"focusmap/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// writeCallError отвечает 500 на любую ошибку адаптера протокола.
// В details попадает описание ошибки вызова (код и сообщение сервера).
func writeCallError(c *gin.Context, message string, err error) {
	event := logger.Error().Err(err).Str("request_id", logger.RequestID(c))

	var callErr *infrastructure.CallError
	if errors.As(err, &callErr) {
		event = event.Str("protocol", callErr.Protocol).Str("outcome", infrastructure.Outcome(err))
	}
	event.Msg(message)

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
		Error:   message,
		Details: err.Error(),
	})
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
