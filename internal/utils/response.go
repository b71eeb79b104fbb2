package utils

import (
	"net/http"

	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/gin-gonic/gin"
)

func RespondOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, types.Response{
		Success: true,
		Data:    data,
	})
}

func RespondCreated(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, types.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondMessage is the 200 success shape for updates and deletes. Data may
// be nil.
func RespondMessage(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, types.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, types.Response{
		Success: false,
		Message: message,
	})
}

func RespondValidationErrors(ctx *gin.Context, errors map[string][]string) {
	ctx.JSON(http.StatusUnprocessableEntity, types.Response{
		Success: false,
		Message: "The given data was invalid",
		Errors:  errors,
	})
}

func RespondInternal(ctx *gin.Context, message string, err error) {
	ctx.JSON(http.StatusInternalServerError, types.Response{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
