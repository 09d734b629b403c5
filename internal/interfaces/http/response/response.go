package response

import (
	"errors"

	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a page of items with its metadata
func Paginated(c *gin.Context, status int, items interface{}, meta utils.PaginationMeta) {
	c.JSON(status, gin.H{
		"items": items,
		"meta":  meta,
	})
}

// Error sends an error response. Errors that are not AppErrors become 500s.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}
	_ = c.Error(err)

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
