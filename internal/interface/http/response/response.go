package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PaginatedResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func Paginated(c *gin.Context, data any, total, limit, offset int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Success: true,
		Data:    data,
		Pagination: Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+limit < total,
		},
	})
}

// resolve приводит любую ошибку к AppError. Неизвестные ошибки становятся INTERNAL_ERROR.
func resolve(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Wrap(err, apperror.ErrCodeInternal, "внутренняя ошибка сервера")
}

func body(appErr *apperror.AppError) Response {
	return Response{
		Success: false,
		Error:   &ErrorInfo{Code: string(appErr.Code), Message: appErr.Message},
	}
}

// Error пишет ответ с ошибкой. Ошибки 5xx логируются, текст драйвера клиенту не уходит.
func Error(c *gin.Context, err error) {
	appErr := resolve(err)
	logServerError(c, appErr, err)
	c.JSON(appErr.HTTPStatus, body(appErr))
}

// AbortError: вариант Error для middleware.
func AbortError(c *gin.Context, err error) {
	appErr := resolve(err)
	logServerError(c, appErr, err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, body(appErr))
}

func logServerError(c *gin.Context, appErr *apperror.AppError, err error) {
	if appErr.HTTPStatus < http.StatusInternalServerError {
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
		"code":   appErr.Code,
	}).WithError(err).Error("ошибка обработки запроса")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.New(apperror.ErrCodeBadRequest, message))
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, apperror.New(apperror.ErrCodeUnauthorized, message))
}
