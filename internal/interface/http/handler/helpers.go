package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/http/middleware"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/response"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// currentIdentity пишет 401 и возвращает false, если AuthMiddleware не отработал.
func currentIdentity(c *gin.Context) (valueobject.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Unauthorized(c, "требуется авторизация")
		return valueobject.Identity{}, false
	}
	return identity, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "некорректный ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON разбирает тело и переводит ошибки валидатора в понятное сообщение.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "notblank":
			return apperror.Validation(fmt.Sprintf("поле %s обязательно", field))
		case "gt", "gte":
			return apperror.Validation(fmt.Sprintf("поле %s должно быть больше %s", field, orZero(fe.Param())))
		case "oneof":
			return apperror.Validation(fmt.Sprintf("поле %s должно быть одним из: %s", field, fe.Param()))
		default:
			return apperror.Validation(fmt.Sprintf("поле %s заполнено некорректно", field))
		}
	}
	return apperror.New(apperror.ErrCodeBadRequest, "некорректные данные запроса")
}

func orZero(param string) string {
	if param == "" {
		return "0"
	}
	return param
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func parseFloatQuery(c *gin.Context, key string) *float64 {
	valueStr := c.Query(key)
	if valueStr == "" {
		return nil
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return nil
	}

	return &value
}

// pageParams возвращает limit в диапазоне 1..100 и неотрицательный offset.
func pageParams(c *gin.Context) (int, int) {
	limit := parseIntQuery(c, "limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := parseIntQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
