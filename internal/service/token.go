package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

// TokenManager проверяет access-токены внешнего провайдера идентичности (HS256).
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue выпускает access-токен. Нужен тестам и локальной отладке, пользователям токены выдаёт провайдер.
func (m *TokenManager) Issue(userID uuid.UUID, role valueobject.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseAccess извлекает userID и роль из access токена.
func (m *TokenManager) ParseAccess(token string) (uuid.UUID, string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, "", err
	}
	if !parsed.Valid {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}
	role, _ := claims["role"].(string)

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, role, nil
}

// Authenticate превращает токен в Identity. Любая ошибка даёт UNAUTHORIZED.
func (m *TokenManager) Authenticate(token string) (valueobject.Identity, error) {
	userID, role, err := m.ParseAccess(token)
	if err != nil {
		return valueobject.Identity{}, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "токен невалиден")
	}
	identity, err := valueobject.NewIdentity(userID, role)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return valueobject.Identity{}, apperror.Wrap(err, apperror.ErrCodeUnauthorized, appErr.Message)
		}
		return valueobject.Identity{}, apperror.ErrUnauthorized
	}
	return identity, nil
}
