package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxJobTitleLength       = 200
	MaxJobDescriptionLength = 5000
	MaxCoverLetterLength    = 2000
	MaxSkillLength          = 50
	MaxSkillsCount          = 30
	MaxBudget               = 100000000.0 // 100 миллионов
	MaxEstimatedDays        = 365
	MaxMessageLength        = 5000
	MaxFeedbackLength       = 2000
	MaxReasonLength         = 2000
	MaxResolutionLength     = 2000
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// RequiredText обрезает пробелы и проверяет обязательное текстовое поле.
func RequiredText(fieldName, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if err := ValidateNonEmpty(fieldName, value); err != nil {
		return "", err
	}
	if err := ValidateLength(fieldName, value, 0, max); err != nil {
		return "", err
	}
	return value, nil
}

// NormalizeSkills обрезает навыки, выкидывает пустые и повторы (без учета регистра),
// сохраняя порядок первого вхождения.
func NormalizeSkills(skills []string) ([]string, error) {
	result := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return nil, fmt.Errorf("навык не может быть длиннее %d символов", MaxSkillLength)
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, skill)
	}

	if len(result) > MaxSkillsCount {
		return nil, fmt.Errorf("количество навыков не может превышать %d", MaxSkillsCount)
	}
	return result, nil
}

// SplitSkills разбирает строку навыков через запятую.
func SplitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
