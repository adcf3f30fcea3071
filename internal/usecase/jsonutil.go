package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

// Helpers for walking loosely-structured upstream payloads. Upstream shapes
// drift; every accessor degrades to a zero value instead of panicking.

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	switch value := raw.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}

func getBool(src map[string]any, key string) bool {
	if src == nil {
		return false
	}
	value, _ := src[key].(bool)
	return value
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	value, _ := src[key].(map[string]any)
	return value
}

func getList(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	value, _ := src[key].([]any)
	return value
}

func asMap(raw any) map[string]any {
	value, _ := raw.(map[string]any)
	return value
}

// coerceUint turns string or numeric stat values into a uint, reporting
// whether the value was actually present and parseable.
func coerceUint(raw any) (uint, bool) {
	switch value := raw.(type) {
	case float64:
		if value < 0 {
			return 0, false
		}
		return uint(value), true
	case float32:
		if value < 0 {
			return 0, false
		}
		return uint(value), true
	case int:
		if value < 0 {
			return 0, false
		}
		return uint(value), true
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	default:
		return 0, false
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// scoreText keeps upstream score values verbatim when they are strings and
// formats numbers without a trailing fraction.
func scoreText(raw any) string {
	switch value := raw.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return fmt.Sprintf("%d", value)
	default:
		return ""
	}
}
