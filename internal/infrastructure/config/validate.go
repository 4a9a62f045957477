package config

import (
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePort checks if a port number is valid.
func ValidatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &ValidationError{Field: field, Message: "must be between 1 and 65535"}
	}
	return nil
}

// ValidateLogLevel checks if a log level is valid.
func ValidateLogLevel(field, level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return &ValidationError{Field: field, Message: "must be one of: debug, info, warn, error"}
	}
}

// ValidateHTTPURL checks that value is an absolute http or https URL.
// Empty values are accepted; callers decide whether the field is required.
func ValidateHTTPURL(field, value string) error {
	if value == "" {
		return nil
	}

	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: field, Message: "must be an absolute http(s) URL"}
	}
	return nil
}

// ValidatePositive checks that an integer setting is greater than zero.
func ValidatePositive(field string, value int) error {
	if value <= 0 {
		return &ValidationError{Field: field, Message: "must be greater than zero"}
	}
	return nil
}
