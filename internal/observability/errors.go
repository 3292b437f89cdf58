package observability

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	ErrorNetwork   = "network"
	ErrorParsing   = "parsing"
	ErrorRateLimit = "rate_limit"
	ErrorSheet     = "sheet"
	ErrorStore     = "store"
	ErrorUnknown   = "unknown"
)

// StatusError is implemented by errors that carry an HTTP status code.
type StatusError interface {
	error
	StatusCode() int
}

func ClassifyFetchError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	var se StatusError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode() == http.StatusTooManyRequests:
			return ErrorRateLimit
		case se.StatusCode() >= 500:
			return ErrorNetwork
		default:
			return ErrorNetwork
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorNetwork
	}
	return ErrorUnknown
}

func ClassifySyncError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if kind := ClassifyFetchError(err); kind != ErrorUnknown {
		return kind
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "decode") ||
		strings.Contains(msg, "unmarshal") ||
		strings.Contains(msg, "invalid character"):
		return ErrorParsing
	case strings.Contains(msg, "sheet"):
		return ErrorSheet
	case strings.Contains(msg, "archive") || strings.Contains(msg, "db"):
		return ErrorStore
	}
	return ErrorUnknown
}
