package errors

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"sync/atomic"
)

// error categories, also used as metric labels
const (
	CategoryNetwork    = "network"
	CategoryTimeout    = "timeout"
	CategoryNotFound   = "not_found"
	CategoryUpstream   = "upstream"
	CategoryValidation = "validation"
	CategoryUnknown    = "unknown"
)

// category plus the message safe to show outside the process
type Info struct {
	Category  string
	Sanitized string
}

var production atomic.Bool

func init() {
	production.Store(os.Getenv("QUILL_ENV") == "production")
}

// switches client-facing messages between raw details and generic text.
// servers call this once with the loaded environment.
func SetProduction(on bool) {
	production.Store(on)
}

// reports whether error details should be hidden from clients
func isProduction() bool {
	return production.Load()
}

// analyzes an error and returns its category and sanitized message
func Classify(err error) Info {
	if err == nil {
		return Info{CategoryUnknown, ""}
	}

	return classifyMessage(err, err.Error())
}

// returns the client-facing text for err
func Sanitize(err error) string {
	return Classify(err).Sanitized
}

// same as Sanitize for an error already flattened to text
func SanitizeMessage(msg string) string {
	if msg == "" {
		return ""
	}

	return classifyMessage(nil, msg).Sanitized
}

func classifyMessage(err error, msg string) Info {
	production := isProduction()

	// context errors
	if errors.Is(err, context.DeadlineExceeded) {
		return Info{CategoryTimeout, ternary(production, "request timed out", msg)}
	}

	if errors.Is(err, context.Canceled) {
		return Info{CategoryTimeout, ternary(production, "request canceled", msg)}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return Info{CategoryTimeout, ternary(production, "request timed out", msg)}
		}

		return Info{CategoryNetwork, ternary(production, "connection error occurred", msg)}
	}

	// fallback to string matching for errors that were flattened or wrapped as text
	lower := strings.ToLower(msg)

	if strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline") {
		return Info{CategoryTimeout, ternary(production, "request timed out", msg)}
	}

	if strings.Contains(lower, "connection") || strings.Contains(lower, "network") ||
		strings.Contains(lower, "dial") || strings.Contains(lower, "no such host") {
		return Info{CategoryNetwork, ternary(production, "connection error occurred", msg)}
	}

	if strings.Contains(lower, "not found") || strings.Contains(lower, "status 404") {
		return Info{CategoryNotFound, ternary(production, "model or resource not found", msg)}
	}

	if strings.Contains(lower, "returned status") || strings.Contains(lower, "status code") ||
		strings.Contains(lower, "incomplete response") || strings.Contains(lower, "no content") {
		return Info{CategoryUpstream, ternary(production, "the generation server returned an unusable response", msg)}
	}

	if strings.Contains(lower, "validation") || strings.Contains(lower, "binding") ||
		strings.Contains(lower, "invalid") || strings.Contains(lower, "required") {
		return Info{CategoryValidation, ternary(production, "validation failed", msg)}
	}

	// unknown - generic response
	return Info{CategoryUnknown, ternary(production, "an error occurred", msg)}
}

// ternary helper for cleaner conditional assignment
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}

	return falseVal
}
