package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Helpers return an empty Attr for nil or empty input, which slog drops.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors" keyed by their position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Latency creates an attribute for request latency.
func Latency(d time.Duration) slog.Attr {
	return slog.Duration("latency", d)
}

// ID creates an identifier attribute under a custom key.
func ID(key string, value any) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// RequestID creates a request identifier attribute.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// UserID creates a user identifier attribute.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

func Method(method string) slog.Attr { return slog.String("method", method) }
func Path(path string) slog.Attr { return slog.String("path", path) }
func StatusCode(code int) slog.Attr { return slog.Int("status", code) }
func ClientIP(ip string) slog.Attr { return slog.String("client_ip", ip) }
func UserAgent(ua string) slog.Attr { return slog.String("user_agent", ua) }
func BytesOut(n int64) slog.Attr { return slog.Int64("bytes_out", n) }
func Component(name string) slog.Attr { return slog.String("component", name) }
func Event(name string) slog.Attr { return slog.String("event", name) }
func Action(action string) slog.Attr { return slog.String("action", action) }

// Count creates a numeric counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// RetryCount creates an attribute for retry attempts.
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}
