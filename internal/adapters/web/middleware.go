package web

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"slack-archiver/pkg/log"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDLocal  = "requestid"
)

// probePaths are polled by infrastructure and logged at debug.
var probePaths = map[string]bool{
	"/healthz": true,
	"/metrics": true,
}

// RequestIDConfig honours an incoming X-Request-ID and generates a UUID otherwise.
func RequestIDConfig() requestid.Config {
	return requestid.Config{
		Header:     requestIDHeader,
		ContextKey: requestIDLocal,
		Generator:  uuid.NewString,
	}
}

// ContextMiddleware copies the request id and route into the log context.
// It must run after requestid.New.
//
// Strings read from the fiber context point into reused request buffers and
// log entries are written asynchronously, so they are cloned first.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if id, ok := c.Locals(requestIDLocal).(string); ok && id != "" {
			ctx = log.WithRequestID(ctx, strings.Clone(id))
		}
		ctx = log.WithFields(ctx, "method", strings.Clone(c.Method()), "path", strings.Clone(c.Path()))
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// AccessLogMiddleware writes one entry per request once the response status is known.
// It must run after ContextMiddleware.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// Let the app's error handler set the final status before logging.
		if err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ctx := c.UserContext()
		fields := []any{
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.IP(),
		}
		if err != nil {
			fields = append(fields, "error", err.Error())
		}

		switch {
		case status >= 500:
			log.GlobalErrorCtx(ctx, "request completed", fields...)
		case status >= 400:
			log.GlobalWarnCtx(ctx, "request completed", fields...)
		case probePaths[c.Path()]:
			log.GlobalDebugCtx(ctx, "request completed", fields...)
		default:
			log.GlobalInfoCtx(ctx, "request completed", fields...)
		}

		return nil
	}
}
