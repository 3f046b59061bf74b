package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/syframework/cache/internal/cache"
	"github.com/syframework/cache/internal/logging"
)

// AppOptions controls how the Fiber application exposes a cache.
type AppOptions struct {
	Logger     *logrus.Logger
	Cache      *cache.FileCache[any]
	DefaultTTL time.Duration
	ListenPort int
}

const (
	contextKeyRequestID = "_sycache_request_id"
	contextKeyCacheKey  = "_sycache_key"
	contextKeyCacheHit  = "_sycache_hit"
)

// NewApp builds a Fiber application serving the cache under /cache/<key> and
// the bulk operations under /-/multi.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Cache == nil {
		return nil, errors.New("cache is required")
	}
	if opts.ListenPort <= 0 {
		return nil, fmt.Errorf("invalid listen port: %d", opts.ListenPort)
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		UnescapePath:  true,
	})

	app.Use(recover.New())
	app.Use(requestContextMiddleware(opts.Logger))

	h := &handlers{cache: opts.Cache, defaultTTL: opts.DefaultTTL}

	app.Delete("/cache", h.clear)
	app.Head("/cache/*", h.has)
	app.Get("/cache/*", h.get)
	app.Put("/cache/*", h.set)
	app.Delete("/cache/*", h.delete)

	app.Post("/-/multi/get", h.getMultiple)
	app.Post("/-/multi/set", h.setMultiple)
	app.Post("/-/multi/delete", h.deleteMultiple)

	return app, nil
}

// requestContextMiddleware 生成请求 ID，并在请求结束后输出一条结构化日志。
func requestContextMiddleware(logger *logrus.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)

		err := c.Next()

		key, _ := c.Locals(contextKeyCacheKey).(string)
		hit, _ := c.Locals(contextKeyCacheHit).(bool)
		fields := logging.RequestFields(reqID, c.Method(), key, c.Response().StatusCode(), hit)
		if err != nil {
			logger.WithFields(fields).WithError(err).Warn("request failed")
		} else {
			logger.WithFields(fields).Debug("request served")
		}
		return err
	}
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}

func renderError(c fiber.Ctx, status int, code string, err error) error {
	body := fiber.Map{"error": code}
	if err != nil {
		body["message"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// renderCacheError maps argument errors to 400; anything else is a server fault.
func renderCacheError(c fiber.Ctx, err error) error {
	if errors.Is(err, cache.ErrInvalidArgument) {
		return renderError(c, fiber.StatusBadRequest, "invalid_key", err)
	}
	return renderError(c, fiber.StatusInternalServerError, "internal_error", err)
}
