package routes

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Diagnostics 描述 /-/ 诊断接口需要的只读信息。
type Diagnostics struct {
	Root      string
	Version   string
	StartedAt time.Time
	Metrics   http.Handler
}

type infoPayload struct {
	Root          string `json:"root"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// RegisterDiagnosticsRoutes 暴露 /-/info 与 /-/metrics，供 SRE 查询缓存根目录与计数器。
func RegisterDiagnosticsRoutes(app *fiber.App, diag Diagnostics) {
	if app == nil {
		return
	}

	app.Get("/-/info", func(c fiber.Ctx) error {
		return c.JSON(encodeInfo(diag, time.Now()))
	})

	if diag.Metrics != nil {
		app.Get("/-/metrics", adaptor.HTTPHandler(diag.Metrics))
	}
}

func encodeInfo(diag Diagnostics, now time.Time) infoPayload {
	payload := infoPayload{
		Root:    diag.Root,
		Version: diag.Version,
	}
	if !diag.StartedAt.IsZero() {
		payload.UptimeSeconds = int64(now.Sub(diag.StartedAt) / time.Second)
	}
	return payload
}
