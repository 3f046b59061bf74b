package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

func TestEncodeInfoComputesUptime(t *testing.T) {
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	payload := encodeInfo(Diagnostics{Root: "/tmp/cache", Version: "v1", StartedAt: started}, started.Add(90*time.Second))
	if payload.UptimeSeconds != 90 {
		t.Fatalf("expected 90s uptime, got %d", payload.UptimeSeconds)
	}
	if payload.Root != "/tmp/cache" || payload.Version != "v1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestInfoRoute(t *testing.T) {
	app := fiber.New()
	RegisterDiagnosticsRoutes(app, Diagnostics{Root: "/srv/cache", Version: "sycache test"})

	resp, err := app.Test(httptest.NewRequest("GET", "/-/info", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload infoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if payload.Root != "/srv/cache" {
		t.Fatalf("unexpected root %s", payload.Root)
	}
}

func TestMetricsRouteUsesHandler(t *testing.T) {
	app := fiber.New()
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "sycache_operations_total 0\n")
	})
	RegisterDiagnosticsRoutes(app, Diagnostics{Metrics: metrics})

	resp, err := app.Test(httptest.NewRequest("GET", "/-/metrics", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "sycache_operations_total") {
		t.Fatalf("unexpected metrics body: %s", body)
	}
}

func TestMetricsRouteAbsentWithoutHandler(t *testing.T) {
	app := fiber.New()
	RegisterDiagnosticsRoutes(app, Diagnostics{})

	resp, err := app.Test(httptest.NewRequest("GET", "/-/metrics", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 without metrics handler, got %d", resp.StatusCode)
	}
}
