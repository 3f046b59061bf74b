package server

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/syframework/cache/internal/cache"
)

type handlers struct {
	cache      *cache.FileCache[any]
	defaultTTL time.Duration
}

type keysRequest struct {
	Keys    []any `json:"keys"`
	Default any   `json:"default"`
}

type valuesRequest struct {
	Values map[string]any `json:"values"`
	TTL    string         `json:"ttl"`
}

func (h *handlers) has(c fiber.Ctx) error {
	key := cacheKey(c)
	ok, err := h.cache.Has(key)
	if err != nil {
		return renderCacheError(c, err)
	}
	c.Locals(contextKeyCacheHit, ok)
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}

// get relies on Set refusing nil: a nil result can only be a miss.
func (h *handlers) get(c fiber.Ctx) error {
	key := cacheKey(c)
	value, err := h.cache.Get(key, nil)
	if err != nil {
		return renderCacheError(c, err)
	}
	if value == nil {
		return renderError(c, fiber.StatusNotFound, "cache_miss", nil)
	}
	c.Locals(contextKeyCacheHit, true)
	return c.JSON(value)
}

func (h *handlers) set(c fiber.Ctx) error {
	key := cacheKey(c)
	ttl, err := h.ttl(c.Query("ttl"))
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, "invalid_ttl", err)
	}

	var value any
	if err := json.Unmarshal(c.Body(), &value); err != nil {
		return renderError(c, fiber.StatusBadRequest, "invalid_body", err)
	}

	stored, err := h.cache.Set(key, value, ttl)
	if err != nil {
		return renderCacheError(c, err)
	}
	if !stored {
		return renderError(c, fiber.StatusUnprocessableEntity, "not_stored", nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) delete(c fiber.Ctx) error {
	removed, err := h.cache.Delete(cacheKey(c))
	if err != nil {
		return renderCacheError(c, err)
	}
	if !removed {
		return renderError(c, fiber.StatusInternalServerError, "delete_failed", nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) clear(c fiber.Ctx) error {
	if !h.cache.Clear() {
		return renderError(c, fiber.StatusInternalServerError, "clear_failed", nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handlers) getMultiple(c fiber.Ctx) error {
	var req keysRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return renderError(c, fiber.StatusBadRequest, "invalid_body", err)
	}

	keys, typeErr := stringKeys(req.Keys)
	values, err := h.cache.GetMultiple(keys, req.Default)
	if err != nil {
		return renderCacheError(c, err)
	}
	if typeErr != nil {
		return renderCacheError(c, typeErr)
	}
	return c.JSON(fiber.Map{"values": values})
}

func (h *handlers) setMultiple(c fiber.Ctx) error {
	var req valuesRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return renderError(c, fiber.StatusBadRequest, "invalid_body", err)
	}
	ttl, err := h.ttl(req.TTL)
	if err != nil {
		return renderError(c, fiber.StatusBadRequest, "invalid_ttl", err)
	}

	ok, err := h.cache.SetMultiple(req.Values, ttl)
	if err != nil {
		return renderCacheError(c, err)
	}
	return c.JSON(fiber.Map{"success": ok})
}

func (h *handlers) deleteMultiple(c fiber.Ctx) error {
	var req keysRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return renderError(c, fiber.StatusBadRequest, "invalid_body", err)
	}

	keys, typeErr := stringKeys(req.Keys)
	ok, err := h.cache.DeleteMultiple(keys)
	if err != nil {
		return renderCacheError(c, err)
	}
	if typeErr != nil {
		return renderCacheError(c, typeErr)
	}
	return c.JSON(fiber.Map{"success": ok})
}

func (h *handlers) ttl(raw string) (time.Duration, error) {
	if raw == "" {
		return h.defaultTTL, nil
	}
	return time.ParseDuration(raw)
}

func cacheKey(c fiber.Ctx) string {
	key := c.Params("*")
	c.Locals(contextKeyCacheKey, key)
	return key
}

// stringKeys keeps the keys preceding the first non-string entry, so the bulk
// call still applies that prefix before the type error is reported.
func stringKeys(raw []any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(raw))
	for _, v := range raw {
		key, ok := v.(string)
		if !ok {
			_, err := cache.KeyFromValue(v)
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
