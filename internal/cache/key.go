package cache

import (
	"io/fs"
	"reflect"
	"strings"
)

// reservedKeyChars may never appear in a key. They are kept free for future
// namespacing and keep keys safe to use as path components.
const reservedKeyChars = `{}()*\@:`

// ValidateKey rejects empty keys and keys containing a reserved character.
// A `/` is legal and maps to a nested directory in the durable tier, but the
// key must already be a clean relative path: no leading or trailing `/`, no
// empty, `.` or `..` segments. Every accepted key names exactly one file.
func ValidateKey(key string) error {
	if key == "" || key == "." || strings.ContainsAny(key, reservedKeyChars) || !fs.ValidPath(key) {
		return invalidKey(key)
	}
	return nil
}

// KeyFromValue validates a dynamically typed key, such as one decoded from a
// JSON request body, and returns it as a string.
func KeyFromValue(v any) (string, error) {
	key, ok := v.(string)
	if !ok {
		return "", invalidKeyType(v)
	}
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// validateKeys only checks the container. Individual keys are validated by
// the singular operation each bulk call delegates to.
func validateKeys(keys []string) error {
	if keys == nil {
		return invalidCollection("keys")
	}
	return nil
}

func validateValues[V any](values map[string]V) error {
	if values == nil {
		return invalidCollection("values")
	}
	return nil
}

func describeType(v any) string {
	if v == nil {
		return "nil"
	}
	t := reflect.TypeOf(v)
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() == reflect.Struct && base.Name() != "" {
		return t.String() + " " + base.Kind().String()
	}
	return t.String()
}
