package config

import "fmt"

// FieldError 提供字段路径与错误原因，便于 CLI 向用户反馈。
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// newFieldError 创建包含字段路径与原因的 error，字段统一带 Global. 前缀。
func newFieldError(field, reason string) error {
	return FieldError{Field: "Global." + field, Reason: reason}
}
