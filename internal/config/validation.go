package config

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if _, err := logrus.ParseLevel(g.LogLevel); err != nil {
		return newFieldError("LogLevel", "无法识别的日志级别")
	}
	if g.LogFilePath != "" && g.LogMaxSize <= 0 {
		return newFieldError("LogMaxSize", "必须大于 0")
	}
	if g.LogMaxBackups < 0 {
		return newFieldError("LogMaxBackups", "不能为负数")
	}
	if g.CacheDir == "" {
		return newFieldError("CacheDir", "不能为空")
	}
	if g.DefaultTTL.DurationValue() < 0 {
		return newFieldError("DefaultTTL", "不能为负数")
	}
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("ListenPort", "必须在 1-65535")
	}
	return nil
}
