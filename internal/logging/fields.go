package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// CacheFields 提供 action + key 字段，供缓存读写失败日志复用。
func CacheFields(action, key string) logrus.Fields {
	return logrus.Fields{
		"action": action,
		"key":    key,
	}
}

// RequestFields 提供 HTTP 请求日志字段，cache_hit 标记是否命中缓存。
func RequestFields(requestID, method, key string, status int, cacheHit bool) logrus.Fields {
	return logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"key":        key,
		"status":     status,
		"cache_hit":  cacheHit,
	}
}
