package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRejectsInvalidDuration(t *testing.T) {
	cfg := `
LogLevel = "info"
CacheDir = "./data"
DefaultTTL = "boom"
`
	path := writeTempConfig(t, cfg)
	if _, err := Load(path); err == nil {
		t.Fatalf("无效 Duration 应失败")
	}
}

func TestLoadAcceptsSecondsDuration(t *testing.T) {
	cfg := `
CacheDir = "./data"
DefaultTTL = 90
`
	loaded, err := Load(writeTempConfig(t, cfg))
	if err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}
	if loaded.Global.DefaultTTL.DurationValue() != 90*time.Second {
		t.Fatalf("纯数字应按秒解析，得到 %v", loaded.Global.DefaultTTL.DurationValue())
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("45")); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if d.DurationValue() != 45*time.Second {
		t.Fatalf("期望 45s，得到 %v", d.DurationValue())
	}
	if err := d.UnmarshalText([]byte("later")); err == nil {
		t.Fatalf("非法值应返回错误")
	}
}

func testConfigPath(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("缺少测试配置 %s: %v", name, err)
	}
	return path
}

// writeTempConfig 把 TOML 内容写入临时目录并返回路径。
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sycache.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	return path
}
