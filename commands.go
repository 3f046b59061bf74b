package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/syframework/cache/internal/cache"
	"github.com/syframework/cache/internal/config"
	"github.com/syframework/cache/internal/metrics"
	"github.com/syframework/cache/internal/server"
	"github.com/syframework/cache/internal/server/routes"
	"github.com/syframework/cache/internal/version"
)

// commandEnv 汇总子命令共享的依赖。
type commandEnv struct {
	cfg       *config.Config
	cache     *cache.FileCache[any]
	logger    *logrus.Logger
	collector *metrics.Collector
}

// runCommand 执行子命令并返回退出码：0 成功，1 未命中或写入失败，2 参数错误。
func runCommand(env commandEnv, command string, args []string) (int, error) {
	switch command {
	case "get":
		return runGet(env, args)
	case "set":
		return runSet(env, args)
	case "delete":
		return runDelete(env, args)
	case "has":
		return runHas(env, args)
	case "clear":
		if len(args) != 0 {
			return 2, errUsage
		}
		if !env.cache.Clear() {
			return 1, fmt.Errorf("清空缓存失败: %s", env.cache.Root())
		}
		return 0, nil
	case "serve":
		if len(args) != 0 {
			return 2, errUsage
		}
		if err := startHTTPServer(env); err != nil {
			return 1, fmt.Errorf("HTTP 服务启动失败: %w", err)
		}
		return 0, nil
	default:
		return 2, fmt.Errorf("未知子命令 %q\n%s", command, usage)
	}
}

func runGet(env commandEnv, args []string) (int, error) {
	if len(args) < 1 || len(args) > 2 {
		return 2, errUsage
	}

	var def any
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &def); err != nil {
			return 2, fmt.Errorf("默认值不是合法 JSON: %w", err)
		}
	}

	value, err := env.cache.Get(args[0], def)
	if err != nil {
		return 2, err
	}
	if value == nil {
		return 1, fmt.Errorf("缓存未命中: %s", args[0])
	}
	return printJSON(value)
}

func runSet(env commandEnv, args []string) (int, error) {
	if len(args) != 2 {
		return 2, errUsage
	}

	var value any
	if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
		return 2, fmt.Errorf("值不是合法 JSON: %w", err)
	}

	ok, err := env.cache.Set(args[0], value, env.cfg.Global.DefaultTTL.DurationValue())
	if err != nil {
		return 2, err
	}
	if !ok {
		return 1, fmt.Errorf("写入缓存失败: %s", args[0])
	}
	return 0, nil
}

func runDelete(env commandEnv, args []string) (int, error) {
	if len(args) == 0 {
		return 2, errUsage
	}
	ok, err := env.cache.DeleteMultiple(args)
	if err != nil {
		return 2, err
	}
	if !ok {
		return 1, fmt.Errorf("删除缓存失败")
	}
	return 0, nil
}

func runHas(env commandEnv, args []string) (int, error) {
	if len(args) != 1 {
		return 2, errUsage
	}
	ok, err := env.cache.Has(args[0])
	if err != nil {
		return 2, err
	}
	fmt.Fprintln(stdOut, ok)
	if !ok {
		return 1, nil
	}
	return 0, nil
}

func printJSON(value any) (int, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return 1, err
	}
	fmt.Fprintln(stdOut, string(encoded))
	return 0, nil
}

func startHTTPServer(env commandEnv) error {
	port := env.cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:     env.logger,
		Cache:      env.cache,
		DefaultTTL: env.cfg.Global.DefaultTTL.DurationValue(),
		ListenPort: port,
	})
	if err != nil {
		return err
	}
	routes.RegisterDiagnosticsRoutes(app, routes.Diagnostics{
		Root:      env.cache.Root(),
		Version:   version.Full(),
		StartedAt: time.Now(),
		Metrics:   env.collector.Handler(),
	})

	env.logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
		"root":   env.cache.Root(),
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
