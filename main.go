package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/syframework/cache/internal/cache"
	"github.com/syframework/cache/internal/config"
	"github.com/syframework/cache/internal/logging"
	"github.com/syframework/cache/internal/metrics"
	"github.com/syframework/cache/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
	command     string
	args        []string
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

const usage = "用法: sycache [-config path] [-check-config] [-version] <get|set|delete|has|clear|serve> [args]"

// errUsage 标记参数错误，对应退出码 2。
var errUsage = errors.New(usage)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		fmt.Fprintln(stdOut, version.Full())
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["cache_dir"] = cfg.Global.CacheDir
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	collector := metrics.NewCollector()
	store, err := cache.New[any](
		cache.WithDir(cfg.Global.CacheDir),
		cache.WithLogger(logger),
		cache.WithRecorder(collector),
	)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化缓存目录失败: %v\n", err)
		return 1
	}

	env := commandEnv{
		cfg:       cfg,
		cache:     store,
		logger:    logger,
		collector: collector,
	}
	code, err := runCommand(env, opts.command, opts.args)
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
	}
	return code
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("sycache", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（可被 SYCACHE_CONFIG 覆盖，留空则只使用默认值）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("SYCACHE_CONFIG")
	if configFlag != "" {
		path = configFlag
	}

	opts := cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}
	if rest := fs.Args(); len(rest) > 0 {
		opts.command = rest[0]
		opts.args = rest[1:]
	}
	if opts.command == "" && !opts.checkOnly && !opts.showVersion {
		return cliOptions{}, errUsage
	}
	return opts, nil
}
