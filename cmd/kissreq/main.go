package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/shengyanli1982/kissreq/internal/config"
	"github.com/shengyanli1982/kissreq/internal/constants"
	"github.com/shengyanli1982/law"
	"github.com/shengyanli1982/orbit/utils/log"
)

// Version 通过 ldflags 在编译时设置
var Version = constants.DefaultVersion

// initLogger 初始化日志系统
// releaseMode: 是否为发布模式
// jsonOutput: 是否输出 JSON 格式日志
func initLogger(releaseMode, jsonOutput bool) (*logr.Logger, *law.WriteAsyncer) {
	var (
		logger      *logr.Logger
		asyncWriter *law.WriteAsyncer
	)

	// 在发布模式下使用异步写入器，日志写到标准错误，标准输出留给请求结果
	if releaseMode {
		asyncWriter = law.NewWriteAsyncer(os.Stderr, law.DefaultConfig())
		if jsonOutput {
			// JSON 格式输出使用 ZapLogger
			logger = log.NewZapLogger(zapcore.AddSync(asyncWriter)).GetLogrLogger()
		} else {
			// 普通格式输出使用 LogrLogger
			logger = log.NewLogrLogger(asyncWriter).GetLogrLogger()
		}
		return logger, asyncWriter
	}

	// 开发模式直接使用标准错误
	logger = log.NewLogrLogger(os.Stderr).GetLogrLogger()
	return logger, nil
}

// initConfig 加载并验证请求计划文件
// configPath: 计划文件路径
func initConfig(configPath string) (*config.Manager, *config.Config, error) {
	configManager, err := config.NewManager()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create configuration manager: %w", err)
	}
	if err := configManager.LoadFromFile(configPath); err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return configManager, configManager.GetConfig(), nil
}

func main() {
	// 定义命令行参数
	var (
		configPath  string
		releaseMode bool
		jsonOutput  bool
		batchMode   bool
		exitCode    = constants.ExitSuccess
	)

	// 设置命令行参数
	cmd := cobra.Command{
		Use:     "kissreq",
		Version: Version,
		Short:   "KISSReq runs a plan of HTTP requests, one by one or as an all-or-nothing batch",
		Long: `KISSReq loads a YAML request plan and executes it.

Single mode sends every request synchronously and prints one JSON line per result.
Batch mode sends all requests concurrently over one connection pool and prints the
ordered response bodies, or the first failing request in submission order.

Failures are reported with stable identifiers:
- e_request_refused
- e_request_timedout
- e_request_failed
- e_request_response_empty

Author: shengyanli1982
Repository: https://github.com/shengyanli1982/kissreq`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 初始化日志系统
			logger, asyncWriter := initLogger(releaseMode, jsonOutput)
			if asyncWriter != nil {
				defer asyncWriter.Stop()
			}

			// 加载请求计划
			configMgr, plan, err := initConfig(configPath)
			if err != nil {
				logger.Error(err, "Failed to load request plan")
				return err
			}
			logger.Info("Request plan loaded successfully", "path", configMgr.GetConfigPath(), "requests", len(plan.Requests))

			if cmd.Flags().Changed(constants.FlagBatch) {
				plan.Batch = batchMode
			}

			// 收到终止信号时取消进行中的请求
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner, err := newPlanRunner(plan, *logger, os.Stdout)
			if err != nil {
				logger.Error(err, "Failed to create request client")
				return err
			}
			defer runner.Close()

			exitCode = runner.Run(ctx)
			logger.Info("Request plan finished", "batch", plan.Batch, "exit_code", exitCode)
			return nil
		},
	}

	// 注册命令行参数
	cmd.Flags().StringVarP(&configPath, constants.FlagConfig, constants.FlagConfigShort, constants.DefaultConfigPath, "Path to request plan file")
	cmd.Flags().BoolVarP(&jsonOutput, constants.FlagJSON, constants.FlagJSONShort, false, "Enable JSON format logging output (only effective in release mode)")
	cmd.Flags().BoolVarP(&releaseMode, constants.FlagRelease, constants.FlagReleaseShort, false, "Enable release mode with async logging")
	cmd.Flags().BoolVarP(&batchMode, constants.FlagBatch, constants.FlagBatchShort, false, "Execute the plan as a single all-or-nothing batch (overrides the plan file)")

	// 执行命令
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute command: %v\n", err)
		os.Exit(constants.ExitFailure)
	}

	os.Exit(exitCode)
}
