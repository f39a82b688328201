// Package logging 提供进程级 zap logger，服务端与客户端共用
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 是全局可用的 SugaredLogger；Init 之前为 no-op，测试与库调用无需初始化
var Log = zap.NewNop().Sugar()

// Options 日志输出配置
type Options struct {
	File    string        // 滚动日志文件路径；为空则不写文件
	Level   zapcore.Level // 最低输出级别
	Console bool          // 同时输出到 stderr（终端客户端处于原始模式时应关闭）
}

// ParseLevel 解析 "debug"/"info"/"warn"/"error"，空串为 debug
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.DebugLevel, nil
	}
	return zapcore.ParseLevel(s)
}

// Init 初始化 zap 日志：文件（lumberjack 滚动）+ 可选控制台
func Init(opts Options) error {
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	var cores []zapcore.Core
	if opts.File != "" {
		// 10MB 每文件，保留3个备份，7天过期
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(lj), opts.Level))
	}
	if opts.Console {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), opts.Level))
	}
	if len(cores) == 0 {
		Log = zap.NewNop().Sugar()
		return nil
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Sugar()
	return nil
}

// Sync 清理和同步缓冲
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
