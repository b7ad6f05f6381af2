// Package logging 提供全局 zap 日志器
//
// 非 verbose 模式下使用 Nop 日志器，与桌面端默认静默的行为一致。
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// New 构建日志器
// verbose 为 true 时输出 Debug 级别的控制台日志
func New(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Init 构建并设置全局日志器
func Init(verbose bool) error {
	l, err := New(verbose)
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set 替换全局日志器（测试中可传入 zaptest/observer 日志器）
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// L 返回全局日志器
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Named 返回带模块名的 SugaredLogger
func Named(name string) *zap.SugaredLogger {
	return L().Named(name).Sugar()
}

// Sync 刷新缓冲
func Sync() {
	_ = L().Sync()
}
