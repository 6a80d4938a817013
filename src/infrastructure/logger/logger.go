package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger so every layer shares one configured instance
type Logger struct {
	Log *zap.Logger
}

// NewLogger creates a production (JSON) logger
func NewLogger() (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{Log: zapLogger}, nil
}

// NewDevelopmentLogger creates a human readable console logger at debug level
func NewDevelopmentLogger() (*Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{Log: zapLogger}, nil
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{Log: zap.NewNop()}
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.Log.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.Log.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.Log.Error(msg, fields...)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.Log.Debug(msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.Log.Fatal(msg, fields...)
}

func (l *Logger) Panic(msg string, fields ...zap.Field) {
	l.Log.Panic(msg, fields...)
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Log: l.Log.With(fields...)}
}

// SetupGinWithZapLogger puts gin in release mode and routes its writers through zap
func (l *Logger) SetupGinWithZapLogger() {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = zap.NewStdLog(l.Log).Writer()
	gin.DefaultErrorWriter = zap.NewStdLog(l.Log).Writer()
}

// SetupGinWithZapLoggerInDevelopment keeps gin in debug mode with zap writers
func (l *Logger) SetupGinWithZapLoggerInDevelopment() {
	gin.SetMode(gin.DebugMode)
	gin.DefaultWriter = zap.NewStdLog(l.Log).Writer()
	gin.DefaultErrorWriter = zap.NewStdLog(l.Log).Writer()
}

// GinZapLogger logs every request handled by the gateway
func (l *Logger) GinZapLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if requestID, ok := c.Get("requestID"); ok {
			fields = append(fields, zap.Any("requestID", requestID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			l.Log.Warn("Request completed with errors", fields...)
			return
		}
		l.Log.Info("Request completed", fields...)
	}
}
