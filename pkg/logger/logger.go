package logger

import (
	"flag"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"k8s.io/klog/v2"
)

// Encoder is an enum for the log encoders.
type Encoder string

// Logger is a wrapper for the log encoder.
type Logger struct {
	Encoder string
}

const (
	logEncoderFlag = "log-encoder"

	// EncoderConsole is the console encoder.
	EncoderConsole Encoder = "console"

	// EncoderJSON is the json encoder.
	EncoderJSON Encoder = "json"
)

// New returns a new logger with console encoder as the default.
func New() *Logger {
	return &Logger{
		Encoder: string(EncoderConsole),
	}
}

// AddFlags adds flags for the logger to the given flag set.
// A nil flag set registers on the global flag.CommandLine.
func (l *Logger) AddFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	fs.StringVar(&l.Encoder, logEncoderFlag, string(EncoderConsole), fmt.Sprintf("Sets the log encoder (%s|%s)", EncoderConsole, EncoderJSON))
}

// Get returns a new logr.Logger according to the encoder.
func (l *Logger) Get() logr.Logger {
	switch Encoder(l.Encoder) {
	case EncoderConsole:
		// no-op
	case EncoderJSON:
		zl, err := zap.NewProduction()
		if err == nil {
			return zapr.NewLogger(zl)
		}
		klog.NewKlogr().WithName("logger").Error(err, "failed to build json logger, using console")
	default:
		klog.NewKlogr().WithName("logger").Info("unknown log encoder, using console", "encoder", l.Encoder)
	}
	return klog.NewKlogr()
}
