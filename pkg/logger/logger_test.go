package logger

import (
	"flag"
	"testing"
)

func TestAddFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	l := New()
	l.AddFlags(fs)

	if err := fs.Parse([]string{"--log-encoder=json"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if l.Encoder != string(EncoderJSON) {
		t.Errorf("Encoder = %s, want %s", l.Encoder, EncoderJSON)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		encoder string
	}{
		{
			name:    "console",
			encoder: string(EncoderConsole),
		},
		{
			name:    "json",
			encoder: string(EncoderJSON),
		},
		{
			name:    "unknown encoder falls back to console",
			encoder: "xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Logger{Encoder: tt.encoder}
			log := l.Get()
			if log.GetSink() == nil {
				t.Errorf("Get() returned a logger without a sink")
			}
			// must not panic
			log.WithName("test").Info("hello", "encoder", tt.encoder)
		})
	}
}
