package config

import (
	"time"

	"github.com/aretw0/hexfsm/pkg/record"
)

const (
	defaultLabelParser     = "toml"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultBind            = "127.0.0.1:8080"
	defaultShutdownTimeout = 5 * time.Second
	defaultDotCommand      = "dot"
	defaultStoreBackend    = BackendMemory
	defaultStoreDir        = "~/.local/share/hexfsm/machines"
	defaultRedisAddr       = "127.0.0.1:6379"
	defaultRedisPrefix     = "hexfsm:machine:"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Codec: Codec{
			RecordsPerLine: record.DefaultPerLine,
			LabelParser:    defaultLabelParser,
			IncludeLabels:  true,
		},
		Log: Log{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Server: Server{
			Bind:            defaultBind,
			ShutdownTimeout: Duration{defaultShutdownTimeout},
		},
		Render: Render{
			DotCommand: defaultDotCommand,
		},
		Store: Store{
			Backend:     defaultStoreBackend,
			Dir:         defaultStoreDir,
			RedisAddr:   defaultRedisAddr,
			RedisPrefix: defaultRedisPrefix,
		},
	}
}
