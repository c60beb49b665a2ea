package config

import (
	"errors"
	"fmt"

	"github.com/aretw0/hexfsm/internal/logging"
	"github.com/aretw0/hexfsm/pkg/labels"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCodec(); err != nil {
		return err
	}
	if err := c.validateLog(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCodec() error {
	if c.Codec.RecordsPerLine < 1 {
		return fmt.Errorf("codec.records_per_line must be positive, got %d", c.Codec.RecordsPerLine)
	}
	if _, err := labels.ParserFor(c.Codec.LabelParser); err != nil {
		return fmt.Errorf("codec.label_parser: %w", err)
	}
	return nil
}

func (c *Config) validateLog() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
		return nil
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.Log.Format)
	}
}

func (c *Config) validateServer() error {
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	if c.Server.ShutdownTimeout.Duration <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Dir == "" {
			return errors.New("store.dir is required for the file backend")
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("store.redis_addr is required for the redis backend")
		}
		if c.Store.RedisDB < 0 {
			return fmt.Errorf("store.redis_db must not be negative, got %d", c.Store.RedisDB)
		}
		if c.Store.RedisTTL.Duration < 0 {
			return errors.New("store.redis_ttl must not be negative")
		}
	default:
		return fmt.Errorf("store.backend must be memory, file or redis, got %q", c.Store.Backend)
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return err
	}
	return nil
}
