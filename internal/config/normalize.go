package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeCodec()
	c.normalizeLog()
	c.Render.DotCommand = strings.TrimSpace(c.Render.DotCommand)
	if c.Render.DotCommand == "" {
		c.Render.DotCommand = defaultDotCommand
	}
	return c.normalizeStore()
}

func (c *Config) normalizeCodec() {
	c.Codec.LabelParser = strings.ToLower(strings.TrimSpace(c.Codec.LabelParser))
	if c.Codec.LabelParser == "" {
		c.Codec.LabelParser = defaultLabelParser
	}
}

func (c *Config) normalizeLog() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

func (c *Config) normalizeStore() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = defaultStoreBackend
	}

	dir, err := expandPath(strings.TrimSpace(c.Store.Dir))
	if err != nil {
		return err
	}
	c.Store.Dir = dir
	if strings.TrimSpace(c.Store.RedisPrefix) == "" {
		c.Store.RedisPrefix = defaultRedisPrefix
	}

	if c.Store.RedisPassword == "" {
		if value, ok := os.LookupEnv("HEXFSM_REDIS_PASSWORD"); ok {
			c.Store.RedisPassword = strings.TrimSpace(value)
		}
	}
	if c.Store.EncryptionKey == "" {
		if value, ok := os.LookupEnv("HEXFSM_STORE_KEY"); ok {
			c.Store.EncryptionKey = strings.TrimSpace(value)
		}
	}
	return nil
}
