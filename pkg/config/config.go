package config

import (
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Etcd    EtcdConfig    `mapstructure:"etcd"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StorageConfig points at the document store. Both URI and Database may be
// empty; the gateway then runs in its unconfigured fallback mode.
type StorageConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

func (c *StorageConfig) Configured() bool {
	return c.URI != "" && c.Database != ""
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type EtcdConfig struct {
	Endpoints   []string      `mapstructure:"endpoints"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	Prefix      string        `mapstructure:"prefix"`
}

func (c *EtcdConfig) Enabled() bool {
	return len(c.Endpoints) > 0
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load builds the configuration from the environment, with an optional YAML
// file underneath. Environment variables win; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.name", "giftstore")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("etcd.dial_timeout", 5*time.Second)
	v.SetDefault("etcd.prefix", "/services/")
	v.SetDefault("log.level", "info")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	v.AutomaticEnv()
	bindings := map[string]string{
		"storage.uri":      "DATABASE_URL",
		"storage.database": "DATABASE_NAME",
		"server.port":      "PORT",
		"server.host":      "HOST",
		"redis.addr":       "REDIS_ADDR",
		"redis.password":   "REDIS_PASSWORD",
		"redis.db":         "REDIS_DB",
		"etcd.endpoints":   "ETCD_ENDPOINTS",
		"log.level":        "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var config Config
	// Environment values arrive as strings; let the decoder coerce them
	// into ints, durations and slices.
	weak := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(&config, weak); err != nil {
		return nil, err
	}

	return &config, nil
}
