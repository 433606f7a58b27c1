// Package conf loads the application configuration from an optional yaml
// file and GEOSCOPE_-prefixed environment variables.
package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/log"
	"github.com/SyedFrazAli/geoscope/internal/server"
	"github.com/SyedFrazAli/geoscope/internal/server/biz"
	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

type Config struct {
	APIServer server.Config    `conf:"server" yaml:"server" json:"server"`
	DB        db.Config        `conf:"db"     yaml:"db"     json:"db"`
	Log       log.Config       `conf:"log"    yaml:"log"    json:"log"`
	Auth      biz.AuthConfig   `conf:"auth"   yaml:"auth"   json:"auth"`
	Access    biz.AccessConfig `conf:"access" yaml:"access" json:"access"`
	Usage     biz.UsageConfig  `conf:"usage"  yaml:"usage"  json:"usage"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.name", "geoscope")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("db.dialect", "sqlite")
	v.SetDefault("db.dsn", "file:geoscope.db")
	v.SetDefault("log.name", "geoscope")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("access.universal_product_id", biz.DefaultUniversalProductID)
	v.SetDefault("usage.retention", "168h")
}

// Load reads geoscope.yml (when present) and the environment into Config.
func Load() (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigName("geoscope")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/geoscope")

	v.SetEnvPrefix("GEOSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Sections exposes each config section to the fx graph.
func Sections() fx.Option {
	return fx.Provide(
		func(c Config) server.Config { return c.APIServer },
		func(c Config) db.Config { return c.DB },
		func(c Config) log.Config { return c.Log },
		func(c Config) biz.AuthConfig { return c.Auth },
		func(c Config) biz.AccessConfig { return c.Access },
		func(c Config) biz.UsageConfig { return c.Usage },
	)
}
