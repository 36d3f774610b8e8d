package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	MetricsAddress string   `mapstructure:"metrics_address"`
	RPCAddress     string   `mapstructure:"rpc_address"`
	SweepInterval  int      `mapstructure:"sweep_interval_seconds"`
	SessionTimeout int      `mapstructure:"session_timeout_seconds"`
	AllowOrigins   []string `mapstructure:"allow_origins"`
}

type GameConfig struct {
	DefaultCategories  []string `mapstructure:"default_categories"`
	DefaultTotalRounds int      `mapstructure:"default_total_rounds"`
}

type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Driver   string         `mapstructure:"driver"` // "postgres" or "gorm"
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// HTTPAddress returns the listen address for the websocket/HTTP front.
func (s ServerConfig) HTTPAddress() string {
	return fmt.Sprintf(":%d", s.Port)
}

// LoadConfig reads config.yaml from path if present; a missing file is not an
// error, defaults apply. The PORT environment variable overrides server.port.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.metrics_address", ":9100")
	v.SetDefault("server.rpc_address", ":3001")
	v.SetDefault("server.sweep_interval_seconds", 60)
	v.SetDefault("server.session_timeout_seconds", 300)
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("game.default_categories", []string{"Naam", "Jagah", "Janwar", "Cheez"})
	v.SetDefault("game.default_total_rounds", 1)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "gorm")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.dbname", "wordparty")

	v.AutomaticEnv()
	v.BindEnv("server.port", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
