package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Logger          LoggerConfig         `mapstructure:"logger"`
}

type ServiceConfig struct {
	Port string `mapstructure:"port"`
}

type ExternalClientConfig struct {
	WorldBank WorldBankConfig `mapstructure:"worldbank"`
}

type WorldBankConfig struct {
	BaseURL        string `mapstructure:"baseUrl"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type LoggerConfig struct {
	Level     string `mapstructure:"level"`
	LogToFile bool   `mapstructure:"logToFile"`
	FilePath  string `mapstructure:"filePath"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	if cfg.ExternalClients.WorldBank.TimeoutSeconds <= 0 {
		cfg.ExternalClients.WorldBank.TimeoutSeconds = 10
	}
	return &cfg, nil
}
