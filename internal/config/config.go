package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"` // mysql или pgx
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		AppURL   string `yaml:"app_url"`
	} `yaml:"telegram"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
	Auth struct {
		SigningKey string `yaml:"signing_key"`
	} `yaml:"auth"`
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}
	return cfg
}
