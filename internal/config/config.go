package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string      `yaml:"env" env:"ENV" env-default:"local"`
	AdminToken  string      `yaml:"admin_token" env:"ADMIN_TOKEN" env-required:"true"`
	HTTPServer  HTTPServer  `yaml:"http_server"`
	DB          DB          `yaml:"db"`
	Cache       Cache       `yaml:"cache"`
	FileStorage FileStorage `yaml:"file_storage"`
	Auth        Auth        `yaml:"auth"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type DB struct {
	Addr     string `yaml:"addr" env:"DB_ADDR" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	DB       string `yaml:"database" env:"DB_NAME" env-required:"true"`
}

type Cache struct {
	Addr         string        `yaml:"addr" env:"CACHE_ADDR" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"CACHE_PASSWORD"`
	DB           int           `yaml:"db" env:"CACHE_DB" env-default:"0"`
	DocumentsTTL time.Duration `yaml:"documents_ttl" env:"CACHE_DOCUMENTS_TTL" env-default:"5m"`
}

type FileStorage struct {
	// Path is the private storage root. It must never be a web-servable
	// location; files under it are reachable only through the API.
	Path string `yaml:"path" env:"STORAGE_PATH" env-required:"true"`
}

type Auth struct {
	IdleTimeoutMinutes int `yaml:"idle_timeout_minutes" env:"TOKEN_IDLE_TIMEOUT_MINUTES" env-default:"30"`
}

func MustLoad() *Config {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			log.Fatalf("config file does not exist: %s", path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}

		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from env: %s", err)
	}

	return &cfg
}

func (a Auth) IdleTimeout() time.Duration {
	return time.Duration(a.IdleTimeoutMinutes) * time.Minute
}
