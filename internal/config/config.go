package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env-default:"8080"`
	Telegram Telegram `yaml:"telegram"`
	Redis    Redis    `yaml:"redis"`
	Game     Game     `yaml:"game"`
}

type Telegram struct {
	Token       string `yaml:"token" env:"TELEGRAM_TOKEN"`
	PollTimeout int    `yaml:"poll-timeout" env-default:"30"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Game struct {
	TurnSeconds int `yaml:"turn-seconds" env-default:"60"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// TurnBudget - per-player time budget for timed games.
func (that *Game) TurnBudget() time.Duration {
	return time.Duration(that.TurnSeconds) * time.Second
}
