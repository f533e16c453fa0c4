package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type MarketConfig struct {
	Env        string `yaml:"env"`
	HTTPServer `yaml:"http_server"`
	MarketDB   `yaml:"market_db"`
	RedisQueue `yaml:"redis_queue"`
	KafkaService `yaml:"kafka-service"`
	AuthConfig `yaml:"auth"`
	LogConfig  `yaml:"log_config"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MarketDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
	SeedPlayers    bool   `yaml:"seed_players"`
}

type RedisQueue struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Workers  int    `yaml:"workers"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL  string `yaml:"token_ttl" env-default:"24h"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

func MustLoad() *MarketConfig {

	// Processing env config variable and file
	configPath := os.Getenv("MARKET_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("MARKET_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg MarketConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
