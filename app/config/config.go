package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     Log     `yaml:"log"`
	LLM     LLM     `yaml:"llm"`
	Rates   Rates   `yaml:"rates"`
	Server  Server  `yaml:"server"`
	Console Console `yaml:"console"`
	MCP     MCP     `yaml:"mcp"`
}

type LLM struct {
	// Base URL of the ollama server
	BaseURL string `yaml:"base_url" example:"http://localhost:11434" validate:"required"`
	// Model name
	Model string `yaml:"model" example:"mistral" validate:"required"`
}

type Rates struct {
	// Base URL of the exchange rate API
	BaseURL string `yaml:"base_url" example:"https://api.exchangerate.host"`
}

type Server struct {
	// Host to bind the web form to
	Host string `yaml:"host" example:"0.0.0.0"`
	// Port to bind the web form to
	Port int `yaml:"port" example:"8000"`
}

type Console struct {
	// Disable the interactive stdin loop
	Disabled bool `yaml:"disabled" example:"false"`
}

type MCP struct {
	// Serve the assistant as an MCP tool over stdio instead of the console loop
	Enabled bool `yaml:"enabled" example:"false"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Rates.BaseURL == "" {
		result.Rates.BaseURL = "https://api.exchangerate.host"
	}
	if result.Server.Host == "" {
		result.Server.Host = "0.0.0.0"
	}
	if result.Server.Port == 0 {
		result.Server.Port = 8000
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
