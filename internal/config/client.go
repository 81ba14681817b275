package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type ClientConfig struct {
	APIURL    string
	TokenFile string
	LogLevel  string
}

func LoadClient() ClientConfig {
	_ = godotenv.Load()

	return ClientConfig{
		APIURL:    getenv("USERHUB_API_URL", "http://localhost:3000/api"),
		TokenFile: getenv("USERHUB_TOKEN_FILE", defaultTokenFile()),
		LogLevel:  getenv("LOG_LEVEL", "warn"),
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".userhub-token.json"
	}
	return filepath.Join(dir, "userhub", "token.json")
}
