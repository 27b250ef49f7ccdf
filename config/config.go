package config

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ServerConfig holds settings for the HTTP simulation API.
type ServerConfig struct {
	Port        int
	MaxProcs    int // upper bound on processes per simulate request
	LogRequests bool
}

var once sync.Once
var cfg *ServerConfig

// GetServerConfig loads ./procsim.yaml once and caches the result. A missing
// config file is fine; defaults apply.
func GetServerConfig() *ServerConfig {
	once.Do(func() {
		viper.SetConfigName("procsim")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./")

		viper.SetDefault("server.port", 9095)
		viper.SetDefault("server.max_processes", 10000)
		viper.SetDefault("server.log_requests", true)

		if err := viper.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				logrus.Fatalf("Failed to read server config: %v", err)
			}
		}

		cfg = &ServerConfig{
			Port:        viper.GetInt("server.port"),
			MaxProcs:    viper.GetInt("server.max_processes"),
			LogRequests: viper.GetBool("server.log_requests"),
		}
	})

	return cfg
}
