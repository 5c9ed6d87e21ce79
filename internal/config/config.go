package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Hash bcrypt de la API key aceptada en /auth/token.
	APIKeyHash          string `env:"API_KEY_HASH"`
	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Limites del endpoint de lotes.
	BatchRateMax           int `env:"BATCH_RATE_MAX" envDefault:"5"`
	BatchRateWindowMinutes int `env:"BATCH_RATE_WINDOW_MINUTES" envDefault:"10"`
	BatchMaxProfiles       int `env:"BATCH_MAX_PROFILES" envDefault:"1000"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
