package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort             string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL          string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns           int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns           int32  `env:"DB_MIN_CONNS" envDefault:"1"`
	MigrationsDir        string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	ContentDir           string `env:"CONTENT_DIR" envDefault:"content"`
	RedisAddr            string `env:"REDIS_ADDR"`
	RedisPassword        string `env:"REDIS_PASSWORD"`
	RedisDB              int    `env:"REDIS_DB" envDefault:"0"`
	MatchCacheTTLMinutes int    `env:"MATCH_CACHE_TTL_MINUTES" envDefault:"30"`
	SubmissionRateLimit  int    `env:"SUBMISSION_RATE_LIMIT" envDefault:"20"`
	SubmissionWindowSecs int    `env:"SUBMISSION_WINDOW_SECONDS" envDefault:"60"`
	JWTSecret            string `env:"JWT_SECRET"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"career-compass"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
