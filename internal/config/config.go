package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	MediaPath   string // raiz dos arquivos enviados (fotos e documentos)
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] Arquivo .env não encontrado, usando variáveis de ambiente")
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=concessionaria port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		MediaPath:   getEnv("MEDIA_PATH", "./media"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Variável JWT_SECRET não definida! Obrigatória para produção.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET deve ter no mínimo 32 caracteres!")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=concessionaria port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN com valor padrão, defina a conexão do Postgres para produção.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS com valor padrão, defina o domínio real para produção.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
