// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN assembles the MySQL data source name from the DB_* variables.
func DSN() string {
	user := getenv("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := getenv("DB_HOST", "127.0.0.1")
	port := getenv("DB_PORT", "3306")
	name := getenv("DB_NAME", "jewelry-db")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, name)
}

func RedisAddr() string {
	return getenv("REDIS_ADDR", "localhost:6379")
}

// JWTSecret is the HS256 signing key. The fallback is for local development
// only.
func JWTSecret() []byte {
	return []byte(getenv("JWT_SECRET", "default-dev-secret-change-me"))
}

func ListenAddr() string {
	return ":" + getenv("PORT", "8080")
}
