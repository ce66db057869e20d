package app

import (
	"testing"

	"github.com/fxlens/clientpulse/config"
)

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}
