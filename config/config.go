package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds everything tunable at startup. Defaults match the game
// the clients were built against; a .env file or plain env vars override.
type Settings struct {
	Addr              string
	MinPlayers        int
	MaxPlayers        int
	MaxMatches        int
	MatchTimeout      time.Duration
	InactivityTimeout time.Duration
}

func Load() Settings {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment variables from .env")
	}

	return Settings{
		Addr:              getString("ADDR", ":8080"),
		MinPlayers:        getInt("MIN_PLAYERS", 2),
		MaxPlayers:        getInt("MAX_PLAYERS", 4),
		MaxMatches:        getInt("MAX_MATCHES", 5),
		MatchTimeout:      getDuration("MATCH_TIMEOUT", 5*time.Minute),
		InactivityTimeout: getDuration("INACTIVITY_TIMEOUT", 3*time.Minute),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return d
}
