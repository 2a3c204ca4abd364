package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	PcapPaths     []string
	Addr          string
	DBPath        string
	OWETransition bool
	RSNOverriding bool
	Debug         bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	pcapStr := getEnv("WPARSE_PCAP", "")
	cfg.Addr = getEnv("WPARSE_ADDR", ":8080")
	cfg.DBPath = getEnv("WPARSE_DB", getDefaultDBPath())
	cfg.OWETransition = getEnvBool("WPARSE_OWE", true)
	cfg.RSNOverriding = getEnvBool("WPARSE_RSN_OVERRIDING", true)

	// Command Line Flags (Override Env)
	flag.StringVar(&pcapStr, "pcap", pcapStr, "Capture file(s) to decode (comma separated)")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.BoolVar(&cfg.OWETransition, "owe", cfg.OWETransition, "Treat OWE transition networks as OWE capable")
	flag.BoolVar(&cfg.RSNOverriding, "rsn-overriding", cfg.RSNOverriding, "Decode RSN overriding vendor elements")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	flag.Parse()

	// Parse capture paths
	cfg.PcapPaths = parsePaths(pcapStr)

	return cfg
}

func parsePaths(s string) []string {
	var paths []string
	if s == "" {
		return paths
	}
	parts := strings.Split(s, ",")
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "wparse.db"
	}

	// Use ~/.wparse directory
	wparseDir := filepath.Join(home, ".wparse")

	// Create directory if it doesn't exist
	if err := os.MkdirAll(wparseDir, 0755); err != nil {
		log.Printf("Warning: Could not create .wparse directory, using current dir: %v", err)
		return "wparse.db"
	}

	return filepath.Join(wparseDir, "wparse.db")
}
