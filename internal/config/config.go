// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// BaseURL is the public base URL embedded into legacy access links.
	BaseURL string

	// BlobDir is the root directory of the filesystem blob store.
	BlobDir string

	// MailFrom is the sender address for outbound notifications.
	// Empty disables email dispatch.
	MailFrom string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.BaseURL, "b", "http://localhost:8080", "public base url for access links")
	flag.StringVar(&options.BlobDir, "blobs", "blobs", "blob storage directory")
	flag.StringVar(&options.MailFrom, "from", "", "sender address for notification emails")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	// Load .env if present; the real environment wins.
	_ = godotenv.Load()

	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if baseURL := os.Getenv("APP_BASE_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}
	if blobDir := os.Getenv("BLOB_DIR"); blobDir != "" {
		options.BlobDir = blobDir
	}
	if from := os.Getenv("MAIL_FROM"); from != "" {
		options.MailFrom = from
	}

	return options
}
