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
	// Port defines the server's listening address (ip:port).
	Port string

	// MongoURI is the document store connection string.
	MongoURI string

	// Database is the MongoDB database name.
	Database string

	// CloudinaryURL is the binary store credential string.
	CloudinaryURL string

	// JWTSecret verifies identity-provider bearer tokens.
	JWTSecret string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.MongoURI, "m", "mongodb://localhost:27017", "document store address")
	flag.StringVar(&options.Database, "db", "playback", "document store database name")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values. Environment variables win over flags
// and the config file; a missing .env file is not an error.
func Parse() *Options {
	flag.Parse()

	_ = godotenv.Load(".env")

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
		options.Port = serverAddress
	}
	if mongoURI := os.Getenv("MONGODB_URL"); mongoURI != "" {
		options.MongoURI = mongoURI
	}
	if database := os.Getenv("MONGODB_DATABASE"); database != "" {
		options.Database = database
	}
	if cld := os.Getenv("CLOUDINARY_URL"); cld != "" {
		options.CloudinaryURL = cld
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}

	return options
}
