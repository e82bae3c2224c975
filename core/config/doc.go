// Package config provides configuration management for the sync service.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (host, port, API key)
//   - Log: Logging level and format
//   - Sync: Shared gateway HTTP behavior (timeouts, TLS verification, retries)
//   - Wug: WhatsUp Gold connection settings
//   - Infoblox: Infoblox WAPI connection settings
//
// Environment variable names map onto nested keys by replacing dots with
// underscores, e.g. WUG_BASE_URL -> wug.base_url, SERVER_PORT -> server.port.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
