package wug

import "errors"

// Config holds connection settings for the WhatsUp Gold REST API.
type Config struct {
	// BaseURL is the WUG server root, e.g. "https://wug.example.com:9644".
	BaseURL string `mapstructure:"base_url" default:""`
	// Username and Password are the REST API credentials.
	Username string `mapstructure:"username" default:""`
	Password string `mapstructure:"password" default:""`
	// TokenEndpoint is the OAuth password-grant token path.
	TokenEndpoint string `mapstructure:"token_endpoint" default:"/api/v1/token"`
	// PageSize is the page size requested when listing devices.
	PageSize int `mapstructure:"page_size" default:"500"`
}

// Validate reports whether the config is complete enough to reach WUG.
// Failures here are advisory: the service still starts and the same
// problems surface as authentication errors on first use.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("wug: base_url is not set")
	}
	if c.Username == "" || c.Password == "" {
		return errors.New("wug: username/password are not set")
	}
	return nil
}
