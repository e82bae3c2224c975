package infoblox

import "errors"

// Config holds connection settings for the Infoblox WAPI.
type Config struct {
	// BaseURL is the grid master root, e.g. "https://infoblox.example.com".
	BaseURL string `mapstructure:"base_url" default:""`
	// WAPIVersion selects the WAPI version path segment.
	WAPIVersion string `mapstructure:"wapi_version" default:"v2.12.3"`
	// Username and Password are the WAPI basic-auth credentials.
	Username string `mapstructure:"username" default:""`
	Password string `mapstructure:"password" default:""`
	// NetworkView is the view new host records are written into.
	NetworkView string `mapstructure:"network_view" default:"default"`
}

// Validate reports whether the config is complete enough to reach the
// grid. Failures here are advisory; the same problems surface as
// connection errors on first use.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("infoblox: base_url is not set")
	}
	if c.Username == "" || c.Password == "" {
		return errors.New("infoblox: username/password are not set")
	}
	return nil
}
