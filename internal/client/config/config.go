package config

import "time"

// Config holds runtime settings for ledgerctl.
type Config struct {
	ServerEndpointAddr string
	// AccessToken is sent with every call; public views work without one.
	AccessToken string
	Timeout     time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:3200"
	c.Timeout = 10 * time.Second
}

// Load applies defaults and then the JSON file at path, if path is set.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
