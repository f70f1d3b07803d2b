package config

import "go.uber.org/fx"

// NewProvider exposes cfg to the fx graph. A nil cfg loads from the
// environment when the graph is built.
func NewProvider(cfg *Config) fx.Option {
	return fx.Provide(func() (*Config, error) {
		if cfg != nil {
			return cfg, nil
		}
		loaded := &Config{}
		if err := LoadConfig(loaded); err != nil {
			return nil, err
		}
		return loaded, nil
	})
}
