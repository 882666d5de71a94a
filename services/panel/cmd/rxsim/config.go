package main

import (
	"context"
	"os"

	"github.com/BurntSushi/toml"

	"rxpanel-go/services/panel"
)

// loadConfig overlays the TOML file at path, if any, on the defaults.
// Keys missing from the file keep their default value.
func loadConfig(path string) (panel.Config, error) {
	cfg := panel.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (DefaultsCmd) Run(_ context.Context) error {
	return toml.NewEncoder(os.Stdout).Encode(panel.DefaultConfig())
}
