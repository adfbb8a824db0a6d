package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oklahomer/go-discord-pier"
)

// mirrorRoute relays every message observed in From to To.
// Both accept a channel ID or name.
type mirrorRoute struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type config struct {
	Discord *discord.Config `yaml:"discord"`
	Mirrors []*mirrorRoute  `yaml:"mirrors"`
}

// loadConfig reads the YAML file at path on top of the default configuration.
func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := &config{Discord: discord.NewConfig()}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if c.Discord == nil {
		c.Discord = discord.NewConfig()
	}

	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		c.Discord.Token = token
	}

	for i, route := range c.Mirrors {
		if route == nil || route.From == "" || route.To == "" {
			return nil, fmt.Errorf("mirror #%d must have both from and to", i)
		}
	}

	return c, nil
}
