// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the settings shared by every subcommand. Values come from an
// optional efidisk-config.yaml, EFIDISK_* environment variables and command
// line flags, in increasing order of precedence.
type Config struct {
	LogLevel   string `mapstructure:"log_level"`
	Backend    string `mapstructure:"backend"`
	AllDevices bool   `mapstructure:"all_devices"`
}

func LoadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetConfigName("efidisk-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.efidisk")
	v.AddConfigPath("/etc/efidisk")

	v.SetDefault("log_level", "INFO")
	v.SetDefault("backend", "host")
	v.SetDefault("all_devices", false)

	v.SetEnvPrefix("EFIDISK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if s, _ := cmd.Flags().GetString("log-level"); s != "" {
		cfg.LogLevel = s
	}
	if s, _ := cmd.Flags().GetString("backend"); s != "" {
		cfg.Backend = s
	}
	if ok, _ := cmd.Flags().GetBool("all-devices"); ok {
		cfg.AllDevices = true
	}
	return &cfg, nil
}
