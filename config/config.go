/*
NAME
  config.go

DESCRIPTION
  config.go loads the INI-style dsrtx configuration file: the output
  sink, per-channel source assignment, and channel mode/name/programme
  type descriptors.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package config loads and validates a dsrtx configuration file: one
// [output] section describing the RF sink, and zero or more numbered
// [channelN] sections (channel0, channel1, ...) assigning audio
// sources to channel slots. Channel sections are numbered rather than
// repeated as identical [channel] headers because the INI backend
// merges a repeated section header into a single section.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Output describes the RF sink the encoder writes its modulated
// baseband to.
type Output struct {
	Type       string  `mapstructure:"type"`
	Path       string  `mapstructure:"output"`
	DataType   string  `mapstructure:"data_type"`
	SampleRate int     `mapstructure:"sample_rate"`
	Frequency  float64 `mapstructure:"frequency"`
	Gain       int     `mapstructure:"gain"`
	Amp        int     `mapstructure:"amp"`
	Antenna    string  `mapstructure:"antenna"`
	Live       bool    `mapstructure:"live"`
}

// Channel describes one [channel] section of the configuration file:
// a programme slot, its source, and its mode.
type Channel struct {
	Number         int     `mapstructure:"channel"`
	Mode           string  `mapstructure:"mode"`
	Name           string  `mapstructure:"name"`
	ProgramType    int     `mapstructure:"program_type"`
	SecondaryType  int     `mapstructure:"secondary_type"`
	Music          bool    `mapstructure:"music"`
	SourceType     string  `mapstructure:"type"`
	Input          string  `mapstructure:"input"`
	Exec           bool    `mapstructure:"exec"`
	Stereo         bool    `mapstructure:"stereo"`
	Repeat         bool    `mapstructure:"repeat"`
	Frequency      float64 `mapstructure:"frequency"`
	Level          float64 `mapstructure:"level"`
}

// Config is the fully loaded and validated dsrtx configuration.
type Config struct {
	Output   Output    `mapstructure:"output"`
	Channels []Channel `mapstructure:"channel"`
	Verbose  bool      `mapstructure:"verbose"`
}

// Valid RF sink data type names.
var validDataTypes = map[string]bool{
	"": true, "uint8": true, "int8": true, "uint16": true,
	"int16": true, "int32": true, "float": true,
}

// channelSectionLimit bounds how many numbered [channelN] sections
// Load will look for. The standard remains one usable slot per half
// of each of the 16 programme channels; this is generous headroom.
const channelSectionLimit = 256

// Load reads and validates the configuration at path. The file must
// be INI-formatted, with an [output] section and numbered [channelN]
// sections (see the package doc for why channels are numbered rather
// than repeated identically).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	v.SetDefault("output.type", "file")
	v.SetDefault("output.sample_rate", 20480000)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.UnmarshalKey("output", &cfg.Output); err != nil {
		return nil, fmt.Errorf("config: unmarshalling output: %w", err)
	}
	cfg.Verbose = v.GetBool("verbose")

	// go-ini (the backend viper.SetConfigType("ini") delegates to)
	// treats a repeated section header as a redefinition of the same
	// section rather than a second instance, so a file can't carry
	// several identical [channel] blocks the way the original
	// line-oriented parser allowed. Numbered sections (channel0,
	// channel1, ...) give the same one-section-per-programme-slot
	// shape without fighting the library.
	for i := 0; i < channelSectionLimit; i++ {
		key := fmt.Sprintf("channel%d", i)
		if !v.IsSet(key) {
			break
		}
		var c Channel
		if c.Mode == "" {
			c.Mode = "s"
		}
		if err := v.UnmarshalKey(key, &c); err != nil {
			return nil, fmt.Errorf("config: unmarshalling %s: %w", key, err)
		}
		if c.Mode == "" {
			c.Mode = "s"
		}
		cfg.Channels = append(cfg.Channels, c)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch strings.ToLower(cfg.Output.Type) {
	case "", "file":
	default:
		return fmt.Errorf("unrecognised output type %q", cfg.Output.Type)
	}

	if !validDataTypes[strings.ToLower(cfg.Output.DataType)] {
		return fmt.Errorf("invalid output data_type %q", cfg.Output.DataType)
	}

	occupied := make(map[int]string, 32)
	for i := range cfg.Channels {
		c := &cfg.Channels[i]
		if c.Number < 1 || c.Number > 16 {
			return fmt.Errorf("channel %d: channel number must be 1-16", i)
		}
		base := (c.Number - 1) * 2

		switch strings.ToLower(c.Mode) {
		case "s":
			if who, ok := occupied[base]; ok {
				return fmt.Errorf("channel %02d/S: already allocated by %s", c.Number, who)
			}
			if who, ok := occupied[base+1]; ok {
				return fmt.Errorf("channel %02d/S: already allocated by %s", c.Number, who)
			}
			occupied[base] = fmt.Sprintf("section %d", i)
			occupied[base+1] = fmt.Sprintf("section %d", i)

		case "a", "b":
			slot := base
			if strings.ToLower(c.Mode) == "b" {
				slot++
			}
			if who, ok := occupied[slot]; ok {
				return fmt.Errorf("channel %02d/%s: already allocated by %s", c.Number, strings.ToUpper(c.Mode), who)
			}
			occupied[slot] = fmt.Sprintf("section %d", i)

		default:
			return fmt.Errorf("channel %02d: unrecognised mode %q", c.Number, c.Mode)
		}

		switch strings.ToLower(c.SourceType) {
		case "", "rawaudio":
			if c.Input == "" {
				return fmt.Errorf("channel %02d: rawaudio source requires input", c.Number)
			}
		case "tone", "wav":
			// no required fields beyond their own defaults.
		default:
			return fmt.Errorf("channel %02d: unrecognised source type %q", c.Number, c.SourceType)
		}
	}

	return nil
}
