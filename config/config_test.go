package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dsrtx.ini")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
[output]
type = file
output = out.raw
data_type = int16
sample_rate = 20480000

[channel0]
channel = 1
mode = s
name = DSR TEST
program_type = 10
music = true
type = tone
frequency = 1000
level = 0.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Type != "file" || cfg.Output.DataType != "int16" {
		t.Fatalf("unexpected output: %+v", cfg.Output)
	}
	if len(cfg.Channels) != 1 {
		t.Fatalf("got %d channels, want 1", len(cfg.Channels))
	}
	ch := cfg.Channels[0]
	if ch.Number != 1 || ch.Mode != "s" || ch.Name != "DSR TEST" {
		t.Fatalf("unexpected channel: %+v", ch)
	}
}

func TestLoadRejectsInvalidDataType(t *testing.T) {
	path := writeConfig(t, `
[output]
type = file
data_type = nonsense
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid data_type")
	}
}

func TestLoadRejectsOutOfRangeChannel(t *testing.T) {
	path := writeConfig(t, `
[output]
type = file

[channel0]
channel = 17
mode = s
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for channel number out of range")
	}
}

func TestLoadRejectsConflictingChannels(t *testing.T) {
	path := writeConfig(t, `
[output]
type = file

[channel0]
channel = 1
mode = a
type = tone

[channel1]
channel = 1
mode = s
type = tone
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for overlapping channel allocation")
	}
}

func TestLoadRejectsUnknownSourceType(t *testing.T) {
	path := writeConfig(t, `
[output]
type = file

[channel0]
channel = 1
mode = s
type = synth
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unrecognised source type")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/dsrtx.ini"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
