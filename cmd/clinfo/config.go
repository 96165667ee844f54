package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/cl/ll"
)

// config is the clinfo configuration. Values come from an optional TOML
// file and are overridden by flags.
type config struct {
	Library string      `toml:"library"`
	Type    string      `toml:"type"`
	Color   *bool       `toml:"color"`
	Verbose bool        `toml:"verbose"`
	Probe   probeConfig `toml:"probe"`
}

type probeConfig struct {
	BufferSize int    `toml:"buffer_size"`
	Queue      string `toml:"queue"`
}

func defaultConfig() config {
	return config{
		Type:  "all",
		Probe: probeConfig{BufferSize: 1 << 20},
	}
}

// loadConfig reads path over the defaults. Unknown keys are an error so
// typos do not go unnoticed.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

var deviceTypes = map[string]ll.DeviceType{
	"default":     ll.DeviceTypeDefault,
	"cpu":         ll.DeviceTypeCPU,
	"gpu":         ll.DeviceTypeGPU,
	"accelerator": ll.DeviceTypeAccelerator,
	"custom":      ll.DeviceTypeCustom,
	"all":         ll.DeviceTypeAll,
}

// parseDeviceType accepts a comma separated list such as "gpu,cpu".
func parseDeviceType(s string) (ll.DeviceType, error) {
	var t ll.DeviceType
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		bit, ok := deviceTypes[name]
		if !ok {
			return 0, fmt.Errorf("unknown device type %q", part)
		}
		t |= bit
	}
	return t, nil
}

var queueProperties = map[string]ll.CommandQueueProperties{
	"":             0,
	"none":         0,
	"profiling":    ll.QueueProfiling,
	"out-of-order": ll.QueueOutOfOrderExecMode,
}

func parseQueueProperties(s string) (ll.CommandQueueProperties, error) {
	var p ll.CommandQueueProperties
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		bits, ok := queueProperties[name]
		if !ok {
			return 0, fmt.Errorf("unknown queue property %q", part)
		}
		p |= bits
	}
	return p, nil
}
