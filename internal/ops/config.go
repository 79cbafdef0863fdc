package ops

import (
	"encoding/json"
	"os"
	"time"

	"github.com/yanun0323/errors"

	"main/internal/model"
	"main/pkg/socket"
)

const (
	defaultNetwork = socket.NetworkTCP
	defaultAddress = "127.0.0.1:9000"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Listen             ListenConfig    `json:"listen"`
	Models             []ModelConfig   `json:"models"`
	IdleTimeoutSeconds int             `json:"idleTimeoutSeconds"`
	Profiling          ProfilingConfig `json:"profiling"`
}

// ListenConfig describes where the server binds.
type ListenConfig struct {
	Network string `json:"network"`
	Address string `json:"address"`
}

// ModelConfig points one instrument at its fitted artifact.
type ModelConfig struct {
	Instrument string `json:"instrument"`
	Path       string `json:"path"`
}

// ProfilingConfig gates the pyroscope profiler.
type ProfilingConfig struct {
	Enabled         bool   `json:"enabled"`
	ServerAddress   string `json:"serverAddress"`
	ApplicationName string `json:"applicationName"`
}

// Loaded is the resolved configuration ready for use. The registry holds one
// model per configured instrument; a single artifact failure aborts the load
// so the server never starts with a partial registry.
type Loaded struct {
	Listen      ListenConfig
	Registry    *model.Registry
	IdleTimeout time.Duration
	Profiling   ProfilingConfig
}

// Load reads a JSON config file and builds the model registry.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, errors.Wrapf(err, "read config %s", path)
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, errors.Wrapf(err, "decode config %s", path)
	}

	listen, err := resolveListen(cfg.Listen)
	if err != nil {
		return Loaded{}, err
	}
	registry, err := buildRegistry(cfg.Models)
	if err != nil {
		return Loaded{}, err
	}
	if cfg.IdleTimeoutSeconds < 0 {
		return Loaded{}, errors.New("idleTimeoutSeconds must be >= 0")
	}
	if cfg.Profiling.Enabled && cfg.Profiling.ServerAddress == "" {
		return Loaded{}, errors.New("profiling.serverAddress is required when enabled")
	}

	return Loaded{
		Listen:      listen,
		Registry:    registry,
		IdleTimeout: time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
		Profiling:   cfg.Profiling,
	}, nil
}

func resolveListen(cfg ListenConfig) (ListenConfig, error) {
	if cfg.Network == "" {
		cfg.Network = defaultNetwork
	}
	switch cfg.Network {
	case socket.NetworkTCP, socket.NetworkUnix:
	default:
		return ListenConfig{}, errors.Errorf("unsupported listen network: %s", cfg.Network)
	}
	if cfg.Address == "" {
		if cfg.Network == socket.NetworkUnix {
			return ListenConfig{}, errors.New("listen.address is required for unix sockets")
		}
		cfg.Address = defaultAddress
	}
	return cfg, nil
}

func buildRegistry(models []ModelConfig) (*model.Registry, error) {
	if len(models) == 0 {
		return nil, errors.New("at least one model artifact is required")
	}
	registry := model.NewRegistry()
	for _, entry := range models {
		if entry.Instrument == "" {
			return nil, errors.New("model instrument is empty")
		}
		if entry.Path == "" {
			return nil, errors.Errorf("model path is empty for %s", entry.Instrument)
		}
		artifact, err := model.LoadArtifact(entry.Path)
		if err != nil {
			return nil, err
		}
		if artifact.Instrument != entry.Instrument {
			return nil, errors.Errorf("artifact %s is fitted for %s, configured as %s",
				entry.Path, artifact.Instrument, entry.Instrument)
		}
		if err := registry.Add(entry.Instrument, artifact.Model()); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
