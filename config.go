// config.go re-exports ChirpConfig from internal/config at the package
// root, the same way gopus's encoder.go aliases internal/types.Signal —
// internal/config has no dependency on this package, which keeps every DSP
// stage package free to import it without a cycle.

package sondar

import (
	"errors"
	"fmt"

	"github.com/Kelvin23-utd/sondar1/internal/config"
)

// ChirpConfig carries every numeric parameter the pipeline's stages are
// built from. See internal/config.ChirpConfig for field documentation.
type ChirpConfig = config.ChirpConfig

// DefaultChirpConfig returns the configuration named by spec: a 48kHz
// 15-17kHz 20ms up-chirp with a 20ms inter-chirp gap, a fixed device
// latency of ~132.78ms, and a 100ms (10Hz) emission period.
func DefaultChirpConfig() ChirpConfig {
	return config.Default()
}

// LoadChirpConfig reads a ChirpConfig from a YAML file. A configuration
// that fails validation is reported as an error matching both
// ErrInvalidConfig and config.ErrInvalidConfig.
func LoadChirpConfig(path string) (ChirpConfig, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrInvalidConfig) {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, err
}
