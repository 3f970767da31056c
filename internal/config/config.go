package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed sampling.yaml
var samplingYAML []byte

type Config struct {
	FaceAPI  FaceAPIConfig
	Scratch  ScratchConfig
	Sampling SamplingConfig
}

type FaceAPIConfig struct {
	URL            string // base URL of the face-landmark detection service
	Key            string // API credential sent with every detect request
	TimeoutSeconds int    // per-request timeout (default 30)
}

type ScratchConfig struct {
	Dir                 string // directory for fetched image copies (default <tmp>/facetone)
	FetchTimeoutSeconds int    // image download timeout (default 30)
}

// SamplingConfig holds the sample-point geometry defaults. The values
// ship embedded in sampling.yaml; only the hue mode is env-overridable.
type SamplingConfig struct {
	ForeheadLiftPct float64 `yaml:"foreheadLiftPct"`
	CheekDropPct    float64 `yaml:"cheekDropPct"`
	HueMean         string  `yaml:"hueMean"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func Load() *Config {
	var sampling SamplingConfig
	if err := yaml.Unmarshal(samplingYAML, &sampling); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded sampling.yaml: " + err.Error())
	}
	if mode := os.Getenv("SAMPLING_HUE_MEAN"); mode != "" {
		sampling.HueMean = mode
	}

	scratchDir := os.Getenv("SCRATCH_DIR")
	if scratchDir == "" {
		scratchDir = filepath.Join(os.TempDir(), "facetone")
	}

	return &Config{
		FaceAPI: FaceAPIConfig{
			URL:            os.Getenv("FACE_API_URL"),
			Key:            os.Getenv("FACE_API_KEY"),
			TimeoutSeconds: envInt("FACE_API_TIMEOUT_SECONDS", 30),
		},
		Scratch: ScratchConfig{
			Dir:                 scratchDir,
			FetchTimeoutSeconds: envInt("FETCH_TIMEOUT_SECONDS", 30),
		},
		Sampling: sampling,
	}
}
