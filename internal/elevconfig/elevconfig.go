package elevconfig

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dinaMadelen/elevator-dispatch/internal/elevconsts"
	"github.com/dinaMadelen/elevator-dispatch/internal/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var Log = logger.GetLogger()

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	FloorCount      int    `yaml:"floor_count"`
	TopRestFloor    int    `yaml:"top_rest_floor"`
	BottomRestFloor int    `yaml:"bottom_rest_floor"`
	IdleRestFloor   int    `yaml:"idle_rest_floor"`
	TravelDelayMs   int    `yaml:"travel_delay_ms"`
	IdleTimeoutMs   int    `yaml:"idle_timeout_ms"`
	LogLevel        string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		FloorCount:      elevconsts.DEFAULT_FLOOR_COUNT,
		TopRestFloor:    elevconsts.DEFAULT_TOP_REST_FLOOR,
		BottomRestFloor: elevconsts.DEFAULT_BOTTOM_REST_FLOOR,
		IdleRestFloor:   elevconsts.DEFAULT_IDLE_REST_FLOOR,
		TravelDelayMs:   int(elevconsts.DEFAULT_TRAVEL_DELAY / time.Millisecond),
		IdleTimeoutMs:   int(elevconsts.DEFAULT_IDLE_TIMEOUT / time.Millisecond),
		LogLevel:        "debug",
	}
}

func (c Config) TravelDelay() time.Duration {
	return time.Duration(c.TravelDelayMs) * time.Millisecond
}

func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMs) * time.Millisecond
}

// Load decodes a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	c := Default()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(&c)
	if errors.Is(err, io.EOF) {
		Log.Warn().Msgf("Config file %s is empty, using defaults", path)
		return c, c.Validate()
	}
	if err != nil {
		return c, fmt.Errorf("%w: error decoding %s: %v", ErrInvalidConfig, path, err)
	}
	return c, c.Validate()
}

// ApplyEnv overrides fields from a dotenv file. A missing file is not an error.
func (c *Config) ApplyEnv(path string) error {
	envFile, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		Log.Debug().Msgf("No env file at %s, keeping config", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}

	intFields := map[string]*int{
		"ELEVATOR_FLOOR_COUNT":       &c.FloorCount,
		"ELEVATOR_TOP_REST_FLOOR":    &c.TopRestFloor,
		"ELEVATOR_BOTTOM_REST_FLOOR": &c.BottomRestFloor,
		"ELEVATOR_IDLE_REST_FLOOR":   &c.IdleRestFloor,
		"ELEVATOR_TRAVEL_DELAY_MS":   &c.TravelDelayMs,
		"ELEVATOR_IDLE_TIMEOUT_MS":   &c.IdleTimeoutMs,
	}
	for key, field := range intFields {
		value, ok := envFile[key]
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: error converting %s to int: %v", ErrInvalidConfig, key, err)
		}
		*field = parsed
	}
	if level, ok := envFile["ELEVATOR_LOG_LEVEL"]; ok {
		c.LogLevel = level
	}

	return c.Validate()
}

func (c Config) Validate() error {
	if c.FloorCount < 1 {
		return fmt.Errorf("%w: floor_count must be at least 1, got %d", ErrInvalidConfig, c.FloorCount)
	}
	restFloors := map[string]int{
		"top_rest_floor":    c.TopRestFloor,
		"bottom_rest_floor": c.BottomRestFloor,
		"idle_rest_floor":   c.IdleRestFloor,
	}
	for name, floor := range restFloors {
		if floor < 0 || floor > c.FloorCount {
			return fmt.Errorf("%w: %s must be between 0 and %d, got %d", ErrInvalidConfig, name, c.FloorCount, floor)
		}
	}
	if c.TravelDelayMs < 0 || c.IdleTimeoutMs < 0 {
		return fmt.Errorf("%w: travel_delay_ms and idle_timeout_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
