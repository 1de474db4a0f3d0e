package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Player struct {
		BaseURL            string  `envconfig:"PLAYER_BASE_URL" default:"http://localhost:8080"`
		GuildID            string  `envconfig:"PLAYER_GUILD_ID" default:""`
		LyricsSource       string  `envconfig:"PLAYER_LYRICS_SOURCE" default:"auto"`
		PollIntervalMs     int     `envconfig:"PLAYER_POLL_INTERVAL_MS" default:"1000"` // earlier builds used 2000; 1000 keeps sync tighter
		FrameIntervalMs    int     `envconfig:"PLAYER_FRAME_INTERVAL_MS" default:"33"`
		Easing             string  `envconfig:"PLAYER_EASING" default:"sine"` // sine | linear
		ControlsPerSecond  float64 `envconfig:"PLAYER_CONTROLS_PER_SECOND" default:"2"`
		ControlsBurstLimit int     `envconfig:"PLAYER_CONTROLS_BURST_LIMIT" default:"3"`
	}

	Artwork struct {
		FetchTimeoutSeconds        int `envconfig:"ARTWORK_FETCH_TIMEOUT_SECONDS" default:"5"`
		CircuitBreakerThreshold    int `envconfig:"ARTWORK_CIRCUIT_BREAKER_THRESHOLD" default:"3"`
		CircuitBreakerCooldownSecs int `envconfig:"ARTWORK_CIRCUIT_BREAKER_COOLDOWN_SECS" default:"120"`
	}

	Simulator struct {
		Port                string `envconfig:"SIM_PORT" default:"8080"`
		RateLimitPerSecond  int    `envconfig:"SIM_RATE_LIMIT_PER_SECOND" default:"5"`
		RateLimitBurstLimit int    `envconfig:"SIM_RATE_LIMIT_BURST_LIMIT" default:"10"`
	}

	FeatureFlags struct {
		JSONLogs bool `envconfig:"FF_JSON_LOGS" default:"false"`
	}
}

// PollInterval returns the poll period as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Player.PollIntervalMs) * time.Millisecond
}

// FrameInterval returns the interpolation frame period as a duration.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.Player.FrameIntervalMs) * time.Millisecond
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("Error loading env config: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

func Get() Config {
	return conf
}
