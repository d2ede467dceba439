package commands

import (
	"fmt"
	"time"

	"csstats-backend/internal/components/config"
	"csstats-backend/internal/scrapers/casetracker"
	"csstats-backend/internal/scrapers/steam"
)

type Endpoints struct {
	steam.Endpoints
	Casetracker     string `json:"casetracker"`
	HistoryTemplate string `json:"history_template"`
}

type Config struct {
	AppId               int       `json:"app_id"`
	WindowDays          int       `json:"window_days"`
	RequestDelaySeconds float64   `json:"request_delay_seconds"`
	HistoryStart        string    `json:"history_start"`
	Timezone            string    `json:"timezone"`
	Items               []string  `json:"items"`
	Smoothing           bool      `json:"smoothing"`
	Endpoints           Endpoints `json:"endpoints"`
	TimeoutSeconds      int       `json:"timeout_seconds"`
}

const historyStartLayout = "2006-01"

func defaultConfig() Config {
	return Config{
		AppId:               730,
		WindowDays:          30,
		RequestDelaySeconds: 10,
		HistoryStart:        "2019-01",
		Timezone:            "UTC",
		Items:               []string{"Revolution Case"},
		Smoothing:           true,
		Endpoints: Endpoints{
			Endpoints:       steam.DefaultEndpoints(),
			Casetracker:     casetracker.DefaultBaseUrl,
			HistoryTemplate: casetracker.DefaultHistoryTemplate,
		},
		TimeoutSeconds: 30,
	}
}

// loadConfig decodes the config file over the defaults, `path` empty means
// searching for config.json5. A non-empty `path` must exist.
func loadConfig(path string) (Config, error) {
	var (
		cfg Config
		err error
	)
	if path == "" {
		cfg, err = config.ReadWithDefaults("config.json5", defaultConfig())
	} else {
		cfg, err = config.ReadPathWithDefaults(path, defaultConfig())
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	err = cfg.validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.AppId <= 0 {
		return fmt.Errorf("config: app_id must be positive, got %d", c.AppId)
	}
	if c.WindowDays < 1 {
		return fmt.Errorf("config: window_days must be at least 1, got %d", c.WindowDays)
	}
	if c.RequestDelaySeconds < 0 {
		return fmt.Errorf("config: request_delay_seconds must not be negative, got %v", c.RequestDelaySeconds)
	}
	_, err := c.historyStart()
	if err != nil {
		return err
	}
	return nil
}

func (c Config) requestDelay() time.Duration {
	return time.Duration(c.RequestDelaySeconds * float64(time.Second))
}

func (c Config) historyStart() (time.Time, error) {
	start, err := time.Parse(historyStartLayout, c.HistoryStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: history_start %q is not YYYY-MM: %w", c.HistoryStart, err)
	}
	return start, nil
}
