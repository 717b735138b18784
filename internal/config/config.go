package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Placeholder is the value provisioning templates ship for endpoints that
// have not been filled in yet. Any required endpoint left empty or at this
// value switches the whole service into demo mode.
const Placeholder = "REPLACE_ME"

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Alert record store
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Object storage
	StorageBaseURL  string `envconfig:"STORAGE_BASE_URL" default:"https://storage.googleapis.com"`
	AlertsBucket    string `envconfig:"ALERTS_BUCKET"`
	EmployeesBucket string `envconfig:"EMPLOYEES_BUCKET"`

	// Upstream pipeline topics. The classification pipeline owns both; the
	// console only records them so operators can cross-check provisioning.
	AlertsTopic string `envconfig:"ALERTS_TOPIC" default:"face-alerts-topic"`
	ImagesTopic string `envconfig:"IMAGES_TOPIC" default:"new-images-topic"`

	// Branding
	AppName        string `envconfig:"APP_NAME" default:"SENTINEL"`
	CompanyName    string `envconfig:"COMPANY_NAME" default:"Sentinel Security Systems"`
	SupportEmail   string `envconfig:"SUPPORT_EMAIL" default:"support@sentinel-security.com"`
	MonitoringZone string `envconfig:"MONITORING_ZONE" default:"CAM-04 (Main Entrance)"`
	AlertSoundURL  string `envconfig:"ALERT_SOUND_URL" default:"https://assets.mixkit.co/active_storage/sfx/2568/2568-preview.mp3"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Live reports whether the backing infrastructure is configured. When it
// returns false every component runs in offline demo mode: fixed seed data,
// local-only mutations, no network calls.
func (c *Config) Live() bool {
	for _, v := range []string{c.DatabaseURL, c.AlertsBucket, c.EmployeesBucket} {
		if v == "" || v == Placeholder {
			return false
		}
	}
	return true
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
