package store

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/edc-app/edc/pkg/timeutil"
)

// Config is the resolved client configuration.
type Config interface {
	BasePath() string
	APIURL() string
	APIToken() string
	CacheTTL() time.Duration
	Timeout() time.Duration
	WeekStart() time.Weekday
}

const (
	DefaultPath     = "~/.edc"
	DefaultAPIURL   = "http://localhost:8000/api"
	DefaultCacheTTL = 5 * time.Minute
	DefaultTimeout  = 10 * time.Second
)

// LoadConfig reads .edc.yaml from $EDC_CONFIG_PATH, the working directory or
// $HOME, with EDC_* environment variables taking precedence.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", DefaultPath)
	viper.SetDefault("api_url", DefaultAPIURL)
	viper.SetDefault("cache_ttl", DefaultCacheTTL)
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("week_start", "sunday")
	viper.SetConfigName(".edc") // .yaml is implicit
	viper.SetEnvPrefix("EDC")
	viper.AutomaticEnv()

	if override := os.Getenv("EDC_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
			return nil, err
		}
	}
	return configFrom(viper.GetViper())
}

func configFrom(v *viper.Viper) (*fileConfig, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	weekStart, err := timeutil.ParseWeekday(v.GetString("week_start"))
	if err != nil {
		return nil, fmt.Errorf("store: week_start: %w", err)
	}
	cfg := &fileConfig{
		Path:     path,
		URL:      strings.TrimRight(v.GetString("api_url"), "/"),
		Token:    v.GetString("api_token"),
		TTL:      v.GetDuration("cache_ttl"),
		HTTPTime: v.GetDuration("timeout"),
		FirstDay: weekStart,
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}
	if cfg.HTTPTime <= 0 {
		cfg.HTTPTime = DefaultTimeout
	}
	return cfg, nil
}

type fileConfig struct {
	Path     string        `json:"path"`
	URL      string        `json:"api_url"`
	Token    string        `json:"-"`
	TTL      time.Duration `json:"cache_ttl"`
	HTTPTime time.Duration `json:"timeout"`
	FirstDay time.Weekday  `json:"week_start"`
}

func (f *fileConfig) BasePath() string        { return f.Path }
func (f *fileConfig) APIURL() string          { return f.URL }
func (f *fileConfig) APIToken() string        { return f.Token }
func (f *fileConfig) CacheTTL() time.Duration { return f.TTL }
func (f *fileConfig) Timeout() time.Duration  { return f.HTTPTime }
func (f *fileConfig) WeekStart() time.Weekday { return f.FirstDay }
