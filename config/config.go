package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type config struct {
	// LCDs are backend ledger REST endpoints used for supply and
	// denom-owner queries. The first reachable one wins.
	LCDs []string `mapstructure:"lcds"`

	// ProviderDirectory is the directory service URL for the provider
	// table widget. Optional.
	ProviderDirectory string `mapstructure:"providerDirectory"`

	// Denom is the minor-unit denomination queried on chain.
	Denom string

	// ScaleDecimals converts minor units to major units (10^ScaleDecimals).
	ScaleDecimals int `mapstructure:"scaleDecimals"`

	PageSize   int `mapstructure:"pageSize"`
	MaxRecords int `mapstructure:"maxRecords"`
	TopN       int `mapstructure:"topN"`

	RequestTimeoutMS  int `mapstructure:"requestTimeoutMS"`
	PageIntervalMS    int `mapstructure:"pageIntervalMS"`
	RefreshIntervalMS int `mapstructure:"refreshIntervalMS"`

	Canvas canvas

	// ListenAddr is the address the widget API binds to.
	ListenAddr string `mapstructure:"listenAddr"`

	// Label is used as prefix in log output, e.g., mainnet, testnet.
	Label string

	// Debug indicates if in debug mode.
	Debug bool
}

type canvas struct {
	Width   float64
	Height  float64
	Padding float64
}

var cfg config

// Load reads and validates the config file, panicking on failure so the
// service never starts half-configured.
func Load(display bool) {
	viper.SetConfigName("config")
	viper.AddConfigPath("./config")
	// Incase test cases require loading configs
	viper.AddConfigPath("../config")

	setDefaults()

	if err := load(display); err != nil {
		panic(err)
	}

	attachLCDHTTPScheme()

	if err := validateConfig(); err != nil {
		panic(err)
	}
}

func setDefaults() {
	viper.SetDefault("scaleDecimals", 6)
	viper.SetDefault("pageSize", 100)
	viper.SetDefault("maxRecords", 500)
	viper.SetDefault("topN", 15)
	viper.SetDefault("requestTimeoutMS", 8000)
	viper.SetDefault("pageIntervalMS", 100)
	viper.SetDefault("refreshIntervalMS", 5*60*1000)
	viper.SetDefault("canvas.width", 900)
	viper.SetDefault("canvas.height", 600)
	viper.SetDefault("canvas.padding", 20)
	viper.SetDefault("listenAddr", ":8080")
}

/* ------------------------------
        `Get` functions
------------------------------ */

// GetLCDs returns all ledger REST endpoint urls from config.
func GetLCDs() []string {
	return cfg.LCDs
}

// GetProviderDirectory returns the provider directory service URL.
func GetProviderDirectory() string {
	return cfg.ProviderDirectory
}

// GetDenom returns the minor-unit denom under inspection.
func GetDenom() string {
	return cfg.Denom
}

// GetScaleFactor returns 10^scaleDecimals.
func GetScaleFactor() int64 {
	f := int64(1)
	for i := 0; i < cfg.ScaleDecimals; i++ {
		f *= 10
	}
	return f
}

// GetPageSize returns the denom-owner page size.
func GetPageSize() int {
	return cfg.PageSize
}

// GetMaxRecords returns the pagination hard cap.
func GetMaxRecords() int {
	return cfg.MaxRecords
}

// GetTopN returns the size of the displayed holder set.
func GetTopN() int {
	return cfg.TopN
}

// GetRequestTimeout returns the per-request timeout bound.
func GetRequestTimeout() time.Duration {
	return time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
}

// GetPageInterval returns the fixed inter-page throttle delay.
func GetPageInterval() time.Duration {
	return time.Duration(cfg.PageIntervalMS) * time.Millisecond
}

// GetRefreshInterval returns the periodic refresh interval.
func GetRefreshInterval() time.Duration {
	return time.Duration(cfg.RefreshIntervalMS) * time.Millisecond
}

// GetCanvas returns bubble canvas dimensions (width, height, padding).
func GetCanvas() (float64, float64, float64) {
	return cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Padding
}

// GetListenAddr returns the widget API listen address.
func GetListenAddr() string {
	return cfg.ListenAddr
}

// GetLabel returns custom label as part of the log output prefix.
func GetLabel() string {
	return cfg.Label
}

// DebugMode tells if running in debug mode.
func DebugMode() bool {
	return cfg.Debug
}

/* ------------------------------
         Utility Functions
------------------------------ */

func load(display bool) error {
	err := viper.ReadInConfig()
	if err != nil {
		return err
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return err
	}

	if display {
		configContent, err := json.MarshalIndent(cfg, "", "    ")
		if err != nil {
			panic(err)
		}

		log.Println(string(configContent))
	}

	return nil
}

func attachLCDHTTPScheme() {
	for i := 0; i < len(cfg.LCDs); i++ {
		lcd := cfg.LCDs[i]
		if !strings.HasPrefix(lcd, "http") {
			cfg.LCDs[i] = "http://" + lcd
		}
	}
}

func validateConfig() error {
	if err := checkLCDs(); err != nil {
		return err
	}

	if cfg.Denom == "" {
		return errors.New("denom must be set")
	}
	if cfg.PageSize < 1 {
		return errors.New("pageSize must be greater than 0")
	}
	if cfg.MaxRecords < 1 {
		return errors.New("maxRecords must be greater than 0")
	}
	if cfg.TopN < 1 {
		return errors.New("topN must be greater than 0")
	}
	if cfg.Canvas.Width <= 2*cfg.Canvas.Padding ||
		cfg.Canvas.Height <= 2*cfg.Canvas.Padding {
		return fmt.Errorf("canvas %.0fx%.0f too small for padding %.0f",
			cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Padding)
	}

	return nil
}

func checkLCDs() error {
	if len(cfg.LCDs) < 1 {
		return errors.New("at least 1 lcd endpoint url must be set")
	}

	for _, lcd := range cfg.LCDs {
		if strings.HasPrefix(lcd, "http") {
			u, err := url.Parse(lcd)
			if err != nil {
				return err
			}
			lcd = u.Host
		}

		if _, _, err := net.SplitHostPort(lcd); err != nil {
			return err
		}
	}

	return nil
}
