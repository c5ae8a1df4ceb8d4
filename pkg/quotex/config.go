package quotex

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// Config carries the tunable thresholds read from an optional YAML file.
// Values are plain floats in the file and converted to decimals once, at
// load time.
type Config struct {
	Compare struct {
		// Tolerance is the absolute difference below which two numeric
		// values count as equal. Default 0.01.
		Tolerance float64 `yaml:"tolerance"`
		// MarginRiskThreshold is the margin percentage delta above which a
		// WBE impact is flagged high risk. Default 10.
		MarginRiskThreshold float64 `yaml:"margin_risk_threshold"`
	} `yaml:"compare"`
	Pre struct {
		// InstallationPercent derives installation_total from the equipment
		// total, as a fraction. Default 0.
		InstallationPercent float64 `yaml:"installation_percent"`
	} `yaml:"pre"`
}

// DefaultConfig returns the compiled-in thresholds.
func DefaultConfig() Config {
	var c Config
	c.Compare.Tolerance = 0.01
	c.Compare.MarginRiskThreshold = 10
	return c
}

// LoadConfig reads a YAML config file, overriding the defaults with any
// values the file sets. A zero or negative value keeps the default.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	var file Config
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	if file.Compare.Tolerance > 0 {
		c.Compare.Tolerance = file.Compare.Tolerance
	}
	if file.Compare.MarginRiskThreshold > 0 {
		c.Compare.MarginRiskThreshold = file.Compare.MarginRiskThreshold
	}
	if file.Pre.InstallationPercent > 0 {
		c.Pre.InstallationPercent = file.Pre.InstallationPercent
	}
	return c, nil
}

// Tolerance returns the comparison tolerance as a decimal.
func (c Config) Tolerance() decimal.Decimal {
	return decimal.NewFromFloat(c.Compare.Tolerance)
}

// MarginRiskThreshold returns the risk threshold as a decimal.
func (c Config) MarginRiskThreshold() decimal.Decimal {
	return decimal.NewFromFloat(c.Compare.MarginRiskThreshold)
}

// InstallationPercent returns the installation fraction as a decimal.
func (c Config) InstallationPercent() decimal.Decimal {
	return decimal.NewFromFloat(c.Pre.InstallationPercent)
}
