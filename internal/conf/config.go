// config.go: settings struct and functions to load and save the settings
// for the statevax-go analysis tool.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for a rotating file log.
type LogConfig struct {
	Enabled bool   // true to enable file logging
	Path    string // path to log file
}

// MainSettings contains general application settings.
type MainSettings struct {
	Name string    // name of this analysis run, used in report headers
	Log  LogConfig // file logging settings
}

// InputSettings names the two source files of the analysis.
type InputSettings struct {
	Election    string // path to the election results CSV
	Vaccination string // path to the vaccination time series CSV
}

// AnalysisSettings controls the tidy/join pipeline.
type AnalysisSettings struct {
	Year     int      // election year to keep, source data spans 1976-2020
	TieBreak string   // majority tie handling: "error" or "alphabetical"
	Overlay  []string // state names rendered on the overlay comparison chart
}

// ChartSettings controls the rendered chart set.
type ChartSettings struct {
	Enabled bool    // true to render charts
	Width   float64 // chart width in inches
	Height  float64 // chart height in inches
}

// ExcelSettings controls the xlsx workbook export.
type ExcelSettings struct {
	Enabled  bool
	Filename string
}

// ReportSettings controls the markdown report export.
type ReportSettings struct {
	Enabled  bool
	Filename string
}

// OutputSettings contains settings for analysis output artifacts.
type OutputSettings struct {
	Path   string // output directory, created when missing
	Format string // console output format: table or csv
	Charts ChartSettings
	Excel  ExcelSettings
	Report ReportSettings
}

// Settings is the root configuration struct.
type Settings struct {
	Debug bool // true to enable debug output

	Main     MainSettings
	Input    InputSettings
	Analysis AnalysisSettings
	Output   OutputSettings
}

// Tie-break policy values for AnalysisSettings.TieBreak.
const (
	TieBreakError        = "error"
	TieBreakAlphabetical = "alphabetical"
)

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration into a new Settings struct.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the config into settings
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settings, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file and writes it to the
// first default config path.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig := getDefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	return string(data)
}

// GetDefaultConfigPaths returns the config file search paths: the current
// working directory first, then the per-user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error resolving user config directory: %w", err)
	}

	paths := []string{
		".",
		filepath.Join(configDir, "statevax-go"),
	}
	return paths, nil
}

// GetSettings returns the current settings instance
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the current settings instance, loading them on first use.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})
	return GetSettings()
}
