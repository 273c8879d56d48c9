// Package warehouse holds the configuration of the warehouse inventory.
//
// The inventory itself lives in the package inventory, the storage in repository.
package warehouse

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is a structure used for the configuration of the warehouse.
// It is intended to be mapped by viper.
type Config struct {
	ApplicationName string `mapstructure:"application_name"`
	InstanceName    string `mapstructure:"instance_name"`

	Environment Environment `mapstructure:"environment"`

	Log   Log   `mapstructure:"log"`
	Store Store `mapstructure:"store"`

	// Seed adds sample data on start, if all repositories are empty.
	Seed bool `mapstructure:"seed"`
}

const (
	LocalEnv       Environment = "local"
	TestEnv        Environment = "test"
	DevelopmentEnv Environment = "dev"
	ProductionEnv  Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, DevelopmentEnv, ProductionEnv}
}

type Environment string

const (
	TextFormat LogFormat = "text"
	JSONFormat LogFormat = "json"
)

// LogFormats is the list of all supported log output formats.
func LogFormats() []LogFormat {
	return []LogFormat{TextFormat, JSONFormat}
}

type LogFormat string

type (
	Log struct {
		Level  slog.Level `mapstructure:"level"  json:"level"`
		Format LogFormat  `mapstructure:"format" json:"format"`
	}

	Store struct {
		Enabled bool   `mapstructure:"enabled" json:"enabled"`
		Dir     string `mapstructure:"dir"     json:"dir"`
	}
)

// EnvPrefix is the prefix of all environment variables overwriting the configuration,
// e.g. WAREHOUSE_LOG_LEVEL for log.level.
const EnvPrefix = "WAREHOUSE"

// DefaultViper returns a new viper instance with all default values
// from Config set.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetDefault("application_name", "warehouse")
	vip.SetDefault("instance_name", "")

	vip.SetDefault("environment", "local")

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.format", "text")

	vip.SetDefault("store.enabled", false)
	vip.SetDefault("store.dir", ".warehouse")

	vip.SetDefault("seed", true)

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	return &Viper{Viper: vip}
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// The only purpose is to overwrite the Unmarshal method,
// so that the custom types of Config are decoded and validated
// without the developer having to think about it when using DefaultViper.
type Viper struct {
	*viper.Viper
}

func (vip *Viper) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	opts = append([]viper.DecoderConfigOption{viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		allowedValuesHookFunc(Environments()),
		allowedValuesHookFunc(LogFormats()),
		mapstructure.TextUnmarshallerHookFunc(),
	))}, opts...)

	err := vip.Viper.Unmarshal(rawVal, opts...)
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err)
	}

	return nil
}

// Load reads the optional configuration file and returns the Config.
// Values are taken, in decreasing priority, from environment variables,
// the file and the defaults.
func Load(configFile string) (*Config, error) {
	vip := DefaultViper()

	if configFile != "" {
		vip.SetConfigFile(configFile)

		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: could not read %s: %v", errConfigLoadFailed, configFile, err)
		}
	}

	conf := &Config{}
	if err := vip.Unmarshal(conf); err != nil {
		return nil, err
	}

	return conf, nil
}

// allowedValuesHookFunc rejects all values of the string type E that are not in allowed.
func allowedValuesHookFunc[E ~string](allowed []E) mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (interface{}, error) {
		if t != reflect.TypeFor[E]() {
			return data, nil
		}

		str, ok := data.(string)
		if ok && slices.Contains(allowed, E(str)) {
			return data, nil
		}

		e := make([]string, 0, len(allowed))
		for _, v := range allowed {
			e = append(e, string(v))
		}

		return data, fmt.Errorf("value %v is not allowed, use one of: %s", data, strings.Join(e, ", ")) //nolint:err113,lll // accept dynamic error
	}
}
