// Package settings loads the tool configuration that applies to every registry.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/nrminor/py-refman/internal/domain"
)

const envPrefix = "REFMAN"

// Settings holds all tool configuration. The mapstructure tags are used by viper.
type Settings struct {
	Home                string        `mapstructure:"home"`
	HTTPTimeout         time.Duration `mapstructure:"http_timeout" validate:"gte=0"`
	ProbeTimeout        time.Duration `mapstructure:"probe_timeout" validate:"gte=0"`
	DownloadConcurrency int           `mapstructure:"download_concurrency" validate:"gte=1,lte=64"`
	ProbeConcurrency    int           `mapstructure:"probe_concurrency" validate:"gte=1,lte=64"`
	CancelGrace         time.Duration `mapstructure:"cancel_grace" validate:"gte=0,lte=1m"`
	StrictExtensions    bool          `mapstructure:"strict_extensions"`
	UserAgent           string        `mapstructure:"user_agent" validate:"required"`
	Debug               bool          `mapstructure:"debug"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

// Options control where Load looks.
type Options struct {
	// ConfigFile overrides the config.yaml lookup under the refman home.
	ConfigFile string
	// UserHome is used when REFMAN_HOME is unset (defaults to os.UserHomeDir).
	UserHome func() (string, error)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("home", "")
	v.SetDefault("http_timeout", "0s")
	v.SetDefault("probe_timeout", "15s")
	v.SetDefault("download_concurrency", 4)
	v.SetDefault("probe_concurrency", 4)
	v.SetDefault("cancel_grace", "250ms")
	v.SetDefault("strict_extensions", true)
	v.SetDefault("user_agent", "refman")
	v.SetDefault("debug", false)
}

// Load reads defaults, then the optional config file, then REFMAN_* environment
// variables, and validates the result.
func Load(opts Options) (Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	home, err := resolveHome(v.GetString("home"), opts.UserHome)
	if err != nil {
		return Settings{}, err
	}

	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Settings{}, invalid(fmt.Errorf("read config: %w", err))
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, invalid(err)
	}
	s.Home = home
	s.ConfigFile = v.ConfigFileUsed()

	if err := validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// GlobalManifest is the manifest path of the per-user registry.
func (s Settings) GlobalManifest() string {
	return filepath.Join(s.Home, domain.DefaultLayout().ManifestFile)
}

func resolveHome(fromEnv string, userHome func() (string, error)) (string, error) {
	if h := strings.TrimSpace(fromEnv); h != "" {
		return filepath.Clean(h), nil
	}
	if userHome == nil {
		userHome = os.UserHomeDir
	}
	dir, err := userHome()
	if err != nil {
		return "", invalid(fmt.Errorf("cannot resolve home directory: %w", err))
	}
	return filepath.Join(dir, domain.DefaultLayout().StateDir), nil
}

var validate = func() func(Settings) error {
	v := validator.New()
	return func(s Settings) error {
		if err := v.Struct(s); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				msgs := make([]string, 0, len(verrs))
				for _, fe := range verrs {
					msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
				}
				return invalid(errors.New(strings.Join(msgs, "; ")))
			}
			return invalid(err)
		}
		return nil
	}
}()

func invalid(err error) error {
	return &domain.RegistryError{Kind: domain.RegistryInvalidOptions, Err: err}
}
