// Package cfgloader provides a simple way to load and validate configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

// CodeInvalidConfig is the error code of every Load failure.
const CodeInvalidConfig = "INVALID_CONFIG"

// MustLoad loads and validates configuration from a YAML file based on the ENVIRONMENT variable.
// The files must be named in the format ${ENVIRONMENT}.yaml and located in the config directory
// at the root of the project. Any failure is logged and terminates the process.
//
// The configuration struct should use `yaml` struct tags to map fields to the YAML file structure.
// Default values can be set using the `default` struct tag; they are applied after unmarshalling
// for fields the file leaves empty. Validations are done using the go-playground/validator package.
//
// Example:
//
//	type Config struct {
//	    Dispatch dispatch.Config `yaml:"dispatch"`
//	    Logger   logger.Config   `yaml:"logger"`
//	    Port     int             `yaml:"port" default:"8080"`
//	}
func MustLoad[T any](opts ...Option) T {
	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		slog.Error(
			"[cfgloader]: ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
		)
		os.Exit(1)
	}

	config, err := Load[T](buildConfigPath(env))
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.Silent {
		printConfig(config)
	}

	return config
}

// Load reads the YAML file at path, expands environment variables in it, applies
// defaults and validates the result.
func Load[T any](path string) (T, error) {
	var config T

	if reflect.TypeFor[T]().Kind() == reflect.Pointer {
		return config, errx.New("[cfgloader]: config type must not be a pointer", errx.WithCode(CodeInvalidConfig))
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, errx.New(
			fmt.Sprintf("[cfgloader]: config file not found in the path %s", path),
			errx.WithCode(CodeInvalidConfig),
		)
	}
	if err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidConfig))
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.New(
			fmt.Sprintf("[cfgloader]: failed to unmarshal config file %s: %v", path, err),
			errx.WithCode(CodeInvalidConfig),
		)
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.New(
			fmt.Sprintf("[cfgloader]: failed to set default values for config: %v", err),
			errx.WithCode(CodeInvalidConfig),
		)
	}

	if err = validateConfig(&config, path); err != nil {
		return config, err
	}

	return config, nil
}

func buildConfigPath(env string) string {
	return fmt.Sprintf("./config/%s.yaml", env)
}

func validateConfig(config any, path string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)

	failedFields := make([]string, 0)
	if errs, ok := err.(validator.ValidationErrors); ok { //nolint: errorlint // Using type assertion for validator errors handling
		for _, err := range errs {
			tagErr := err.Tag()
			if err.Param() != "" {
				tagErr += fmt.Sprintf("=%s", err.Param())
			}
			failedFields = append(failedFields, fmt.Sprintf("%s: %s", err.Namespace(), tagErr))
		}
	}

	if len(failedFields) > 0 {
		return errx.New(
			fmt.Sprintf("[cfgloader]: invalid fields in %s -> %s", path, strings.Join(failedFields, ",  ")),
			errx.WithCode(CodeInvalidConfig),
		)
	}
	return nil
}
