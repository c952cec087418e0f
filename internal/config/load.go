// Package config loads pipeline configuration files for pipesmith.
//
// Configuration values are loaded in the following order (highest
// precedence first):
//  1. Environment variables (PIPESMITH_* prefix)
//  2. The configuration file passed on the command line
//  3. Built-in defaults
//
// IMPORTANT: This package may import internal/pipeline and
// internal/errors, but MUST NOT import other internal packages.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/pipeline"
)

// Load reads a pipeline configuration from path, applies defaults and
// environment overrides, and validates the result. A missing file is
// reported as ErrConfigNotFound so callers can map it to a user-input
// error.
func Load(path string) (*pipeline.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", errors.ErrConfigNotFound, path)
	}

	v := newViperInstance()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if isConfigNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrConfigNotFound, path)
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var cfg pipeline.Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// newViperInstance creates a Viper instance with standard pipesmith
// configuration: defaults, the PIPESMITH_ env prefix, and a key replacer
// so nested keys map to env var names.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PIPESMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures built-in default values.
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	v.SetDefault("project_name", "")
	v.SetDefault("package_manager", string(pipeline.DefaultPackageManager))
	v.SetDefault("storage", string(pipeline.GitHubRelease))
	v.SetDefault("build_types", []string{})
	v.SetDefault("tests", []string{})
	v.SetDefault("triggers", []string{})
}

// isConfigNotFoundError returns true if the error is a viper config file
// not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// The slice hooks let env overrides express set-valued axes as
// comma-separated strings (PIPESMITH_TESTS="typescript,eslint").
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			splitSliceElementsHookFunc(","),
		),
	)
}

// splitSliceElementsHookFunc splits separator-joined elements inside
// string slices. Viper casts an env override onto a slice-typed default
// before decode hooks run, so "typescript,eslint" arrives as a single
// unsplit element rather than a string.
func splitSliceElementsHookFunc(sep string) mapstructure.DecodeHookFuncKind {
	return func(from reflect.Kind, to reflect.Kind, data any) (any, error) {
		if from != reflect.Slice || to != reflect.Slice {
			return data, nil
		}
		raw, ok := data.([]string)
		if !ok {
			return data, nil
		}

		out := make([]string, 0, len(raw))
		for _, item := range raw {
			for _, part := range strings.Split(item, sep) {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
		return out, nil
	}
}
