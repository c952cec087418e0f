package config

import (
	"fmt"

	"github.com/pipesmith/pipesmith/internal/errors"
	"github.com/pipesmith/pipesmith/internal/pipeline"
)

// Validate checks every enum-valued field of the configuration. Empty
// collections are allowed: compilation degrades to fewer jobs and steps
// rather than failing. Only values outside the declared domain are
// rejected, since those indicate a typo in the config file.
func Validate(cfg *pipeline.Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", errors.ErrEmptyValue)
	}

	if cfg.PackageManager != "" && !cfg.PackageManager.Valid() {
		return fmt.Errorf("%w: %q", errors.ErrInvalidPackageManager, cfg.PackageManager)
	}
	if cfg.Storage != "" && !cfg.Storage.Valid() {
		return fmt.Errorf("%w: %q", errors.ErrInvalidStorageType, cfg.Storage)
	}
	for _, bt := range cfg.BuildTypes {
		if !bt.Valid() {
			return fmt.Errorf("%w: %q", errors.ErrInvalidBuildType, bt)
		}
	}
	for _, tk := range cfg.Tests {
		if !tk.Valid() {
			return fmt.Errorf("%w: %q", errors.ErrInvalidTestKind, tk)
		}
	}
	for _, tr := range cfg.Triggers {
		if !tr.Valid() {
			return fmt.Errorf("%w: %q", errors.ErrInvalidTrigger, tr)
		}
	}
	if ch := cfg.Advanced.NotificationChannel; ch != "" && !ch.Valid() {
		return fmt.Errorf("%w: %q", errors.ErrInvalidNotificationChannel, ch)
	}
	return nil
}
