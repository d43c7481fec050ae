package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/talldan/revdiff/internal/core/revision"
	"github.com/talldan/revdiff/internal/core/styles"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("revisions_dir", c.RevisionsDir, notEmpty),
		criterio.Run("source", c.Source, validSource),
		criterio.Run("snapshot_glob", c.SnapshotGlob, validGlob),
		criterio.Run("theme", c.Theme, knownTheme),
		c.validateNavigation(),
		c.validateKeybindings(),
	)
}

// ValidateDeep adds I/O checks on top of Validate: the revisions
// directory must exist and be a directory.
func (c *Config) ValidateDeep() error {
	if err := c.Validate(); err != nil {
		return err
	}

	info, err := os.Stat(c.RevisionsDir)
	if err != nil {
		return criterio.NewFieldErrors("revisions_dir", fmt.Errorf("cannot access: %w", err))
	}
	if !info.IsDir() {
		return criterio.NewFieldErrors("revisions_dir", fmt.Errorf("%s is not a directory", c.RevisionsDir))
	}
	return nil
}

func (c *Config) validateNavigation() error {
	var errs criterio.FieldErrorsBuilder
	if c.Navigation.HintMinHeight < 0 {
		errs = errs.Append("navigation.hint_min_height", fmt.Errorf("must not be negative"))
	}
	if c.Navigation.ScrollThrottleMS < 0 {
		errs = errs.Append("navigation.scroll_throttle_ms", fmt.Errorf("must not be negative"))
	}
	if c.Navigation.ResizeDebounceMS < 0 {
		errs = errs.Append("navigation.resize_debounce_ms", fmt.Errorf("must not be negative"))
	}
	return errs.ToError()
}

func (c *Config) validateKeybindings() error {
	var errs criterio.FieldErrorsBuilder
	for key, kb := range c.Keybindings {
		if kb.Action == "" {
			errs = errs.Append(fmt.Sprintf("keybindings[%q]", key), fmt.Errorf("action is required"))
			continue
		}
		if !isValidAction(kb.Action) {
			errs = errs.Append(fmt.Sprintf("keybindings[%q]", key), fmt.Errorf("invalid action %q", kb.Action))
		}
	}
	return errs.ToError()
}

func isValidAction(action string) bool {
	switch action {
	case ActionPrevChange, ActionNextChange, ActionPreview, ActionQuit:
		return true
	default:
		return false
	}
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func validSource(s revision.Source) error {
	switch s {
	case revision.SourceSnapshots, revision.SourcePatches:
		return nil
	default:
		return fmt.Errorf("must be %q or %q", revision.SourceSnapshots, revision.SourcePatches)
	}
}

func validGlob(glob string) error {
	if !doublestar.ValidatePattern(glob) {
		return fmt.Errorf("invalid glob pattern %q", glob)
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}
