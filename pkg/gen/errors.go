package gen

import "fmt"

// ConfigError reports malformed or out-of-range configuration. It is raised
// by eager validation, before any sampling starts, and is always fatal to the
// run: retrying with the same inputs reproduces the same failure, so the only
// remediation is changing the configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %s", e.Reason)
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InjectionConflictError reports that a pattern could not claim enough
// unclaimed host transactions to realize its target support. It is never
// downgraded to a silent support shortfall.
type InjectionConflictError struct {
	PatternID string
	Needed    int
	Available int
}

func (e *InjectionConflictError) Error() string {
	return fmt.Sprintf("pattern %q: needs %d host transactions, only %d unclaimed",
		e.PatternID, e.Needed, e.Available)
}
