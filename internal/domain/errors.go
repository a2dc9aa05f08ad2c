package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for configuration loading and the tooling built on it
var (
	// ErrConfiguration is the parent of every error caused by missing or
	// invalid configuration values
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingValue is returned when an environment variable referenced by
	// the selected network profile is not set
	ErrMissingValue = fmt.Errorf("%w: missing value", ErrConfiguration)

	// ErrInvalidVersion is returned when a compiler version is not a supported semantic version
	ErrInvalidVersion = fmt.Errorf("%w: invalid compiler version", ErrConfiguration)

	// ErrDuplicateProfile is returned when two network profiles share a name
	ErrDuplicateProfile = fmt.Errorf("%w: duplicate network profile", ErrConfiguration)

	// ErrInvalidValue is returned when a resolved value is malformed
	ErrInvalidValue = fmt.Errorf("%w: invalid value", ErrConfiguration)

	// ErrNetworkNotFound is returned when the selected network is not declared
	ErrNetworkNotFound = fmt.Errorf("%w: network not found", ErrConfiguration)

	// ErrNetworkUnreachable is returned when an endpoint does not answer within its timeout
	ErrNetworkUnreachable = errors.New("network unreachable")

	// ErrVersionMismatch is returned when no declared compiler satisfies a source file
	ErrVersionMismatch = errors.New("compiler version mismatch")
)

// MissingValueError names the variable a network profile needed
type MissingValueError struct {
	Network  string
	Field    string
	Variable string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("network '%s' requires %s but environment variable %s is not set or empty",
		e.Network, e.Field, e.Variable)
}

func (e *MissingValueError) Unwrap() error { return ErrMissingValue }

// DuplicateProfileError reports a network name declared more than once
type DuplicateProfileError struct {
	Name string
}

func (e *DuplicateProfileError) Error() string {
	return fmt.Sprintf("network profile '%s' is declared more than once", e.Name)
}

func (e *DuplicateProfileError) Unwrap() error { return ErrDuplicateProfile }

// InvalidVersionError reports a compiler version that failed to parse
type InvalidVersionError struct {
	Version string
	Reason  string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("compiler version '%s' is not supported: %s", e.Version, e.Reason)
}

func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// InvalidValueError reports a malformed configuration value
type InvalidValueError struct {
	Network string
	Field   string
	Value   string
	Reason  string
}

func (e *InvalidValueError) Error() string {
	var b strings.Builder
	if e.Network != "" {
		fmt.Fprintf(&b, "network '%s': ", e.Network)
	}
	fmt.Fprintf(&b, "invalid %s", e.Field)
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// NetworkNotFoundError reports an undeclared network name
type NetworkNotFoundError struct {
	Name      string
	Available []string
}

func (e *NetworkNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("network '%s' is not declared", e.Name)
	}
	return fmt.Sprintf("network '%s' is not declared (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

func (e *NetworkNotFoundError) Unwrap() error { return ErrNetworkNotFound }

// VersionMismatchError reports a source file no declared compiler can build
type VersionMismatchError struct {
	SourcePath string
	Constraint string
	Declared   []string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s requires solidity %s but declared compilers are [%s]",
		e.SourcePath, e.Constraint, strings.Join(e.Declared, ", "))
}

func (e *VersionMismatchError) Unwrap() error { return ErrVersionMismatch }

// NetworkUnreachableError reports an endpoint that failed to answer
type NetworkUnreachableError struct {
	Network string
	URL     string
	Timeout time.Duration
	Err     error
}

func (e *NetworkUnreachableError) Error() string {
	return fmt.Sprintf("network '%s' at %s did not respond within %s: %v", e.Network, e.URL, e.Timeout, e.Err)
}

func (e *NetworkUnreachableError) Unwrap() []error { return []error{ErrNetworkUnreachable, e.Err} }
