package config

import (
	"regexp"
	"strings"

	"github.com/trebuchet-org/chaincfg/internal/domain"
	"golang.org/x/mod/semver"
)

// MinSupportedSolc is the oldest compiler release the toolchain can fetch
const MinSupportedSolc = "0.4.11"

var strictVersion = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

// ParseCompilerVersion validates a solc version string. Only plain
// MAJOR.MINOR.PATCH releases are accepted.
func ParseCompilerVersion(v string) (string, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", &domain.InvalidVersionError{Version: v, Reason: "version is empty"}
	}
	if !strictVersion.MatchString(trimmed) {
		return "", &domain.InvalidVersionError{Version: v, Reason: "expected MAJOR.MINOR.PATCH"}
	}
	sv := "v" + trimmed
	if !semver.IsValid(sv) {
		return "", &domain.InvalidVersionError{Version: v, Reason: "not a semantic version"}
	}
	if semver.Compare(sv, "v"+MinSupportedSolc) < 0 {
		return "", &domain.InvalidVersionError{Version: v, Reason: "older than " + MinSupportedSolc}
	}
	return trimmed, nil
}
