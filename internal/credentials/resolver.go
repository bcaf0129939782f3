// Package credentials locates OAuth client-secret and token-cache files.
//
// Resolution walks a fixed priority order and reports which rule matched,
// so callers can render a precise diagnostic instead of a generic "not
// found". The package never logs and performs no writes; creating a new
// token cache file is the caller's job.
package credentials

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used under config roots.
const AppName = "gsheet-mcp"

// EnvCredentials overrides the client-secret search when set.
const EnvCredentials = "GSHEET_MCP_CREDENTIALS"

// File names searched for at each candidate location.
const (
	SecretFileName = "credentials.json"
	TokenFileName  = "token.json"
)

// LocationKind identifies which rule produced a candidate location.
type LocationKind string

// Candidate location kinds, in priority order.
const (
	KindEnv       LocationKind = "env"
	KindXDGConfig LocationKind = "xdg-config"
	KindHome      LocationKind = "home"
	KindWorkDir   LocationKind = "cwd"
	KindExeDir    LocationKind = "exe-dir"
)

// Location is one candidate source for a credential file.
// Rank is the fixed 1-based ordinal of the rule that produced it;
// lower rank wins.
type Location struct {
	Kind LocationKind `json:"kind"`
	Path string       `json:"path"`
	Rank int          `json:"rank"`
}

// Resolved is the outcome of a successful client-secret resolution.
type Resolved struct {
	SecretPath string   `json:"secret_path"`
	Location   Location `json:"location"`
}

// Candidate is a Location probed for existence and readability.
type Candidate struct {
	Location Location `json:"location"`
	Existed  bool     `json:"existed"`
	Readable bool     `json:"readable"`
}

// ResolveClientSecret locates the OAuth client-secret file.
//
// When explicit is non-empty (CLI flag) or GSHEET_MCP_CREDENTIALS is set,
// that path is checked first and exclusively: a missing override fails
// immediately rather than silently falling back, so misconfiguration
// surfaces at once. Otherwise the fallback locations are probed in rank
// order and the first existing, readable file wins.
func ResolveClientSecret(explicit string) (Resolved, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvCredentials)
	}

	if explicit != "" {
		loc := Location{Kind: KindEnv, Path: absolute(explicit), Rank: 1}
		cand := probe(loc)
		if cand.Existed && cand.Readable {
			return Resolved{SecretPath: loc.Path, Location: loc}, nil
		}
		return Resolved{}, &NotFoundError{Checked: []Candidate{cand}}
	}

	checked := make([]Candidate, 0, 4)
	for _, loc := range fallbackSecretLocations() {
		cand := probe(loc)
		checked = append(checked, cand)
		if cand.Existed && cand.Readable {
			return Resolved{SecretPath: loc.Path, Location: loc}, nil
		}
	}
	return Resolved{}, &NotFoundError{Checked: checked}
}

// ResolveTokenCache returns the token cache path for a profile.
//
// Token caches are machine-local state, never redirected by environment
// variable: only the directory-based locations are scanned, each with a
// profile-scoped subpath so distinct profiles never share a cache. This
// call does not fail on a missing file; when no cache exists yet it
// returns the XDG location as the path for the caller to create.
func ResolveTokenCache(profile string) (string, error) {
	if err := validateProfile(profile); err != nil {
		return "", err
	}

	locs := tokenLocations(profile)
	for _, loc := range locs {
		cand := probe(loc)
		if cand.Existed && cand.Readable {
			return loc.Path, nil
		}
	}
	// Nothing on disk yet: highest-priority writable location.
	return locs[0].Path, nil
}

// DescribeSearch reports every client-secret candidate in priority order
// with its existence and readability at call time. Recomputed fresh on
// each call; no side effects.
func DescribeSearch(explicit string) []Candidate {
	if explicit == "" {
		explicit = os.Getenv(EnvCredentials)
	}
	if explicit != "" {
		loc := Location{Kind: KindEnv, Path: absolute(explicit), Rank: 1}
		return []Candidate{probe(loc)}
	}

	locs := fallbackSecretLocations()
	out := make([]Candidate, 0, len(locs))
	for _, loc := range locs {
		out = append(out, probe(loc))
	}
	return out
}

// fallbackSecretLocations builds the non-override candidate list.
// Ranks are fixed per rule, so a skipped rule (no resolvable executable
// path, say) never shifts the ordinals reported for the others.
func fallbackSecretLocations() []Location {
	locs := []Location{
		{Kind: KindXDGConfig, Path: filepath.Join(xdgConfigHome(), AppName, SecretFileName), Rank: 2},
	}

	if home, err := os.UserHomeDir(); err == nil {
		locs = append(locs, Location{
			Kind: KindHome,
			Path: filepath.Join(home, "."+AppName, SecretFileName),
			Rank: 3,
		})
	}

	if cwd, err := os.Getwd(); err == nil {
		locs = append(locs, Location{
			Kind: KindWorkDir,
			Path: filepath.Join(cwd, SecretFileName),
			Rank: 4,
		})
	}

	if exe, err := os.Executable(); err == nil {
		locs = append(locs, Location{
			Kind: KindExeDir,
			Path: filepath.Join(filepath.Dir(exe), SecretFileName),
			Rank: 5,
		})
	}

	return locs
}

// tokenLocations builds the profile-scoped token candidate list.
// Same precedence as the secret scan minus the env override.
func tokenLocations(profile string) []Location {
	sub := filepath.Join("profiles", profile, TokenFileName)

	locs := []Location{
		{Kind: KindXDGConfig, Path: filepath.Join(xdgConfigHome(), AppName, sub), Rank: 2},
	}

	if home, err := os.UserHomeDir(); err == nil {
		locs = append(locs, Location{
			Kind: KindHome,
			Path: filepath.Join(home, "."+AppName, sub),
			Rank: 3,
		})
	}

	if cwd, err := os.Getwd(); err == nil {
		locs = append(locs, Location{
			Kind: KindWorkDir,
			Path: filepath.Join(cwd, sub),
			Rank: 4,
		})
	}

	if exe, err := os.Executable(); err == nil {
		locs = append(locs, Location{
			Kind: KindExeDir,
			Path: filepath.Join(filepath.Dir(exe), sub),
			Rank: 5,
		})
	}

	return locs
}

// validateProfile rejects names that cannot serve as a single path segment.
func validateProfile(profile string) error {
	if profile == "" {
		return &InvalidProfileError{Profile: profile, Reason: "profile name is empty"}
	}
	if strings.ContainsAny(profile, `/\`) || strings.ContainsRune(profile, os.PathSeparator) {
		return &InvalidProfileError{Profile: profile, Reason: "profile name contains a path separator"}
	}
	if profile == "." || profile == ".." {
		return &InvalidProfileError{Profile: profile, Reason: "profile name is a relative path element"}
	}
	return nil
}

// xdgConfigHome returns $XDG_CONFIG_HOME or the ~/.config default.
func xdgConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config"
	}
	return filepath.Join(home, ".config")
}

// probe checks a location for existence and readability.
func probe(loc Location) Candidate {
	cand := Candidate{Location: loc}

	info, err := os.Stat(loc.Path)
	if err != nil || info.IsDir() {
		return cand
	}
	cand.Existed = true

	file, err := os.Open(loc.Path)
	if err != nil {
		return cand
	}
	_ = file.Close()
	cand.Readable = true
	return cand
}

// absolute converts a path to absolute form, leaving it untouched on error.
func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
