package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/jmmshn/pyrho/internal/apperr"
)

// Package metadata.
const (
	Name       = "mp-pyrho"
	ModulePath = "github.com/jmmshn/pyrho"
	Author     = "Jimmy Shen"
	Email      = "jmmshn@gmail.com"
)

// Unknown is reported when the module is not recorded in the build information.
const Unknown = "unknown"

// develVersion is what the toolchain records for the main module of a local build.
const develVersion = "(devel)"

// Build-time variables injected via -ldflags:
//
//	-X github.com/jmmshn/pyrho/internal/version.Version=1.0.0
//	-X github.com/jmmshn/pyrho/internal/version.Commit=abc1234
//	-X github.com/jmmshn/pyrho/internal/version.Date=2024-01-01
var (
	Version = Unknown
	Commit  = "none"
	Date    = Unknown
)

// Source tells where Version was resolved from.
type Source string

// Version sources, in order of precedence.
const (
	SourceLdflags   Source = "ldflags"
	SourceBuildInfo Source = "buildinfo"
	SourceFallback  Source = "fallback"
)

var source = SourceFallback

func init() {
	bi, _ := debug.ReadBuildInfo()
	applyBuildInfo(bi)
}

// applyBuildInfo overwrites package vars from bi only when they still hold
// their default (ldflags-unset) values. ldflags always win. bi may be nil.
func applyBuildInfo(bi *debug.BuildInfo) {
	if strings.TrimSpace(Version) == "" {
		Version = Unknown
	}

	if Version != Unknown {
		source = SourceLdflags
	} else if v, err := Lookup(bi, ModulePath); err == nil {
		Version = v
		source = SourceBuildInfo
	} else {
		source = SourceFallback
	}

	if bi == nil {
		return
	}

	var revision, vcsTime string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		}
	}

	if Commit == "none" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		Commit = revision
	}

	if Date == Unknown && vcsTime != "" {
		Date = vcsTime
	}
}

// Lookup returns the version recorded for the module path in bi, without a
// leading "v". The main module is checked first, then the dependencies; a
// replaced dependency reports the replacement's version when it has one.
// Empty and "(devel)" versions are treated as unregistered.
//
// The returned error wraps apperr.ErrPackageNotFound.
func Lookup(bi *debug.BuildInfo, path string) (string, error) {
	if bi == nil {
		return "", fmt.Errorf("%s: build information unavailable: %w", path, apperr.ErrPackageNotFound)
	}

	if bi.Main.Path == path {
		if v, ok := recorded(bi.Main.Version); ok {
			return v, nil
		}
		return "", fmt.Errorf("%s: no version recorded for main module: %w", path, apperr.ErrPackageNotFound)
	}

	for _, dep := range bi.Deps {
		if dep == nil || dep.Path != path {
			continue
		}
		v := dep.Version
		if dep.Replace != nil && dep.Replace.Version != "" {
			v = dep.Replace.Version
		}
		if rv, ok := recorded(v); ok {
			return rv, nil
		}
		break
	}

	return "", fmt.Errorf("%s: %w", path, apperr.ErrPackageNotFound)
}

// Resolve looks path up in the build information returned by read and
// returns its version, or Unknown when the module is not recorded.
// It never returns an empty string.
func Resolve(read func() (*debug.BuildInfo, bool), path string) string {
	bi, ok := read()
	if !ok {
		return Unknown
	}
	v, err := Lookup(bi, path)
	if err != nil {
		return Unknown
	}
	return v
}

func recorded(v string) (string, bool) {
	if v == develVersion {
		return "", false
	}
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return "", false
	}
	return v, true
}

// IsSemantic reports whether v is a semantic version. The leading "v" is optional.
func IsSemantic(v string) bool {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.IsValid(v)
}

// Info is a snapshot of the package metadata and resolved build values.
type Info struct {
	Name      string `json:"name"`
	Module    string `json:"module"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Author    string `json:"author"`
	Email     string `json:"email"`
	Semantic  bool   `json:"semantic"`
	Source    Source `json:"source"`
}

// Get returns the current package metadata.
func Get() Info {
	return Info{
		Name:      Name,
		Module:    ModulePath,
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Author:    Author,
		Email:     Email,
		Semantic:  IsSemantic(Version),
		Source:    source,
	}
}

// String returns the package name followed by its version, e.g. "mp-pyrho 0.3.1".
func String() string {
	return Name + " " + Version
}
