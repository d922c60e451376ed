// Package version exposes the mp-pyrho package metadata and the version of the
// running module.
//
// Version, Commit and Date can be injected via ldflags. When ldflags are not
// set (e.g. go install or go run), an init function looks the module up in
// runtime/debug.BuildInfo. If the module is not recorded there, Version is
// the literal "unknown"; the lookup failure never reaches the caller.
package version
