// Package apperr defines shared error sentinels for pyrho.
// It is a leaf package with no internal imports, so the version package and
// the CLI can share sentinels without creating import cycles.
package apperr
