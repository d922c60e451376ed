package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmmshn/pyrho/internal/testutil"
)

func TestBuildInfoReader(t *testing.T) {
	read := testutil.BuildInfoReader("example.com/app", "v1.0.0", map[string]string{"example.com/dep": "v0.2.0"})
	bi, ok := read()
	require.True(t, ok)
	assert.Equal(t, "example.com/app", bi.Main.Path)
	require.Len(t, bi.Deps, 1)
	assert.Equal(t, "v0.2.0", bi.Deps[0].Version)
}

func TestMissingBuildInfo(t *testing.T) {
	bi, ok := testutil.MissingBuildInfo()
	assert.False(t, ok)
	assert.Nil(t, bi)
}
