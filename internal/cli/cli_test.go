package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmmshn/pyrho/internal/config"
	"github.com/jmmshn/pyrho/internal/testutil"
	"github.com/jmmshn/pyrho/internal/version"
)

// execute runs the root command against cfgFile and returns stdout.
func execute(t *testing.T, cfgFile string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(testutil.NopLogger(), &slog.LevelVar{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfgFile}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func stubBuildInfo(t *testing.T, read func() (*debug.BuildInfo, bool)) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = read
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestVersionCmd_Text(t *testing.T) {
	out, err := execute(t, testutil.TempConfigFile(t), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pyrho version "+version.Version+" (commit: "), out)
}

func TestVersionCmd_JSON(t *testing.T) {
	out, err := execute(t, testutil.TempConfigFile(t), "version", "-o", "json")
	require.NoError(t, err)

	var got versionResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, version.Version, got.Version)
	assert.Equal(t, version.Commit, got.Commit)
	assert.Equal(t, version.Date, got.Date)
}

func TestVersionCmd_Plain(t *testing.T) {
	out, err := execute(t, testutil.TempConfigFile(t), "version", "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)
	assert.NotEqual(t, "\n", out, "version must never be empty")
}

func TestVersionCmd_Module(t *testing.T) {
	stubBuildInfo(t, testutil.BuildInfoReader("example.com/app", "v1.0.0", map[string]string{
		version.ModulePath: "v0.3.1",
	}))
	cfgFile := testutil.TempConfigFile(t)

	out, err := execute(t, cfgFile, "version", "--module", version.ModulePath)
	require.NoError(t, err)
	assert.Equal(t, version.ModulePath+" 0.3.1\n", out)

	out, err = execute(t, cfgFile, "version", "--module", "example.com/missing", "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t, "unknown\n", out)
}

func TestVersionCmd_ModuleWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, testutil.MissingBuildInfo)

	out, err := execute(t, testutil.TempConfigFile(t), "version", "--module", version.ModulePath, "-o", "json")
	require.NoError(t, err)

	var got moduleResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, moduleResult{Module: version.ModulePath, Version: "unknown"}, got)
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, testutil.TempConfigFile(t), "--version")
	require.NoError(t, err)
	assert.Equal(t, "pyrho version "+version.Version+"\n", out)
}

func TestAboutCmd_JSON(t *testing.T) {
	out, err := execute(t, testutil.TempConfigFile(t), "about", "-o", "json")
	require.NoError(t, err)

	var got version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "mp-pyrho", got.Name)
	assert.Equal(t, "Jimmy Shen", got.Author)
	assert.Equal(t, "jmmshn@gmail.com", got.Email)
	assert.Equal(t, version.Version, got.Version)
	assert.NotEmpty(t, got.Source)
}

func TestAboutCmd_Plain(t *testing.T) {
	out, err := execute(t, testutil.TempConfigFile(t), "about", "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "name=mp-pyrho\n")
	assert.Contains(t, out, "author=Jimmy Shen\n")
	assert.Contains(t, out, "email=jmmshn@gmail.com\n")
	assert.Contains(t, out, "version="+version.Version+"\n")
}

func TestAboutCmd_Text(t *testing.T) {
	out, err := execute(t, testutil.TempConfigFile(t), "about")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "Jimmy Shen")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := execute(t, testutil.TempConfigFile(t), "version", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestConfigCmd_SetGetShow(t *testing.T) {
	cfgFile := testutil.TempConfigFile(t)

	_, err := execute(t, cfgFile, "config", "set", "output", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "output: json\n", string(data))

	out, err := execute(t, cfgFile, "config", "get", "output")
	require.NoError(t, err)
	assert.Equal(t, "json\n", out)

	out, err = execute(t, cfgFile, "config", "show", "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t, "output=plain\nverbose=false\n", out)
}

func TestConfigCmd_SetInvalid(t *testing.T) {
	cfgFile := testutil.TempConfigFile(t)

	_, err := execute(t, cfgFile, "config", "set", "colour", "red")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, err = execute(t, cfgFile, "config", "set", "output", "xml")
	require.Error(t, err)
}

func TestConfigCmd_ShowJSON(t *testing.T) {
	out, err := execute(t, testutil.TempConfigFile(t), "config", "show", "-o", "json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"output": "json", "verbose": "false"}, got)
}

func TestConfigCmd_Path(t *testing.T) {
	cfgFile := testutil.TempConfigFile(t)
	out, err := execute(t, cfgFile, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgFile+"\n", out)
}

func TestAliasCmd_Lifecycle(t *testing.T) {
	cfgFile := testutil.TempConfigFile(t)

	_, err := execute(t, cfgFile, "alias", "set", "v", "version -o plain")
	require.NoError(t, err)

	out, err := execute(t, cfgFile, "alias", "list", "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t, "v=version -o plain\n", out)

	_, err = execute(t, cfgFile, "alias", "delete", "v")
	require.NoError(t, err)

	out, err = execute(t, cfgFile, "alias", "list", "-o", "plain")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, cfgFile, "alias", "list", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "{}", out)

	_, err = execute(t, cfgFile, "alias", "delete", "v")
	require.Error(t, err)
}

func TestAliasCmd_RejectsBuiltin(t *testing.T) {
	_, err := execute(t, testutil.TempConfigFile(t), "alias", "set", "about", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shadows a built-in command")
}

func TestExecute_ExpandsAlias(t *testing.T) {
	cfgFile := testutil.TempConfigFile(t)
	require.NoError(t, os.WriteFile(cfgFile, []byte("alias:\n  v: version -o plain\n"), 0o600))

	var out bytes.Buffer
	err := Execute(context.Background(), []string{"v", "--config", cfgFile},
		strings.NewReader(""), &out, io.Discard, testutil.NopLogger(), &slog.LevelVar{})
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out.String())
}

func TestCompletionCmd_NoConfigSideEffects(t *testing.T) {
	cfgFile := testutil.TempConfigFile(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, cfgFile, "completion", shell)
		require.NoError(t, err, shell)
		assert.NotEmpty(t, out, shell)
	}

	_, err := os.Stat(cfgFile)
	assert.True(t, os.IsNotExist(err), "completion must not create the config file")
}

func TestVerboseSetsDebugLevel(t *testing.T) {
	levelVar := &slog.LevelVar{}
	root := NewRootCmd(testutil.NopLogger(), levelVar)
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--config", testutil.TempConfigFile(t), "--verbose", "version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, slog.LevelDebug, levelVar.Level())
}

func TestConfigCmd_NullDocument(t *testing.T) {
	for _, doc := range []string{"---\n", "null\n", "~\n"} {
		t.Run(strings.TrimSpace(doc), func(t *testing.T) {
			cfgFile := testutil.TempConfigFile(t)
			require.NoError(t, os.WriteFile(cfgFile, []byte(doc), 0o600))

			_, err := execute(t, cfgFile, "config", "set", "output", "json")
			require.NoError(t, err)

			data, err := os.ReadFile(cfgFile)
			require.NoError(t, err)
			assert.Equal(t, "output: json\n", string(data))

			require.NoError(t, os.WriteFile(cfgFile, []byte(doc), 0o600))
			_, err = execute(t, cfgFile, "alias", "set", "v", "version")
			require.NoError(t, err)

			aliases, err := config.LoadAliases(cfgFile)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"v": "version"}, aliases)
		})
	}
}

func TestModuleResult_StripsANSI(t *testing.T) {
	r := moduleResult{Module: "example.com/\x1b[31mdep", Version: "1.0.0\x1b[2J"}

	var text, plain bytes.Buffer
	require.NoError(t, r.WriteText(&text))
	require.NoError(t, r.WritePlain(&plain))
	assert.Equal(t, "example.com/dep 1.0.0\n", text.String())
	assert.Equal(t, "1.0.0\n", plain.String())
}
