package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	rootCmd.SetIn(nil)
	rootCmd.SetOut(nil)
	for _, f := range []*pflag.Flag{
		rootCmd.PersistentFlags().Lookup("config"),
		playCmd.Flags().Lookup("width"),
		playCmd.Flags().Lookup("height"),
		playCmd.Flags().Lookup("mines"),
		playCmd.Flags().Lookup("seed"),
		playCmd.Flags().Lookup("sweep-delay"),
		playCmd.Flags().Lookup("no-color"),
	} {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mines "), out)
}

func TestPlayCommandForfeit(t *testing.T) {
	out, err := execute(t, "g\nr\n", "play", "-W", "5", "-H", "4", "-m", "3", "--seed", "9", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "mines: 3  flags: 0  state: fresh")
	assert.Contains(t, out, "Boom! Game over.")
}

func TestPlayCommandSeedIsReproducible(t *testing.T) {
	args := []string{"play", "-W", "8", "-H", "8", "-m", "10", "--seed", "5", "--no-color"}
	first, err := execute(t, "o 4 4\nq\n", args...)
	require.NoError(t, err)
	second, err := execute(t, "o 4 4\nq\n", args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlayCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.yaml")
	logFile := filepath.Join(t.TempDir(), "mines.log")
	data := "board:\n  width: 4\n  height: 4\n  mines: 2\nlog:\n  file: " + logFile + "\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	out, err := execute(t, "q\n", "play", "-c", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "mines: 2  flags: 0")

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "new game")

	_, err = execute(t, "", "play", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "", "play", "-W", "2", "-H", "2", "-m", "4")
	assert.Error(t, err)
}
