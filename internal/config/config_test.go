package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cgb: true\nboot_rom_path: boot.bin\nsave_dir: saves\n"), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.True(t, opts.CGB)
	assert.Equal(t, "boot.bin", opts.BootROMPath)
	assert.Equal(t, "saves", opts.SaveDir)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGameBoyOptionsWithoutBootROMReturnsEmpty(t *testing.T) {
	opts := Options{CGB: true}
	gbOpts, err := opts.GameBoyOptions()
	require.NoError(t, err)
	assert.Empty(t, gbOpts)
}

func TestGameBoyOptionsReadsBootROMFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 256), 0o644))

	opts := Options{BootROMPath: path}
	gbOpts, err := opts.GameBoyOptions()
	require.NoError(t, err)
	require.Len(t, gbOpts, 1)
}

func TestGameBoyOptionsMissingBootROMErrors(t *testing.T) {
	opts := Options{BootROMPath: filepath.Join(t.TempDir(), "missing.bin")}
	_, err := opts.GameBoyOptions()
	require.Error(t, err)
}

func TestCGBModeReflectsParsedFlag(t *testing.T) {
	assert.True(t, Options{CGB: true}.CGBMode())
	assert.False(t, Options{CGB: false}.CGBMode())
}
