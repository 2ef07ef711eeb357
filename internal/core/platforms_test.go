package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildgate/internal/types"
)

func TestResolvePlatformBuiltin(t *testing.T) {
	tests := []struct {
		os        string
		moduleExt string
		libExt    string
		subdir    string
	}{
		{"linux", ".so", ".so", ".libs"},
		{"darwin", ".so", ".dylib", ".dylibs"},
		{"windows", ".pyd", ".dll", ".libs"},
	}
	for _, tt := range tests {
		profile, err := ResolvePlatform(types.Manifest{}, tt.os)
		require.NoError(t, err, tt.os)
		assert.Equal(t, tt.moduleExt, profile.ModuleExt)
		assert.Equal(t, tt.libExt, profile.SharedLibExt)
		assert.Equal(t, tt.subdir, profile.LibSubdir)
	}
}

func TestResolvePlatformCaseInsensitive(t *testing.T) {
	profile, err := ResolvePlatform(types.Manifest{}, "Darwin")
	require.NoError(t, err)
	assert.Equal(t, "darwin", profile.OS)
}

func TestResolvePlatformManifestOverride(t *testing.T) {
	manifest := types.Manifest{
		Platforms: []types.PlatformProfile{
			{OS: "linux", ModuleExt: ".cpython.so", SharedLibExt: ".so", LibSubdir: "lib"},
		},
	}
	profile, err := ResolvePlatform(manifest, "linux")
	require.NoError(t, err)
	assert.Equal(t, ".cpython.so", profile.ModuleExt)
}

func TestResolvePlatformUnknown(t *testing.T) {
	_, err := ResolvePlatform(types.Manifest{}, "beos")
	require.Error(t, err)
}

func TestResolvePlatformEmpty(t *testing.T) {
	_, err := ResolvePlatform(types.Manifest{}, "  ")
	require.Error(t, err)
}

func TestIsSystemLibraryWindows(t *testing.T) {
	profile, err := ResolvePlatform(types.Manifest{}, "windows")
	require.NoError(t, err)

	assert.True(t, profile.IsSystemLibrary("KERNEL32.dll"))
	assert.True(t, profile.IsSystemLibrary("api-ms-win-core-file-l1-2-0.dll"))
	assert.True(t, profile.IsSystemLibrary("VCRUNTIME140.dll"))
	assert.False(t, profile.IsSystemLibrary("vtkCommonCore-9.5.dll"))
}

func TestIsSystemLibraryLinuxHasNoPrefixes(t *testing.T) {
	profile, err := ResolvePlatform(types.Manifest{}, "linux")
	require.NoError(t, err)
	assert.False(t, profile.IsSystemLibrary("libc.so.6"))
}
