package types

import "strings"

// PlatformProfile carries the per-OS file naming conventions a bundled
// build needs: the suffix of compiled extension modules, the suffix of
// shared libraries, and the subdirectory native libraries are bundled
// into. SystemLibPrefixes lists library name prefixes that belong to
// the OS and must never be bundled.
type PlatformProfile struct {
	OS                string   `yaml:"os"`
	ModuleExt         string   `yaml:"module_ext"`
	SharedLibExt      string   `yaml:"shared_lib_ext"`
	LibSubdir         string   `yaml:"lib_subdir"`
	SystemLibPrefixes []string `yaml:"system_lib_prefixes,omitempty"`
}

// IsSystemLibrary reports whether the named library is owned by the
// operating system and should be excluded from bundling.
func (p PlatformProfile) IsSystemLibrary(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range p.SystemLibPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// windowsSystemPrefixes lists DLL name prefixes shipped with Windows
// or the MSVC runtime.
var windowsSystemPrefixes = []string{
	"api-ms-", "ext-ms-", "kernel32", "kernelbase", "ntdll", "user32",
	"gdi32", "advapi32", "shell32", "ole32", "oleaut32", "msvcrt",
	"ucrtbase", "vcruntime", "msvcp", "combase", "sechost", "rpcrt4",
	"bcrypt", "cfgmgr32", "crypt32", "ws2_32", "winspool", "comdlg32",
	"shlwapi", "setupapi", "imm32", "version", "winmm", "iphlpapi",
	"userenv", "dbghelp", "mswsock", "opengl32", "python3",
}

// BuiltinPlatforms returns the default per-OS conventions. Manifest
// platform entries override these per OS name.
func BuiltinPlatforms() []PlatformProfile {
	return []PlatformProfile{
		{
			OS:           "darwin",
			ModuleExt:    ".so",
			SharedLibExt: ".dylib",
			LibSubdir:    ".dylibs",
		},
		{
			OS:           "linux",
			ModuleExt:    ".so",
			SharedLibExt: ".so",
			LibSubdir:    ".libs",
		},
		{
			OS:                "windows",
			ModuleExt:         ".pyd",
			SharedLibExt:      ".dll",
			LibSubdir:         ".libs",
			SystemLibPrefixes: windowsSystemPrefixes,
		},
	}
}
