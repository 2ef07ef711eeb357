package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildgate/internal/types"
)

// ResolvePlatform picks the file naming conventions for the target OS.
// Manifest platform entries override the built-in defaults per OS name.
func ResolvePlatform(manifest types.Manifest, targetOS string) (types.PlatformProfile, error) {
	name := strings.ToLower(strings.TrimSpace(targetOS))
	if name == "" {
		return types.PlatformProfile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("target OS is required")
	}
	for _, profile := range manifest.Platforms {
		if strings.ToLower(profile.OS) == name {
			return profile, nil
		}
	}
	for _, profile := range types.BuiltinPlatforms() {
		if profile.OS == name {
			return profile, nil
		}
	}
	return types.PlatformProfile{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unsupported target OS: %s", targetOS))
}
