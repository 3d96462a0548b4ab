//go:build darwin

package backend

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/platform"
)

// probeMPS checks for a Metal-capable GPU via system_profiler. Every Apple
// Silicon Mac ships one, so Disabled here points at a broken install rather
// than missing hardware.
func probeMPS(log *zap.Logger, run platform.CommandRunner) Capability {
	out, err := run("system_profiler", "SPDisplaysDataType")
	if err != nil {
		log.Debug("system_profiler probe failed", zap.Error(err))
		return CapabilityAbsent
	}
	if strings.Contains(string(out), "Metal") {
		return CapabilityEnabled
	}
	return CapabilityDisabled
}
