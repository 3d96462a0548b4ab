//go:build !darwin

package backend

import (
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/platform"
)

// probeMPS is a stub off darwin: Metal support is never compiled in.
func probeMPS(log *zap.Logger, run platform.CommandRunner) Capability {
	return CapabilityAbsent
}
