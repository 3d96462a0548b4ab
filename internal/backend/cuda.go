package backend

import (
	"errors"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/platform"
)

// probeCUDA asks nvidia-smi for device names. A missing binary means the
// CUDA stack is absent; a present binary that errors or lists nothing means
// the stack is installed but no usable device is up.
func probeCUDA(log *zap.Logger, run platform.CommandRunner) Capability {
	out, err := run("nvidia-smi", "--query-gpu=name", "--format=csv,noheader")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return CapabilityAbsent
		}
		log.Debug("nvidia-smi probe failed", zap.Error(err))
		return CapabilityDisabled
	}
	if strings.TrimSpace(string(out)) == "" {
		return CapabilityDisabled
	}
	return CapabilityEnabled
}
