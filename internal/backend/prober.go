// Package backend probes for accelerated ML compute backends: Metal
// Performance Shaders on Apple Silicon and CUDA as the discrete-GPU
// secondary. Probes run once at construction; results are immutable.
package backend

import (
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/platform"
)

// Prober holds the backend capabilities detected at construction time.
type Prober struct {
	log  *zap.Logger
	mps  Capability
	cuda Capability
}

// NewProber probes both backends. The MPS probe is skipped entirely on
// non-Apple-Silicon hosts; the CUDA probe runs regardless of architecture
// (discrete NVIDIA hardware can show up anywhere).
func NewProber(log *zap.Logger, profile platform.Profile, run platform.CommandRunner) *Prober {
	p := &Prober{log: log, mps: CapabilityAbsent}
	if profile.AppleSilicon {
		p.mps = probeMPS(log, run)
	}
	p.cuda = probeCUDA(log, run)
	log.Debug("backend probe complete",
		zap.Stringer("mps", p.mps),
		zap.Stringer("cuda", p.cuda))
	return p
}

// NewProberFromCapabilities builds a Prober with fixed results. Used by tests
// and by callers that have already probed.
func NewProberFromCapabilities(log *zap.Logger, mps, cuda Capability) *Prober {
	return &Prober{log: log, mps: mps, cuda: cuda}
}

// MPS reports the Metal Performance Shaders capability.
func (p *Prober) MPS() Capability { return p.mps }

// CUDA reports the CUDA capability.
func (p *Prober) CUDA() Capability { return p.cuda }

// MPSAvailable reports whether the accelerated backend is present and enabled.
func (p *Prober) MPSAvailable() bool { return p.mps.Available() }

// CUDAAvailable reports whether the secondary backend is present and enabled.
func (p *Prober) CUDAAvailable() bool { return p.cuda.Available() }
