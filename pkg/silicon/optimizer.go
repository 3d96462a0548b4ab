// Package silicon is the public entry point for Apple Silicon detection and
// inference-settings advice. Construct an Optimizer explicitly with New;
// nothing probes at package load time, so startup cost and test behavior
// stay predictable.
package silicon

import (
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/advisor"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/backend"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/config"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/envtune"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/memory"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/platform"
)

// Optimizer bundles the platform detector, backend prober, memory prober,
// and settings advisor behind one instance. The platform profile and backend
// capabilities are probed once at construction and never change; memory and
// recommendations are recomputed on every call.
type Optimizer struct {
	log      *zap.Logger
	cfg      *config.Config
	profile  platform.Profile
	backends *backend.Prober
	mem      advisor.MemoryReader
	advisor  *advisor.Advisor
	tuner    *envtune.Tuner
}

// Option adjusts Optimizer construction.
type Option func(*options)

type options struct {
	cfg *config.Config
}

// WithConfig overrides the built-in defaults.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// New probes the host and returns a ready Optimizer.
func New(log *zap.Logger, opts ...Option) *Optimizer {
	o := &options{cfg: config.Default()}
	for _, opt := range opts {
		opt(o)
	}
	cfg := o.cfg

	run := platform.NewRunner(cfg.Probe.Timeout)
	profile := platform.NewDetector(log.Named("platform"), run).Detect()
	backends := backend.NewProber(log.Named("backend"), profile, run)
	mem := memory.NewProber(log.Named("memory"), run)

	return &Optimizer{
		log:      log,
		cfg:      cfg,
		profile:  profile,
		backends: backends,
		mem:      mem,
		advisor:  advisor.New(log.Named("advisor"), profile.AppleSilicon, backends, mem, cfg.Advisor),
		tuner:    envtune.New(log.Named("envtune"), profile.AppleSilicon),
	}
}

// IsAppleSilicon reports whether the host is an Apple Silicon Mac.
func (o *Optimizer) IsAppleSilicon() bool {
	return o.profile.AppleSilicon
}

// Profile returns the immutable platform profile.
func (o *Optimizer) Profile() platform.Profile {
	return o.profile
}

// OptimalDevice picks the compute device for inference.
func (o *Optimizer) OptimalDevice(preferAccelerated bool) advisor.Device {
	return o.advisor.OptimalDevice(preferAccelerated)
}

// RecommendedSettings derives the full settings table from current memory.
func (o *Optimizer) RecommendedSettings() advisor.Settings {
	return o.advisor.Recommend()
}

// MemoryInfo reads current memory; fields are nil when probing failed.
func (o *Optimizer) MemoryInfo() memory.Info {
	return o.mem.Read()
}

// ApplyOptimizations writes the tuning environment variables. Call it once,
// early, before the ML runtime initializes; it is a no-op off Apple Silicon.
func (o *Optimizer) ApplyOptimizations() []envtune.Setting {
	return o.tuner.Apply()
}

// Report assembles everything a caller or operator wants to see in one shot.
func (o *Optimizer) Report() Report {
	return Report{
		Platform:      o.profile.String(),
		Arch:          o.profile.Arch,
		CPUBrand:      o.profile.CPUBrand,
		AppleSilicon:  o.profile.AppleSilicon,
		MPS:           o.backends.MPS(),
		CUDA:          o.backends.CUDA(),
		OptimalDevice: o.OptimalDevice(true),
		Memory:        o.mem.Read(),
		Settings:      o.advisor.Recommend(),
	}
}

// Report is a point-in-time snapshot of detection results and advice.
type Report struct {
	Platform      string             `json:"platform"`
	Arch          string             `json:"arch"`
	CPUBrand      string             `json:"cpuBrand,omitempty"`
	AppleSilicon  bool               `json:"appleSilicon"`
	MPS           backend.Capability `json:"mpsCapability"`
	CUDA          backend.Capability `json:"cudaCapability"`
	OptimalDevice advisor.Device     `json:"optimalDevice"`
	Memory        memory.Info        `json:"memory"`
	Settings      advisor.Settings   `json:"settings"`
}
