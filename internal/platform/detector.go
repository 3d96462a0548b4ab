// Package platform identifies the host OS, CPU architecture, and whether the
// machine is an Apple Silicon Mac. Detection runs once; callers cache the
// resulting Profile for the life of the process.
package platform

import (
	"runtime"
	"strings"

	"go.uber.org/zap"
)

const (
	targetOS   = "darwin"
	targetArch = "arm64"

	brandSysctl  = "machdep.cpu.brand_string"
	vendorMarker = "apple"
)

// Profile describes the host platform as seen at detection time.
type Profile struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	AppleSilicon bool   `json:"appleSilicon"`
	// CPUBrand is the sysctl brand string when the fallback probe ran,
	// empty otherwise.
	CPUBrand string `json:"cpuBrand,omitempty"`
}

// String returns the GOOS/GOARCH pair, e.g. "darwin/arm64".
func (p Profile) String() string {
	return p.OS + "/" + p.Arch
}

// Detector resolves the host Profile.
type Detector struct {
	log    *zap.Logger
	run    CommandRunner
	goos   string
	goarch string
}

func NewDetector(log *zap.Logger, run CommandRunner) *Detector {
	return &Detector{
		log:    log,
		run:    run,
		goos:   runtime.GOOS,
		goarch: runtime.GOARCH,
	}
}

// newDetectorFor pins GOOS/GOARCH for tests.
func newDetectorFor(goos, goarch string, log *zap.Logger, run CommandRunner) *Detector {
	return &Detector{log: log, run: run, goos: goos, goarch: goarch}
}

// Detect resolves the host Profile. On darwin hosts whose reported
// architecture is not arm64 (e.g. an x86_64 process under Rosetta), it falls
// back to reading the CPU brand string via sysctl; the machine counts as
// Apple Silicon iff the brand names Apple. Probe failures are logged and
// treated as "not detected", never surfaced.
func (d *Detector) Detect() Profile {
	p := Profile{OS: d.goos, Arch: d.goarch}
	if d.goos != targetOS {
		return p
	}
	if d.goarch == targetArch {
		p.AppleSilicon = true
		return p
	}

	out, err := d.run("sysctl", "-n", brandSysctl)
	if err != nil {
		d.log.Debug("cpu brand probe failed", zap.Error(err))
		return p
	}
	p.CPUBrand = strings.TrimSpace(string(out))
	p.AppleSilicon = strings.Contains(strings.ToLower(p.CPUBrand), vendorMarker)
	return p
}
