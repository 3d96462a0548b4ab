package main

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"

	"github.com/ajeetraina/Ace-Step-v1.5/pkg/silicon"
)

const rule = "=================================================="

// printReport renders the human-readable system report.
func printReport(w io.Writer, r silicon.Report) {
	banner := figure.NewFigure("Silicon", "", true)
	fmt.Fprintln(w, banner.String())
	fmt.Fprintln(w, "Apple Silicon ARM64 System Information")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Platform: %s\n", r.Platform)
	fmt.Fprintf(w, "Architecture: %s\n", r.Arch)
	if r.CPUBrand != "" {
		fmt.Fprintf(w, "CPU: %s\n", r.CPUBrand)
	}
	fmt.Fprintf(w, "Apple Silicon Detected: %t\n", r.AppleSilicon)
	fmt.Fprintf(w, "MPS Backend: %s\n", r.MPS)
	fmt.Fprintf(w, "CUDA Backend: %s\n", r.CUDA)
	fmt.Fprintf(w, "Optimal Device: %s\n", r.OptimalDevice)
	if r.Memory.TotalGB != nil {
		fmt.Fprintf(w, "Total Memory: %d GB\n", *r.Memory.TotalGB)
	}
	if r.Memory.AvailableGB != nil {
		fmt.Fprintf(w, "Available Memory: %d GB\n", *r.Memory.AvailableGB)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Recommended Settings:")
	fmt.Fprintf(w, "  device: %s\n", r.Settings.Device)
	fmt.Fprintf(w, "  offload_to_cpu: %t\n", r.Settings.OffloadToCPU)
	fmt.Fprintf(w, "  offload_dit_to_cpu: %t\n", r.Settings.OffloadDiTToCPU)
	fmt.Fprintf(w, "  use_flash_attention: %t\n", r.Settings.UseFlashAttention)
	fmt.Fprintf(w, "  backend: %s\n", r.Settings.Backend)
	fmt.Fprintf(w, "  batch_size: %d\n", r.Settings.BatchSize)
	fmt.Fprintf(w, "  precision: %s\n", r.Settings.Precision)
	fmt.Fprintln(w, rule)
}
