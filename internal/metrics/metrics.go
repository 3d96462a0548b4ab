package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppleSiliconDetected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "silicon_apple_silicon_detected",
		Help: "1 if the host was detected as Apple Silicon, 0 otherwise",
	})

	MPSAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "silicon_mps_available",
		Help: "1 if the Metal Performance Shaders backend is available",
	})

	CUDAAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "silicon_cuda_available",
		Help: "1 if a CUDA device is available",
	})

	TotalMemoryGB = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "silicon_total_memory_gb",
		Help: "Total system memory in whole GB (0 if the probe failed)",
	})

	AvailableMemoryGB = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "silicon_available_memory_gb",
		Help: "Available system memory in whole GB (0 if the probe failed)",
	})

	RecommendedBatchSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "silicon_recommended_batch_size",
		Help: "Batch size recommended for the current memory configuration",
	})

	DeviceSelected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "silicon_device_selected_total",
		Help: "Total device recommendations served, by device",
	}, []string{"device"})
)

// BoolValue converts a detection flag for gauge export.
func BoolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
