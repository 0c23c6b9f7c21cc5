package indicator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

var (
	metricsDeltaVolume = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cvd_delta_volume",
			Help: "most recent per-bar signed delta volume",
		}, []string{"symbol", "interval"},
	)

	metricsCumulativeDelta = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cvd_cumulative_delta",
			Help: "most recent rolling-window cumulative delta",
		}, []string{"symbol", "interval"},
	)

	metricsSmoothedDelta = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cvd_smoothed_delta",
			Help: "most recent smoothed cumulative delta",
		}, []string{"symbol", "interval"},
	)
)

func init() {
	prometheus.MustRegister(
		metricsDeltaVolume,
		metricsCumulativeDelta,
		metricsSmoothedDelta,
	)
}

func (inc *CVD) updateMetrics() {
	if !viper.GetBool("metrics") {
		return
	}

	labels := prometheus.Labels{
		"symbol":   inc.symbol,
		"interval": inc.native.String(),
	}

	metricsDeltaVolume.With(labels).Set(inc.Delta.Last())
	metricsCumulativeDelta.With(labels).Set(inc.Raw.Last())
	metricsSmoothedDelta.With(labels).Set(inc.Smoothed.Last())
}
