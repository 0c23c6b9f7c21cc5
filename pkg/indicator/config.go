package indicator

import (
	"github.com/pkg/errors"

	"github.com/volumeflow/cvd/pkg/types"
)

// VolumeSource selects which volume figure feeds the delta estimation.
type VolumeSource string

const (
	// VolumeSourceTicks uses the bar's trade count as a volume proxy.
	VolumeSourceTicks = VolumeSource("ticks")

	// VolumeSourceTraded uses the bar's traded base volume.
	VolumeSourceTraded = VolumeSource("volume")
)

func ParseVolumeSource(s string) (VolumeSource, error) {
	switch VolumeSource(s) {
	case VolumeSourceTicks, VolumeSourceTraded:
		return VolumeSource(s), nil
	case "":
		return VolumeSourceTicks, nil
	}

	return "", errors.Errorf("invalid volume source: %s", s)
}

// Config holds the indicator inputs. All fields are immutable after setup.
type Config struct {
	// SourceInterval is the interval sampled for delta estimation. Empty
	// means the chart's native interval. A coarser interval silently falls
	// back to the native one.
	SourceInterval types.Interval `json:"sourceInterval"`

	// Window is the rolling window size of the cumulative delta sum.
	Window int `json:"window"`

	SmoothMethod SmoothMethod `json:"smoothMethod"`
	SmoothWindow int          `json:"smoothWindow"`

	VolumeSource VolumeSource `json:"volumeSource"`
}

// Defaults fills the optional fields. An unset smooth window defaults to 1,
// which behaves as no smoothing.
func (c *Config) Defaults() {
	if c.SmoothMethod == "" {
		c.SmoothMethod = SmoothNone
	}

	if c.SmoothWindow == 0 {
		c.SmoothWindow = 1
	}

	if c.VolumeSource == "" {
		c.VolumeSource = VolumeSourceTicks
	}
}

// Validate fails fast on invalid inputs so the indicator refuses to
// activate before the first computation.
func (c *Config) Validate() error {
	if c.Window < 1 {
		return errors.Errorf("cumulative window must be >= 1, got %d", c.Window)
	}

	switch c.SmoothMethod {
	case SmoothNone, SmoothSMA, SmoothEMA:
	default:
		return errors.Errorf("invalid smooth method: %s", c.SmoothMethod)
	}

	if c.SmoothMethod != SmoothNone && c.SmoothWindow < 1 {
		return errors.Errorf("smooth window must be >= 1 when smoothing is enabled, got %d", c.SmoothWindow)
	}

	switch c.VolumeSource {
	case VolumeSourceTicks, VolumeSourceTraded:
	default:
		return errors.Errorf("invalid volume source: %s", c.VolumeSource)
	}

	return nil
}
