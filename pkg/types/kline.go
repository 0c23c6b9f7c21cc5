package types

import (
	"fmt"
	"time"
)

// KLine uses binance's kline as the standard structure
type KLine struct {
	Symbol string `json:"symbol"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	Interval Interval `json:"interval"`

	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`

	NumberOfTrades uint64 `json:"numberOfTrades"`
	Closed         bool   `json:"closed"`
}

func (k KLine) GetStartTime() time.Time {
	return k.StartTime
}

// Range returns the high-low distance of the kline. A zero range means the
// price did not move within the bar.
func (k KLine) Range() float64 {
	return k.High - k.Low
}

func (k KLine) String() string {
	return fmt.Sprintf("%s %s %s Open: %.8f Close: %.8f High: %.8f Low: %.8f Volume: %.8f",
		k.Symbol, k.Interval, k.StartTime.Format("2006-01-02 15:04"), k.Open, k.Close, k.High, k.Low, k.Volume)
}
