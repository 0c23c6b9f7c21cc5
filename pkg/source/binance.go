package source

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/volumeflow/cvd/pkg/types"
)

// binance caps the kline endpoint at 1000 entries per request
const maxKLineLimit = 1000

// BinanceSource backfills historical klines from the Binance REST API into a
// MemorySource so the indicator reads bar data synchronously.
type BinanceSource struct {
	client *binance.Client
}

func NewBinanceSource(client *binance.Client) *BinanceSource {
	return &BinanceSource{client: client}
}

func (s *BinanceSource) QueryKLines(ctx context.Context, symbol string, interval types.Interval, limit int) ([]types.KLine, error) {
	if limit > maxKLineLimit {
		limit = maxKLineLimit
	}

	log.Infof("querying kline %s %s limit %d", symbol, interval, limit)

	resp, err := s.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval.String()).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "binance klines %s %s", symbol, interval)
	}

	kLines := make([]types.KLine, 0, len(resp))
	for _, k := range resp {
		kLines = append(kLines, types.KLine{
			Symbol:         symbol,
			Interval:       interval,
			StartTime:      time.Unix(0, k.OpenTime*int64(time.Millisecond)),
			EndTime:        time.Unix(0, k.CloseTime*int64(time.Millisecond)),
			Open:           mustParseFloat(k.Open),
			Close:          mustParseFloat(k.Close),
			High:           mustParseFloat(k.High),
			Low:            mustParseFloat(k.Low),
			Volume:         mustParseFloat(k.Volume),
			NumberOfTrades: uint64(k.TradeNum),
			Closed:         true,
		})
	}

	return kLines, nil
}

// Backfill loads the native interval history plus enough of the source
// interval to cover the same time span.
func (s *BinanceSource) Backfill(ctx context.Context, symbol string, native, effective types.Interval, limit int) (*MemorySource, error) {
	mem := NewMemorySource()

	kLines, err := s.QueryKLines(ctx, symbol, native, limit)
	if err != nil {
		return nil, err
	}
	mem.SetKLines(native, kLines)

	if effective == native {
		return mem, nil
	}

	ratio := native.Minutes() / effective.Minutes()
	if ratio < 1 {
		ratio = 1
	}

	lower, err := s.QueryKLines(ctx, symbol, effective, limit*ratio)
	if err != nil {
		return nil, err
	}
	mem.SetKLines(effective, lower)

	return mem, nil
}

func mustParseFloat(s string) float64 {
	if s == "" {
		return 0.0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(errors.Wrapf(err, "could not parse float: %s", s))
	}

	return v
}
