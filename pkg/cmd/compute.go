package cmd

import (
	"context"
	"os"

	"github.com/adshao/go-binance/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/volumeflow/cvd/pkg/indicator"
	"github.com/volumeflow/cvd/pkg/source"
	"github.com/volumeflow/cvd/pkg/types"
)

// go run ./cmd/cvd compute --symbol=BTCUSDT --interval=1h --source-interval=5m --window=20 --smooth=ema --smooth-window=9 --volume=volume
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "compute the cumulative volume delta series over historical bars",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return err
		}
		if symbol == "" {
			return errors.New("--symbol option is required")
		}

		intervalStr, err := cmd.Flags().GetString("interval")
		if err != nil {
			return err
		}
		native, err := types.ParseInterval(intervalStr)
		if err != nil {
			return err
		}

		sourceIntervalStr, err := cmd.Flags().GetString("source-interval")
		if err != nil {
			return err
		}
		var sourceInterval types.Interval
		if sourceIntervalStr != "" {
			sourceInterval, err = types.ParseInterval(sourceIntervalStr)
			if err != nil {
				return err
			}
		}

		window, err := cmd.Flags().GetInt("window")
		if err != nil {
			return err
		}

		smoothStr, err := cmd.Flags().GetString("smooth")
		if err != nil {
			return err
		}
		smoothMethod, err := indicator.ParseSmoothMethod(smoothStr)
		if err != nil {
			return err
		}

		smoothWindow, err := cmd.Flags().GetInt("smooth-window")
		if err != nil {
			return err
		}

		volumeStr, err := cmd.Flags().GetString("volume")
		if err != nil {
			return err
		}
		volumeSource, err := indicator.ParseVolumeSource(volumeStr)
		if err != nil {
			return err
		}

		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		rows, err := cmd.Flags().GetInt("rows")
		if err != nil {
			return err
		}

		csvFile, err := cmd.Flags().GetString("csv")
		if err != nil {
			return err
		}

		cfg := indicator.Config{
			SourceInterval: sourceInterval,
			Window:         window,
			SmoothMethod:   smoothMethod,
			SmoothWindow:   smoothWindow,
			VolumeSource:   volumeSource,
		}

		var barSource *source.MemorySource
		if csvFile != "" {
			if sourceInterval != "" && sourceInterval != native {
				return errors.New("a csv file provides a single interval, --source-interval must match --interval")
			}

			kLines, err := source.ReadKLines(csvFile, symbol, native)
			if err != nil {
				return err
			}

			barSource = source.NewMemorySource()
			barSource.SetKLines(native, kLines)
		} else {
			effective := indicator.ResolveSourceInterval(sourceInterval, native)
			bn := source.NewBinanceSource(binance.NewClient("", ""))
			barSource, err = bn.Backfill(ctx, symbol, native, effective, limit)
			if err != nil {
				return err
			}
		}

		cvd, err := indicator.New(barSource, symbol, native, cfg)
		if err != nil {
			return err
		}

		cvd.Compute()
		log.Infof("computed %d bars on %s, source interval %s", cvd.Length(), native, cvd.EffectiveSourceInterval())

		renderSeries(barSource, native, cvd, rows)
		return nil
	},
}

func renderSeries(barSource *source.MemorySource, interval types.Interval, cvd *indicator.CVD, rows int) {
	if rows > cvd.Length() {
		rows = cvd.Length()
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Time", "Close", "Delta", "CVD", "Smoothed", "Positive", "Negative"})

	// newest rows last, oldest of the requested range first
	for i := rows - 1; i >= 0; i-- {
		k, ok := barSource.Bar(interval, i)
		if !ok {
			continue
		}

		t.AppendRow(table.Row{
			k.StartTime.Format("2006-01-02 15:04"),
			k.Close,
			cvd.Delta.Index(i),
			cvd.Raw.Index(i),
			cvd.Smoothed.Index(i),
			cvd.Positive.Index(i),
			cvd.Negative.Index(i),
		})
	}

	t.Render()
}

func init() {
	computeCmd.Flags().String("symbol", "", "symbol, BTCUSDT for example")
	computeCmd.Flags().String("interval", "1h", "chart interval")
	computeCmd.Flags().String("source-interval", "", "interval sampled for delta estimation, defaults to the chart interval")
	computeCmd.Flags().Int("window", 20, "rolling window of the cumulative delta sum")
	computeCmd.Flags().String("smooth", "none", "smoothing method: none, sma or ema")
	computeCmd.Flags().Int("smooth-window", 1, "smoothing window")
	computeCmd.Flags().String("volume", "ticks", "volume source: ticks (trade count) or volume (traded base volume)")
	computeCmd.Flags().Int("limit", 500, "number of chart bars to load")
	computeCmd.Flags().Int("rows", 30, "number of rows to print")
	computeCmd.Flags().String("csv", "", "load bars from a csv file instead of binance")

	RootCmd.AddCommand(computeCmd)
}
