package source

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/volumeflow/cvd/pkg/types"
)

// ReadKLines loads bars from a csv file for offline runs. Records are
//
//	openTimeMillis,open,high,low,close,volume[,trades]
//
// ordered by ascending open time. A header line is skipped when the first
// field is not numeric.
func ReadKLines(path, symbol string, interval types.Interval) ([]types.KLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open csv file %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read csv file %s", path)
	}

	var kLines []types.KLine
	for n, record := range records {
		if len(record) < 6 {
			return nil, errors.Errorf("%s: record %d has %d fields, want at least 6", path, n+1, len(record))
		}

		openTime, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			if n == 0 {
				// header line
				continue
			}
			return nil, errors.Wrapf(err, "%s: record %d open time", path, n+1)
		}

		fields := make([]float64, 5)
		for x := 0; x < 5; x++ {
			fields[x], err = strconv.ParseFloat(record[x+1], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: record %d field %d", path, n+1, x+1)
			}
		}

		var trades uint64
		if len(record) > 6 {
			trades, err = strconv.ParseUint(record[6], 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: record %d trades", path, n+1)
			}
		}

		startTime := time.Unix(0, openTime*int64(time.Millisecond))
		kLines = append(kLines, types.KLine{
			Symbol:         symbol,
			Interval:       interval,
			StartTime:      startTime,
			EndTime:        startTime.Add(interval.Duration()),
			Open:           fields[0],
			High:           fields[1],
			Low:            fields[2],
			Close:          fields[3],
			Volume:         fields[4],
			NumberOfTrades: trades,
			Closed:         true,
		})
	}

	return kLines, nil
}
