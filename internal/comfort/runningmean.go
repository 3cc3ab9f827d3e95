package comfort

import (
	"sort"
	"time"
)

// runningMeanWeights are the EN 15251 exponential weights for the 1st
// through 7th day preceding the evaluation date.
var runningMeanWeights = [7]float64{1.0, 0.8, 0.6, 0.5, 0.4, 0.3, 0.2}

// RunningMean computes the exponentially weighted outdoor running-mean
// temperature θ_rm for the given evaluation date from a history of daily
// mean outdoor temperatures. Up to seven preceding calendar days are used;
// when fewer are available the normalizing constant is the sum of the
// weights actually applied, not the full 3.8.
//
// The first simulated day has no preceding days at all; its θ_rm is
// seeded from that day's own mean so a full-year run does not abort on
// day one. Only when the history covers neither the evaluation date nor
// any preceding day does the calculation fail with
// InsufficientHistoryError.
func RunningMean(history []DailyOutdoorTemp, date time.Time) (float64, error) {
	byDate := make(map[string]float64, len(history))
	for _, h := range history {
		byDate[dayKey(h.Date)] = h.MeanTemp
	}

	day := truncateDay(date)
	weightedSum := 0.0
	weightTotal := 0.0
	used := 0
	for back := 1; back <= len(runningMeanWeights); back++ {
		prev := day.AddDate(0, 0, -back)
		temp, ok := byDate[dayKey(prev)]
		if !ok {
			continue
		}
		w := runningMeanWeights[back-1]
		weightedSum += w * temp
		weightTotal += w
		used++
	}

	if used == 0 {
		if own, ok := byDate[dayKey(day)]; ok {
			return own, nil
		}
		return 0, &InsufficientHistoryError{Date: day, Available: 0}
	}
	return weightedSum / weightTotal, nil
}

// DailyMeans folds an hourly zone series into per-day mean outdoor dry-bulb
// temperatures, sorted by date. Together with the caller-supplied prior-day
// history this forms the running-mean input for each evaluation day.
func DailyMeans(records []HourlyRecord) []DailyOutdoorTemp {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	dates := make(map[string]time.Time)

	for _, r := range records {
		key := dayKey(r.Timestamp)
		sums[key] += r.OutdoorDryBulbTemp
		counts[key]++
		if _, ok := dates[key]; !ok {
			dates[key] = truncateDay(r.Timestamp)
		}
	}

	out := make([]DailyOutdoorTemp, 0, len(sums))
	for key, sum := range sums {
		out = append(out, DailyOutdoorTemp{
			Date:     dates[key],
			MeanTemp: sum / float64(counts[key]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
