package metrics

import (
	"math"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// UsageSnapshot summarizes process-wide counters for the stats endpoint.
type UsageSnapshot struct {
	Generations      map[string]int64 `json:"generations"`
	GenerationP95Ms  float64          `json:"generation_p95_ms"`
	ValidationsValid int64            `json:"validations_valid"`
	ValidationsError int64            `json:"validations_invalid"`
	TestCalls        map[string]int64 `json:"test_calls"`
	TestEmails       map[string]int64 `json:"test_emails"`
}

// Snapshot reads the gatherer and folds the nemo families into a UsageSnapshot.
// Gather errors yield an empty snapshot.
func Snapshot(gatherer prometheus.Gatherer) UsageSnapshot {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	snap := UsageSnapshot{
		Generations: map[string]int64{},
		TestCalls:   map[string]int64{},
		TestEmails:  map[string]int64{},
	}
	mfs, err := gatherer.Gather()
	if err != nil {
		return snap
	}

	for _, mf := range mfs {
		if mf == nil {
			continue
		}
		switch mf.GetName() {
		case generationsFamily:
			sumCounterBy(mf, "generator", snap.Generations)
		case testCallsFamily:
			sumCounterBy(mf, "status", snap.TestCalls)
		case testEmailsFamily:
			sumCounterBy(mf, "status", snap.TestEmails)
		case validationsFamily:
			for _, metric := range mf.Metric {
				if metric == nil || metric.GetCounter() == nil {
					continue
				}
				n := int64(metric.GetCounter().GetValue())
				if labelValue(metric, "valid") == "true" {
					snap.ValidationsValid += n
				} else {
					snap.ValidationsError += n
				}
			}
		case latencyFamily:
			snap.GenerationP95Ms = histogramP95(mf) * 1000.0
		}
	}
	return snap
}

func sumCounterBy(mf *dto.MetricFamily, label string, into map[string]int64) {
	for _, metric := range mf.Metric {
		if metric == nil || metric.GetCounter() == nil {
			continue
		}
		into[labelValue(metric, label)] += int64(metric.GetCounter().GetValue())
	}
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.Label {
		if lp != nil && lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// histogramP95 merges every series of the family and interpolates the 95th percentile.
func histogramP95(mf *dto.MetricFamily) float64 {
	cumulativeByUpper := map[float64]uint64{}
	var total uint64
	for _, metric := range mf.Metric {
		if metric == nil {
			continue
		}
		h := metric.GetHistogram()
		if h == nil {
			continue
		}
		total += h.GetSampleCount()
		for _, b := range h.Bucket {
			if b != nil {
				cumulativeByUpper[b.GetUpperBound()] += b.GetCumulativeCount()
			}
		}
	}
	if total == 0 || len(cumulativeByUpper) == 0 {
		return 0
	}

	uppers := make([]float64, 0, len(cumulativeByUpper))
	for upper := range cumulativeByUpper {
		uppers = append(uppers, upper)
	}
	sort.Float64s(uppers)
	return histogramQuantile(0.95, total, uppers, cumulativeByUpper)
}

func histogramQuantile(q float64, total uint64, uppers []float64, cumulativeByUpper map[float64]uint64) float64 {
	target := q * float64(total)
	var prevUpper, prevCum float64
	for _, upper := range uppers {
		cum := float64(cumulativeByUpper[upper])
		if cum < target {
			prevUpper = upper
			prevCum = cum
			continue
		}
		bucketCount := cum - prevCum
		if bucketCount <= 0 || upper == prevUpper {
			return upper
		}
		if math.IsInf(upper, 1) {
			// Samples beyond the last finite bucket report its bound.
			return prevUpper
		}
		fraction := math.Min(math.Max((target-prevCum)/bucketCount, 0), 1)
		return prevUpper + fraction*(upper-prevUpper)
	}
	// Prometheus omits the +Inf bucket from dto output, so overflow lands here.
	return uppers[len(uppers)-1]
}
