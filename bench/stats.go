package bench

import (
	"slices"
	"time"
)

// PublisherStats holds per-publisher timing results.
type PublisherStats struct {
	// TotalTime is the wall time from CONNECT to the last publish.
	TotalTime time.Duration

	// Deltas holds the time spent encoding and writing each message,
	// excluding pacing sleeps.
	Deltas []time.Duration
}

// SubscriberStats holds per-subscriber timing results.
type SubscriberStats struct {
	// TotalTime is the wall time spent receiving.
	TotalTime time.Duration

	// Deltas holds the time between consecutive received messages.
	Deltas []time.Duration

	// TripTimes holds per-message broker trip times, computed from the
	// timestamp each publisher embeds in the payload.
	TripTimes []time.Duration
}

// Report aggregates the results of a benchmark run.
type Report struct {
	// DepartureRate is the mean publish rate in packets per second per
	// publisher.
	DepartureRate float64

	// ArrivalRate is the mean receive rate in packets per second per
	// subscriber.
	ArrivalRate float64

	// TripTimes holds every observed trip time, sorted ascending.
	TripTimes []time.Duration

	Publishers  []PublisherStats
	Subscribers []SubscriberStats
}

// Min returns the smallest observed trip time.
func (r *Report) Min() time.Duration {
	if len(r.TripTimes) == 0 {
		return 0
	}
	return r.TripTimes[0]
}

// Max returns the largest observed trip time.
func (r *Report) Max() time.Duration {
	if len(r.TripTimes) == 0 {
		return 0
	}
	return r.TripTimes[len(r.TripTimes)-1]
}

// Percentile returns the p-th percentile trip time, p in [0, 100].
func (r *Report) Percentile(p int) time.Duration {
	if len(r.TripTimes) == 0 {
		return 0
	}
	idx := len(r.TripTimes) * p / 100
	if idx >= len(r.TripTimes) {
		idx = len(r.TripTimes) - 1
	}
	return r.TripTimes[idx]
}

// Mean returns the mean trip time.
func (r *Report) Mean() time.Duration {
	if len(r.TripTimes) == 0 {
		return 0
	}
	var total time.Duration
	for _, t := range r.TripTimes {
		total += t
	}
	return total / time.Duration(len(r.TripTimes))
}

func buildReport(cfg *Config, pubs []PublisherStats, subs []SubscriberStats) *Report {
	report := &Report{
		Publishers:  pubs,
		Subscribers: subs,
	}

	for _, p := range pubs {
		var busy time.Duration
		for _, d := range p.Deltas {
			busy += d
		}
		if busy > 0 {
			report.DepartureRate += float64(cfg.Messages) / busy.Seconds()
		}
	}
	report.DepartureRate /= float64(cfg.Publishers)

	expected := cfg.Publishers * cfg.Messages
	for _, s := range subs {
		var busy time.Duration
		for _, d := range s.Deltas {
			busy += d
		}
		if busy > 0 {
			report.ArrivalRate += float64(expected) / busy.Seconds()
		}
		report.TripTimes = append(report.TripTimes, s.TripTimes...)
	}
	report.ArrivalRate /= float64(cfg.Subscribers)

	slices.Sort(report.TripTimes)
	return report
}
