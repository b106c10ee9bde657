package daemon

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/avismetric/metric/pkg/api"
	"github.com/avismetric/metric/pkg/config"
)

// StatsReporter logs daemon activity on a cron schedule.
type StatsReporter struct {
	cron     *cron.Cron
	schedule string
}

// NewStatsReporter returns a stopped reporter. Call Reschedule to give it a
// schedule.
func NewStatsReporter() *StatsReporter {
	return &StatsReporter{
		cron: cron.New(cron.WithParser(config.ScheduleParser)),
	}
}

// Reschedule replaces the current schedule. An empty schedule stops reports.
func (r *StatsReporter) Reschedule(schedule string) error {
	if schedule == r.schedule {
		return nil
	}

	for _, e := range r.cron.Entries() {
		r.cron.Remove(e.ID)
	}
	r.schedule = ""

	if schedule == "" {
		logrus.Debug("stats report disabled")
		return nil
	}

	if _, err := r.cron.AddFunc(schedule, reportStats); err != nil {
		return err
	}
	r.schedule = schedule
	r.cron.Start()

	logrus.WithField("schedule", schedule).Info("stats report scheduled")
	return nil
}

// Next is the time of the next report, or zero if none is scheduled.
func (r *StatsReporter) Next() time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop waits for a running report to finish.
func (r *StatsReporter) Stop() {
	<-r.cron.Stop().Done()
}

func collectStats() api.Stats {
	stats := api.Stats{
		ConversionsLastMinute: completed.GetRecordsIn(time.Minute),
		RejectionsLastMinute:  rejected.GetRecordsIn(time.Minute),
	}
	if hub != nil {
		stats.Subscribers = hub.Subscribers()
	}
	if last := completed.GetLastRecord(); !last.IsZero() {
		stats.LastConversion = &last
	}
	return stats
}

func reportStats() {
	stats := collectStats()
	fields := logrus.Fields{
		"conversions": stats.ConversionsLastMinute,
		"rejections":  stats.RejectionsLastMinute,
		"subscribers": stats.Subscribers,
	}
	if stats.LastConversion != nil {
		fields["lastConversion"] = stats.LastConversion.Format(time.RFC3339)
	}
	logrus.WithFields(fields).Info("conversion activity in the last minute")
}
