package refresh

import (
	"context"
	"log"
	"time"
)

// Schedule configures the per-job cadence. The warm delay staggers the first
// runs so the process is serving before the store warm-up starts.
type Schedule struct {
	WarmDelay    time.Duration
	VotesEvery   time.Duration
	BillsEvery   time.Duration
	MembersEvery time.Duration
}

func DefaultSchedule() Schedule {
	return Schedule{
		WarmDelay:    10 * time.Second,
		VotesEvery:   24 * time.Hour,
		BillsEvery:   24 * time.Hour,
		MembersEvery: 7 * 24 * time.Hour,
	}
}

// Scheduler runs each job once shortly after start, then on its cadence.
// Each job loops in one goroutine, so at most one run per job is ever in
// flight; a failed run just waits for the next tick.
type Scheduler struct {
	jobs     *Jobs
	schedule Schedule
}

func NewScheduler(jobs *Jobs, schedule Schedule) *Scheduler {
	return &Scheduler{jobs: jobs, schedule: schedule}
}

func (s *Scheduler) Run(ctx context.Context) {
	go s.loop(ctx, "votes", s.schedule.VotesEvery, s.jobs.RefreshVotes)
	go s.loop(ctx, "bills", s.schedule.BillsEvery, s.jobs.RefreshBills)
	go s.loop(ctx, "members", s.schedule.MembersEvery, s.jobs.RefreshMembers)
}

func (s *Scheduler) loop(ctx context.Context, name string, every time.Duration, job func(context.Context) error) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.schedule.WarmDelay):
	}

	runOnce(ctx, name, job)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler: %s loop stopping", name)
			return
		case <-ticker.C:
			runOnce(ctx, name, job)
		}
	}
}

func runOnce(ctx context.Context, name string, job func(context.Context) error) {
	if err := job(ctx); err != nil {
		log.Printf("scheduler: %s refresh failed: %v", name, err)
	}
}
