package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// RegisterDefaultJobs registers every job the application knows about.
func RegisterDefaultJobs(jm *JobManager) {
	jm.Register(TmpSweepJobID, "Temporary Download Sweep", RunTmpSweep)
}

// StartJobs starts the background job scheduler.
func StartJobs(app JobContext) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startTmpSweepJob(s, app)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
	return s
}

func startTmpSweepJob(s *gocron.Scheduler, app JobContext) {
	interval := app.Config().Downloads.TmpSweepInterval
	if interval == 0 {
		log.Println("Temporary download sweep interval is 0, scheduled sweep is disabled.")
		return
	}
	if app.Config().Downloads.TmpMaxAge <= 0 {
		log.Println("Temporary download max age is not positive, scheduled sweep is disabled.")
		return
	}

	log.Printf("Scheduling job: '%s' to run every %d minutes.", TmpSweepJobID, interval)

	_, err := s.Every(interval).Minutes().Do(func() {
		log.Println("Scheduler is triggering job:", TmpSweepJobID)
		// Submit the job to the manager instead of running it directly.
		// This prevents conflicts with manually triggered jobs.
		if err := app.JobManager().RunJob(TmpSweepJobID, app); err != nil {
			log.Printf("Scheduled job '%s' could not start: %v", TmpSweepJobID, err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling '%s' job: %v", TmpSweepJobID, err)
	}
}
