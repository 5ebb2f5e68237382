package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/draftloom/manuscript/internal/config"
	"github.com/draftloom/manuscript/internal/jobs"
	"github.com/draftloom/manuscript/internal/store"
)

func init() {
	rootCmd.AddCommand(jobsCmd())
}

func jobsCmd() *cobra.Command {
	var retention time.Duration
	var schedule string
	var once bool

	command := &cobra.Command{
		Use:   "jobs",
		Short: "Run the local maintenance jobs",
		Run: func(cmd *cobra.Command, args []string) {
			local := store.NewGormStore(config.GetLocalDB(config.LoadConfig()))
			cleaner := jobs.NewSnapshotCleaner(local, retention, schedule)

			if once {
				cleaner.Run()
				return
			}

			executor := jobs.NewTaskExecutor([]jobs.CronJob{cleaner})
			executor.Run()
			defer executor.Stop()

			logrus.Infof("maintenance jobs running on schedule %q", schedule)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
		},
	}

	command.Flags().DurationVarP(&retention, "retention", "r", 14*24*time.Hour, "how long pre-overwrite snapshots are kept")
	command.Flags().StringVarP(&schedule, "schedule", "s", "0 0 3 * * *", "cron schedule for the snapshot cleaner")
	command.Flags().BoolVarP(&once, "once", "o", false, "run every job once and exit")
	command.Flags().SortFlags = false

	return command
}
