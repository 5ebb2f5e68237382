package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/draftloom/manuscript/internal/cache"
	"github.com/draftloom/manuscript/internal/config"
	"github.com/draftloom/manuscript/internal/queue"
	"github.com/draftloom/manuscript/internal/store"
	syncengine "github.com/draftloom/manuscript/internal/sync"
)

func init() {
	rootCmd.AddCommand(syncCmd())
}

func statusCache(cnf *config.Config) *cache.StatusCache {
	if cnf.RedisAddr == "" {
		return nil
	}
	return cache.NewStatusCache(cnf.RedisAddr)
}

func syncCmd() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "sync",
		Short: "Run a full pull-then-push sync",
		Run: func(cmd *cobra.Command, args []string) {
			userID = resolveUser(userID)
			if userID == "" {
				logrus.Error("user id is required")
				return
			}

			cnf := config.LoadConfig()
			local := store.NewGormStore(config.GetLocalDB(cnf))
			remote := store.NewGormRemote(config.GetRemoteDB(cnf))
			engine := syncengine.NewEngine(local, remote, queue.New(local), statusCache(cnf))

			summary := engine.FullSync(context.Background(), userID)
			if summary.Err != nil {
				color.Red("sync failed: %v\n", summary.Err)
				return
			}
			if !summary.Success {
				color.Yellow("sync incomplete: uploaded %d, downloaded %d, some records stay queued\n", summary.Uploaded, summary.Downloaded)
				return
			}
			color.Green("sync ok: uploaded %d, downloaded %d\n", summary.Uploaded, summary.Downloaded)
		},
	}

	command.Flags().StringVarP(&userID, "user-id", "u", "", "user id (required)")
	command.Flags().SortFlags = false

	command.AddCommand(syncStatusCmd())

	return command
}

func syncStatusCmd() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "status",
		Short: "Show queued work and the last sync outcome",
		Run: func(cmd *cobra.Command, args []string) {
			userID = resolveUser(userID)
			if userID == "" {
				logrus.Error("user id is required")
				return
			}

			cnf := config.LoadConfig()
			local := store.NewGormStore(config.GetLocalDB(cnf))
			ctx := context.Background()

			depth, err := queue.New(local).Count(ctx)
			if err != nil {
				logrus.Errorf("failed to read queue: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Queued Ops", "Last Sync", "Uploaded", "Downloaded", "Result"})

			row := []string{strconv.FormatInt(depth, 10), "-", "-", "-", "-"}
			if rec, err := statusCache(cnf).LastSummary(ctx, userID); err != nil {
				logrus.Warnf("failed to read last summary: %v", err)
			} else if rec != nil {
				result := "ok"
				if !rec.Success {
					result = "failed: " + rec.Error
				}
				row = []string{
					strconv.FormatInt(depth, 10),
					rec.FinishedAt.Format("2006-01-02 15:04:05"),
					strconv.Itoa(rec.Uploaded),
					strconv.Itoa(rec.Downloaded),
					result,
				}
			}
			table.Append(row)
			table.Render()
		},
	}

	command.Flags().StringVarP(&userID, "user-id", "u", "", "user id (required)")
	command.Flags().SortFlags = false

	return command
}
