package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/draftloom/manuscript/internal/config"
	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/queue"
	"github.com/draftloom/manuscript/internal/service"
	"github.com/draftloom/manuscript/internal/store"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "document commands",
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.AddCommand(createDocCmd(), listDocCmd(), unitsCmd(), gatesCmd(), snapshotsCmd(), restoreCmd())
}

func newManuscript() *service.Manuscript {
	cnf := config.LoadConfig()
	local := store.NewGormStore(config.GetLocalDB(cnf))
	return service.New(local, queue.New(local))
}

func resolveUser(userID string) string {
	if userID != "" {
		return userID
	}
	return config.LoadConfig().UserID
}

func createDocCmd() *cobra.Command {
	var userID string
	var title string
	var penName string
	var realName string
	var mask bool

	command := &cobra.Command{
		Use:   "create",
		Short: "Create a document",
		Run: func(cmd *cobra.Command, args []string) {
			userID = resolveUser(userID)
			if userID == "" || title == "" {
				logrus.Error("user id and title are required")
				return
			}

			doc, err := newManuscript().CreateDocument(context.Background(), userID, title, penName, realName, mask)
			if err != nil {
				logrus.Errorf("failed to create document: %v", err)
				return
			}

			color.Green("created document: %s\n", doc.ID)
		},
	}

	command.Flags().StringVarP(&userID, "user-id", "u", "", "owner user id (required)")
	command.Flags().StringVarP(&title, "title", "t", "", "title of the document (required)")
	command.Flags().StringVarP(&penName, "pen-name", "p", "", "pen name shown in the document")
	command.Flags().StringVarP(&realName, "real-name", "r", "", "real name the pen name masks")
	command.Flags().BoolVarP(&mask, "mask", "m", false, "mask the real name")
	command.Flags().SortFlags = false

	return command
}

func listDocCmd() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "list",
		Short: "List documents of a user",
		Run: func(cmd *cobra.Command, args []string) {
			userID = resolveUser(userID)
			if userID == "" {
				logrus.Error("user id is required")
				return
			}

			docs, err := newManuscript().ListDocuments(context.Background(), userID)
			if err != nil {
				logrus.Errorf("failed to list documents: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Title", "Section", "Words", "Final Gate"})
			for _, doc := range docs {
				table.Append([]string{
					doc.ID,
					doc.Title,
					string(doc.CurrentSection),
					strconv.Itoa(doc.WordCount),
					strconv.FormatBool(doc.FinalGate),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&userID, "user-id", "u", "", "owner user id (required)")
	command.Flags().SortFlags = false

	return command
}

func unitsCmd() *cobra.Command {
	var docID string

	command := &cobra.Command{
		Use:   "units",
		Short: "List the scenes of a document in order",
		Run: func(cmd *cobra.Command, args []string) {
			id, err := uuid.Parse(docID)
			if err != nil {
				logrus.Errorf("invalid document id: %v", err)
				return
			}

			units, err := newManuscript().ListUnits(context.Background(), id)
			if err != nil {
				logrus.Errorf("failed to list units: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Pos", "Title", "Section", "Status", "Words"})
			for _, unit := range units {
				status := string(unit.ValidationStat)
				switch unit.ValidationStat {
				case model.StatusGreen:
					status = color.GreenString(status)
				case model.StatusYellow:
					status = color.YellowString(status)
				case model.StatusRed:
					status = color.RedString(status)
				}
				table.Append([]string{
					strconv.Itoa(unit.Position),
					unit.Title,
					string(unit.Section),
					status,
					strconv.Itoa(unit.WordCount),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().SortFlags = false

	return command
}

func snapshotsCmd() *cobra.Command {
	var docID string

	command := &cobra.Command{
		Use:   "snapshots",
		Short: "List the recovery snapshots of a document",
		Run: func(cmd *cobra.Command, args []string) {
			id, err := uuid.Parse(docID)
			if err != nil {
				logrus.Errorf("invalid document id: %v", err)
				return
			}

			snapshots, err := newManuscript().ListSnapshots(context.Background(), id)
			if err != nil {
				logrus.Errorf("failed to list snapshots: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Reason", "Created", "Bytes"})
			for _, snap := range snapshots {
				table.Append([]string{
					snap.ID,
					snap.Reason,
					snap.CreatedAt.Format("2006-01-02 15:04:05"),
					strconv.Itoa(len(snap.Payload)),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().SortFlags = false

	return command
}

func restoreCmd() *cobra.Command {
	var snapshotID string

	command := &cobra.Command{
		Use:   "restore",
		Short: "Restore a recovery snapshot over the document",
		Run: func(cmd *cobra.Command, args []string) {
			id, err := uuid.Parse(snapshotID)
			if err != nil {
				logrus.Errorf("invalid snapshot id: %v", err)
				return
			}

			doc, err := newManuscript().RestoreSnapshot(context.Background(), id)
			if err != nil {
				logrus.Errorf("failed to restore snapshot: %v", err)
				return
			}

			color.Green("restored document %s from snapshot %s\n", doc.ID, snapshotID)
		},
	}

	command.Flags().StringVarP(&snapshotID, "snapshot-id", "s", "", "snapshot id (required)")
	command.Flags().SortFlags = false

	return command
}

func gatesCmd() *cobra.Command {
	var docID string

	command := &cobra.Command{
		Use:   "gates",
		Short: "Show the document gates",
		Run: func(cmd *cobra.Command, args []string) {
			id, err := uuid.Parse(docID)
			if err != nil {
				logrus.Errorf("invalid document id: %v", err)
				return
			}

			m := newManuscript()
			ctx := context.Background()

			allowed, missing, err := m.SectionAdvanceAllowed(ctx, id, model.SectionConvergence)
			if err != nil {
				logrus.Errorf("failed to evaluate section gate: %v", err)
				return
			}
			if allowed {
				color.Green("section advance: open\n")
			} else {
				color.Yellow("section advance: blocked, missing senses %v\n", missing)
			}

			ready, err := m.FinalReview(ctx, id)
			if err != nil {
				logrus.Errorf("failed to evaluate final review: %v", err)
				return
			}
			if ready {
				color.Green("final review: ready\n")
			} else {
				color.Yellow("final review: not ready\n")
			}
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().SortFlags = false

	return command
}
