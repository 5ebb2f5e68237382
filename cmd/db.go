package cmd

import (
	"github.com/spf13/cobra"

	"github.com/draftloom/manuscript/internal/config"
	"github.com/draftloom/manuscript/internal/model"
	"github.com/draftloom/manuscript/internal/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate(), MigrateRemote())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the local database",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetLocalDB(config.LoadConfig())
			err := model.Migrate(db)
			if err != nil {
				panic(err)
			}
		},
	}

	return command
}

func MigrateRemote() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate-remote",
		Short: "Migrate a self-hosted remote database",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetRemoteDB(config.LoadConfig())
			err := store.NewGormRemote(db).MigrateRemote()
			if err != nil {
				panic(err)
			}
		},
	}

	return command
}
