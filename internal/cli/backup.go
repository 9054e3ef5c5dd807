package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	backupCmd := &cobra.Command{
		Use:   "backup <target-dir>",
		Short: "Copy every document into a backup directory",
		Args:  cobra.ExactArgs(1),
		Run:   runBackup,
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <source-dir>",
		Short: "Replace the database contents from a backup directory",
		Args:  cobra.ExactArgs(1),
		Run:   runRestore,
	}

	RootCmd.AddCommand(backupCmd, restoreCmd)
}

func runBackup(cmd *cobra.Command, args []string) {
	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	if err := db.Backup(args[0]); err != nil {
		exitErr("backup", err)
	}
	fmt.Printf("backup written to %s\n", args[0])
}

func runRestore(cmd *cobra.Command, args []string) {
	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	if err := db.Restore(args[0]); err != nil {
		exitErr("restore", err)
	}
	fmt.Printf("restored from %s\n", args[0])
}
