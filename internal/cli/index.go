package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Manage secondary indexes",
	}

	createCmd := &cobra.Command{
		Use:   "create <field>",
		Short: "Create an index on a dotted field path",
		Args:  cobra.ExactArgs(1),
		Run:   runIndexCreate,
	}
	createCmd.Flags().Bool("unique", false, "Enforce unique values")

	dropCmd := &cobra.Command{
		Use:   "drop <field>",
		Short: "Drop the index on a field",
		Args:  cobra.ExactArgs(1),
		Run:   runIndexDrop,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List defined indexes",
		Args:  cobra.NoArgs,
		Run:   runIndexList,
	}

	indexCmd.AddCommand(createCmd, dropCmd, listCmd)
	RootCmd.AddCommand(indexCmd)
}

func runIndexCreate(cmd *cobra.Command, args []string) {
	unique, _ := cmd.Flags().GetBool("unique")

	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	if err := db.CreateIndex(args[0], unique); err != nil {
		exitErr("create index", err)
	}
	fmt.Printf("index created on %q\n", args[0])
}

func runIndexDrop(cmd *cobra.Command, args []string) {
	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	db.DropIndex(args[0])
	fmt.Printf("index dropped on %q\n", args[0])
}

func runIndexList(cmd *cobra.Command, args []string) {
	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	b, _ := json.MarshalIndent(db.Indexes(), "", "  ")
	fmt.Println(string(b))
}
