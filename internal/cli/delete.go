package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "delete [predicate]",
		Short: "Delete matching documents",
		Args:  cobra.MaximumNArgs(1),
		Run:   runDelete,
	}

	cmd.Flags().String("id", "", "Delete a single document by id instead of a predicate")
	cmd.Flags().Bool("all", false, "Delete every document")

	RootCmd.AddCommand(cmd)
}

func runDelete(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	all, _ := cmd.Flags().GetBool("all")

	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}

	switch {
	case id != "":
		if err := db.DeleteByID(id); err != nil {
			exitErr("delete", err)
		}
		fmt.Println("deleted 1 document")
	case all:
		n, err := db.DeleteAll()
		if err != nil {
			exitErr("delete", err)
		}
		fmt.Printf("deleted %d documents\n", n)
	case len(args) == 1:
		pred, err := parseObject(args[0])
		if err != nil {
			exitErr("parse predicate", err)
		}
		n, err := db.Delete(pred)
		if err != nil {
			exitErr("delete", err)
		}
		fmt.Printf("deleted %d documents\n", n)
	default:
		exitErr("delete", fmt.Errorf("a predicate, --id or --all is required"))
	}
}
