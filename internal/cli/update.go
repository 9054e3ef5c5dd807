package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update [predicate] <patch>",
		Short: "Shallow-merge a patch into matching documents",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runUpdate,
	}

	cmd.Flags().String("id", "", "Update a single document by id instead of a predicate")

	RootCmd.AddCommand(cmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")

	patch, err := parseObject(args[len(args)-1])
	if err != nil {
		exitErr("parse patch", err)
	}

	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}

	if id != "" {
		if err := db.UpdateByID(id, patch); err != nil {
			exitErr("update", err)
		}
		fmt.Println("updated 1 document")
		return
	}

	if len(args) != 2 {
		exitErr("update", fmt.Errorf("a predicate or --id is required"))
	}
	pred, err := parseObject(args[0])
	if err != nil {
		exitErr("parse predicate", err)
	}
	n, err := db.Update(pred, patch)
	if err != nil {
		exitErr("update", err)
	}
	fmt.Printf("updated %d documents\n", n)
}
