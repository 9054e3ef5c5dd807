package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/docgo"
)

func init() {
	cmd := &cobra.Command{
		Use:   "insert <json>",
		Short: "Insert a document",
		Args:  cobra.ExactArgs(1),
		Run:   runInsert,
	}

	cmd.Flags().String("id", "", "Explicit document id (default: generated)")

	RootCmd.AddCommand(cmd)
}

func runInsert(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")

	content, err := parseObject(args[0])
	if err != nil {
		exitErr("parse document", err)
	}

	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}

	var opts []docgo.InsertOption
	if id != "" {
		opts = append(opts, docgo.WithID(id))
	}

	insertedID, err := db.Insert(content, opts...)
	if err != nil {
		exitErr("insert", err)
	}
	fmt.Println(insertedID)
}
