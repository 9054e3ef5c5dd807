package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Retrieve a document by id",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}

	doc, err := db.FindByID(args[0])
	if err != nil {
		exitErr("get", err)
	}

	b, _ := json.MarshalIndent(toOut(doc), "", "  ")
	fmt.Println(string(b))
}
