package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "count [predicate]",
		Short: "Count matching documents",
		Args:  cobra.MaximumNArgs(1),
		Run:   runCount,
	}

	RootCmd.AddCommand(cmd)
}

func runCount(cmd *cobra.Command, args []string) {
	predArg := ""
	if len(args) == 1 {
		predArg = args[0]
	}
	pred, err := parseObject(predArg)
	if err != nil {
		exitErr("parse predicate", err)
	}

	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}

	n, err := db.Count(pred)
	if err != nil {
		exitErr("count", err)
	}
	fmt.Println(n)
}
