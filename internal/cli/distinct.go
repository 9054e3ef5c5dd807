package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/docgo/document"
)

func init() {
	cmd := &cobra.Command{
		Use:   "distinct <field> [predicate]",
		Short: "List distinct values of a field",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runDistinct,
	}

	RootCmd.AddCommand(cmd)
}

func runDistinct(cmd *cobra.Command, args []string) {
	predArg := ""
	if len(args) == 2 {
		predArg = args[1]
	}
	pred, err := parseObject(predArg)
	if err != nil {
		exitErr("parse predicate", err)
	}

	db, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}

	values, err := db.Distinct(args[0], pred)
	if err != nil {
		exitErr("distinct", err)
	}

	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, document.ToAny(v))
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
