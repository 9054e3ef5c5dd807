package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/docgo"
)

func init() {
	cmd := &cobra.Command{
		Use:   "find [predicate]",
		Short: "Find documents matching a predicate",
		Args:  cobra.MaximumNArgs(1),
		Run:   runFind,
	}

	cmd.Flags().Int("limit", -1, "Maximum number of results")
	cmd.Flags().Int("skip", 0, "Number of results to skip")
	cmd.Flags().StringSlice("sort", nil, "Sort keys, e.g. age or -age for descending")

	RootCmd.AddCommand(cmd)
}

func runFind(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	skip, _ := cmd.Flags().GetInt("skip")
	sortKeys, _ := cmd.Flags().GetStringSlice("sort")

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

	opts := []docgo.FindOption{docgo.WithSkip(skip), docgo.WithLimit(limit)}
	for _, key := range sortKeys {
		if path, ok := strings.CutPrefix(key, "-"); ok {
			opts = append(opts, docgo.WithSort(path, true))
		} else {
			opts = append(opts, docgo.WithSort(key, false))
		}
	}

	docs, err := db.Find(pred, opts...)
	if err != nil {
		exitErr("find", err)
	}

	out := make([]docOut, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toOut(doc))
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
