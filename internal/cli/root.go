// Package cli implements the docgo CLI commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/docgo"
	"github.com/hupe1980/docgo/codec"
	"github.com/hupe1980/docgo/document"
)

var (
	dirFlag   string
	codecFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "docgo",
	Short: "Embedded file-backed document store",
	Long:  "A small CLI over a docgo database directory. JSON in, JSON out. One file per document, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Database directory (default: $DOCGO_DIR or ./docgo-data)")
	RootCmd.PersistentFlags().StringVarP(&codecFlag, "codec", "c", "json", "Unit codec: json, zstd or lz4")
}

func getDir() string {
	if dirFlag != "" {
		return dirFlag
	}
	if env := os.Getenv("DOCGO_DIR"); env != "" {
		return env
	}
	return "./docgo-data"
}

func openDB() (*docgo.Database, error) {
	c, ok := codec.ByName(codecFlag)
	if !ok {
		return nil, fmt.Errorf("unknown codec: %s", codecFlag)
	}
	return docgo.Open(getDir(), docgo.WithCodec(c))
}

func parseObject(arg string) (*document.Object, error) {
	if arg == "" {
		return document.NewObject(), nil
	}
	return document.ObjectFromJSON([]byte(arg))
}

// docOut is the JSON shape for printed documents.
type docOut struct {
	ID        string           `json:"_id"`
	Data      *document.Object `json:"data"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func toOut(doc *document.Document) docOut {
	return docOut{
		ID:        doc.ID,
		Data:      doc.Content,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
