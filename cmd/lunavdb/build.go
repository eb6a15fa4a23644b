package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hupe1980/lunavdb"
)

// record is one line of the JSONL input.
type record struct {
	ID        string    `json:"id"`
	Embedding []float32 `json:"embedding"`
}

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an index from JSON lines",
		Long: `Build reads one JSON object per line, {"id": "...", "embedding": [...]},
and writes a new index dump. Later lines win over earlier lines with the same id.

Examples:
  lunavdb build --input items.jsonl --index docs.lvdb
  cat items.jsonl | lunavdb build --input - --dimension 384`,
		Args: cobra.NoArgs,
		RunE: a.runBuild,
	}

	cmd.Flags().StringP("input", "i", "-", "JSONL input file, - for stdin")
	cmd.Flags().Int("dimension", lunavdb.DefaultDimension, "embedding dimension")
	cmd.Flags().Int("bucket-size", lunavdb.DefaultBucketSize, "tree leaf bucket capacity")
	cmd.Flags().String("compressor", "zstd", "dump compressor (zstd, lz4, gzip, none)")

	_ = a.v.BindPFlag("dimension", cmd.Flags().Lookup("dimension"))
	_ = a.v.BindPFlag("bucket_size", cmd.Flags().Lookup("bucket-size"))
	_ = a.v.BindPFlag("compressor", cmd.Flags().Lookup("compressor"))
	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")

	var r io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	items, err := readItems(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	logger, err := a.logger()
	if err != nil {
		return err
	}
	c, err := compressorByName(a.v.GetString("compressor"))
	if err != nil {
		return err
	}

	db, err := lunavdb.New(items,
		lunavdb.WithDimension(a.v.GetInt("dimension")),
		lunavdb.WithBucketSize(a.v.GetInt("bucket_size")),
		lunavdb.WithCompressor(c),
		lunavdb.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	store, name := a.location()
	if err := db.Save(cmd.Context(), store, name); err != nil {
		return err
	}

	n, err := db.Size()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d entries into %s (dimension=%d, bucket size=%d, %s)\n",
		n, a.v.GetString("index"), db.Dimension(), db.BucketSize(), c.Name())
	return nil
}

func readItems(r io.Reader) ([]lunavdb.Item, error) {
	dec := json.NewDecoder(r)

	var items []lunavdb.Item
	for line := 1; ; line++ {
		var rec record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("record %d: missing id", line)
		}
		items = append(items, lunavdb.Item{ID: rec.ID, Embedding: rec.Embedding})
	}
}
