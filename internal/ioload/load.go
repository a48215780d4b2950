// Package ioload reads the on-disk taxonomy artifact (spec.md §6:
// taxonomy.tsv, synonyms.tsv, a plain-text version file) into the
// records taxonomy.Build consumes, grounded on the teacher's file-
// scanning and progress-reporting idioms in internal/iooptimize
// (reparse.go, words.go): a counted pb.Full progress bar updated in
// batches, and a go-humanize formatted duration log line on completion.
package ioload

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/opentreeoflife/gntaxdb/pkg/config"
	"github.com/opentreeoflife/gntaxdb/pkg/flagset"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonid"
	"github.com/opentreeoflife/gntaxdb/pkg/taxonomy"
)

const (
	taxonomyCols = 7
	synonymCols  = 3
	// progressUpdateInterval batches progress-bar updates the way the
	// teacher's reparse.go batches them, to avoid a syscall per line.
	progressUpdateInterval = 10_000
)

// Load reads taxonomy.tsv, synonyms.tsv, and the version file named by
// cfg, then builds an immutable Taxonomy (spec.md §4.1 "Failure model":
// no partial taxonomy is ever returned).
func Load(ctx context.Context, cfg *config.Config) (*taxonomy.Taxonomy, error) {
	start := time.Now()

	version, err := readVersion(cfg.Taxonomy.VersionPath)
	if err != nil {
		return nil, err
	}

	records, err := readTaxonRecords(ctx, cfg.Taxonomy.TaxonomyPath, cfg.Taxonomy.IdBits)
	if err != nil {
		return nil, err
	}

	synonyms, err := readSynonymRecords(ctx, cfg.Taxonomy.SynonymsPath, cfg.Taxonomy.IdBits)
	if err != nil {
		return nil, err
	}

	tax, err := taxonomy.Build(records, synonyms, flagset.Default, version, version)
	if err != nil {
		return nil, err
	}

	slog.Info("taxonomy loaded",
		"taxa", tax.Len(),
		"synonyms", len(synonyms),
		"version", version,
		"duration", humanize.RelTime(start, time.Now(), "", ""))

	return tax, nil
}

func readVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", OpenFileError(path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func countDataLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, OpenFileError(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	count := 0
	for scanner.Scan() {
		count++
	}
	if count > 0 {
		count-- // header row
	}
	return count, scanner.Err()
}

func readTaxonRecords(ctx context.Context, path string, idBits int) ([]taxonomy.TaxonRecord, error) {
	total, err := countDataLines(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, OpenFileError(path, err)
	}
	defer f.Close()

	bar := pb.Full.Start(total)
	bar.Set("prefix", "Loading taxonomy.tsv: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	records := make([]taxonomy.TaxonRecord, 0, total)
	lineNo := 0
	parsed := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cols := strings.Split(scanner.Text(), "\t")
		if len(cols) != taxonomyCols {
			return nil, MalformedLineError(path, lineNo, len(cols), taxonomyCols)
		}

		id, err := taxonid.Parse(cols[0], idBits)
		if err != nil {
			return nil, err
		}
		rec := taxonomy.TaxonRecord{
			Id:         id,
			Name:       cols[2],
			Rank:       cols[3],
			SourceInfo: cols[4],
			Uniqname:   cols[5],
			FlagsCsv:   cols[6],
		}
		if cols[1] != "" {
			parentId, err := taxonid.Parse(cols[1], idBits)
			if err != nil {
				return nil, err
			}
			rec.ParentId = parentId
			rec.HasParent = true
		}
		records = append(records, rec)

		parsed++
		if parsed%progressUpdateInterval == 0 {
			bar.Add(progressUpdateInterval)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, OpenFileError(path, err)
	}
	bar.Add(parsed % progressUpdateInterval)

	return records, nil
}

func readSynonymRecords(ctx context.Context, path string, idBits int) ([]taxonomy.SynonymRecord, error) {
	total, err := countDataLines(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, OpenFileError(path, err)
	}
	defer f.Close()

	bar := pb.Full.Start(total)
	bar.Set("prefix", "Loading synonyms.tsv: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	records := make([]taxonomy.SynonymRecord, 0, total)
	lineNo := 0
	parsed := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cols := strings.Split(scanner.Text(), "\t")
		if len(cols) != synonymCols {
			return nil, MalformedLineError(path, lineNo, len(cols), synonymCols)
		}

		ownerId, err := taxonid.Parse(cols[0], idBits)
		if err != nil {
			return nil, err
		}
		records = append(records, taxonomy.SynonymRecord{
			OwnerId: ownerId,
			Name:    cols[1],
			Kind:    cols[2],
		})

		parsed++
		if parsed%progressUpdateInterval == 0 {
			bar.Add(progressUpdateInterval)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, OpenFileError(path, err)
	}
	bar.Add(parsed % progressUpdateInterval)

	return records, nil
}
