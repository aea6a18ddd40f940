// Package datadir owns the dated directory tree the batch stages operate
// on: path construction for every artifact kind and discovery of venues and
// symbols by filename.
//
// Layout: <root>/<date>/<venue>/books/<VENUE>.book_tops.<SYMBOL>.bin, merged
// outputs under <root>/<date>/mergedbooks, derived bars under per-venue
// bars/ folders and execution results under impactbase/ next to their input.
package datadir

import (
	"fmt"
	"path/filepath"
	"strings"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
)

// MergedFolderName is the per-date folder holding merged outputs. It is
// excluded from venue discovery.
const MergedFolderName = "mergedbooks"

// Layout resolves artifact paths under one data root. Venue folder names are
// lower case; venue prefixes and symbols inside file names are upper case.
type Layout struct {
	Root string
}

// NewLayout creates a Layout over the given data root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// DatePath returns the folder of one trading date (YYYYMMDD).
func (l Layout) DatePath(date string) string {
	return filepath.Join(l.Root, date)
}

// BooksDir returns a venue's raw capture folder for one date.
func (l Layout) BooksDir(date, venue string) string {
	return filepath.Join(l.DatePath(date), strings.ToLower(venue), "books")
}

// BookFilePath returns a venue's raw tops or fills file for one symbol.
func (l Layout) BookFilePath(date, venue, symbol string, kind recordv1.Kind) string {
	name := fmt.Sprintf("%s.%s.%s.bin", strings.ToUpper(venue), kind.Suffix(), strings.ToUpper(symbol))
	return filepath.Join(l.BooksDir(date, venue), name)
}

// MergedDir returns the merged-output folder for one date.
func (l Layout) MergedDir(date string) string {
	return filepath.Join(l.DatePath(date), MergedFolderName)
}

// MergedFilePath returns the merged stream file for one symbol and kind.
func (l Layout) MergedFilePath(date, symbol string, kind recordv1.Kind) string {
	name := fmt.Sprintf("merged_%s.%s.bin", kind.MergedName(), strings.ToUpper(symbol))
	return filepath.Join(l.MergedDir(date), name)
}

// SnapshotFilePath returns the consolidated snapshot stream for one symbol.
func (l Layout) SnapshotFilePath(date, symbol string) string {
	name := fmt.Sprintf("snapshots.%s.bin", strings.ToUpper(symbol))
	return filepath.Join(l.MergedDir(date), name)
}

// MergedCSVPath returns the CSV dump artifact for one merged tops file.
func (l Layout) MergedCSVPath(date, symbol string) string {
	name := fmt.Sprintf("merged_tops.%s.csv", strings.ToUpper(symbol))
	return filepath.Join(l.MergedDir(date), name)
}

// BarsDir returns a venue's derived bars folder for one date.
func (l Layout) BarsDir(date, venue string) string {
	return filepath.Join(l.DatePath(date), strings.ToLower(venue), "bars")
}

// BarFilePath returns one bar series file, e.g. series "bid_bars_L1" or
// "fills_bars".
func (l Layout) BarFilePath(date, venue, symbol, series string) string {
	name := fmt.Sprintf("%s.%s.%s.bin", strings.ToUpper(venue), series, strings.ToUpper(symbol))
	return filepath.Join(l.BarsDir(date, venue), name)
}

// CorrelationsCSVPath returns the overall-correlations artifact for one
// venue's bars folder.
func (l Layout) CorrelationsCSVPath(date, venue string) string {
	return filepath.Join(l.BarsDir(date, venue), "overall_correlations.csv")
}

// ImpactResultPath derives the execution-results path for one input file:
// an impactbase folder next to the input, file named after the input with a
// .qty<N>.results.bin suffix replacing .bin.
func ImpactResultPath(inputPath string, targetQty uint32) string {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ".bin")
	name := fmt.Sprintf("%s.qty%d.results.bin", base, targetQty)
	return filepath.Join(dir, "impactbase", name)
}
