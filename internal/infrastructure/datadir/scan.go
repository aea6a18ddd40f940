package datadir

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
)

// bookFilePattern matches raw capture files and captures the record kind and
// the symbol. Symbols may carry exchange-specific punctuation (^ + = -).
var bookFilePattern = regexp.MustCompile(`(?i)^[A-Z0-9_-]+\.(book_fills|book_tops)\.([A-Z0-9_^+=-]+)\.bin$`)

// barFilePattern matches derived bar files and captures the symbol.
var barFilePattern = regexp.MustCompile(`(?i)\.(?:fills_bars|bid_bars_L[0-9]|ask_bars_L[0-9])\.([A-Z0-9_]+)\.bin$`)

// VenueFolders lists the venue folders of one date, skipping the merged
// output folder.
func (l Layout) VenueFolders(date string) ([]string, error) {
	entries, err := os.ReadDir(l.DatePath(date))
	if err != nil {
		return nil, errors.NewTracer(fmt.Sprintf("read date folder %s", l.DatePath(date))).
			Wrap(errors.ErrMissingSource)
	}

	var venues []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), MergedFolderName) {
			continue
		}
		venues = append(venues, entry.Name())
	}
	sort.Strings(venues)
	return venues, nil
}

// Symbols lists the distinct upper-cased symbols captured for the given
// kind across the given venues. A venue without a books folder contributes
// nothing.
func (l Layout) Symbols(date string, venues []string, kind recordv1.Kind) []string {
	set := make(map[string]struct{})
	for _, venue := range venues {
		entries, err := os.ReadDir(l.BooksDir(date, venue))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			match := bookFilePattern.FindStringSubmatch(entry.Name())
			if match == nil {
				continue
			}
			if !strings.EqualFold(match[1], kind.Suffix()) {
				continue
			}
			set[strings.ToUpper(match[2])] = struct{}{}
		}
	}

	symbols := make([]string, 0, len(set))
	for symbol := range set {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// BarSymbols lists the distinct upper-cased symbols with bar files in one
// venue's bars folder.
func (l Layout) BarSymbols(date, venue string) ([]string, error) {
	entries, err := os.ReadDir(l.BarsDir(date, venue))
	if err != nil {
		return nil, errors.NewTracer(fmt.Sprintf("read bars folder %s", l.BarsDir(date, venue))).
			Wrap(errors.ErrMissingSource)
	}

	set := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := barFilePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		set[strings.ToUpper(match[1])] = struct{}{}
	}

	symbols := make([]string, 0, len(set))
	for symbol := range set {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// EnsureDir creates dir if missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return errors.NewTracer(fmt.Sprintf("create folder %s", dir)).
			Wrap(errors.ErrOutputUnwritable)
	}
	return nil
}
