// Package attr builds the symbol -> score attribute map used for
// similarity pooling. The primary source is a stats CSV keyed by display
// name; the fallback is the project's base stats header, where a score
// is the sum of the six base stat fields.
package attr

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ErrUnavailable reports that an attribute source could not be opened.
var ErrUnavailable = errors.New("attribute source unavailable")

// Map holds one numeric score per symbol. Partial coverage is fine:
// symbols without an entry simply never join a similarity pool.
type Map map[string]int

// FromCSV parses a stats table with at least Name and Total columns.
// Display names are normalized to constants; rows whose constant fails
// the valid predicate are dropped.
func FromCSV(r io.Reader, valid func(string) bool) (Map, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	nameCol, totalCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Name":
			nameCol = i
		case "Total":
			totalCol = i
		}
	}
	if nameCol < 0 || totalCol < 0 {
		return nil, fmt.Errorf("csv missing Name/Total columns (header %v)", header)
	}

	m := make(Map)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if len(rec) <= nameCol || len(rec) <= totalCol {
			continue
		}
		total, err := strconv.Atoi(strings.TrimSpace(rec[totalCol]))
		if err != nil {
			continue
		}
		sym := NormalizeName(rec[nameCol])
		if valid != nil && !valid(sym) {
			continue
		}
		m[sym] = total
	}
	return m, nil
}

// FromCSVFile is FromCSV over a path. Missing file yields ErrUnavailable
// so callers can fall back to the stats header.
func FromCSVFile(path string, valid func(string) bool) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("open stats csv %s: %w", path, err)
	}
	defer f.Close()
	return FromCSV(f, valid)
}

var (
	recordPattern = regexp.MustCompile(`(?s)\[(SPECIES_\w+)\] =(.+?)\};`)
	statFields    = []string{
		"baseHP", "baseAttack", "baseDefense",
		"baseSpeed", "baseSpAttack", "baseSpDefense",
	}
	statPatterns = compileStatPatterns()
)

func compileStatPatterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(statFields))
	for _, f := range statFields {
		out[f] = regexp.MustCompile(`\.` + f + `\s*=\s*(\d+)`)
	}
	return out
}

// FromStatsHeader parses per-symbol record blocks from a base stats
// header and sums the six base stat fields. A record missing any field
// is excluded entirely; partial totals are never used.
func FromStatsHeader(r io.Reader, exclude map[string]bool) (Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stats header: %w", err)
	}

	m := make(Map)
	for _, block := range recordPattern.FindAllStringSubmatch(string(data), -1) {
		sym, body := block[1], block[2]
		if exclude[sym] {
			continue
		}
		total, complete := 0, true
		for _, f := range statFields {
			sm := statPatterns[f].FindStringSubmatch(body)
			if sm == nil {
				complete = false
				break
			}
			n, err := strconv.Atoi(sm[1])
			if err != nil {
				complete = false
				break
			}
			total += n
		}
		if complete {
			m[sym] = total
		}
	}
	return m, nil
}

// FromStatsHeaderFile is FromStatsHeader over a path.
func FromStatsHeaderFile(path string, exclude map[string]bool) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("open stats header %s: %w", path, err)
	}
	defer f.Close()
	return FromStatsHeader(f, exclude)
}

// specialNames covers display names whose constants cannot be derived
// mechanically.
var specialNames = []struct{ fragment, constant string }{
	{"Nidoran♀", "SPECIES_NIDORAN_F"},
	{"Nidoran♂", "SPECIES_NIDORAN_M"},
	{"Farfetch'd", "SPECIES_FARFETCHD"},
	{"Mr. Mime", "SPECIES_MR_MIME"},
	{"Mime Jr.", "SPECIES_MIME_JR"},
}

// formPrefixes rewrites regional/mega form prefixes into constant form.
var formPrefixes = [][2]string{
	{"Mega ", "MEGA_"},
	{"Primal ", "PRIMAL_"},
	{"Alolan ", "ALOLAN_"},
	{"Galarian ", "GALARIAN_"},
}

// NormalizeName converts a stats-table display name into the project's
// constant spelling.
func NormalizeName(name string) string {
	for _, s := range specialNames {
		if strings.Contains(name, s.fragment) {
			return s.constant
		}
	}

	// Split glued camel case ("VenusaurMega" -> "Venusaur Mega"); an
	// uppercase letter at the start or after a space stays put.
	var b strings.Builder
	prev := rune(0)
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsSpace(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	name = b.String()

	for _, p := range formPrefixes {
		name = strings.ReplaceAll(name, p[0], p[1])
	}
	name = strings.NewReplacer(" ", "_", "-", "_", ".", "", "'", "").Replace(name)
	return "SPECIES_" + strings.ToUpper(name)
}
