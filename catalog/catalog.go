// Package catalog parses the text formats that describe what spectra exist:
// directory listings of spectral files and predefined filter-set
// definitions.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/cwbudde/spectral-transmission/chain"
)

// Tokens removed from a listed file name to derive its display name.
var excludeTokens = []string{".csv", ".Csv", "CSV", "index.html"}

// Entry binds a display name to the listed file it was derived from.
type Entry struct {
	Name string
	File string
}

// ParseListing reads a newline-separated file listing and returns its
// entries, see [Entries].
func ParseListing(r io.Reader) ([]Entry, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read listing: %w", err)
	}
	return Entries(lines), nil
}

// Entries derives display names from file names. Names shorter than two
// characters are dropped. Entries keep the order in which a name first
// appears; when two files map to the same name the later file wins.
func Entries(files []string) []Entry {
	var out []Entry
	index := make(map[string]int)
	for _, file := range files {
		file = strings.TrimSpace(file)
		name := DisplayName(file)
		if len(name) < 2 {
			continue
		}
		if i, ok := index[name]; ok {
			out[i].File = file
			continue
		}
		index[name] = len(out)
		out = append(out, Entry{Name: name, File: file})
	}
	return out
}

// DisplayName strips the listing extensions from file.
func DisplayName(file string) string {
	name := file
	for _, tok := range excludeTokens {
		name = strings.TrimSpace(strings.ReplaceAll(name, tok, ""))
	}
	return name
}

// FilterSet is a predefined configuration: a dye, an excitation source and
// the filters of both paths.
type FilterSet struct {
	Name              string
	Dye               string
	ExcitationSource  string
	Filters           []chain.Entry
	ExcitationFilters []chain.Entry
}

var (
	commentRE   = regexp.MustCompile(`^\s*(//|#|/\*)`)
	fieldSepRE  = regexp.MustCompile(`[\t,:;]`)
	filterSepRE = regexp.MustCompile(` +`)
)

// ParseSets reads filter-set definitions, one per line:
//
//	name, dye, source, filter [mode], ... :: exfilter [mode], ...
//
// Fields are separated by tab, comma, colon or semicolon. Lines of at most
// one character and lines starting with //, # or /* are ignored. The result
// is sorted by name, ignoring case; equal names keep their file order.
func ParseSets(r io.Reader) ([]FilterSet, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read sets: %w", err)
	}
	var sets []FilterSet
	for _, line := range lines {
		if len(line) <= 1 || commentRE.MatchString(line) {
			continue
		}
		sets = append(sets, parseSet(line))
	}
	slices.SortStableFunc(sets, func(a, b FilterSet) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return sets, nil
}

func parseSet(line string) FilterSet {
	emission, excitation, hasEx := strings.Cut(line, "::")
	fields := fieldSepRE.Split(emission, -1)
	field := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	set := FilterSet{
		Name:             field(0),
		Dye:              field(1),
		ExcitationSource: field(2),
	}
	if len(fields) > 3 {
		set.Filters = parseFilters(fields[3:])
	}
	if hasEx {
		// Further "::" separators only split excitation fields.
		excitation = strings.ReplaceAll(excitation, "::", ",")
		set.ExcitationFilters = parseFilters(fieldSepRE.Split(excitation, -1))
	}
	return set
}

func parseFilters(fields []string) []chain.Entry {
	var out []chain.Entry
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts := filterSepRE.Split(f, -1)
		mode := chain.Transmit
		if len(parts) > 1 {
			mode = chain.ParseMode(parts[1])
		}
		out = append(out, chain.Entry{Name: parts[0], Mode: mode})
	}
	return out
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
