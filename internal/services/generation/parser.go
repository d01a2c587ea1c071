package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/screenlab/screener-api/pkg/timecode"
)

// Entry is one analyzer finding: a timecode and the names detected at it.
// Entries keep the order they appear in the analyzer output, a Go map would
// shuffle them and break the end-of-interval inference below.
type Entry struct {
	Timecode string
	Names    []string
}

// Candidate is a tag candidate derived from adjacent entries
type Candidate struct {
	Name  string
	Start float64
	End   float64
}

// ParseEntries decodes the analyzer's output object in document order. The
// expected shape is {"HH:MM:SS,mmm": ["name", ...], ...}.
func ParseEntries(r io.Reader) ([]Entry, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading analyzer output: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("analyzer output is not a JSON object")
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading analyzer output key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("analyzer output key is not a string")
		}

		var names []string
		if err := dec.Decode(&names); err != nil {
			return nil, fmt.Errorf("reading names for %q: %w", key, err)
		}

		entries = append(entries, Entry{Timecode: key, Names: names})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading analyzer output: %w", err)
	}

	return entries, nil
}

// Candidates expands entries into tag candidates. Each entry's interval runs
// to the next entry's timecode; the last entry gets one second. One candidate
// per detected name. Entries with an unparseable timecode are skipped.
func Candidates(entries []Entry) []Candidate {
	var candidates []Candidate
	for i, entry := range entries {
		start := timecode.Parse(entry.Timecode)
		if math.IsNaN(start) {
			continue
		}

		end := start + 1
		if i+1 < len(entries) {
			if next := timecode.Parse(entries[i+1].Timecode); !math.IsNaN(next) {
				end = next
			}
		}

		for _, name := range entry.Names {
			candidates = append(candidates, Candidate{Name: name, Start: start, End: end})
		}
	}
	return candidates
}

// ParseCandidates is the composed helper used by the service
func ParseCandidates(raw []byte) ([]Candidate, error) {
	entries, err := ParseEntries(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return Candidates(entries), nil
}
