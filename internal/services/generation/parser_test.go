package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntries(t *testing.T) {
	t.Run("preserves document order", func(t *testing.T) {
		raw := `{
			"00:00:10,000": ["car", "street"],
			"00:00:05,000": ["intro"],
			"00:00:20,000": []
		}`

		entries, err := ParseEntries(strings.NewReader(raw))
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "00:00:10,000", entries[0].Timecode)
		assert.Equal(t, []string{"car", "street"}, entries[0].Names)
		assert.Equal(t, "00:00:05,000", entries[1].Timecode)
		assert.Equal(t, "00:00:20,000", entries[2].Timecode)
		assert.Empty(t, entries[2].Names)
	})

	t.Run("rejects non-object output", func(t *testing.T) {
		_, err := ParseEntries(strings.NewReader(`["a", "b"]`))
		assert.Error(t, err)
	})

	t.Run("rejects truncated output", func(t *testing.T) {
		_, err := ParseEntries(strings.NewReader(`{"00:00:05,000": ["intro"]`))
		assert.Error(t, err)
	})

	t.Run("rejects non-array values", func(t *testing.T) {
		_, err := ParseEntries(strings.NewReader(`{"00:00:05,000": "intro"}`))
		assert.Error(t, err)
	})

	t.Run("empty object yields no entries", func(t *testing.T) {
		entries, err := ParseEntries(strings.NewReader(`{}`))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestCandidates(t *testing.T) {
	t.Run("interval runs to next entry", func(t *testing.T) {
		entries := []Entry{
			{Timecode: "00:00:05,000", Names: []string{"intro"}},
			{Timecode: "00:00:12,500", Names: []string{"car", "street"}},
			{Timecode: "00:00:30,000", Names: []string{"outro"}},
		}

		candidates := Candidates(entries)
		require.Len(t, candidates, 4)

		assert.Equal(t, Candidate{Name: "intro", Start: 5, End: 12.5}, candidates[0])
		assert.Equal(t, Candidate{Name: "car", Start: 12.5, End: 30}, candidates[1])
		assert.Equal(t, Candidate{Name: "street", Start: 12.5, End: 30}, candidates[2])
		// Last entry gets one second.
		assert.Equal(t, Candidate{Name: "outro", Start: 30, End: 31}, candidates[3])
	})

	t.Run("skips unparseable timecodes", func(t *testing.T) {
		entries := []Entry{
			{Timecode: "garbage", Names: []string{"a"}},
			{Timecode: "00:00:05,000", Names: []string{"b"}},
		}

		candidates := Candidates(entries)
		require.Len(t, candidates, 1)
		assert.Equal(t, "b", candidates[0].Name)
	})

	t.Run("bare minute second timecodes", func(t *testing.T) {
		entries := []Entry{
			{Timecode: "01:15", Names: []string{"a"}},
		}

		candidates := Candidates(entries)
		require.Len(t, candidates, 1)
		assert.Equal(t, 75.0, candidates[0].Start)
		assert.Equal(t, 76.0, candidates[0].End)
	})
}
