package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmazur/album-archiver/internal/meta"
)

func TestStartsFromLengths(t *testing.T) {
	tests := []struct {
		name     string
		lengths  []int64
		expected []int64
	}{
		{
			name:     "three tracks",
			lengths:  []int64{1_323_000, 1_323_000, 441_000},
			expected: []int64{0, 1_323_000, 2_646_000},
		},
		{
			name:     "single track",
			lengths:  []int64{100},
			expected: []int64{0},
		},
		{
			name:     "empty",
			lengths:  []int64{},
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, startsFromLengths(tt.lengths))
		})
	}
}

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "AC-DC - Back In Black", sanitizeTitle("AC/DC - Back In Black"))
	assert.Equal(t, "What Is Love", sanitizeTitle("What Is Love?"))
	assert.Equal(t, "a-b-c", sanitizeTitle(`a\b|c`))
}

func TestRebuildTagsKeysTracksToChapterUIDs(t *testing.T) {
	chapters, err := meta.FromBoundaries(
		[]string{"Chapter One", "Chapter Two"},
		[]int64{0, 100},
		[]int64{11, 22},
	)
	require.NoError(t, err)

	// The old tags know track 11 by a proper title; track 22 is a
	// fresh UID the old tags cannot reference.
	old, err := meta.BuildTags("A", "B", "2020", "Rock", []string{"Real Title", "Lost"}, []int64{11, 99})
	require.NoError(t, err)

	rebuilt, err := rebuildTags(chapters, old)
	require.NoError(t, err)

	assert.Equal(t, []int64{11, 22}, []int64{rebuilt.Tracks[0].UID, rebuilt.Tracks[1].UID})
	assert.Equal(t, "Real Title", rebuilt.Tracks[0].Title)
	assert.Equal(t, "Chapter Two", rebuilt.Tracks[1].Title)
	assert.Equal(t, 2, rebuilt.TotalParts())
}

func TestPromptAlbum(t *testing.T) {
	in := strings.NewReader("The Artist\nThe Album\n1997\nRock\nFirst\nSecond\n")
	var out strings.Builder

	album, names, err := promptAlbum(in, &out, 2)
	require.NoError(t, err)

	assert.Equal(t, "The Artist", album.Artist)
	assert.Equal(t, "The Album", album.Title)
	assert.Equal(t, "1997", album.Year)
	assert.Equal(t, "Rock", album.Genre)
	assert.Equal(t, []string{"First", "Second"}, names)

	assert.Contains(t, out.String(), "Track 01: ")
	assert.Contains(t, out.String(), "Track 02: ")
}

func TestPromptAlbumTruncatedInput(t *testing.T) {
	in := strings.NewReader("The Artist\nThe Album\n")
	var out strings.Builder

	_, _, err := promptAlbum(in, &out, 2)
	assert.Error(t, err)
}
