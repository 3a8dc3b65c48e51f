package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmazur/album-archiver/internal/scan"
)

func TestTOCRowPattern(t *testing.T) {
	output := strings.Join([]string{
		"cdparanoia III release 10.2",
		"",
		"Table of contents (audio tracks only):",
		"track        length               begin        copy pre ch",
		"===========================================================",
		"  1.    16325 [03:37.50]        0 [00:00.00]    no   no  2",
		"  2.    20825 [04:37.50]    16325 [03:37.50]    no   no  2",
		" 10.     9025 [02:00.25]    37150 [08:15.25]    no   no  2",
		"TOTAL   46175 [10:15.50]    (audio only)",
		"",
	}, "\n")

	sectors, err := scan.Int64s(bytes.NewReader([]byte(output)), tocRow)
	require.NoError(t, err)
	assert.Equal(t, []int64{16325, 20825, 9025}, sectors)
}

func TestSectorToSampleScaling(t *testing.T) {
	// One second of CDDA is 75 sectors of 588 samples.
	assert.Equal(t, int64(CDDARate), int64(75)*SamplesPerSector)
}

func TestDecodeSpanArgs(t *testing.T) {
	args := decodeSpanArgs("in.flac", "out.wav", 1_323_000, 2_646_000)
	assert.Equal(t, []string{
		"--decode", "--silent", "--force",
		"--skip=1323000", "--until=2646000",
		"-o", "out.wav", "in.flac",
	}, args)

	// The last track has no upper bound.
	args = decodeSpanArgs("in.flac", "out.wav", 2_646_000, -1)
	assert.NotContains(t, args, "--until=-1")
	assert.Contains(t, args, "--skip=2646000")
}

func TestMuxArgs(t *testing.T) {
	args := muxArgs(MuxParams{
		Output:       "out.mka",
		Title:        "Artist - Album",
		StreamPath:   "stream.flac",
		CoverPath:    "front.jpg",
		TagsPath:     "tags.xml",
		ChaptersPath: "chapters.xml",
	})

	assert.Equal(t, "stream.flac", args[len(args)-1])
	assert.Contains(t, args, "--disable-track-statistics-tags")

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "--attachment-name cover.jpg")
	assert.Contains(t, joined, "--attachment-mime-type image/jpeg")
	assert.Contains(t, joined, "--attach-file front.jpg")
	assert.Contains(t, joined, "--chapters chapters.xml")
	assert.Contains(t, joined, "--global-tags tags.xml")
}

func TestMP3Args(t *testing.T) {
	args := mp3Args(MP3Params{
		Input:      "track.wav",
		Output:     "track.mp3",
		Bitrate:    192,
		Title:      "T1",
		Artist:     "A",
		Album:      "B",
		Year:       "2020",
		Genre:      "Rock",
		TrackNum:   1,
		TrackTotal: 2,
		CoverPath:  "cover.jpg",
	})

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-b 192")
	assert.Contains(t, joined, "--tn 1/2")
	assert.Contains(t, joined, "--ti cover.jpg")
	assert.Equal(t, "track.wav", args[len(args)-2])
	assert.Equal(t, "track.mp3", args[len(args)-1])
}
