package meta

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/tmazur/album-archiver/internal/timecode"
)

// Boundary marks the start of one track: a unique chapter UID, a start
// offset in samples, and a display name. Insertion order is playback
// order.
type Boundary struct {
	UID         int64
	StartSample int64
	Name        string
}

// Chapters is an ordered sequence of track boundaries.
type Chapters struct {
	Boundaries []Boundary
}

// FromBoundaries assembles chapters from parallel name, start-sample and
// UID sequences.
func FromBoundaries(names []string, startSamples []int64, uids []int64) (*Chapters, error) {
	if len(names) != len(startSamples) || len(names) != len(uids) {
		return nil, &ValidationError{
			Detail: fmt.Sprintf("got %d names, %d start samples, %d uids",
				len(names), len(startSamples), len(uids)),
		}
	}
	c := &Chapters{Boundaries: make([]Boundary, len(names))}
	for i := range names {
		c.Boundaries[i] = Boundary{
			UID:         uids[i],
			StartSample: startSamples[i],
			Name:        names[i],
		}
	}
	return c, nil
}

// Lengths returns the forward differences of consecutive start samples.
// The result has one entry fewer than the boundary count; the last
// track's length needs a total stream length, see LengthsWithTotal.
func (c *Chapters) Lengths() []int64 {
	if len(c.Boundaries) == 0 {
		return nil
	}
	lengths := make([]int64, 0, len(c.Boundaries)-1)
	for i := 0; i+1 < len(c.Boundaries); i++ {
		lengths = append(lengths, c.Boundaries[i+1].StartSample-c.Boundaries[i].StartSample)
	}
	return lengths
}

// LengthsWithTotal returns one length per track, deriving the last from
// the supplied total sample count.
func (c *Chapters) LengthsWithTotal(totalSamples int64) []int64 {
	if len(c.Boundaries) == 0 {
		return nil
	}
	last := c.Boundaries[len(c.Boundaries)-1]
	return append(c.Lengths(), totalSamples-last.StartSample)
}

// UIDs returns the chapter UIDs in playback order.
func (c *Chapters) UIDs() []int64 {
	uids := make([]int64, len(c.Boundaries))
	for i, b := range c.Boundaries {
		uids[i] = b.UID
	}
	return uids
}

// Names returns the display names in playback order.
func (c *Chapters) Names() []string {
	names := make([]string, len(c.Boundaries))
	for i, b := range c.Boundaries {
		names[i] = b.Name
	}
	return names
}

// Matroska chapter XML document tree.
type chapterDoc struct {
	XMLName xml.Name     `xml:"Chapters"`
	Edition editionEntry `xml:"EditionEntry"`
}

type editionEntry struct {
	Atoms []chapterAtom `xml:"ChapterAtom"`
}

type chapterAtom struct {
	UID       int64          `xml:"ChapterUID"`
	TimeStart string         `xml:"ChapterTimeStart"`
	Display   chapterDisplay `xml:"ChapterDisplay"`
}

type chapterDisplay struct {
	String   string `xml:"ChapterString"`
	Language string `xml:"ChapterLanguage"`
}

// chapterLanguage is the fixed "undetermined" marker emitted with every
// boundary record.
const chapterLanguage = "und"

// EncodeXML renders the chapters as a Matroska chapter file, formatting
// each start offset at the given sample rate with nanosecond precision.
func (c *Chapters) EncodeXML(sampleRate int) ([]byte, error) {
	doc := chapterDoc{}
	for _, b := range c.Boundaries {
		doc.Edition.Atoms = append(doc.Edition.Atoms, chapterAtom{
			UID:       b.UID,
			TimeStart: timecode.Format(b.StartSample, sampleRate),
			Display: chapterDisplay{
				String:   b.Name,
				Language: chapterLanguage,
			},
		})
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DecodeChaptersXML decodes a Matroska chapter file. Timecodes in this
// encoding are rate-normalized nanoseconds by convention, so they are
// read in the nanosecond domain first and rescaled to the caller's
// sample rate, never against any rate the original producer used.
func DecodeChaptersXML(data []byte, sampleRate int) (*Chapters, error) {
	var doc chapterDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: "invalid chapter XML: " + err.Error()}
	}
	c := &Chapters{Boundaries: make([]Boundary, 0, len(doc.Edition.Atoms))}
	for _, atom := range doc.Edition.Atoms {
		nanos, err := timecode.Parse(atom.TimeStart, timecode.NanosPerSecond)
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		c.Boundaries = append(c.Boundaries, Boundary{
			UID:         atom.UID,
			StartSample: rescale(nanos, sampleRate),
			Name:        atom.Display.String,
		})
	}
	return c, nil
}

// rescale converts nanoseconds to samples, rounding half up.
func rescale(nanos int64, sampleRate int) int64 {
	return (nanos*int64(sampleRate) + timecode.NanosPerSecond/2) / timecode.NanosPerSecond
}
