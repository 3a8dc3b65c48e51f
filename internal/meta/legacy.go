package meta

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmazur/album-archiver/internal/timecode"
)

// Legacy plain-text chapter variant:
//
//	CHAPTER01=00:00:00.000
//	CHAPTER01NAME=Intro
//
// Millisecond precision, fixed at the 44100 Hz CDDA rate. The format
// carries no sample rate, so it is silently wrong for any other rate;
// that limitation is inherent to the format and preserved here.

var legacyLine = regexp.MustCompile(`^CHAPTER(\d{2,})(NAME)?=(.*)$`)

// EncodeLegacy renders the chapters in the legacy CHAPTERnn text form.
func (c *Chapters) EncodeLegacy() []byte {
	var buf bytes.Buffer
	for i, b := range c.Boundaries {
		fmt.Fprintf(&buf, "CHAPTER%02d=%s\n", i+1, timecode.FormatLegacy(b.StartSample))
		fmt.Fprintf(&buf, "CHAPTER%02dNAME=%s\n", i+1, b.Name)
	}
	return buf.Bytes()
}

// DecodeLegacy parses the legacy CHAPTERnn text form. The format has no
// chapter UIDs, so fresh ones are drawn from gen.
func DecodeLegacy(data []byte, gen *Generator) (*Chapters, error) {
	var names []string
	var starts []int64

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		m := legacyLine.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{Reason: "unrecognized chapter line", Field: line}
		}
		if m[2] == "NAME" {
			if len(names) != len(starts)-1 {
				return nil, &ParseError{Reason: "chapter name without timecode", Field: line}
			}
			names = append(names, m[3])
			continue
		}
		if len(starts) != len(names) {
			return nil, &ParseError{Reason: "chapter timecode without name", Field: line}
		}
		samples, err := timecode.ParseLegacy(m[3])
		if err != nil {
			return nil, &ParseError{Reason: err.Error()}
		}
		starts = append(starts, samples)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(names) != len(starts) {
		return nil, &ParseError{Reason: "unpaired chapter records"}
	}
	return FromBoundaries(names, starts, gen.UIDs(len(names)))
}
