package meta

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// Matroska target-type values: 50 scopes a record to the whole album,
// 30 to a single track.
const (
	targetAlbum = 50
	targetTrack = 30
)

// Album-scope field names.
const (
	fieldArtist     = "ARTIST"
	fieldTitle      = "TITLE"
	fieldDate       = "DATE_RELEASED"
	fieldGenre      = "GENRE"
	fieldTotalParts = "TOTAL_PARTS"
	fieldPartNumber = "PART_NUMBER"
)

// TrackTag carries the per-track metadata correlated to a chapter
// boundary by its UID.
type TrackTag struct {
	UID        int64
	Title      string
	PartNumber int
}

// Tags is the album-scope metadata plus one TrackTag per track.
type Tags struct {
	Artist string
	Title  string
	Year   string
	Genre  string
	Tracks []TrackTag
}

// TotalParts is the track count of the album.
func (t *Tags) TotalParts() int {
	return len(t.Tracks)
}

// TrackByUID returns the track tag cross-referenced by the given
// chapter UID.
func (t *Tags) TrackByUID(uid int64) (TrackTag, bool) {
	for _, tr := range t.Tracks {
		if tr.UID == uid {
			return tr, true
		}
	}
	return TrackTag{}, false
}

// BuildTags assembles album tags from album-scope fields plus parallel
// track-name and UID sequences. Part numbers are assigned from playback
// order, starting at one.
func BuildTags(artist, title, year, genre string, trackNames []string, uids []int64) (*Tags, error) {
	if len(trackNames) != len(uids) {
		return nil, &ValidationError{
			Detail: fmt.Sprintf("got %d track names, %d uids", len(trackNames), len(uids)),
		}
	}
	t := &Tags{
		Artist: artist,
		Title:  title,
		Year:   year,
		Genre:  genre,
		Tracks: make([]TrackTag, len(trackNames)),
	}
	for i := range trackNames {
		t.Tracks[i] = TrackTag{
			UID:        uids[i],
			Title:      trackNames[i],
			PartNumber: i + 1,
		}
	}
	return t, nil
}

// Matroska tag XML document tree.
type tagDoc struct {
	XMLName xml.Name  `xml:"Tags"`
	Tags    []tagElem `xml:"Tag"`
}

type tagElem struct {
	Targets tagTargets  `xml:"Targets"`
	Simple  []simpleTag `xml:"Simple"`
}

type tagTargets struct {
	TargetTypeValue int    `xml:"TargetTypeValue"`
	ChapterUID      *int64 `xml:"ChapterUID,omitempty"`
}

type simpleTag struct {
	Name   string `xml:"Name"`
	String string `xml:"String"`
}

// EncodeXML renders the tags as a Matroska tag file: one album-scope Tag
// element followed by one track-scope Tag element per track.
func (t *Tags) EncodeXML() ([]byte, error) {
	doc := tagDoc{
		Tags: []tagElem{{
			Targets: tagTargets{TargetTypeValue: targetAlbum},
			Simple: []simpleTag{
				{Name: fieldArtist, String: t.Artist},
				{Name: fieldTitle, String: t.Title},
				{Name: fieldDate, String: t.Year},
				{Name: fieldGenre, String: t.Genre},
				{Name: fieldTotalParts, String: strconv.Itoa(t.TotalParts())},
			},
		}},
	}
	for _, tr := range t.Tracks {
		uid := tr.UID
		doc.Tags = append(doc.Tags, tagElem{
			Targets: tagTargets{TargetTypeValue: targetTrack, ChapterUID: &uid},
			Simple: []simpleTag{
				{Name: fieldTitle, String: tr.Title},
				{Name: fieldPartNumber, String: strconv.Itoa(tr.PartNumber)},
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

// DecodeTagsXML decodes a Matroska tag file, locating records by target
// scope and field name. A required album-scope field absent after the
// full scan is a parse failure; absent track-scope fields are accepted
// silently.
func DecodeTagsXML(data []byte) (*Tags, error) {
	var doc tagDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: "invalid tag XML: " + err.Error()}
	}

	t := &Tags{}
	album := map[string]string{}
	for _, tag := range doc.Tags {
		switch tag.Targets.TargetTypeValue {
		case targetAlbum:
			for _, s := range tag.Simple {
				album[s.Name] = s.String
			}
		case targetTrack:
			tr := TrackTag{}
			if tag.Targets.ChapterUID != nil {
				tr.UID = *tag.Targets.ChapterUID
			}
			for _, s := range tag.Simple {
				switch s.Name {
				case fieldTitle:
					tr.Title = s.String
				case fieldPartNumber:
					n, err := strconv.Atoi(s.String)
					if err != nil {
						return nil, &ParseError{Reason: "bad part number", Field: s.String}
					}
					tr.PartNumber = n
				}
			}
			t.Tracks = append(t.Tracks, tr)
		}
	}

	for _, name := range []string{fieldArtist, fieldTitle, fieldDate, fieldGenre, fieldTotalParts} {
		if _, ok := album[name]; !ok {
			return nil, &ParseError{Reason: "missing field", Field: name}
		}
	}
	t.Artist = album[fieldArtist]
	t.Title = album[fieldTitle]
	t.Year = album[fieldDate]
	t.Genre = album[fieldGenre]

	if total, err := strconv.Atoi(album[fieldTotalParts]); err != nil || total != len(t.Tracks) {
		return nil, &ParseError{
			Reason: "total parts disagrees with track records",
			Field:  album[fieldTotalParts],
		}
	}
	return t, nil
}
