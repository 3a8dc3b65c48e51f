package pipeline

import (
	"bufio"
	"fmt"
	"io"
)

// albumInput is the free-text metadata collected from the operator.
type albumInput struct {
	Artist string
	Title  string
	Year   string
	Genre  string
}

// promptAlbum collects album fields and one name per track. It is
// designed to run while the disc capture proceeds in the background.
func promptAlbum(in io.Reader, out io.Writer, trackCount int) (albumInput, []string, error) {
	sc := bufio.NewScanner(in)
	ask := func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}

	var album albumInput
	var err error
	if album.Artist, err = ask("Artist"); err != nil {
		return album, nil, err
	}
	if album.Title, err = ask("Album"); err != nil {
		return album, nil, err
	}
	if album.Year, err = ask("Year"); err != nil {
		return album, nil, err
	}
	if album.Genre, err = ask("Genre"); err != nil {
		return album, nil, err
	}

	names := make([]string, trackCount)
	for i := range names {
		if names[i], err = ask(fmt.Sprintf("Track %02d", i+1)); err != nil {
			return album, nil, err
		}
	}
	return album, names, nil
}
