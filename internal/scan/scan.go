// Package scan extracts typed scalars from the line-oriented diagnostic
// output of external tools. The rest of the system depends only on the
// values it returns, never on the raw text.
package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

var (
	// ErrNotFound means no line matched the pattern after a full scan.
	ErrNotFound = errors.New("value not found")
	// ErrAmbiguous means a second line matched where exactly one was
	// expected.
	ErrAmbiguous = errors.New("ambiguous value")
)

// Scalar scans r line by line and returns the first capture group of the
// single line matching re. Exactly one line must match: a second match
// is ErrAmbiguous, zero matches is ErrNotFound. This policy is a
// contract, not an accident of the loop.
func Scalar(r io.Reader, re *regexp.Regexp) (string, error) {
	var value string
	found := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := re.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		if found {
			return "", fmt.Errorf("%w: pattern %q", ErrAmbiguous, re)
		}
		value = m[1]
		found = true
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: pattern %q", ErrNotFound, re)
	}
	return value, nil
}

// Int is Scalar with the capture parsed as a decimal integer.
func Int(r io.Reader, re *regexp.Regexp) (int, error) {
	s, err := Scalar(r, re)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("capture %q is not an integer: %w", s, err)
	}
	return n, nil
}

// Int64s collects the first capture group of every matching line, in
// input order, parsed as decimal integers. Zero matches is ErrNotFound.
func Int64s(r io.Reader, re *regexp.Regexp) ([]int64, error) {
	var values []int64

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := re.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("capture %q is not an integer: %w", m[1], err)
		}
		values = append(values, n)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: pattern %q", ErrNotFound, re)
	}
	return values, nil
}
