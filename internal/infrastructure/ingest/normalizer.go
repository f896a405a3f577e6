// Package ingest normalizes bulk item uploads into unloading line drafts.
package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/omnideploy/backend/internal/domain/receiving"
)

// Result is the outcome of one normalization pass
type Result struct {
	// Drafts are the usable unloading lines, in file order
	Drafts []receiving.ItemDraft
	// Dropped counts rows skipped for missing description or quantity
	Dropped int
	// TotalRows counts data rows read, excluding the header
	TotalRows int
}

// Normalizer turns an uploaded file into unloading line drafts
type Normalizer interface {
	Normalize(r io.Reader) (*Result, error)
}

// CSVNormalizer reads comma-separated uploads with a fixed column layout:
// description, quantity, condition (optional). The first row is a header
// and is always skipped. Rows missing a description or a parseable
// positive quantity are dropped silently and counted, not rejected:
// uploads come from hand-edited spreadsheets and a stray blank line
// should not block the whole file.
type CSVNormalizer struct {
	delimiter rune
}

// CSVOption is a functional option for CSVNormalizer configuration
type CSVOption func(*CSVNormalizer)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) CSVOption {
	return func(n *CSVNormalizer) {
		n.delimiter = d
	}
}

// NewCSVNormalizer creates a new CSVNormalizer
func NewCSVNormalizer(opts ...CSVOption) *CSVNormalizer {
	n := &CSVNormalizer{delimiter: ','}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize parses the upload and returns the usable drafts
func (n *CSVNormalizer) Normalize(r io.Reader) (*Result, error) {
	bufReader := bufio.NewReader(r)

	// Detect and strip UTF-8 BOM
	head, err := bufReader.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = bufReader.Discard(3)
	}

	if err := validateUTF8(bufReader); err != nil {
		return nil, err
	}

	reader := csv.NewReader(bufReader)
	reader.Comma = n.delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	result := &Result{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", result.TotalRows+2, err)
		}

		result.TotalRows++
		draft, ok := n.toDraft(record)
		if !ok {
			result.Dropped++
			continue
		}
		result.Drafts = append(result.Drafts, draft)
	}

	return result, nil
}

func (n *CSVNormalizer) toDraft(record []string) (receiving.ItemDraft, bool) {
	if len(record) < 2 {
		return receiving.ItemDraft{}, false
	}

	description := strings.TrimSpace(record[0])
	if description == "" {
		return receiving.ItemDraft{}, false
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil || quantity < 1 {
		return receiving.ItemDraft{}, false
	}

	draft := receiving.ItemDraft{
		Description: description,
		Quantity:    quantity,
	}
	if len(record) > 2 {
		draft.Condition = strings.TrimSpace(record[2])
	}
	return draft, true
}

func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read upload for encoding validation: %w", err)
	}

	if len(content) == 0 {
		return ErrEmptyFile
	}
	// A full peek window can cut a multi-byte rune in half; drop the
	// incomplete tail before validating so a rune straddling the window
	// edge is not mistaken for a bad byte.
	if len(content) == checkSize {
		content = trimPartialRune(content)
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

// trimPartialRune removes an incomplete trailing UTF-8 sequence, if any.
func trimPartialRune(b []byte) []byte {
	for trimmed := 0; trimmed < utf8.UTFMax-1 && len(b) > 0; trimmed++ {
		r, size := utf8.DecodeLastRune(b)
		if r != utf8.RuneError || size != 1 {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

// Ensure CSVNormalizer implements Normalizer
var _ Normalizer = (*CSVNormalizer)(nil)
