/*
Package importer ingests third-party dictionary text files of unknown
encoding and layout, and merges them into the managed tables.

Analysis is heuristic: the encoding is found by trying a fixed fallback
chain, the delimiter by sniffing the first line, and the field order by
majority vote over a sample of lines. A vote tie is reported as
indeterminate rather than guessed.
*/
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/generated/choein/pkg/dict"
)

var (
	// ErrEncodingUnresolved signals that no candidate encoding decoded the file.
	ErrEncodingUnresolved = errors.New("no candidate encoding decoded the file")
	// ErrFormatIndeterminate signals a field-order vote tie or an empty file.
	ErrFormatIndeterminate = errors.New("field order could not be determined")
)

// FieldOrder describes which field of an import line holds the code.
type FieldOrder int

const (
	OrderUnknown FieldOrder = iota
	CodeFirst
	WordFirst
)

func (o FieldOrder) String() string {
	switch o {
	case CodeFirst:
		return "code_first"
	case WordFirst:
		return "word_first"
	}
	return "unknown"
}

// Structure describes the per-line cardinality of an import file.
type Structure int

const (
	// StructureSingle means one word per line.
	StructureSingle Structure = iota
	// StructureMulti means at least one line carries several words per code.
	StructureMulti
)

func (s Structure) String() string {
	if s == StructureMulti {
		return "multi"
	}
	return "single"
}

// Entry is one normalized (word, code) pair decoded from an import file.
// It has no persistent identity; the merge engine consumes it immediately.
type Entry struct {
	Word string
	Code string
}

// Analysis is the result of one import file analysis: the detected
// properties plus every decoded entry in input line order.
type Analysis struct {
	Encoding  string
	Delimiter string // "tab" or "space"
	Order     FieldOrder
	Structure Structure
	Entries   []Entry
}

// sampleSize is how many non-empty lines feed the field-order vote.
const sampleSize = 100

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type candidateEncoding struct {
	name string
	dec  func([]byte) (string, error)
}

// The fallback chain, tried in order. UTF-8 must come first and accept
// input without a BOM: the UTF-16LE candidate decodes any even-length
// byte sequence without surrogate fragments into plausible garbage, so a
// UTF-8 file that reaches it would be claimed and mangled. GB18030 decodes
// nearly any byte sequence, so it comes after the Unicode encodings.
var candidateEncodings = []candidateEncoding{
	{"utf-8-sig", decodeUTF8Sig},
	{"utf-16", decoderFor(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))},
	{"gb18030", decoderFor(simplifiedchinese.GB18030)},
	{"gbk", decoderFor(simplifiedchinese.GBK)},
}

// decodeUTF8Sig accepts UTF-8 with or without a leading BOM, stripping
// the BOM when present.
func decodeUTF8Sig(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", errors.New("invalid UTF-8")
	}
	return string(raw), nil
}

// decoderFor adapts an x/text encoding into a strict decode function.
// The x/text decoders substitute U+FFFD for undecodable bytes, so the
// presence of a replacement rune in the output marks a failed decode.
func decoderFor(enc encoding.Encoding) func([]byte) (string, error) {
	return func(raw []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		if bytes.ContainsRune(out, utf8.RuneError) {
			return "", errors.New("undecodable bytes")
		}
		return string(out), nil
	}
}

// Analyze inspects the raw bytes of an import file and, when every heuristic
// resolves, returns the full decoded entry list. Entries keep input line
// order; duplicates are not dropped here, that is the merge engine's job.
func Analyze(raw []byte) (*Analysis, error) {
	text, encName, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: file has no usable lines", ErrFormatIndeterminate)
	}

	a := &Analysis{Encoding: encName, Delimiter: "space"}
	sep := " "
	if strings.ContainsRune(lines[0], '\t') {
		a.Delimiter = "tab"
		sep = "\t"
	}

	a.Order, err = voteFieldOrder(lines, sep)
	if err != nil {
		return nil, err
	}
	a.decodeEntries(lines, sep)

	log.Debugf("Analysis: encoding=%s delimiter=%s order=%s structure=%s entries=%d",
		a.Encoding, a.Delimiter, a.Order, a.Structure, len(a.Entries))
	return a, nil
}

func decodeText(raw []byte) (string, string, error) {
	for _, cand := range candidateEncodings {
		text, err := cand.dec(raw)
		if err == nil {
			log.Debugf("Decoded import file as %s", cand.name)
			return text, cand.name, nil
		}
	}
	return "", "", ErrEncodingUnresolved
}

// voteFieldOrder samples the first lines and counts, per two-field line,
// which side looks like a code. A strict majority decides; a tie, including
// zero votes on both sides, is indeterminate.
func voteFieldOrder(lines []string, sep string) (FieldOrder, error) {
	sample := lines
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	codeFirst, wordFirst := 0, 0
	for _, line := range sample {
		parts := strings.Split(line, sep)
		if len(parts) < 2 {
			continue
		}
		switch {
		case dict.IsCode(parts[0]) && !dict.IsCode(parts[1]):
			codeFirst++
		case !dict.IsCode(parts[0]) && dict.IsCode(parts[1]):
			wordFirst++
		}
	}

	switch {
	case codeFirst > wordFirst:
		return CodeFirst, nil
	case wordFirst > codeFirst:
		return WordFirst, nil
	}
	return OrderUnknown, fmt.Errorf("%w: %d code-first vs %d word-first votes",
		ErrFormatIndeterminate, codeFirst, wordFirst)
}

// decodeEntries re-scans every line under the decided field order.
//
// Code-first lines may carry several words sharing one code; lines whose
// code field is not code-like are skipped silently. Word-first lines are
// accepted only with exactly two fields, a conservative choice since
// multi-field word-first lines are ambiguous.
func (a *Analysis) decodeEntries(lines []string, sep string) {
	for _, line := range lines {
		parts := strings.Split(line, sep)
		if len(parts) < 2 {
			continue
		}
		if a.Order == CodeFirst {
			code, words := parts[0], parts[1:]
			if len(words) > 1 {
				a.Structure = StructureMulti
			}
			if !dict.IsCode(code) {
				continue
			}
			for _, w := range words {
				a.Entries = append(a.Entries, Entry{Word: w, Code: code})
			}
		} else {
			if len(parts) == 2 && dict.IsCode(parts[1]) {
				a.Entries = append(a.Entries, Entry{Word: parts[0], Code: parts[1]})
			}
		}
	}
}
