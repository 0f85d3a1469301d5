package importer

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

func TestAnalyzeCodeFirstTabSingle(t *testing.T) {
	raw := []byte("khk\t中\nyygy\t文\nkhtg\t中国\n")

	a, err := Analyze(raw)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Delimiter != "tab" {
		t.Errorf("delimiter = %s, want tab", a.Delimiter)
	}
	if a.Order != CodeFirst {
		t.Errorf("order = %s, want code_first", a.Order)
	}
	if a.Structure != StructureSingle {
		t.Errorf("structure = %s, want single", a.Structure)
	}
	want := []Entry{{"中", "khk"}, {"文", "yygy"}, {"中国", "khtg"}}
	if !reflect.DeepEqual(a.Entries, want) {
		t.Errorf("entries = %v, want %v", a.Entries, want)
	}
}

func TestAnalyzeMultiWordLines(t *testing.T) {
	raw := []byte("kh 中 中国 中华\nyy 文\n")

	a, err := Analyze(raw)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Delimiter != "space" {
		t.Errorf("delimiter = %s, want space", a.Delimiter)
	}
	if a.Structure != StructureMulti {
		t.Errorf("structure = %s, want multi", a.Structure)
	}
	want := []Entry{{"中", "kh"}, {"中国", "kh"}, {"中华", "kh"}, {"文", "yy"}}
	if !reflect.DeepEqual(a.Entries, want) {
		t.Errorf("entries = %v, want %v", a.Entries, want)
	}
}

func TestAnalyzeWordFirst(t *testing.T) {
	// Word-first accepts only exactly-2-field lines; the three-field line
	// and the non-code second field must be skipped.
	raw := []byte("中国 khtg\n中华 khtf\n中 khk extra\n文文 123\n")

	a, err := Analyze(raw)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Order != WordFirst {
		t.Fatalf("order = %s, want word_first", a.Order)
	}
	want := []Entry{{"中国", "khtg"}, {"中华", "khtf"}}
	if !reflect.DeepEqual(a.Entries, want) {
		t.Errorf("entries = %v, want %v", a.Entries, want)
	}
}

func TestAnalyzeVoteTieIsIndeterminate(t *testing.T) {
	// Both fields code-like on every line: zero votes each way.
	raw := []byte("abcd efgh\nijkl mnop\n")

	_, err := Analyze(raw)
	if !errors.Is(err, ErrFormatIndeterminate) {
		t.Fatalf("expected ErrFormatIndeterminate, got %v", err)
	}
}

func TestAnalyzeSplitVoteIsIndeterminate(t *testing.T) {
	// One vote for each side must not be guessed either.
	raw := []byte("khk 中\n中国 khtg\n")

	_, err := Analyze(raw)
	if !errors.Is(err, ErrFormatIndeterminate) {
		t.Fatalf("expected ErrFormatIndeterminate, got %v", err)
	}
}

func TestAnalyzeEmptyFile(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("\n\n  \n")} {
		if _, err := Analyze(raw); !errors.Is(err, ErrFormatIndeterminate) {
			t.Errorf("Analyze(%q): expected ErrFormatIndeterminate, got %v", raw, err)
		}
	}
}

func TestAnalyzeUTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("khk 中\n")...)

	a, err := Analyze(raw)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Encoding != "utf-8-sig" {
		t.Errorf("encoding = %s, want utf-8-sig", a.Encoding)
	}
	if !reflect.DeepEqual(a.Entries, []Entry{{"中", "khk"}}) {
		t.Errorf("entries = %v", a.Entries)
	}
}

func TestAnalyzePlainUTF8WithoutBOM(t *testing.T) {
	// Even byte counts on purpose: the UTF-16LE candidate would decode
	// these into garbage without error, so BOM-less UTF-8 must already be
	// accepted by the first candidate.
	cases := []struct {
		name  string
		raw   []byte
		order FieldOrder
		want  []Entry
	}{
		{
			"cjk code-first", []byte("kh 中国\nyy 文化\n"), CodeFirst,
			[]Entry{{"中国", "kh"}, {"文化", "yy"}},
		},
		{
			"ascii word-first", []byte("hello ab\nworld cd\n中文 khyy\n"), WordFirst,
			[]Entry{{"hello", "ab"}, {"world", "cd"}, {"中文", "khyy"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if len(tc.raw)%2 != 0 {
				t.Fatalf("test input must have an even byte count, got %d", len(tc.raw))
			}
			a, err := Analyze(tc.raw)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if a.Encoding != "utf-8-sig" {
				t.Errorf("encoding = %s, want utf-8-sig", a.Encoding)
			}
			if a.Order != tc.order {
				t.Errorf("order = %s, want %s", a.Order, tc.order)
			}
			if !reflect.DeepEqual(a.Entries, tc.want) {
				t.Errorf("entries = %v, want %v", a.Entries, tc.want)
			}
		})
	}
}

func TestAnalyzeUTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	raw, err := enc.Bytes([]byte("khk 中\nyygy 文\n"))
	if err != nil {
		t.Fatal(err)
	}

	a, analyzeErr := Analyze(raw)
	if analyzeErr != nil {
		t.Fatalf("Analyze: %v", analyzeErr)
	}
	if a.Encoding != "utf-16" {
		t.Errorf("encoding = %s, want utf-16", a.Encoding)
	}
	if len(a.Entries) != 2 {
		t.Errorf("entries = %v", a.Entries)
	}
}

func TestAnalyzeGB18030(t *testing.T) {
	enc := simplifiedchinese.GB18030.NewEncoder()
	// Odd byte count keeps the UTF-16 candidate from accepting it.
	raw, err := enc.Bytes([]byte("中 abc\n"))
	if err != nil {
		t.Fatal(err)
	}

	a, analyzeErr := Analyze(raw)
	if analyzeErr != nil {
		t.Fatalf("Analyze: %v", analyzeErr)
	}
	if a.Encoding != "gb18030" {
		t.Errorf("encoding = %s, want gb18030", a.Encoding)
	}
	if a.Order != WordFirst {
		t.Errorf("order = %s, want word_first", a.Order)
	}
	if !reflect.DeepEqual(a.Entries, []Entry{{"中", "abc"}}) {
		t.Errorf("entries = %v", a.Entries)
	}
}

func TestAnalyzeUndecodableBytes(t *testing.T) {
	// 0x80 alone is invalid in every candidate encoding.
	raw := []byte{0x80}
	if _, err := Analyze(raw); !errors.Is(err, ErrEncodingUnresolved) {
		t.Fatalf("expected ErrEncodingUnresolved, got %v", err)
	}
}

func TestAnalyzeSkipsNonCodeCodes(t *testing.T) {
	// Code-first with a numeric code field: the line is dropped silently.
	raw := []byte("khk 中\n123 四\nyygy 文\n")

	a, err := Analyze(raw)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []Entry{{"中", "khk"}, {"文", "yygy"}}
	if !reflect.DeepEqual(a.Entries, want) {
		t.Errorf("entries = %v, want %v", a.Entries, want)
	}
}
