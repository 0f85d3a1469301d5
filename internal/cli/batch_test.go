package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/generated/choein/pkg/dict"
)

func batchStore(t *testing.T) *dict.Store {
	t.Helper()
	dir := t.TempDir()
	s := dict.NewStore(filepath.Join(dir, "danzi.txt"), filepath.Join(dir, "ciku.txt"))
	s.Chars = dict.CharTable{'中': "khk", '国': "lgyi", '华': "wxfj"}
	s.Words = dict.WordDict{"khwx": {"中华"}}
	s.Index.Rebuild(s.Words)
	return s
}

func TestBatchModeAddsAndSkips(t *testing.T) {
	store := batchStore(t)
	batchPath := filepath.Join(t.TempDir(), "batch_add.txt")
	// 中华 is already known and must be skipped; 中国 resolves cleanly.
	if err := os.WriteFile(batchPath, []byte("中华\n中国\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPrompterFrom(strings.NewReader(""), io.Discard)
	BatchMode(store, p, batchPath)

	if !reflect.DeepEqual(store.Words["khlg"], []string{"中国"}) {
		t.Errorf("Words[khlg] = %v, want [中国]", store.Words["khlg"])
	}
	if len(store.Words["khwx"]) != 1 {
		t.Errorf("already-known word must not be re-added: %v", store.Words["khwx"])
	}

	data, err := os.ReadFile(batchPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("batch file must be truncated after processing, got %q", data)
	}
}

func TestBatchModePromptsForMissingChars(t *testing.T) {
	store := batchStore(t)
	batchPath := filepath.Join(t.TempDir(), "batch_add.txt")
	if err := os.WriteFile(batchPath, []byte("中文\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// The prompter answers the missing-character question for 文.
	p := NewPrompterFrom(strings.NewReader("yygy\n"), io.Discard)
	BatchMode(store, p, batchPath)

	if store.Chars['文'] != "yygy" {
		t.Errorf("Chars['文'] = %q, want yygy", store.Chars['文'])
	}
	// 中文: khk + yygy -> kh + yy
	if !reflect.DeepEqual(store.Words["khyy"], []string{"中文"}) {
		t.Errorf("Words[khyy] = %v, want [中文]", store.Words["khyy"])
	}
}

func TestBatchModeSkipsWordOnInvalidCode(t *testing.T) {
	store := batchStore(t)
	batchPath := filepath.Join(t.TempDir(), "batch_add.txt")
	if err := os.WriteFile(batchPath, []byte("中文\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPrompterFrom(strings.NewReader("NOT-A-CODE\n"), io.Discard)
	BatchMode(store, p, batchPath)

	if store.Words.ContainsWord("中文") {
		t.Error("word with an invalid character code must be skipped")
	}
}

func TestPrompterConfirm(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false}, // EOF
	}
	for _, tc := range testCases {
		p := NewPrompterFrom(strings.NewReader(tc.input), io.Discard)
		if got := p.Confirm("? "); got != tc.want {
			t.Errorf("Confirm with input %q = %v, want %v", tc.input, got, tc.want)
		}
	}
}
