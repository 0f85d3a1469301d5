package dict

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Store owns the character table and the word dictionary together with their
// backing files. Every successful mutation is flushed to disk before the
// method returns; there is no write batching. Writes are not atomic (no
// temp-file-and-rename), a crash mid-write can truncate a file.
type Store struct {
	charPath string
	wordPath string

	Chars CharTable
	Words WordDict
	Index *CodeIndex
}

// NewStore creates a store over the given backing files without loading them.
func NewStore(charPath, wordPath string) *Store {
	return &Store{
		charPath: charPath,
		wordPath: wordPath,
		Chars:    make(CharTable),
		Words:    make(WordDict),
		Index:    NewCodeIndex(nil),
	}
}

// Load reads both backing files. A missing file leaves the corresponding
// table empty and is surfaced in the returned error; the caller may continue
// with partial state.
func (s *Store) Load() error {
	var errs []error

	chars, err := LoadCharTable(s.charPath)
	if err != nil {
		errs = append(errs, err)
	}
	s.Chars = chars

	words, err := LoadWordDict(s.wordPath)
	if err != nil {
		errs = append(errs, err)
	}
	s.Words = words
	s.Index.Rebuild(s.Words)

	log.Debugf("Loaded %d characters, %d codes", len(s.Chars), len(s.Words))
	return errors.Join(errs...)
}

// LoadCharTable parses a character file: one "char code" pair per line,
// space separated. The first occurrence of a character wins; later duplicate
// lines are tolerated and ignored, matching the append-only write path.
func LoadCharTable(path string) (CharTable, error) {
	table := make(CharTable)
	file, err := os.Open(path)
	if err != nil {
		return table, fmt.Errorf("character file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		char := []rune(parts[0])[0]
		if _, ok := table[char]; !ok {
			table[char] = parts[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return table, fmt.Errorf("reading character file %s: %w", path, err)
	}
	return table, nil
}

// LoadWordDict parses a word dictionary file: one "code word1 word2 ..."
// line per code. A repeated code line replaces the earlier one.
func LoadWordDict(path string) (WordDict, error) {
	dict := make(WordDict)
	file, err := os.Open(path)
	if err != nil {
		return dict, fmt.Errorf("word dictionary %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		dict[parts[0]] = parts[1:]
	}
	if err := scanner.Err(); err != nil {
		return dict, fmt.Errorf("reading word dictionary %s: %w", path, err)
	}
	return dict, nil
}

// InsertWord appends word to the candidate list for code, creating the list
// if the code is new. Inserting an already-present word returns ErrWordExists
// and leaves the list unchanged. The dictionary file is rewritten on success.
func (s *Store) InsertWord(code, word string) error {
	words, ok := s.Words[code]
	if ok {
		for _, w := range words {
			if w == word {
				return ErrWordExists
			}
		}
	}
	s.Words[code] = append(words, word)
	s.Index.Set(code, len(s.Words[code]))
	s.saveWords()
	return nil
}

// RemoveWordAt deletes the word at 1-based position index under code.
// When the list becomes empty the code entry is dropped.
func (s *Store) RemoveWordAt(code string, index int) (string, error) {
	words, ok := s.Words[code]
	if !ok {
		return "", ErrCodeNotFound
	}
	if index < 1 || index > len(words) {
		return "", ErrIndexOutOfRange
	}
	removed := words[index-1]
	words = append(words[:index-1], words[index:]...)
	if len(words) == 0 {
		delete(s.Words, code)
		s.Index.Delete(code)
	} else {
		s.Words[code] = words
		s.Index.Set(code, len(words))
	}
	s.saveWords()
	return removed, nil
}

// MoveWord relocates the word at 1-based position from to position to,
// shifting the words in between and preserving their relative order.
func (s *Store) MoveWord(code string, from, to int) error {
	words, ok := s.Words[code]
	if !ok {
		return ErrCodeNotFound
	}
	if from < 1 || from > len(words) || to < 1 || to > len(words) {
		return ErrIndexOutOfRange
	}
	moved := words[from-1]
	words = append(words[:from-1], words[from:]...)
	words = append(words[:to-1], append([]string{moved}, words[to-1:]...)...)
	s.Words[code] = words
	s.saveWords()
	return nil
}

// AppendChar records a new character code: one line appended to the
// character file, in-memory table updated. The file is an append-only log,
// duplicates are not checked here; load keeps the first occurrence.
func (s *Store) AppendChar(char rune, code string) error {
	if !IsCode(code) {
		return ErrInvalidCode
	}
	s.Chars[char] = code

	if err := os.MkdirAll(filepath.Dir(s.charPath), 0755); err != nil {
		log.Errorf("Failed to create data directory: %v", err)
		return err
	}
	file, err := os.OpenFile(s.charPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Errorf("Failed to open character file %s: %v", s.charPath, err)
		return err
	}
	defer file.Close()
	if _, err := fmt.Fprintf(file, "%c %s\n", char, code); err != nil {
		log.Errorf("Failed to append to character file %s: %v", s.charPath, err)
		return err
	}
	return nil
}

// ReplaceCharTable overwrites the whole character table, in memory and on
// disk, sorted by character. All-or-nothing: no key-by-key merging.
func (s *Store) ReplaceCharTable(table CharTable) error {
	s.Chars = table

	chars := make([]rune, 0, len(table))
	for c := range table {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	var b strings.Builder
	for _, c := range chars {
		fmt.Fprintf(&b, "%c %s\n", c, table[c])
	}
	if err := writeFile(s.charPath, b.String()); err != nil {
		log.Errorf("Failed to write character file %s: %v", s.charPath, err)
		return err
	}
	log.Debugf("Character table replaced: %d entries", len(table))
	return nil
}

// ReplaceWordDict overwrites the whole word dictionary, in memory and on disk.
func (s *Store) ReplaceWordDict(dict WordDict) error {
	s.Words = dict
	s.Index.Rebuild(dict)
	return s.writeWords()
}

// Serialize renders the word dictionary in its canonical form: one line per
// code, codes in ascending lexicographic order, words space-joined in stored
// order. Codes with empty lists are omitted. The code ordering is only a
// stable form for diffing; the word order within a line is the candidate
// priority and is emitted verbatim.
func Serialize(d WordDict) string {
	codes := make([]string, 0, len(d))
	for code := range d {
		if len(d[code]) > 0 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	var b strings.Builder
	for _, code := range codes {
		b.WriteString(code)
		b.WriteByte(' ')
		b.WriteString(strings.Join(d[code], " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// saveWords flushes the word dictionary, reporting failure without
// propagating it: the in-memory model stays intact and the next mutation
// retries the write.
func (s *Store) saveWords() {
	if err := s.writeWords(); err != nil {
		log.Errorf("Failed to write word dictionary %s: %v", s.wordPath, err)
	}
}

func (s *Store) writeWords() error {
	return writeFile(s.wordPath, Serialize(s.Words))
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
