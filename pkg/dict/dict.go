/*
Package dict holds the in-memory model of the two managed tables: the
character table (single character -> code) and the word dictionary
(code -> ranked candidate list).

Word order inside one code's list is the candidate-selection priority of the
consuming input method. It is never resorted by this package; callers that
want a different order (bulk import does) must build a new list themselves.
*/
package dict

import "errors"

// CharTable maps a single character to its code.
// First occurrence wins when loading from file.
type CharTable map[rune]string

// WordDict maps a code to its candidate words, most preferred first.
type WordDict map[string][]string

var (
	// ErrIndexOutOfRange signals a 1-based edit position outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrWordExists signals an insert of a word already under that code.
	ErrWordExists = errors.New("word already exists under code")
	// ErrCodeNotFound signals an edit on a code with no candidate list.
	ErrCodeNotFound = errors.New("code not found")
	// ErrInvalidCode signals a code containing anything but lowercase a-z.
	ErrInvalidCode = errors.New("code must be lowercase letters only")
)

// IsCode reports whether s is a valid code token: non-empty, lowercase
// ASCII letters only. Mirrors the token test used by import analysis.
func IsCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// ContainsWord reports whether word appears under any code.
// Used by batch entry to skip words already in the dictionary.
func (d WordDict) ContainsWord(word string) bool {
	for _, words := range d {
		for _, w := range words {
			if w == word {
				return true
			}
		}
	}
	return false
}

// WordCount returns the total number of candidate entries across all codes.
func (d WordDict) WordCount() int {
	n := 0
	for _, words := range d {
		n += len(words)
	}
	return n
}
