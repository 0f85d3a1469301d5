package importer

import (
	"sort"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/generated/choein/pkg/dict"
)

// Plan is a proposed replacement of the managed tables, computed from one
// analysis. Nothing is written until Apply runs with explicit decisions;
// computing and applying are split so the decision point can come from a
// console prompt or a test harness alike.
type Plan struct {
	Analysis *Analysis

	// NewChars replaces the character table wholesale when confirmed.
	// Built from single-character entries, last occurrence wins.
	NewChars dict.CharTable
	// NewWords replaces the word dictionary wholesale when confirmed.
	// Built from all entries, deduplicated then sorted per code.
	NewWords dict.WordDict

	CharEntries   int // single-character entries found in the import
	WordEntries   int // multi-character entries found in the import
	FilteredShort int // single-character entries dropped for single-letter codes
}

// BuildPlan partitions the analyzed entries by word length and builds both
// replacement tables.
//
// Character candidates with a one-letter code are abbreviated forms and too
// ambiguous to trust, so they are filtered out. For repeated characters the
// last occurrence wins, unlike the first-wins policy when loading the
// character file; the import is taken as its own authority on its final
// word. The word dictionary is rebuilt from all entries, single characters
// included: each code's list keeps the first appearance of every word, then
// is sorted alphabetically. Interactive insertion appends at the tail
// instead; the two policies are deliberately different.
func BuildPlan(a *Analysis) *Plan {
	p := &Plan{
		Analysis: a,
		NewChars: make(dict.CharTable),
		NewWords: make(dict.WordDict),
	}

	for _, e := range a.Entries {
		if utf8.RuneCountInString(e.Word) == 1 {
			p.CharEntries++
			if len(e.Code) > 1 {
				char, _ := utf8.DecodeRuneInString(e.Word)
				p.NewChars[char] = e.Code
			} else {
				p.FilteredShort++
			}
		} else {
			p.WordEntries++
		}

		words := p.NewWords[e.Code]
		seen := false
		for _, w := range words {
			if w == e.Word {
				seen = true
				break
			}
		}
		if !seen {
			p.NewWords[e.Code] = append(words, e.Word)
		}
	}

	for code := range p.NewWords {
		sort.Strings(p.NewWords[code])
	}
	return p
}

// Report logs what was detected and how the import compares against the
// current tables, so the operator can judge plausibility before confirming.
func (p *Plan) Report(store *dict.Store) {
	a := p.Analysis
	log.Info("Analysis report:")
	log.Infof("  delimiter: %s", a.Delimiter)
	log.Infof("  format: %s", a.Order)
	log.Infof("  structure: %s", a.Structure)
	log.Infof("  content: %d single characters, %d words (approximate)", p.CharEntries, p.WordEntries)
	if p.CharEntries > 0 {
		log.Infof("Import has %d character entries (current table has %d)", p.CharEntries, len(store.Chars))
	}
	if len(a.Entries) > 0 {
		log.Infof("Import has %d entries total (current dictionary has %d words)",
			len(a.Entries), store.Words.WordCount())
	}
	if p.WordEntries == 0 {
		log.Info("Note: this file appears to contain only single characters.")
	}
}

// Apply writes the confirmed replacements. The two tables are separate
// assets with separate risk, so each has its own decision.
func (p *Plan) Apply(store *dict.Store, replaceChars, replaceWords bool) error {
	if replaceChars {
		if len(p.NewChars) == 0 {
			log.Warn("All character candidates were filtered out, character table left untouched.")
		} else {
			if p.FilteredShort > 0 {
				log.Infof("Filtered %d single-letter character codes", p.FilteredShort)
			}
			if err := store.ReplaceCharTable(p.NewChars); err != nil {
				return err
			}
			log.Infof("Character table replaced: %d entries written", len(p.NewChars))
		}
	}
	if replaceWords {
		if len(p.NewWords) == 0 {
			log.Warn("No usable word entries, word dictionary left untouched.")
		} else {
			if err := store.ReplaceWordDict(p.NewWords); err != nil {
				return err
			}
			log.Infof("Word dictionary replaced: %d codes written", len(p.NewWords))
		}
	}
	return nil
}
