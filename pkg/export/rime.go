/*
Package export renders the word dictionary into a Rime-style dictionary
file: tab-separated word, code and weight columns, with the full code as a
fourth column for single-character short codes found in the stem table.
*/
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/generated/choein/pkg/dict"
)

const (
	// BaseWeight is the weight of the first candidate under each code.
	BaseWeight = 1100000
	// WeightStep is subtracted per candidate within one code, so earlier
	// ranked words keep a higher weight.
	WeightStep = 10
)

// Render produces the export file contents: the head file prepended
// verbatim, a timestamp comment, then one line per candidate in code order.
// A missing head file is reported and skipped, not fatal. Non-positive
// weight arguments fall back to the package defaults.
func Render(words dict.WordDict, stem dict.StemTable, headPath string, now time.Time, baseWeight, step int) string {
	if baseWeight <= 0 {
		baseWeight = BaseWeight
	}
	if step <= 0 {
		step = WeightStep
	}
	var b strings.Builder

	head, err := os.ReadFile(headPath)
	if err != nil {
		log.Errorf("Head file %s not available: %v", headPath, err)
	} else {
		b.Write(head)
		if len(head) > 0 && head[len(head)-1] != '\n' {
			b.WriteByte('\n')
		}
	}
	fmt.Fprintf(&b, "# export time: %s\n", now.Format("2006-01-02 15:04:05"))

	codes := make([]string, 0, len(words))
	for code := range words {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		weight := baseWeight
		for _, word := range words[code] {
			b.WriteString(word)
			b.WriteByte('\t')
			b.WriteString(code)
			b.WriteByte('\t')
			fmt.Fprintf(&b, "%d", weight)
			// The full-code column only applies to single-character
			// entries under a one-letter short code.
			if len(code) == 1 {
				if char, size := utf8.DecodeRuneInString(word); size == len(word) {
					if full, ok := stem[char]; ok {
						b.WriteByte('\t')
						b.WriteString(full)
					}
				}
			}
			b.WriteByte('\n')
			weight -= step
		}
	}
	return b.String()
}

// WriteFile renders and writes the export, creating the output directory.
func WriteFile(outPath string, words dict.WordDict, stem dict.StemTable, headPath string, baseWeight, step int) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	content := Render(words, stem, headPath, time.Now(), baseWeight, step)
	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing export file %s: %w", outPath, err)
	}
	log.Infof("Export written to %s", outPath)
	return nil
}
