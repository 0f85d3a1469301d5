package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/generated/choein/pkg/dict"
)

// BatchMode adds every word listed in path, one per line. Words already in
// the dictionary under any code are skipped; missing characters are prompted
// for like entry mode, and an invalid code skips just that word. The batch
// file is truncated to empty afterwards.
func BatchMode(store *dict.Store, p *Prompter, path string) {
	log.Infof("Processing %s, starting batch entry.", path)

	words, err := readWordList(path)
	if err != nil {
		log.Errorf("Failed to read batch file %s: %v", path, err)
		return
	}
	if len(words) == 0 {
		log.Info("Batch file is empty.")
		return
	}

	// Flat set of every known word, any code.
	known := make(map[string]struct{}, store.Words.WordCount())
	for _, list := range store.Words {
		for _, w := range list {
			known[w] = struct{}{}
		}
	}

	added := 0
	for _, word := range words {
		if _, ok := known[word]; ok {
			log.Infof("Skipped: [%s] already exists.", word)
			continue
		}
		code, ok := resolveCode(store, p, word)
		if !ok {
			log.Errorf("Skipped: [%s].", word)
			continue
		}
		if err := store.InsertWord(code, word); err != nil {
			log.Errorf("Skipped [%s]: %v", word, err)
			continue
		}
		known[word] = struct{}{}
		log.Infof("Added: [%s] -> code [%s]", word, code)
		added++
	}

	log.Infof("Batch entry done, %d words added. Clearing %s...", added, path)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		log.Errorf("Failed to clear batch file %s: %v", path, err)
	}
}

func readWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			words = append(words, line)
		}
	}
	return words, scanner.Err()
}
