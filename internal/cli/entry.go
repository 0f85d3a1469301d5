package cli

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/generated/choein/pkg/dict"
)

// EntryMode interactively adds words: the code is generated from the
// character table, missing characters are prompted for and appended to the
// character file, and the word goes to the tail of its code's list.
func EntryMode(store *dict.Store, p *Prompter) {
	log.Info("Entry mode. Type 'q' to return to the menu.")
	for {
		word, err := p.ReadLine("\nWord to add ('q' to quit): ")
		if err != nil {
			return
		}
		if word == "q" || word == "Q" {
			return
		}
		if word == "" {
			continue
		}

		code, ok := resolveCode(store, p, word)
		if !ok {
			log.Error("Could not generate a code.")
			continue
		}
		log.Infof("Generated code for [%s]: [%s]", word, code)

		_, existed := store.Words[code]
		switch err := store.InsertWord(code, word); {
		case errors.Is(err, dict.ErrWordExists):
			log.Infof("Code [%s] already has word [%s].", code, word)
		case !existed:
			log.Infof("Added word [%s] under new code [%s].", word, code)
		default:
			log.Infof("Word [%s] appended to the end of [%s].", word, code)
		}
	}
}

// resolveCode generates word's code, prompting for every missing character
// in order. An empty or invalid code input aborts the word.
func resolveCode(store *dict.Store, p *Prompter, word string) (string, bool) {
	code, missing := dict.Generate(word, store.Chars)
	for len(missing) > 0 {
		char := missing[0]
		log.Errorf("Character '%c' is missing from the character table.", char)
		input, err := p.ReadLine("Enter its code (lowercase letters): ")
		if err != nil {
			return "", false
		}
		if appendErr := store.AppendChar(char, input); appendErr != nil {
			log.Errorf("Invalid code: %v", appendErr)
			return "", false
		}
		code, missing = dict.Generate(word, store.Chars)
	}
	return code, code != ""
}
