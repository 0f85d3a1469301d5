package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/generated/choein/pkg/dict"
)

// EditMode edits the candidate list under one code: delete by 1-based
// number or move an entry to a new position. Every accepted change is
// persisted immediately by the store.
func EditMode(store *dict.Store, p *Prompter) {
	log.Info("Edit mode. Type 'q' to return to the menu.")
	for {
		code, err := p.ReadLine("\nCode to edit ('q' to quit): ")
		if err != nil {
			return
		}
		if code == "q" || code == "Q" {
			return
		}
		if code == "" {
			continue
		}
		if len(store.Words[code]) == 0 {
			log.Errorf("Code [%s] does not exist.", code)
			if near := store.Index.CodesWithPrefix(code); len(near) > 0 {
				log.Infof("Codes starting with [%s]: %s", code, strings.Join(near, " "))
			}
			continue
		}
		editCode(store, p, code)
	}
}

func editCode(store *dict.Store, p *Prompter, code string) {
	for {
		words := store.Words[code]
		if len(words) == 0 {
			log.Info("All words under this code have been deleted.")
			return
		}
		fmt.Printf("\n--- Editing code [%s] ---\n", code)
		for i, word := range words {
			fmt.Printf("  %d. %s\n", i+1, word)
		}

		action, err := p.ReadLine("Action: [D] delete, [M] move, [Q] done: ")
		if err != nil {
			return
		}
		switch strings.ToLower(action) {
		case "q":
			log.Infof("Finished editing [%s].", code)
			return
		case "d":
			num, ok := readIndex(p, fmt.Sprintf("Number to delete (1-%d): ", len(words)))
			if !ok {
				continue
			}
			removed, err := store.RemoveWordAt(code, num)
			if err != nil {
				log.Errorf("Delete failed: %v", err)
				continue
			}
			log.Infof("Word [%s] deleted.", removed)
		case "m":
			from, ok := readIndex(p, fmt.Sprintf("Number to move (1-%d): ", len(words)))
			if !ok {
				continue
			}
			to, ok := readIndex(p, fmt.Sprintf("New position (1-%d): ", len(words)))
			if !ok {
				continue
			}
			if err := store.MoveWord(code, from, to); err != nil {
				if errors.Is(err, dict.ErrIndexOutOfRange) {
					log.Error("Position out of range.")
				} else {
					log.Errorf("Move failed: %v", err)
				}
				continue
			}
			log.Info("Word moved.")
		default:
			log.Error("Unknown action.")
		}
	}
}

// readIndex reads one 1-based position; range checks are the store's job.
func readIndex(p *Prompter, prompt string) (int, bool) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, false
	}
	num, convErr := strconv.Atoi(line)
	if convErr != nil {
		log.Error("Please enter a number.")
		return 0, false
	}
	return num, true
}
