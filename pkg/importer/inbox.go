package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/generated/choein/pkg/dict"
)

// Confirmer supplies the operator's yes/no decisions. The console
// implementation lives in internal/cli; tests script their own.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ProcessInbox scans dir for *.txt upgrade sources and runs each through
// analysis and merge. The inbox is consume-once: every file is deleted after
// processing whether or not the operator accepted the proposed replacement.
// Returns true when at least one file was processed.
func ProcessInbox(dir string, store *dict.Store, confirm Confirmer) (bool, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("creating inbox directory %s: %w", dir, err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return false, fmt.Errorf("scanning inbox directory %s: %w", dir, err)
	}
	if len(files) == 0 {
		return false, nil
	}

	log.Infof("Found %d pending files in %s, entering upgrade mode", len(files), dir)
	for _, path := range files {
		name := filepath.Base(path)
		log.Infof("Processing file: %s", name)

		raw, err := os.ReadFile(path)
		if err != nil {
			log.Errorf("Failed to read %s: %v", name, err)
			continue
		}
		a, err := Analyze(raw)
		if err != nil {
			log.Errorf("File %s skipped: %v", name, err)
			continue
		}
		runUpgrade(a, store, confirm)
	}

	log.Infof("All upgrades done, clearing %s", dir)
	for _, path := range files {
		if err := os.Remove(path); err != nil {
			log.Errorf("Failed to remove %s: %v", path, err)
		}
	}
	return true, nil
}

// runUpgrade reports the plan and applies whichever replacements the
// operator confirms. The two tables are confirmed independently.
func runUpgrade(a *Analysis, store *dict.Store, confirm Confirmer) {
	plan := BuildPlan(a)
	plan.Report(store)

	replaceChars := false
	if plan.CharEntries > 0 {
		replaceChars = confirm.Confirm("Replace the current character table with these characters? (y/n): ")
	}
	replaceWords := false
	if len(a.Entries) > 0 {
		replaceWords = confirm.Confirm("Replace the current word dictionary with this file's contents? (y/n): ")
	}

	if err := plan.Apply(store, replaceChars, replaceWords); err != nil {
		log.Errorf("Upgrade failed: %v", err)
	}
}
