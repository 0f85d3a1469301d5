package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/generated/choein/pkg/config"
	"github.com/generated/choein/pkg/dict"
	"github.com/generated/choein/pkg/export"
)

// Menu drives the interactive main loop over a loaded store.
type Menu struct {
	store *dict.Store
	cfg   *config.Config
	p     *Prompter
}

// NewMenu wires the menu to its store, config and prompter.
func NewMenu(store *dict.Store, cfg *config.Config, p *Prompter) *Menu {
	return &Menu{store: store, cfg: cfg, p: p}
}

// Run loops until the operator quits.
func (m *Menu) Run() {
	for {
		printMenu()
		choice, err := m.p.ReadLine("Select an option (number): ")
		if err != nil {
			return
		}
		num, convErr := strconv.Atoi(choice)
		if convErr != nil {
			log.Error("Invalid input.")
			continue
		}
		switch num {
		case 0:
			log.Info("Exiting...")
			return
		case 1:
			EntryMode(m.store, m.p)
		case 2:
			EditMode(m.store, m.p)
		case 9:
			m.runExport()
			m.p.Pause("\n--- Export done, press Enter to return to the menu ---")
		default:
			log.Error("Unknown option.")
		}
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("        Wubi dictionary manager")
	fmt.Println("----------------------------------------")
	fmt.Println("--- Edit ---")
	fmt.Println(" 1. Add words")
	fmt.Println(" 2. Edit words under a code")
	fmt.Println("--- Export ---")
	fmt.Println(" 9. Export Rime dictionary")
	fmt.Println("----------------------------------------")
	fmt.Println(" 0. Quit")
	fmt.Println("========================================")
}

// runExport asks for an output name and writes the Rime dictionary.
func (m *Menu) runExport() {
	log.Info("Rime export mode.")
	name, err := m.p.ReadLine(fmt.Sprintf("Output filename (Enter for '%s'): ", m.cfg.Export.DefaultFilename))
	if err != nil {
		return
	}
	if name == "" {
		name = m.cfg.Export.DefaultFilename
	}

	stem, stemErr := dict.LoadStemTable(m.cfg.Paths.StemFile())
	if stemErr != nil {
		log.Errorf("Stem table unavailable, single-character full codes will be omitted: %v", stemErr)
	}

	outPath := filepath.Join(m.cfg.Paths.OutputDir, name)
	if err := export.WriteFile(outPath, m.store.Words, stem, m.cfg.Paths.HeadFile(),
		m.cfg.Export.BaseWeight, m.cfg.Export.WeightStep); err != nil {
		log.Errorf("Export failed: %v", err)
		return
	}
	log.Infof("Export complete: %s", outPath)
}
