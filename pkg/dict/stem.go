package dict

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// StemTable maps a single character to its full code. It supplements export
// output for single-character short codes and is never written back.
type StemTable map[rune]string

// LoadStemTable parses a stem file: "char fullCode" per line. Only the first
// rune of the first field is keyed; first occurrence wins.
func LoadStemTable(path string) (StemTable, error) {
	table := make(StemTable)
	file, err := os.Open(path)
	if err != nil {
		return table, fmt.Errorf("stem file %s: %w", path, err)
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
		return table, fmt.Errorf("reading stem file %s: %w", path, err)
	}
	return table, nil
}
