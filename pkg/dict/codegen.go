package dict

// Generate derives a word's input code from the per-character codes in table.
//
// If any character of word is missing from the table, Generate returns an
// empty code and the full ordered list of missing characters; the caller
// needs all of them to prompt for completion in one pass, so lookup does not
// stop at the first miss.
//
// With every character resolved, the per-character codes c0..cn are combined
// by word length:
//
//	1 char   c0 unmodified
//	2 chars  c0[:2] + c1[:2]
//	3 chars  c0[0] + c1[0] + c2[:2]
//	4 chars  c0[0] + c1[0] + c2[0] + c3[0]
//	>4 chars c0[0] + c1[0] + c2[0] + last[0]
//
// Codes longer than four letters are never produced.
func Generate(word string, table CharTable) (string, []rune) {
	var codes []string
	var missing []rune
	for _, r := range word {
		if c, ok := table[r]; ok {
			codes = append(codes, c)
		} else {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return "", missing
	}

	switch n := len(codes); {
	case n == 1:
		return codes[0], nil
	case n == 2:
		return head(codes[0], 2) + head(codes[1], 2), nil
	case n == 3:
		return head(codes[0], 1) + head(codes[1], 1) + head(codes[2], 2), nil
	case n == 4:
		return head(codes[0], 1) + head(codes[1], 1) + head(codes[2], 1) + head(codes[3], 1), nil
	case n > 4:
		return head(codes[0], 1) + head(codes[1], 1) + head(codes[2], 1) + head(codes[n-1], 1), nil
	}
	return "", nil
}

// head returns the first n bytes of s, or all of s if shorter.
// Codes are plain ASCII letters, so byte slicing is safe.
func head(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
