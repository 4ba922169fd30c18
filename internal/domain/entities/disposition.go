package entities

import "fmt"

// Disposition is the operator's decision for a single repository.
type Disposition string

const (
	DispositionArchive Disposition = "archive"
	DispositionSkip    Disposition = "skip"
)

const (
	hotkeyArchive = "A"
	hotkeySkip    = "S"
)

// DispositionHotkeys returns the accepted prompt answers, in display order.
func DispositionHotkeys() []string {
	return []string{hotkeyArchive, hotkeySkip}
}

// ParseDisposition maps a prompt answer to a Disposition.
// Matching is exact and case-sensitive.
func ParseDisposition(answer string) (Disposition, error) {
	switch answer {
	case hotkeyArchive:
		return DispositionArchive, nil
	case hotkeySkip:
		return DispositionSkip, nil
	default:
		return "", fmt.Errorf("unrecognized disposition %q", answer)
	}
}
