package cli

import "strings"

// joinLines joins pre-rendered blocks with newlines.
func joinLines(blocks []string) string {
	return strings.Join(blocks, "\n")
}
