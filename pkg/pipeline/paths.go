package pipeline

import (
	"fmt"
	"path/filepath"
)

// Subdirectories of the output root.
const (
	TokenDir   = "Token"
	PatternDir = "Pattern"
)

// TokenName is the token file name for (nodes, coverage).
func TokenName(nodes, coverage int) string {
	return fmt.Sprintf("G_n%d_c%d.txt", nodes, coverage)
}

// PatternPrefix is the file name stem shared by all patterns of a token.
func PatternPrefix(nodes, coverage int) string {
	return fmt.Sprintf("G_Iso_n%d_c%d", nodes, coverage)
}

// PatternName names pattern i (1-based) given a stem.
func PatternName(prefix string, i int) string {
	return fmt.Sprintf("%s_%d.txt", prefix, i)
}

// ManifestName is the manifest file name for (nodes, coverage).
func ManifestName(nodes, coverage int) string {
	return fmt.Sprintf("manifest_n%d_c%d.json", nodes, coverage)
}

// TokenPath returns <root>/Token/G_n{N}_c{C}.txt.
func TokenPath(root string, nodes, coverage int) string {
	return filepath.Join(root, TokenDir, TokenName(nodes, coverage))
}

// PatternPath returns <root>/Pattern/G_Iso_n{N}_c{C}_{i}.txt.
func PatternPath(root string, nodes, coverage, i int) string {
	return filepath.Join(root, PatternDir, PatternName(PatternPrefix(nodes, coverage), i))
}
