package errors

import (
	"strings"
	"unicode"
)

// Parameter bounds accepted at the command-line and HTTP surfaces.
// The generation core itself accepts coverage in [0,100].
//
// MaxNodes also bounds the generation core: the density phase lists every
// missing pair, which is quadratic in the node count.
const (
	MaxNodes     = 5000
	MinCoverage  = 10
	MaxCoverage  = 100
	MinIsographs = 1
	MaxIsographs = 8
)

// ValidateNodes checks the node count against [1,MaxNodes].
func ValidateNodes(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidParameter, "number of nodes can't be negative or zero (got %d)", n)
	}
	if n > MaxNodes {
		return New(ErrCodeInvalidParameter, "number of nodes must not exceed %d (got %d)", MaxNodes, n)
	}
	return nil
}

// ValidateCoverage checks the coverage percentage against the surface range [10,100].
func ValidateCoverage(c int) error {
	if c < MinCoverage || c > MaxCoverage {
		return New(ErrCodeInvalidParameter, "coverage must be in the range [%d,%d] (got %d)", MinCoverage, MaxCoverage, c)
	}
	return nil
}

// ValidateIsographs checks the number of isomorphic copies against [1,8].
func ValidateIsographs(k int) error {
	if k < MinIsographs || k > MaxIsographs {
		return New(ErrCodeInvalidParameter, "number of isomorphic graphs must be in the range [%d,%d] (got %d)", MinIsographs, MaxIsographs, k)
	}
	return nil
}

// ValidateParams runs all three parameter checks in order and returns the first failure.
func ValidateParams(nodes, coverage, isographs int) error {
	if err := ValidateNodes(nodes); err != nil {
		return err
	}
	if err := ValidateCoverage(coverage); err != nil {
		return err
	}
	return ValidateIsographs(isographs)
}

// ValidateBaseName validates a fixture base name used to derive output filenames.
// It must be a simple name without path components or control characters.
func ValidateBaseName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "file name too long (max 255 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "file name cannot be %q", name)
	}
	return nil
}
