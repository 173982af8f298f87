// Package counterparty validates Counterparty asset names.
package counterparty

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const maxSubassetLength = 250

var (
	namedAsset     = regexp.MustCompile(`^[B-Z][A-Z]{3,11}$`)
	numericAsset   = regexp.MustCompile(`^A[0-9]+$`)
	subassetSuffix = regexp.MustCompile(`^[a-zA-Z0-9.\-_@!]+$`)

	// numeric asset ids live in (26^12, 2^64)
	minNumericAsset = new(big.Int).Exp(big.NewInt(26), big.NewInt(12), nil)
	maxNumericAsset = new(big.Int).Lsh(big.NewInt(1), 64)
)

// ValidateAsset reports whether name is a valid Counterparty asset name.
func ValidateAsset(name string) error {
	switch {
	case name == "":
		return errors.New("empty asset name")
	case name == "BTC" || name == "XCP":
		return nil
	case strings.Contains(name, "."):
		return validateSubasset(name)
	case strings.HasPrefix(name, "A"):
		return validateNumeric(name)
	case namedAsset.MatchString(name):
		return nil
	default:
		return fmt.Errorf("invalid asset name %q", name)
	}
}

func validateNumeric(name string) error {
	if !numericAsset.MatchString(name) {
		return fmt.Errorf("invalid numeric asset name %q", name)
	}
	id, ok := new(big.Int).SetString(name[1:], 10)
	if !ok || id.Cmp(minNumericAsset) <= 0 || id.Cmp(maxNumericAsset) >= 0 {
		return fmt.Errorf("numeric asset id %s out of range", name[1:])
	}
	return nil
}

func validateSubasset(name string) error {
	if len(name) > maxSubassetLength {
		return fmt.Errorf("subasset name longer than %d characters", maxSubassetLength)
	}
	parent, child, _ := strings.Cut(name, ".")
	if parent == "BTC" || parent == "XCP" || !namedAsset.MatchString(parent) {
		return fmt.Errorf("invalid subasset parent %q", parent)
	}
	if child == "" || strings.HasSuffix(child, ".") || strings.Contains(child, "..") || !subassetSuffix.MatchString(child) {
		return fmt.Errorf("invalid subasset name %q", name)
	}
	return nil
}
