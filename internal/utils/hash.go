package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// RecipeKey hashes a recipe so the same ingredients, quantities and method
// always map to the same key regardless of map order.
func RecipeKey(quantities map[string]int, method string) string {
	names := make([]string, 0, len(quantities))
	for name := range quantities {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(quantities[name]))
		b.WriteByte(';')
	}
	b.WriteString(strings.ToLower(method))
	return Hash(b.String())
}
