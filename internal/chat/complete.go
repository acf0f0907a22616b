package chat

import (
	"strconv"
	"strings"

	"github.com/trknhr/cooktime/internal/catalog"
)

var completableVerbs = map[string]bool{"add": true, "remove": true, "rm": true, "delete": true}

// Complete expands the ingredient name typed after add or remove. It
// returns the new input and every catalog name matching the typed prefix;
// the input only changes when the matches share a longer prefix.
func Complete(input string, cat *catalog.Catalog) (string, []string) {
	fields := strings.Fields(input)
	if len(fields) == 0 || !completableVerbs[strings.ToLower(fields[0])] {
		return input, nil
	}

	head := fields[:1]
	rest := fields[1:]
	if len(rest) > 0 {
		if _, err := strconv.Atoi(rest[0]); err == nil {
			head = fields[:2]
			rest = fields[2:]
		}
	}
	partial := strings.ToLower(strings.Join(rest, " "))

	var matches []string
	for _, name := range cat.Names() {
		if strings.HasPrefix(strings.ToLower(name), partial) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return input, nil
	}

	common := matches[0]
	for _, m := range matches[1:] {
		common = commonPrefix(common, m)
	}
	if len(common) < len(partial) {
		return input, matches
	}
	completed := strings.Join(head, " ") + " " + common
	if len(matches) == 1 {
		completed += " "
	}
	return completed, matches
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && strings.EqualFold(a[n:n+1], b[n:n+1]) {
		n++
	}
	return a[:n]
}
