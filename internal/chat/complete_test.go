package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trknhr/cooktime/internal/catalog"
)

func TestComplete(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		input   string
		want    string
		matches []string
	}{
		{"add coc", "add Coconut Milk ", []string{"Coconut Milk"}},
		{"add 2 chi", "add 2 Chicken ", []string{"Chicken"}},
		{"remove t", "remove To", []string{"Tofu", "Tomatoes"}},
		{"add c", "add C", []string{"Carrots", "Chicken", "Coconut Milk", "Cream"}},
		{"add xyz", "add xyz", nil},
		{"hello th", "hello th", nil},
		{"", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, matches := Complete(tt.input, cat)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matches, matches)
		})
	}
}

func TestComplete_EmptyPartialListsEverything(t *testing.T) {
	cat := catalog.Default()

	got, matches := Complete("add ", cat)
	assert.Equal(t, "add ", got)
	assert.Len(t, matches, cat.Len())
}
