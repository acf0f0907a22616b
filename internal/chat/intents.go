package chat

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/trknhr/cooktime/internal/catalog"
)

type Kind int

const (
	Unknown Kind = iota
	Greeting
	Farewell
	Help
	About
	PredictTime
	Tip
	IngredientTip
	Instructions
	AddIngredient
	RemoveIngredient
	SetMethod
	ClearRecipe
	ShowRecipe
)

var kindNames = map[Kind]string{
	Unknown:          "unknown",
	Greeting:         "greeting",
	Farewell:         "farewell",
	Help:             "help",
	About:            "about",
	PredictTime:      "predict",
	Tip:              "tip",
	IngredientTip:    "ingredient_tip",
	Instructions:     "instructions",
	AddIngredient:    "add",
	RemoveIngredient: "remove",
	SetMethod:        "method",
	ClearRecipe:      "clear",
	ShowRecipe:       "show",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[Unknown]
}

// Intent is the parsed meaning of one chat line. Item holds the ingredient,
// food or method tag the intent refers to.
type Intent struct {
	Kind     Kind
	Item     string
	Quantity int
	Err      error
}

var ErrMissingItem = errors.New("missing ingredient name")

var (
	greetingWords = []string{"hello", "hi", "hey", "greetings"}
	farewellWords = []string{"bye", "goodbye", "exit", "quit"}
	helpWords     = []string{"help", "how to use"}
	aboutPhrases  = []string{"how are you", "what can you do", "who are you", "what are you"}
	predictWords  = []string{"predict", "estimate", "cooking time", "how long"}
	tipWords      = []string{"tip", "tips", "advice", "suggestion", "hint"}
	cookVerbs     = []string{"cook", "cooking"}
)

// Parse classifies msg. Recipe commands (add, remove, method, clear, show)
// are recognized by their leading verb; everything else is matched against
// keyword lists on whole words, first match wins.
func Parse(msg string, cat *catalog.Catalog) Intent {
	if in, ok := parseCommand(msg); ok {
		return in
	}

	tokens := tokenize(msg)
	switch {
	case len(tokens) == 0:
		return Intent{Kind: Unknown}
	case containsAny(tokens, greetingWords):
		return Intent{Kind: Greeting}
	case containsAny(tokens, farewellWords):
		return Intent{Kind: Farewell}
	case containsAny(tokens, helpWords):
		return Intent{Kind: Help}
	case containsAny(tokens, aboutPhrases):
		return Intent{Kind: About}
	case containsAny(tokens, predictWords):
		return Intent{Kind: PredictTime}
	}

	if containsAny(tokens, tipWords) {
		if name, ok := mentionedIngredient(tokens, cat); ok {
			return Intent{Kind: IngredientTip, Item: name}
		}
		return Intent{Kind: Tip}
	}

	if food, ok := mentionedFood(tokens); ok {
		return Intent{Kind: Instructions, Item: food}
	}
	return Intent{Kind: Unknown}
}

func parseCommand(msg string) (Intent, bool) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return Intent{}, false
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "add":
		name, qty, err := parseItemArgs(args)
		return Intent{Kind: AddIngredient, Item: name, Quantity: qty, Err: err}, true
	case "remove", "rm", "delete":
		name := strings.Join(args, " ")
		in := Intent{Kind: RemoveIngredient, Item: name}
		if name == "" {
			in.Err = ErrMissingItem
		}
		return in, true
	case "method", "use":
		if len(args) == 1 {
			return Intent{Kind: SetMethod, Item: args[0]}, true
		}
	case "clear", "reset":
		if len(args) == 0 {
			return Intent{Kind: ClearRecipe}, true
		}
	case "show", "recipe", "list":
		if len(args) == 0 {
			return Intent{Kind: ShowRecipe}, true
		}
	}
	return Intent{}, false
}

// ParseItem reads an ingredient argument of the form "Name=qty". A bare name
// means a quantity of one.
func ParseItem(s string) (string, int, error) {
	name, qtyStr, found := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, ErrMissingItem
	}
	if !found {
		return name, 1, nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil {
		return "", 0, fmt.Errorf("invalid quantity %q for %s", qtyStr, name)
	}
	return name, qty, nil
}

// parseItemArgs accepts "2 chicken", "chicken 2", "coconut milk" and
// "chicken=2".
func parseItemArgs(args []string) (string, int, error) {
	switch len(args) {
	case 0:
		return "", 0, ErrMissingItem
	case 1:
		return ParseItem(args[0])
	}
	if qty, err := strconv.Atoi(args[0]); err == nil {
		return strings.Join(args[1:], " "), qty, nil
	}
	last := len(args) - 1
	if qty, err := strconv.Atoi(args[last]); err == nil {
		return strings.Join(args[:last], " "), qty, nil
	}
	return strings.Join(args, " "), 1, nil
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// containsAny reports whether any keyword, single word or phrase, occurs
// as a run of whole tokens.
func containsAny(tokens []string, keywords []string) bool {
	for _, k := range keywords {
		if indexPhrase(tokens, strings.Fields(k), equalWord) >= 0 {
			return true
		}
	}
	return false
}

func indexPhrase(tokens, phrase []string, eq func(a, b string) bool) int {
	if len(phrase) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j, p := range phrase {
			if !eq(tokens[i+j], p) {
				continue outer
			}
		}
		return i
	}
	return -1
}

func equalWord(a, b string) bool { return a == b }

// equalStem treats singular and plural forms as the same word.
func equalStem(a, b string) bool { return stem(a) == stem(b) }

func stem(w string) string {
	switch {
	case strings.HasSuffix(w, "oes"):
		return strings.TrimSuffix(w, "es")
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		return strings.TrimSuffix(w, "s")
	}
	return w
}

// mentionedIngredient finds a catalog ingredient named in tokens, trying
// longer names first so "coconut milk" is not read as "milk".
func mentionedIngredient(tokens []string, cat *catalog.Catalog) (string, bool) {
	names := cat.Names()
	sort.SliceStable(names, func(i, j int) bool {
		return len(strings.Fields(names[i])) > len(strings.Fields(names[j]))
	})
	for _, name := range names {
		if indexPhrase(tokens, tokenize(name), equalStem) >= 0 {
			return name, true
		}
	}
	return "", false
}

// mentionedFood looks for "cook <food>" or "cooking <food>", which also
// covers "how to cook <food>".
func mentionedFood(tokens []string) (string, bool) {
	for _, food := range instructionFoods() {
		for _, verb := range cookVerbs {
			phrase := append([]string{verb}, tokenize(food)...)
			if indexPhrase(tokens, phrase, equalStem) >= 0 {
				return food, true
			}
		}
	}
	return "", false
}
