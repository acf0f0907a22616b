package chat

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/predictor"
)

type MessageKind int

const (
	UserMessage MessageKind = iota
	SystemMessage
	PredictionMessage
	ErrorMessage
)

type Message struct {
	Sender string
	Text   string
	Kind   MessageKind
	At     time.Time
}

// Responder picks canned lines. It owns its random source so replies are
// reproducible for a given seed.
type Responder struct {
	rng *rand.Rand
}

func NewResponder(seed int64) *Responder {
	return &Responder{rng: rand.New(rand.NewSource(seed))}
}

func (r *Responder) pick(lines []string) string {
	return lines[r.rng.Intn(len(lines))]
}

func (r *Responder) Welcome() string  { return welcomeLine }
func (r *Responder) Greeting() string { return r.pick(greetingLines) }
func (r *Responder) Farewell() string { return r.pick(farewellLines) }
func (r *Responder) Fallback() string { return r.pick(fallbackLines) }
func (r *Responder) Help() string     { return helpText }
func (r *Responder) About() string    { return aboutText }

func (r *Responder) Ready(detail string) string {
	if detail == "" {
		return "I'm ready to help! My model has been trained."
	}
	return fmt.Sprintf("I'm ready to help! My model has been trained with the best parameters: %s", detail)
}

func (r *Responder) TrainingFailed(err error) string {
	return fmt.Sprintf("I couldn't train my model, so I can't estimate times right now: %v", err)
}

// Tip returns a tip for a random selected ingredient, falling back to the
// method tip and then to a general one.
func (r *Responder) Tip(sel feature.Selection) string {
	var eligible []string
	for _, name := range sel.Names() {
		if _, ok := ingredientTips[name]; ok {
			eligible = append(eligible, name)
		}
	}
	if len(eligible) > 0 {
		return "Chef's Tip: " + ingredientTips[r.pick(eligible)]
	}
	if tip, ok := methodTips[sel.Method]; ok {
		return "Chef's Tip: " + tip
	}
	return "Chef's Tip: " + defaultTip
}

func (r *Responder) IngredientTip(name string) string {
	if tip, ok := ingredientTips[name]; ok {
		return fmt.Sprintf("Tip for %s: %s", name, tip)
	}
	return fmt.Sprintf("I don't have a tip for %s yet. %s", name, defaultTip)
}

func (r *Responder) Instructions(food string) string {
	if text, ok := instructionsFor(food); ok {
		return text
	}
	return r.Fallback()
}

// Pairings suggests ordering hints from the mix of categories selected.
func (r *Responder) Pairings(sel feature.Selection, cat *catalog.Catalog) []string {
	present := make(map[catalog.Category]bool)
	for _, name := range sel.Names() {
		if e, ok := cat.Lookup(name); ok {
			present[e.Category] = true
		}
	}
	var hints []string
	if present[catalog.Proteins] && present[catalog.Vegetables] {
		hints = append(hints, "For best results, sear protein first before adding vegetables.")
	}
	if present[catalog.Liquids] && present[catalog.Vegetables] {
		hints = append(hints, "Add hard vegetables (potatoes, carrots) before soft ones.")
	}
	return hints
}

func (r *Responder) Prediction(res predictor.Result) string {
	return fmt.Sprintf("For a recipe with %s using %s method, I estimate a cooking time of %d minutes.",
		DescribeSelection(res.Selection), strings.ToLower(res.Selection.Method.String()), res.Minutes)
}

// DescribeSelection renders "1 Carrots, 2 Chicken" in name order.
func DescribeSelection(sel feature.Selection) string {
	parts := make([]string, 0, sel.Len())
	for _, name := range sel.Names() {
		parts = append(parts, fmt.Sprintf("%d %s", sel.Quantities[name], name))
	}
	return strings.Join(parts, ", ")
}
