package feature

import (
	"github.com/trknhr/cooktime/internal/catalog"
)

const (
	MethodField          = "Method"
	TotalWeightField     = "TotalWeight"
	IngredientCountField = "IngredientCount"
)

// Schema fixes the order of the ingredient fields. The estimator is order
// sensitive, so training and prediction must share the same Schema.
type Schema struct {
	Ingredients []string
}

func NewSchema(ingredients []string) Schema {
	cp := make([]string, len(ingredients))
	copy(cp, ingredients)
	return Schema{Ingredients: cp}
}

// SchemaFor builds a schema with one field per catalog ingredient, in
// catalog order.
func SchemaFor(c *catalog.Catalog) Schema {
	return Schema{Ingredients: c.Names()}
}

// Fields lists every field name in vector order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, s.Len())
	fields = append(fields, s.Ingredients...)
	return append(fields, MethodField, TotalWeightField, IngredientCountField)
}

func (s Schema) Len() int {
	return len(s.Ingredients) + 3
}

type Vector struct {
	Fields []string
	Values []float64
}

func (v Vector) Len() int {
	return len(v.Values)
}

// Get returns the value of a named field.
func (v Vector) Get(field string) (float64, bool) {
	for i, f := range v.Fields {
		if f == field && i < len(v.Values) {
			return v.Values[i], true
		}
	}
	return 0, false
}

func (v Vector) TotalWeight() float64 {
	w, _ := v.Get(TotalWeightField)
	return w
}

func (v Vector) IngredientCount() int {
	c, _ := v.Get(IngredientCountField)
	return int(c)
}

func (v Vector) Method() float64 {
	m, _ := v.Get(MethodField)
	return m
}

// Build encodes a selection. Names missing from the catalog weigh zero and
// selected names missing from the schema are ignored.
func Build(sel Selection, c *catalog.Catalog, schema Schema) Vector {
	weights := make([]float64, len(schema.Ingredients))
	for i, name := range schema.Ingredients {
		qty := sel.Quantities[name]
		weights[i] = c.Weight(name) * float64(qty)
	}
	return Assemble(schema, weights, sel.Method)
}

// Assemble appends the method and derived fields to per-ingredient weights
// that are already in schema order.
func Assemble(schema Schema, weights []float64, method Method) Vector {
	values := make([]float64, 0, schema.Len())
	var total, count float64
	for _, w := range weights {
		values = append(values, w)
		total += w
		if w > 0 {
			count++
		}
	}
	values = append(values, method.Code(), total, count)
	return Vector{Fields: schema.Fields(), Values: values}
}
