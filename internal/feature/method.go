package feature

import (
	"fmt"
	"strings"
)

// Method is the preparation method. Its integer value is the encoding used
// in the feature vector.
type Method int

const (
	Simmer Method = iota
	Boil
	Fry
)

var methodNames = [...]string{"Simmer", "Boil", "Fry"}

func Methods() []Method {
	return []Method{Simmer, Boil, Fry}
}

func (m Method) String() string {
	if m < Simmer || m > Fry {
		return methodNames[Simmer]
	}
	return methodNames[m]
}

// Code returns the value placed in the Method field. Values outside the
// enumeration encode as Simmer.
func (m Method) Code() float64 {
	if m < Simmer || m > Fry {
		return float64(Simmer)
	}
	return float64(m)
}

// ParseMethod maps a tag to a Method. Unknown tags fall back to Simmer and
// report ok=false so callers can tell the user.
func ParseMethod(tag string) (Method, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "simmer":
		return Simmer, true
	case "boil":
		return Boil, true
	case "fry":
		return Fry, true
	default:
		return Simmer, false
	}
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText is strict: decoded data names its method exactly, so an
// unknown tag is an error rather than Simmer.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, ok := ParseMethod(string(text))
	if !ok {
		return fmt.Errorf("unknown method %q", text)
	}
	*m = parsed
	return nil
}
