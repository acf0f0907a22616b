package model

type ModelStatus int

const (
	ModelUnknown ModelStatus = iota
	ModelReady
	ModelError
)

func (s ModelStatus) String() string {
	switch s {
	case ModelReady:
		return "ready"
	case ModelError:
		return "error"
	default:
		return "unknown"
	}
}

type ModelInitEvent struct {
	Name   string
	Status ModelStatus
	Err    error
	// Detail carries the chosen parameters when the model is ready.
	Detail string
}
