package model_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/trknhr/cooktime/internal/estimator"
	"github.com/trknhr/cooktime/internal/model"
	"github.com/trknhr/cooktime/internal/model/dataset"
)

func waitEvent(t *testing.T, ch <-chan model.ModelInitEvent) model.ModelInitEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("event channel closed without an event")
		}
		return ev
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for model init event")
	}
	return model.ModelInitEvent{}
}

func TestGenerateModel_Default(t *testing.T) {
	h, ch, err := model.GenerateModel(model.DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateModel failed: %v", err)
	}

	ev := waitEvent(t, ch)
	if ev.Status != model.ModelReady {
		t.Fatalf("model not ready: %+v", ev)
	}
	if ev.Name != "forest" {
		t.Errorf("unexpected model name %q", ev.Name)
	}
	if !h.Ready() {
		t.Errorf("handle must be ready once the event is published")
	}

	if _, ok := <-ch; ok {
		t.Errorf("event channel should be closed after the single event")
	}
}

func TestGenerateModel_EnsembleWithGridSearch(t *testing.T) {
	opts := model.DefaultOptions()
	opts.Models = "forest, ridge"
	opts.GridSearch = true

	h, ch, err := model.GenerateModel(opts)
	if err != nil {
		t.Fatalf("GenerateModel failed: %v", err)
	}

	ev := waitEvent(t, ch)
	if ev.Status != model.ModelReady {
		t.Fatalf("model not ready: %+v", ev)
	}
	if !strings.Contains(ev.Detail, "cv_mse") || !strings.Contains(ev.Detail, "ridge") {
		t.Errorf("unexpected detail %q", ev.Detail)
	}

	est, err := h.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if est.ModelName() != "ensemble(forest,ridge)" {
		t.Errorf("unexpected model %q", est.ModelName())
	}
}

func TestGenerateModel_TrainingFailure(t *testing.T) {
	ds, err := dataset.Parse([]byte("rows:\n  - name: mystery\n    ingredients: {Quinoa: 90}\n    minutes: 15\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	opts := model.DefaultOptions()
	opts.Dataset = ds

	h, ch, err := model.GenerateModel(opts)
	if err != nil {
		t.Fatalf("GenerateModel failed: %v", err)
	}

	ev := waitEvent(t, ch)
	if ev.Status != model.ModelError || ev.Err == nil {
		t.Fatalf("expected error event, got %+v", ev)
	}
	if _, err := h.Wait(context.Background()); !errors.Is(err, estimator.ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}

func TestParseModels(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", []string{"forest"}, false},
		{"ridge", []string{"ridge"}, false},
		{"Forest,ridge,forest", []string{"forest", "ridge"}, false},
		{"markov", nil, true},
		{" , ", nil, true},
	}
	for _, tt := range tests {
		got, err := model.ParseModels(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseModels(%q) err = %v", tt.in, err)
			continue
		}
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("ParseModels(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGenerateModel_UnknownModel(t *testing.T) {
	opts := model.DefaultOptions()
	opts.Models = "llm"
	if _, _, err := model.GenerateModel(opts); err == nil {
		t.Errorf("expected error for unknown model")
	}
}

func TestTrainNow(t *testing.T) {
	est, detail, err := model.TrainNow(model.DefaultOptions())
	if err != nil {
		t.Fatalf("TrainNow failed: %v", err)
	}
	if est == nil || !strings.HasPrefix(detail, "forest") {
		t.Errorf("unexpected result: %v %q", est, detail)
	}
}
