package model

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager("DecisionTreeClassifier")

	err := s.RequireFitted("Predict")
	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}
	if nfErr.ModelName != "DecisionTreeClassifier" || nfErr.Method != "Predict" {
		t.Errorf("unexpected error fields: %+v", nfErr)
	}

	s.SetFitted(3, 10)
	if err := s.RequireFitted("Predict"); err != nil {
		t.Fatalf("unexpected error after SetFitted: %v", err)
	}
	if f, n := s.GetDimensions(); f != 3 || n != 10 {
		t.Errorf("GetDimensions() = %d, %d", f, n)
	}

	state := s.GetState()
	s.Reset()
	if s.IsFitted() {
		t.Error("Reset should clear fitted state")
	}
	s.SetState(state)
	if !s.IsFitted() {
		t.Error("SetState should restore fitted state")
	}
}

type snapshot struct {
	Rules []string
	State ModelState
}

type persistable struct {
	snap snapshot
}

func (p *persistable) Save(w io.Writer) error { return SaveModelToWriter(p.snap, w) }
func (p *persistable) Load(r io.Reader) error { return LoadModelFromReader(&p.snap, r) }

func TestSaveLoadRoundTrip(t *testing.T) {
	in := &persistable{snap: snapshot{
		Rules: []string{"0 = 0: yes", "0 = 1: no"},
		State: ModelState{Fitted: true, NFeatures: 1, NSamples: 4},
	}}

	path := filepath.Join(t.TempDir(), "model.gob")
	if err := SaveModel(in, path); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}

	out := &persistable{}
	if err := LoadModel(out, path); err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if len(out.snap.Rules) != 2 || out.snap.Rules[1] != "0 = 1: no" || !out.snap.State.Fitted {
		t.Errorf("round trip mismatch: %+v", out.snap)
	}
}

func TestLoadModelErrors(t *testing.T) {
	err := LoadModel(&persistable{}, filepath.Join(t.TempDir(), "missing.gob"))
	var mErr *errors.ModelError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected ModelError for missing file, got %v", err)
	}

	err = LoadModelFromReader(&snapshot{}, bytes.NewBufferString("not gob"))
	if !errors.As(err, &mErr) || mErr.Kind != "failed to decode model" {
		t.Errorf("expected decode ModelError, got %v", err)
	}
}
