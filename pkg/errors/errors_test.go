package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Load",
			kind:    "failed to decode model",
			err:     fmt.Errorf("unexpected EOF"),
			wantMsg: "catree: Load: failed to decode model: unexpected EOF",
		},
		{
			name:    "without original error",
			op:      "Save",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "catree: Save: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
			if tt.err != nil && !Is(err, tt.err) {
				t.Error("ModelError should unwrap to the original error")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 8, 5, 1)

	want := "catree: Predict: dimension mismatch on axis 1 (attributes). Expected 8, got 5"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 8 || dimErr.Got != 5 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestNewMalformedInputError(t *testing.T) {
	tests := []struct {
		name string
		row  int
		want string
	}{
		{"row specific", 3, "catree: Fit: malformed input at row 3: label \"maybe\" is not yes or no"},
		{"whole input", -1, "catree: Fit: malformed input: label \"maybe\" is not yes or no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMalformedInputError("Fit", tt.row, `label "maybe" is not yes or no`)
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
			var mErr *MalformedInputError
			if !As(err, &mErr) {
				t.Fatal("Error should be castable to *MalformedInputError")
			}
			if mErr.Row != tt.row {
				t.Errorf("Row = %d, want %d", mErr.Row, tt.row)
			}
		})
	}
}

func TestNewUnseenCategoryError(t *testing.T) {
	err := NewUnseenCategoryError(2, "blue", 1)

	want := "catree: unseen category blue for attribute 2 at depth 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var uErr *UnseenCategoryError
	if !As(err, &uErr) {
		t.Fatal("Error should be castable to *UnseenCategoryError")
	}
	if uErr.Value != "blue" {
		t.Errorf("Value = %v, want blue", uErr.Value)
	}
}

func TestNotFittedAndValidationErrors(t *testing.T) {
	err := NewNotFittedError("DecisionTreeClassifier", "Predict")
	if !strings.Contains(err.Error(), "Call Fit() before using Predict()") {
		t.Errorf("unexpected message: %v", err)
	}

	err = NewValidationError("unseen_policy", "must be vote or error", "maybe")
	var vErr *ValidationError
	if !As(err, &vErr) || vErr.ParamName != "unseen_policy" {
		t.Errorf("expected ValidationError for unseen_policy, got %v", err)
	}
}

func TestSentinelErrors(t *testing.T) {
	wrapped := Wrap(ErrEmptyPartition, "entropy")
	if !Is(wrapped, ErrEmptyPartition) {
		t.Error("wrapped error should match ErrEmptyPartition")
	}
	if Is(wrapped, ErrEmptyData) {
		t.Error("wrapped error should not match ErrEmptyData")
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Error().EmbedObject(&UnseenCategoryError{Attribute: 1, Value: 7, Depth: 2}).Msg("predict failed")

	out := buf.String()
	for _, want := range []string{`"attribute":1`, `"value":7`, `"depth":2`, `"type":"UnseenCategoryError"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(nil)

	Warn(NewUndefinedMetricWarning("precision", "no predicted yes samples", 0))
	if len(got) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(got))
	}
	if !strings.Contains(got[0].Error(), "'precision' is ill-defined") {
		t.Errorf("unexpected warning text: %v", got[0])
	}

	var routed []error
	SetZerologWarnFunc(func(w error) { routed = append(routed, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewDataConversionWarning("Yes", "yes", "label normalised"))
	if len(routed) != 1 || len(got) != 1 {
		t.Errorf("zerolog func should take precedence: routed=%d handler=%d", len(routed), len(got))
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("information_gain", 0.5, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckScalar("information_gain", math.NaN(), 3); err == nil {
		t.Error("expected error for NaN")
	}
	if err := CheckNumericalStability("gains", []float64{0.1, math.Inf(1)}); err == nil {
		t.Error("expected error for Inf")
	}
	if SafeDivide(1, 0) != 0 {
		t.Error("SafeDivide by zero should return 0")
	}
}
