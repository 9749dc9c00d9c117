package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	catreeErrors "github.com/YuminosukeSato/catree/pkg/errors"
)

// TestLoggerInterface tests the TestLogger implementation of Logger
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message", AttributeKey, 3)
	testLogger.Error("error message", fmt.Errorf("boom"), OperationKey, OperationPredict)

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}
	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField(ErrorKey, "boom") {
		t.Error("Leading error should be recorded under the error key")
	}
	if !testLogger.ContainsField(OperationKey, OperationPredict) {
		t.Error("Fields after a leading error should still be paired")
	}
}

// TestLoggerWith tests contextual fields
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "DecisionTreeClassifier",
		ComponentKey, "tree.id3",
	)
	contextLogger.Info("Fit completed", TreeDepthKey, 2)

	if !testLogger.ContainsField(ModelNameKey, "DecisionTreeClassifier") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(ComponentKey, "tree.id3") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(TreeDepthKey, 2.0) {
		t.Error("Depth field not found")
	}
}

func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) || !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Info and Error")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"info", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"error", LevelError, true},
		{"trace", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.With(ModelNameKey, "DecisionTreeClassifier").Info("Fit completed",
		SamplesKey, 4,
		TreeLeavesKey, 2,
	)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["message"] != "Fit completed" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[ModelNameKey] != "DecisionTreeClassifier" {
		t.Errorf("%s = %v", ModelNameKey, entry[ModelNameKey])
	}
	if entry[SamplesKey] != 4.0 || entry[TreeLeavesKey] != 2.0 {
		t.Errorf("unexpected shape fields: %v", entry)
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled")
	}
}

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	err := catreeErrors.NewUnseenCategoryError(0, 2, 0)
	logger.Error("Predict failed", err, OperationKey, OperationPredict)

	var entry map[string]interface{}
	if jerr := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); jerr != nil {
		t.Fatalf("invalid JSON: %v", jerr)
	}
	if entry[ErrorKey] != err.Error() {
		t.Errorf("%s = %v", ErrorKey, entry[ErrorKey])
	}
	if _, ok := entry[StacktraceKey]; !ok {
		t.Error("expected a stack trace for a cockroachdb error")
	}
	if entry[OperationKey] != OperationPredict {
		t.Errorf("%s = %v", OperationKey, entry[OperationKey])
	}
}

func TestGlobalLoggerAndWarnings(t *testing.T) {
	var buf bytes.Buffer
	prev := SetLogger(NewZerologLogger(&buf, LevelDebug))
	defer SetLogger(prev)

	GetLoggerWithName("tree.id3").Info("hello")
	if !strings.Contains(buf.String(), `"ml.component":"tree.id3"`) {
		t.Errorf("component missing: %s", buf.String())
	}

	buf.Reset()
	catreeErrors.Warn(catreeErrors.NewDataConversionWarning("Yes", "yes", "label normalised"))
	out := buf.String()
	if !strings.Contains(out, `"type":"DataConversionWarning"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("warning not routed to zerolog: %s", out)
	}

	testLogger, _ := NewTestLogger(LevelDebug)
	SetLogger(testLogger)
	catreeErrors.Warn(catreeErrors.NewUndefinedMetricWarning("precision", "no predicted yes samples", 0))
	if !testLogger.ContainsField(ErrorTypeKey, "*errors.UndefinedMetricWarning") {
		t.Error("warning not routed to non-zerolog logger")
	}
}

func TestLoggerProviderBehavior(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelWarn)

	provider.GetLogger().Info("dropped")
	provider.SetLevel(LevelDebug)
	provider.GetLoggerWithName("dataset").Info("named logger message")

	if strings.Contains(buffer.String(), "dropped") {
		t.Error("info should be dropped at warn level")
	}
	if !strings.Contains(buffer.String(), "dataset") {
		t.Error("component name not found in named logger output")
	}
}

func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				testLogger.Info("predict", "goroutine_id", id, "message_id", j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 20 {
		t.Errorf("Expected 20 log entries, got %d", len(entries))
	}
}
