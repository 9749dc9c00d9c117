// Attribute keys shared by every log record emitted by catree. Keys follow a
// hierarchical naming convention ("model.name", "data.samples") so logs can be
// filtered by prefix.

package log

// Model and operation context.
const (
	ModelNameKey = "model.name"
	OperationKey = "ml.operation"
	ComponentKey = "ml.component"
	PhaseKey     = "ml.phase"
)

// Data shape.
const (
	SamplesKey    = "data.samples"
	AttributesKey = "data.attributes"
	YesCountKey   = "data.yes"
	NoCountKey    = "data.no"
	SourceKey     = "data.source"
)

// Tree structure. Recorded after Fit and on unseen-category fallbacks.
const (
	TreeDepthKey  = "tree.depth"
	TreeNodesKey  = "tree.nodes"
	TreeLeavesKey = "tree.leaves"
	AttributeKey  = "tree.attribute"
	CategoryKey   = "tree.category"
	NodeKey       = "tree.node"
	UnseenKey     = "tree.unseen_policy"
	PredictionKey = "tree.prediction"
)

// Performance and evaluation.
const (
	DurationMsKey = "perf.duration_ms"
	WorkersKey    = "perf.workers"
	AccuracyKey   = "metrics.accuracy"
	PredsKey      = "preds.count"
)

// Error context.
const (
	ErrorKey      = "error"
	ErrorTypeKey  = "error.type"
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationLoad    = "load"
	OperationSave    = "save"

	PhaseTraining  = "training"
	PhaseInference = "inference"
	PhaseTesting   = "testing"
)
