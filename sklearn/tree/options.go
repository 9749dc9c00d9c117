package tree

import (
	"fmt"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

// UnseenPolicy decides what Predict does when a sample carries an attribute
// value that never reached the node being evaluated during Fit.
type UnseenPolicy int

const (
	// UnseenVote predicts the sample against every child subtree and returns
	// the vote weighted by each subtree's training size. Ties go to Yes.
	UnseenVote UnseenPolicy = iota
	// UnseenError makes Predict fail with an UnseenCategoryError.
	UnseenError
)

func (p UnseenPolicy) String() string {
	switch p {
	case UnseenVote:
		return "vote"
	case UnseenError:
		return "error"
	default:
		return fmt.Sprintf("UnseenPolicy(%d)", int(p))
	}
}

// ParseUnseenPolicy converts "vote" or "error" into an UnseenPolicy.
func ParseUnseenPolicy(s string) (UnseenPolicy, error) {
	switch s {
	case "vote":
		return UnseenVote, nil
	case "error":
		return UnseenError, nil
	default:
		return UnseenVote, errors.NewValidationError("unseen_policy", "must be 'vote' or 'error'", s)
	}
}

type config struct {
	unseenPolicy   UnseenPolicy
	attributeNames []string
	verbose        bool
}

func defaultConfig() config {
	return config{unseenPolicy: UnseenVote}
}

// Option configures a DecisionTreeClassifier.
type Option func(*config)

// WithUnseenPolicy sets how unseen attribute values are handled at prediction time.
func WithUnseenPolicy(p UnseenPolicy) Option {
	return func(c *config) {
		c.unseenPolicy = p
	}
}

// WithAttributeNames sets display names used by PrintTrace and the
// importance chart. Attributes without a name are shown by index.
func WithAttributeNames(names ...string) Option {
	return func(c *config) {
		c.attributeNames = append([]string(nil), names...)
	}
}

// WithVerbose logs Fit progress at Info instead of Debug level.
func WithVerbose(verbose bool) Option {
	return func(c *config) {
		c.verbose = verbose
	}
}
