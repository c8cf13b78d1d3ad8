package apriori

import (
	"fmt"
	"math"

	"github.com/freqmine/apriori/aerr"
	"github.com/freqmine/apriori/measure"
)

// Aggregation selects how a multi-item set's evaluation is combined from
// its n "rotations" (each rotation picks one member as head, the rest as
// body), per spec.md §4.4.
type Aggregation uint8

const (
	// AggFirst evaluates only the canonical rotation (the node's own
	// counter against its parent's body support).
	AggFirst Aggregation = iota
	AggMin
	AggMax
	AggAvg
)

// epsilon is the float64 machine epsilon, used to scale the confidence
// threshold down by a single ulp so a rule whose computed confidence
// lands a tick below the requested fraction due to roundoff is not
// missed. Preserved exactly as spec.md §4.4 requires.
var epsilon = math.Nextafter(1, 2) - 1

// Config holds the thresholds and evaluation settings a Tree is built
// with. Build one with NewConfig and the With* options below; Config
// itself is immutable once returned.
type Config struct {
	minSupport  uint64
	maxSupport  uint64
	ruleSupport uint64
	confidence  float64 // stored already scaled by (1-epsilon)
	maxDepth    int

	perfectExtension bool

	measureID      measure.ID
	hasMeasure     bool
	aggregation    Aggregation
	evalThreshold  float64
	minImprovement float64 // -Inf disables the improvement gate
	pruneLevel     int
	invertBelowExp bool
}

// Option configures a Config under construction.
type Option func(*Config) error

// WithMinSupport sets the absolute minimum support a set must reach to be
// frequent. Clamped to at least 1.
func WithMinSupport(n uint64) Option {
	return func(c *Config) error {
		c.minSupport = n
		return nil
	}
}

// WithMaxSupport sets smax, an upper bound on reported support (0 means
// unlimited). Clamped to at least the rule-support threshold during
// NewConfig.
func WithMaxSupport(n uint64) Option {
	return func(c *Config) error {
		c.maxSupport = n
		return nil
	}
}

// WithRuleSupport sets the body-support threshold used when generating
// rules. Clamped to at least 1.
func WithRuleSupport(n uint64) Option {
	return func(c *Config) error {
		c.ruleSupport = n
		return nil
	}
}

// WithConfidence sets the minimum confidence a rule must reach, in
// [0,1]. Internally scaled by (1-epsilon).
func WithConfidence(conf float64) Option {
	return func(c *Config) error {
		if conf < 0 || conf > 1 {
			return fmt.Errorf("%w: confidence %v out of [0,1]", aerr.ErrBadThreshold, conf)
		}
		c.confidence = conf * (1 - epsilon)
		return nil
	}
}

// WithMaxDepth caps the tree height (the largest itemset size considered).
// Clamped to at least 1.
func WithMaxDepth(n int) Option {
	return func(c *Config) error {
		c.maxDepth = n
		return nil
	}
}

// WithPerfectExtension enables perfect-extension pruning: items that
// appear in every transaction containing the current prefix are recorded
// once and re-attached during reporting instead of being expanded as
// ordinary candidates.
func WithPerfectExtension(enabled bool) Option {
	return func(c *Config) error {
		c.perfectExtension = enabled
		return nil
	}
}

// WithMeasure configures evaluation-based filtering using the named
// measure, aggregated per agg: NextItemset skips sets below threshold (or
// above it, for a Lower-direction measure). pruneLevel is stored in the
// Config but not read; AddLevel does not prune candidates by evaluation.
func WithMeasure(id measure.ID, agg Aggregation, threshold float64, pruneLevel int) Option {
	return func(c *Config) error {
		if _, ok := measure.DirectionOf(id); !ok {
			return fmt.Errorf("%w: unknown measure id %v", aerr.ErrBadThreshold, id)
		}
		c.measureID = id
		c.hasMeasure = true
		c.aggregation = agg
		c.evalThreshold = threshold
		c.pruneLevel = pruneLevel
		return nil
	}
}

// WithMinImprovement requires the aggregate evaluation minus the best
// one-item-smaller subset's evaluation, signed by the measure's
// direction, to be at least minimp. Disabled (the default) when minimp is
// -Inf.
func WithMinImprovement(minimp float64) Option {
	return func(c *Config) error {
		c.minImprovement = minimp
		return nil
	}
}

// WithInvertBelowExpectation forces a measure to 0 whenever the observed
// joint support does not exceed the independence expectation
// (head*body >= supp*base).
func WithInvertBelowExpectation(enabled bool) Option {
	return func(c *Config) error {
		c.invertBelowExp = enabled
		return nil
	}
}

// NewConfig builds a Config from opts, clamping thresholds to the sensible
// minima spec.md §7 requires: rule and supp at least 1, smax at least
// rule, maxDepth at least 1.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		minSupport:     1,
		ruleSupport:    1,
		confidence:     0,
		maxDepth:       math.MaxInt32,
		minImprovement: math.Inf(-1),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.minSupport < 1 {
		c.minSupport = 1
	}
	if c.ruleSupport < 1 {
		c.ruleSupport = 1
	}
	if c.maxSupport != 0 && c.maxSupport < c.ruleSupport {
		c.maxSupport = c.ruleSupport
	}
	if c.maxDepth < 1 {
		c.maxDepth = 1
	}
	return c, nil
}
