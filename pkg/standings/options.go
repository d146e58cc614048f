package standings

import "github.com/mpapenbr/rally-championship/pkg/scoring"

// DefaultMaxResults bounds the number of results accepted per computation.
// A season with a full grid at every event stays well below.
const DefaultMaxResults = 10000

type (
	Option  func(o *options)
	options struct {
		rules      *scoring.Rules
		maxResults int
	}
)

func WithRules(r *scoring.Rules) Option {
	return func(o *options) {
		o.rules = r
	}
}

// WithMaxResults sets the maximum number of results. Values <= 0 disable the
// check.
func WithMaxResults(n int) Option {
	return func(o *options) {
		o.maxResults = n
	}
}

func newOptions(opts ...Option) *options {
	ret := &options{
		rules:      scoring.DefaultRules(),
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.rules == nil {
		ret.rules = scoring.DefaultRules()
	}
	return ret
}
