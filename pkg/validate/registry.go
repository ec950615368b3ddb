package validate

import "omtsf/pkg/model"

// Rule is one independent conformance check. Rules never see each
// other's output and never short-circuit the sweep; Check collects
// every violation it finds in a single pass over the document.
type Rule interface {
	ID() string
	Level() Level
	Check(doc *model.Document, ds DataSource) []Diagnostic
}

// Registry is an ordered, linear-sweep dispatcher over a fixed set of
// rules. Rule order only affects diagnostic ordering in the result,
// never which diagnostics are produced.
type Registry struct {
	rules []Rule
}

// NewRegistry returns a registry pre-populated with every built-in
// rule at all three levels. Callers that want a narrower rule set can
// construct an empty Registry and call Register directly.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(l1Rules()...)
	r.Register(l2Rules()...)
	r.Register(l3Rules()...)
	return r
}

// Register appends rules to the registry's dispatch list.
func (r *Registry) Register(rules ...Rule) {
	r.rules = append(r.rules, rules...)
}

// Run sweeps doc through every registered rule whose level is enabled
// by cfg, in registration order, collecting every diagnostic. ds is
// consulted only by level-3 rules; pass NoopDataSource{} when none is
// available.
func (r *Registry) Run(doc *model.Document, cfg Config, ds DataSource) Result {
	if ds == nil {
		ds = NoopDataSource{}
	}
	var result Result
	for _, rule := range r.rules {
		if !levelEnabled(rule.Level(), cfg) {
			continue
		}
		result.Diagnostics = append(result.Diagnostics, rule.Check(doc, ds)...)
	}
	return result
}

func levelEnabled(level Level, cfg Config) bool {
	switch level {
	case LevelError:
		return cfg.RunL1
	case LevelWarning:
		return cfg.RunL2
	case LevelInfo:
		return cfg.RunL3
	default:
		return false
	}
}
