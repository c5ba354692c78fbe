package feedback

import "github.com/goliatone/go-formstate/pkg/signal"

// CombineVisibility ORs multiple visibility signals into one, for group-level
// feedback such as a fieldset error banner. Evaluation is lazy: inputs are
// re-read on every call and reading stops at the first true.
func CombineVisibility(signals ...signal.Source[bool]) signal.Source[bool] {
	return func() bool {
		for _, src := range signals {
			if signal.Resolve(src) {
				return true
			}
		}
		return false
	}
}
