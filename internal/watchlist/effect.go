package watchlist

import "github.com/mmcdole/marquee/internal/domain"

// EffectKind identifies a one-shot outcome
type EffectKind int

const (
	EffectNavigateToList EffectKind = iota + 1
	EffectNavigateToEdit
	EffectNavigateToSearch
	EffectNavigateBack
	EffectShowError
)

// String returns the name of the effect kind
func (k EffectKind) String() string {
	switch k {
	case EffectNavigateToList:
		return "NavigateToList"
	case EffectNavigateToEdit:
		return "NavigateToEdit"
	case EffectNavigateToSearch:
		return "NavigateToSearch"
	case EffectNavigateBack:
		return "NavigateBack"
	case EffectShowError:
		return "ShowError"
	default:
		return "Unknown"
	}
}

// Effect is delivered at most once, in emission order, and never replayed.
type Effect struct {
	Kind    EffectKind
	Entry   *domain.Movie // NavigateToEdit only; nil means a new entry
	Message string        // ShowError only
}

// IsNavigation reports whether the effect moves between screens
func (e Effect) IsNavigation() bool {
	return e.Kind != EffectShowError
}
