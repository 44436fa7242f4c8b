package watchlist

// Navigate returns the screen reached from "from" when a navigation effect of
// the given kind is processed. List is the root: going back from it stays there.
func Navigate(from Screen, kind EffectKind) Screen {
	switch kind {
	case EffectNavigateToList:
		return ScreenList
	case EffectNavigateToEdit:
		return ScreenEdit
	case EffectNavigateToSearch:
		return ScreenSearch
	case EffectNavigateBack:
		switch from {
		case ScreenSearch:
			return ScreenEdit
		default:
			return ScreenList
		}
	default:
		return from
	}
}

// navigate applies a navigation effect to the screen fields
func (s State) navigate(e Effect) State {
	if !e.IsNavigation() {
		return s
	}
	next := Navigate(s.Screen, e.Kind)
	switch {
	case e.Kind == EffectNavigateToEdit:
		s.EditTarget = nil
		if e.Entry != nil {
			target := *e.Entry
			s.EditTarget = &target
		}
	case next == ScreenList:
		s.EditTarget = nil
	}
	s.Screen = next
	return s
}
