package model

// WildcardViewID is the view id of a navigation rule declared without one.
const WildcardViewID = "*"

// NavigationRule groups the navigation cases leaving one view.
type NavigationRule struct {
	Feature

	FromViewID string
	Cases      []*NavigationCase
}

func (*NavigationRule) Kind() Kind { return KindNavigationRule }
func (*NavigationRule) entity() {}

// Key returns the originating view id, WildcardViewID when none was
// declared.
func (r *NavigationRule) Key() string { return normalizeViewID(r.FromViewID) }

// Case returns the first case matching outcome and action. Empty
// arguments match cases that leave the field unset.
func (r *NavigationRule) Case(fromOutcome, fromAction string) *NavigationCase {
	for _, c := range r.Cases {
		if c.FromOutcome == fromOutcome && c.FromAction == fromAction {
			return c
		}
	}
	return nil
}

// NavigationCase maps an action outcome to a target view.
type NavigationCase struct {
	Feature

	FromAction  string
	FromOutcome string
	ToViewID    string
	Redirect    bool
}

func (*NavigationCase) Kind() Kind { return KindNavigationCase }
func (*NavigationCase) entity() {}

func normalizeViewID(id string) string {
	if id == "" {
		return WildcardViewID
	}
	return id
}
