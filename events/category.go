package events

import "strings"

// Category is a set of coarse classifications used to filter events.
// An event may belong to more than one category, e.g. a mouse button press is Input, Mouse, and MouseButton.
type Category uint8

// CategoryNone is the empty set.
const CategoryNone Category = 0

const (
	CategoryApplication Category = 1 << iota
	CategoryInput
	CategoryKeyboard
	CategoryMouse
	CategoryMouseButton
)

var categoryNames = []struct {
	cat  Category
	name string
}{
	{CategoryApplication, "Application"},
	{CategoryInput, "Input"},
	{CategoryKeyboard, "Keyboard"},
	{CategoryMouse, "Mouse"},
	{CategoryMouseButton, "MouseButton"},
}

// Has reports whether every category in other is also in c.
// The empty set is never matched, so Has(CategoryNone) is always false.
func (c Category) Has(other Category) bool {
	return other != CategoryNone && c&other == other
}

func (c Category) String() string {
	if c == CategoryNone {
		return "None"
	}
	var names []string
	for _, cn := range categoryNames {
		if c&cn.cat != 0 {
			names = append(names, cn.name)
		}
	}
	return strings.Join(names, "|")
}
