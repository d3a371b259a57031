package detail

import "strconv"

// Accordion keeps at most one entry of a list open.
type Accordion struct {
	open  int64
	isSet bool
}

func NewAccordion(open int64, isSet bool) Accordion {
	return Accordion{open: open, isSet: isSet}
}

// ParseAccordion restores the open entry from its URL value.
func ParseAccordion(raw string) Accordion {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Accordion{}
	}
	return NewAccordion(id, true)
}

// Toggle opens id, closing any other entry, or closes it when already open.
func (a *Accordion) Toggle(id int64) {
	if a.IsOpen(id) {
		a.open, a.isSet = 0, false
		return
	}
	a.open, a.isSet = id, true
}

func (a Accordion) IsOpen(id int64) bool {
	return a.isSet && a.open == id
}

func (a Accordion) Open() (int64, bool) {
	return a.open, a.isSet
}

func (a Accordion) value() string {
	if !a.isSet {
		return ""
	}
	return strconv.FormatInt(a.open, 10)
}
