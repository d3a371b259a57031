package schema

// Category is the browse preference: which collection is shown first.
type Category string

const (
	CategoryTours Category = "tours"
	CategoryCars  Category = "cars"
)

func (c Category) Valid() bool {
	return c == CategoryTours || c == CategoryCars
}

func (c Category) Tab() Tab {
	if c == CategoryCars {
		return TabSecond
	}
	return TabFirst
}

// Tab is the browse page pane selected by the "show" query parameter.
type Tab string

const (
	TabFirst  Tab = "first"
	TabSecond Tab = "second"
)

func ParseTab(value string) Tab {
	if value == string(TabSecond) {
		return TabSecond
	}
	return TabFirst
}

func (t Tab) Category() Category {
	if t == TabSecond {
		return CategoryCars
	}
	return CategoryTours
}
