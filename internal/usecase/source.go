package usecase

// Fragment is one renderable unit of section markup. The zero fragment is the
// "no data" signal: it renders the source's empty message and is never cached.
type Fragment struct {
	HTML string
}

func (f Fragment) Empty() bool {
	return f.HTML == ""
}

// Source is the immutable descriptor of one fetch-render task. Built once at
// startup, never mutated.
type Source struct {
	URL          string
	CacheKey     string
	SectionID    string
	EmptyMessage string
	Transform    func(map[string]any) (Fragment, error)
}
