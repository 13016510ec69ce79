package compose

// EntrySource supplies the roster in display order.
type EntrySource interface {
	Entries() []Entry
}

// ResultSource supplies the latest search results.
type ResultSource interface {
	Results() []Entry
}

// Row is one rendered list line. Top and Bottom mark the first and last rows
// of the list actually shown.
type Row struct {
	Entry  Entry
	User   User
	Top    bool
	Bottom bool
}

// ListPolicy decides what a list screen shows: search results while there
// are any, the roster otherwise. The two are never mixed.
type ListPolicy struct {
	roster EntrySource
	search ResultSource
}

// NewListPolicy creates a policy over roster and search. search may be nil.
func NewListPolicy(roster EntrySource, search ResultSource) *ListPolicy {
	return &ListPolicy{roster: roster, search: search}
}

// CurrentList returns the entries to render.
func (p *ListPolicy) CurrentList() []Entry {
	if p.search != nil {
		if results := p.search.Results(); len(results) > 0 {
			return results
		}
	}
	return p.roster.Entries()
}

// Searching reports whether CurrentList is showing search results.
func (p *ListPolicy) Searching() bool {
	return p.search != nil && len(p.search.Results()) > 0
}

// Rows returns CurrentList with normalized users and boundary markers.
func (p *ListPolicy) Rows() []Row {
	list := p.CurrentList()
	rows := make([]Row, len(list))
	for i, e := range list {
		rows[i] = Row{
			Entry:  e,
			User:   Normalize(e),
			Top:    i == 0,
			Bottom: i == len(list)-1,
		}
	}
	return rows
}
