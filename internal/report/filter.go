package report

import (
	"fmt"
	"net/url"
	"strings"
)

// Facet names one of the four filterable dimensions. They double as query
// parameter names.
type Facet string

const (
	FacetLabel   Facet = "label"
	FacetYear    Facet = "year"
	FacetDomain  Facet = "domain"
	FacetAddress Facet = "address"
)

// facetOrder fixes the canonical encoding order.
var facetOrder = []Facet{FacetLabel, FacetYear, FacetDomain, FacetAddress}

// Filter is a conjunction of up to four optional facet constraints. An empty
// string means the facet is unconstrained; there is no way to filter on an
// empty facet value, which matches query-parameter semantics where an absent
// and an empty parameter are the same thing.
type Filter struct {
	Label   string
	Year    string
	Domain  string
	Address string
}

// ParseFilter builds a Filter from a parameter lookup such as
// echo.Context.QueryParam or url.Values.Get. Unknown or absent parameters are
// no constraint, never an error.
func ParseFilter(get func(name string) string) Filter {
	return Filter{
		Label:   get(string(FacetLabel)),
		Year:    get(string(FacetYear)),
		Domain:  get(string(FacetDomain)),
		Address: get(string(FacetAddress)),
	}
}

// IsEmpty reports whether no facet is constrained.
func (f Filter) IsEmpty() bool {
	return f.Label == "" && f.Year == "" && f.Domain == "" && f.Address == ""
}

// Get returns the constraint value for a facet, empty when unconstrained.
func (f Filter) Get(facet Facet) string {
	switch facet {
	case FacetLabel:
		return f.Label
	case FacetYear:
		return f.Year
	case FacetDomain:
		return f.Domain
	case FacetAddress:
		return f.Address
	}
	panic(fmt.Sprintf("unknown facet %q", facet))
}

// With returns a copy of the filter with one facet pinned to value.
func (f Filter) With(facet Facet, value string) Filter {
	switch facet {
	case FacetLabel:
		f.Label = value
	case FacetYear:
		f.Year = value
	case FacetDomain:
		f.Domain = value
	case FacetAddress:
		f.Address = value
	default:
		panic(fmt.Sprintf("unknown facet %q", facet))
	}
	return f
}

// Without returns a copy of the filter with one facet unconstrained. Used to
// build "remove this filter" links.
func (f Filter) Without(facet Facet) Filter {
	return f.With(facet, "")
}

// Encode renders the filter as a root-relative URL in canonical order:
// label, year, domain, address. Unconstrained facets are omitted, never
// encoded as empty parameters. The empty filter encodes as "/".
func (f Filter) Encode() string {
	var b strings.Builder
	b.WriteString("/")
	sep := "?"
	for _, facet := range facetOrder {
		value := f.Get(facet)
		if value == "" {
			continue
		}
		b.WriteString(sep)
		sep = "&"
		b.WriteString(string(facet))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(value))
	}
	return b.String()
}

// DecodeFilter parses an encoded filter. DecodeFilter(f.Encode()) == f holds
// for every filter, including the empty one.
func DecodeFilter(s string) (Filter, error) {
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimPrefix(s, "?")
	values, err := url.ParseQuery(s)
	if err != nil {
		return Filter{}, fmt.Errorf("failed to decode filter: %w", err)
	}
	return ParseFilter(values.Get), nil
}
