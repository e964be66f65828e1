package report

import "strings"

// SQL expressions for the derived facets. Year is derived from the true UTC
// calendar conversion of the stored timestamp, not from string manipulation
// of a formatted date. Domain is everything after the first '@'; an address
// with no '@' falls through to the whole string (instr returns 0).
const (
	yearExpr   = "strftime('%Y', datetime(mail.date, 'unixepoch'))"
	domainExpr = "substr(mail.from_address, instr(mail.from_address, '@') + 1)"
)

// Predicate is the typed form of a filter: an AND of structured constraints
// that is rendered into SQL only at the query boundary. Constraint values are
// carried separately and only ever bound as parameters.
type Predicate struct {
	// JoinLabels is set when a label constraint is present; label is not a
	// column of the mail table, so matching requires joining the assignments.
	JoinLabels bool

	conds []string
	args  []any
}

// Predicate composes the filter's present constraints. Constraint order
// follows the canonical facet order, so rendered SQL and bound args are
// deterministic for a given filter.
func (f Filter) Predicate() Predicate {
	var p Predicate
	if f.Label != "" {
		p.JoinLabels = true
		p.add("labels.label = ?", f.Label)
	}
	if f.Year != "" {
		p.add(yearExpr+" = ?", f.Year)
	}
	if f.Domain != "" {
		p.add(domainExpr+" = ?", f.Domain)
	}
	if f.Address != "" {
		p.add("mail.from_address = ?", f.Address)
	}
	return p
}

func (p *Predicate) add(cond string, arg any) {
	p.conds = append(p.conds, cond)
	p.args = append(p.args, arg)
}

// Clause renders the JOIN/WHERE tail of a query whose FROM clause exposes the
// mail table. Empty for the empty predicate.
func (p Predicate) Clause() string {
	var parts []string
	if p.JoinLabels {
		parts = append(parts, "JOIN labels ON labels.mail_id = mail.id")
	}
	if len(p.conds) > 0 {
		parts = append(parts, "WHERE "+strings.Join(p.conds, " AND "))
	}
	return strings.Join(parts, " ")
}

// Args returns the bound parameter values in clause order.
func (p Predicate) Args() []any {
	return append([]any(nil), p.args...)
}
