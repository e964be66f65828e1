package report

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// breakdownLimit caps the domain and address breakdowns and the top message
// list. Label and year breakdowns are unbounded.
const breakdownLimit = 30

// FacetRow is one entry of a facet breakdown: a facet value, the summed size
// of matching records, and the encoded filter that drills down into it.
type FacetRow struct {
	Key       string `json:"key"`
	Size      uint64 `json:"size"`
	FilterURL string `gorm:"-" json:"filter_url"`
}

// TopMessage is one of the largest matching records.
type TopMessage struct {
	From    string `gorm:"column:from_address" json:"from"`
	Size    uint64 `json:"size"`
	Subject string `json:"subject"`
	RawDate string `gorm:"column:raw_date" json:"raw_date,omitempty"`
}

// ActiveFilter describes one pinned facet and the encoded filter that removes
// just that constraint.
type ActiveFilter struct {
	Facet     Facet  `json:"facet"`
	Value     string `json:"value"`
	RemoveURL string `json:"remove_url"`
}

// Overview is the view-model for one analytics request. Sizes are raw byte
// counts; presentation formatting belongs to the rendering boundary. A facet
// breakdown is present only when that facet is not pinned by the filter.
type Overview struct {
	TotalSize         uint64         `json:"total_size"`
	FilteredTotalSize uint64         `json:"filtered_total_size"`
	ActiveFilters     []ActiveFilter `json:"active_filters,omitempty"`
	ByLabel           []FacetRow     `json:"by_label,omitempty"`
	ByYear            []FacetRow     `json:"by_year,omitempty"`
	ByDomain          []FacetRow     `json:"by_domain,omitempty"`
	ByAddress         []FacetRow     `json:"by_address,omitempty"`
	TopMessages       []TopMessage   `json:"top_messages"`
}

// Aggregator answers faceted storage-usage queries over the immutable index.
// It holds only the shared read handle and the grand total precomputed at
// startup, so any number of requests can run concurrently.
type Aggregator struct {
	db         *gorm.DB
	grandTotal uint64
}

// NewAggregator creates a new Aggregator over an already-loaded index.
func NewAggregator(db *gorm.DB, grandTotal uint64) *Aggregator {
	return &Aggregator{db: db, grandTotal: grandTotal}
}

// GrandTotal returns the store-wide total size precomputed at startup.
func (a *Aggregator) GrandTotal() uint64 {
	return a.grandTotal
}

// Overview computes the filtered total, the breakdowns for every facet not
// pinned by the filter, and the largest matching messages.
//
// Because a message can carry several labels, the per-label totals can sum to
// more than the filtered total; that is the intended reading and is not
// deduplicated away.
func (a *Aggregator) Overview(ctx context.Context, f Filter) (*Overview, error) {
	p := f.Predicate()

	overview := &Overview{
		TotalSize:     a.grandTotal,
		ActiveFilters: activeFilters(f),
	}

	if f.IsEmpty() {
		overview.FilteredTotalSize = a.grandTotal
	} else {
		var total uint64
		query := "SELECT COALESCE(SUM(mail.size), 0) FROM mail " + p.Clause()
		if err := a.db.WithContext(ctx).Raw(query, p.Args()...).Scan(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to compute filtered total: %w", err)
		}
		overview.FilteredTotalSize = total
	}

	var err error
	if f.Label == "" {
		if overview.ByLabel, err = a.labelBreakdown(ctx, f, p); err != nil {
			return nil, err
		}
	}
	if f.Year == "" {
		if overview.ByYear, err = a.facetBreakdown(ctx, f, p, FacetYear, yearExpr, 0); err != nil {
			return nil, err
		}
	}
	if f.Domain == "" {
		if overview.ByDomain, err = a.facetBreakdown(ctx, f, p, FacetDomain, domainExpr, breakdownLimit); err != nil {
			return nil, err
		}
	}
	if f.Address == "" {
		if overview.ByAddress, err = a.facetBreakdown(ctx, f, p, FacetAddress, "mail.from_address", breakdownLimit); err != nil {
			return nil, err
		}
	}

	if overview.TopMessages, err = a.topMessages(ctx, p); err != nil {
		return nil, err
	}

	return overview, nil
}

// labelBreakdown groups by label via the assignments table. Only reached when
// the label facet is unpinned, so the predicate never carries its own labels
// join here.
func (a *Aggregator) labelBreakdown(ctx context.Context, f Filter, p Predicate) ([]FacetRow, error) {
	query := `
		SELECT labels.label AS key, SUM(mail.size) AS size
		FROM labels
		JOIN mail ON labels.mail_id = mail.id
		` + p.Clause() + `
		GROUP BY labels.label
		ORDER BY size DESC, labels.label ASC
	`

	var rows []FacetRow
	if err := a.db.WithContext(ctx).Raw(query, p.Args()...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute label breakdown: %w", err)
	}
	fillFilterURLs(rows, f, FacetLabel)
	return rows, nil
}

// facetBreakdown groups matching records by a facet expression over the mail
// table, ranked by summed size descending with ties broken by ascending facet
// value. A limit of 0 means unbounded.
func (a *Aggregator) facetBreakdown(ctx context.Context, f Filter, p Predicate, facet Facet, expr string, limit int) ([]FacetRow, error) {
	query := fmt.Sprintf(`
		SELECT %s AS key, SUM(mail.size) AS size
		FROM mail
		%s
		GROUP BY key
		ORDER BY size DESC, key ASC
	`, expr, p.Clause())
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var rows []FacetRow
	if err := a.db.WithContext(ctx).Raw(query, p.Args()...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute %s breakdown: %w", facet, err)
	}
	fillFilterURLs(rows, f, facet)
	return rows, nil
}

// topMessages lists the largest matching records. Ties are broken by
// ascending sender address, then ascending subject, so the order is a
// deterministic total order.
func (a *Aggregator) topMessages(ctx context.Context, p Predicate) ([]TopMessage, error) {
	query := fmt.Sprintf(`
		SELECT mail.from_address, mail.size, mail.subject, mail.raw_date
		FROM mail
		%s
		ORDER BY mail.size DESC, mail.from_address ASC, mail.subject ASC
		LIMIT %d
	`, p.Clause(), breakdownLimit)

	var rows []TopMessage
	if err := a.db.WithContext(ctx).Raw(query, p.Args()...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute top messages: %w", err)
	}
	return rows, nil
}

func fillFilterURLs(rows []FacetRow, f Filter, facet Facet) {
	for i := range rows {
		rows[i].FilterURL = f.With(facet, rows[i].Key).Encode()
	}
}

func activeFilters(f Filter) []ActiveFilter {
	var active []ActiveFilter
	for _, facet := range facetOrder {
		value := f.Get(facet)
		if value == "" {
			continue
		}
		active = append(active, ActiveFilter{
			Facet:     facet,
			Value:     value,
			RemoveURL: f.Without(facet).Encode(),
		})
	}
	return active
}
