package handlers

import (
	"net/http"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/api/response"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/report"
	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

// OverviewHandler handles faceted analytics HTTP requests
type OverviewHandler struct {
	aggregator *report.Aggregator
	database   string
}

// NewOverviewHandler creates a new OverviewHandler. database is the display
// name of the index file.
func NewOverviewHandler(aggregator *report.Aggregator, database string) *OverviewHandler {
	return &OverviewHandler{aggregator: aggregator, database: database}
}

// Overview handles GET /. The four facet parameters are all optional;
// anything absent or unknown means no constraint on that facet, never an
// error.
func (h *OverviewHandler) Overview(c echo.Context) error {
	filter := report.ParseFilter(c.QueryParam)

	overview, err := h.aggregator.Overview(c.Request().Context(), filter)
	if err != nil {
		return response.InternalError(c, "failed to compute overview")
	}

	return c.JSON(http.StatusOK, newOverviewView(h.database, overview))
}

// The view types decorate the aggregator's raw byte counts with
// display-ready strings. Formatting lives here at the rendering boundary,
// not in the report core.

type overviewView struct {
	Database                 string                `json:"database"`
	TotalSize                uint64                `json:"total_size"`
	TotalSizeDisplay         string                `json:"total_size_display"`
	FilteredTotalSize        uint64                `json:"filtered_total_size"`
	FilteredTotalSizeDisplay string                `json:"filtered_total_size_display"`
	ActiveFilters            []report.ActiveFilter `json:"active_filters,omitempty"`
	ByLabel                  []facetRowView        `json:"by_label,omitempty"`
	ByYear                   []facetRowView        `json:"by_year,omitempty"`
	ByDomain                 []facetRowView        `json:"by_domain,omitempty"`
	ByAddress                []facetRowView        `json:"by_address,omitempty"`
	TopMessages              []topMessageView      `json:"top_messages"`
}

type facetRowView struct {
	Key         string `json:"key"`
	Size        uint64 `json:"size"`
	SizeDisplay string `json:"size_display"`
	FilterURL   string `json:"filter_url"`
}

type topMessageView struct {
	From        string `json:"from"`
	Size        uint64 `json:"size"`
	SizeDisplay string `json:"size_display"`
	Subject     string `json:"subject"`
	RawDate     string `json:"raw_date,omitempty"`
}

func newOverviewView(database string, ov *report.Overview) overviewView {
	view := overviewView{
		Database:                 database,
		TotalSize:                ov.TotalSize,
		TotalSizeDisplay:         humanize.Bytes(ov.TotalSize),
		FilteredTotalSize:        ov.FilteredTotalSize,
		FilteredTotalSizeDisplay: humanize.Bytes(ov.FilteredTotalSize),
		ActiveFilters:            ov.ActiveFilters,
		ByLabel:                  facetRowViews(ov.ByLabel),
		ByYear:                   facetRowViews(ov.ByYear),
		ByDomain:                 facetRowViews(ov.ByDomain),
		ByAddress:                facetRowViews(ov.ByAddress),
		TopMessages:              make([]topMessageView, 0, len(ov.TopMessages)),
	}
	for _, m := range ov.TopMessages {
		view.TopMessages = append(view.TopMessages, topMessageView{
			From:        m.From,
			Size:        m.Size,
			SizeDisplay: humanize.Bytes(m.Size),
			Subject:     m.Subject,
			RawDate:     m.RawDate,
		})
	}
	return view
}

func facetRowViews(rows []report.FacetRow) []facetRowView {
	if rows == nil {
		return nil
	}
	views := make([]facetRowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, facetRowView{
			Key:         row.Key,
			Size:        row.Size,
			SizeDisplay: humanize.Bytes(row.Size),
			FilterURL:   row.FilterURL,
		})
	}
	return views
}
