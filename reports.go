package contractpro

import (
	"context"
	"net/url"
)

// ReportFilter narrows the spreadsheet export. Zero values mean "all".
// Dates are YYYY-MM-DD.
type ReportFilter struct {
	Status   Status
	FromDate string
	ToDate   string
}

func (f ReportFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.FromDate != "" {
		q.Set("from_date", f.FromDate)
	}
	if f.ToDate != "" {
		q.Set("to_date", f.ToDate)
	}
	return q
}

// ReportSummary fetches the per-status counts shown on the reports page.
func (c *Client) ReportSummary(ctx context.Context) (*DashboardStats, error) {
	return getJSON[DashboardStats](ctx, c, "/reports/summary", nil)
}

// ExportReport downloads the filtered spreadsheet export to destPath.
// The spreadsheet itself is opaque to this client.
func (c *Client) ExportReport(ctx context.Context, filter ReportFilter, destPath string) error {
	endpoint := "/reports/export"
	if q := filter.query().Encode(); q != "" {
		endpoint += "?" + q
	}
	return c.Download(ctx, endpoint, destPath)
}
