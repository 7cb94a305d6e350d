package contractpro

import "context"

// DashboardStats is the aggregate contract count per workflow status.
// The reports summary endpoint serves the same shape.
type DashboardStats struct {
	TotalContracts int `json:"total_contracts"`
	Drafts         int `json:"drafts"`
	InReview       int `json:"in_review"`
	VendorFeedback int `json:"vendor_feedback"`
	Approved       int `json:"approved"`
	Signed         int `json:"signed"`
}

// DashboardStats fetches the dashboard KPI counts.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	return getJSON[DashboardStats](ctx, c, "/dashboard/stats", nil)
}
