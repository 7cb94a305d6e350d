package contractpro

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Status is a contract's position in the review workflow. The backend is
// the authority on which transitions are legal; the client only validates
// that a value is one of the known labels before sending it.
type Status string

const (
	StatusDraft          Status = "draft"
	StatusInReview       Status = "in_review"
	StatusVendorFeedback Status = "vendor_feedback"
	StatusApproved       Status = "approved"
	StatusSigned         Status = "signed"
)

// Statuses lists every workflow status in lifecycle order.
var Statuses = []Status{StatusDraft, StatusInReview, StatusVendorFeedback, StatusApproved, StatusSigned}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Contract is the read-through copy of a backend contract. Status is the
// only field this client ever changes, and only via UpdateContractStatus.
// Timestamps are kept verbatim: the backend emits bare ISO 8601 strings
// without a zone, which are display values here, not instants.
type Contract struct {
	ID             int    `json:"id"`
	ContractNumber string `json:"contract_number"`
	Title          string `json:"title"`
	Status         Status `json:"status"`
	Category       string `json:"category"`
	VendorName     string `json:"vendor_name"`
	ContractValue  string `json:"contract_value"`
	Currency       string `json:"currency"`
	SLADays        int    `json:"sla_days"`
	SLADeadline    string `json:"sla_deadline"`
	CurrentHandler string `json:"current_handler_name"`
	UploaderName   string `json:"uploader_name"`
	CreatedAt      string `json:"created_at"`
	HasDocument    bool   `json:"has_document"`
	Version        int    `json:"current_version"`
}

// ActivityRecord is one append-only audit entry, newest first as served.
type ActivityRecord struct {
	User      string `json:"user"`
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
}

// StatusChange is the backend's acknowledgement of a status transition.
type StatusChange struct {
	Message   string `json:"message"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}

// UploadReceipt acknowledges a contract upload.
type UploadReceipt struct {
	Message        string `json:"message"`
	ContractNumber string `json:"contract_number"`
}

// ContractUpload carries the scalar multipart fields for UploadContract.
type ContractUpload struct {
	Title         string
	Category      string
	VendorName    string
	ContractValue string
	SLADays       int
	ReviewerID    int
}

// ListContracts returns every contract visible to the session. limit <= 0
// means no limit.
func (c *Client) ListContracts(ctx context.Context, limit int) ([]Contract, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	out, err := getJSON[[]Contract](ctx, c, "/contracts", query)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// GetContract fetches one contract. The backend reports missing and
// forbidden contracts identically to the viewer, so 403 joins 404 under
// ErrNotFound.
func (c *Client) GetContract(ctx context.Context, id int) (*Contract, error) {
	out, err := getJSON[Contract](ctx, c, "/contracts/"+strconv.Itoa(id), nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			apiErr.kind = ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// ContractActivities returns the contract's audit trail, newest first.
func (c *Client) ContractActivities(ctx context.Context, id int) ([]ActivityRecord, error) {
	out, err := getJSON[[]ActivityRecord](ctx, c, "/contracts/"+strconv.Itoa(id)+"/activities", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// UpdateContractStatus requests a workflow transition. Any backend
// rejection, 4xx or 5xx, surfaces as ErrTransitionRejected; the caller
// decides what to do with its local copy.
func (c *Client) UpdateContractStatus(ctx context.Context, id int, status Status) (*StatusChange, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrTransitionRejected, status)
	}
	body := map[string]string{"status": string(status)}
	return sendJSON[StatusChange](ctx, c, http.MethodPatch, "/contracts/"+strconv.Itoa(id)+"/status", body, ErrTransitionRejected)
}

// DeleteContract removes a contract. The backend only allows deleting
// drafts owned by the caller (or anything, for admins).
func (c *Client) DeleteContract(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/contracts/"+strconv.Itoa(id), nil, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.do(req, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// UploadContract creates a contract from its metadata plus a document.
func (c *Client) UploadContract(ctx context.Context, meta ContractUpload, filename string, file io.Reader) (*UploadReceipt, error) {
	fields := map[string]string{
		"title":       meta.Title,
		"category":    meta.Category,
		"vendor_name": meta.VendorName,
		"reviewer_id": strconv.Itoa(meta.ReviewerID),
	}
	if meta.ContractValue != "" {
		fields["contract_value"] = meta.ContractValue
	}
	if meta.SLADays > 0 {
		fields["sla_days"] = strconv.Itoa(meta.SLADays)
	}
	return upload[UploadReceipt](ctx, c, "/contracts/upload", fields, filename, file)
}

// DownloadContract saves the contract's current document to destPath.
func (c *Client) DownloadContract(ctx context.Context, id int, destPath string) error {
	return c.Download(ctx, "/contracts/"+strconv.Itoa(id)+"/download", destPath)
}
