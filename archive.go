package contractpro

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// ArchiveDocument is a signed contract stored in the repository view.
type ArchiveDocument struct {
	ID                    int     `json:"id"`
	ContractTitle         string  `json:"contract_title"`
	VendorName            string  `json:"vendor_name"`
	ContractValue         float64 `json:"contract_value"`
	Currency              string  `json:"currency"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	TerminationPeriodDays int     `json:"termination_period_days"`
	OriginalFilename      string  `json:"original_filename"`
	SigningStatus         string  `json:"signing_status"`
	CreatedAt             string  `json:"created_at"`
}

// ArchiveUpload carries the scalar multipart fields for UploadArchive.
// The backend accepts PDF files only and rejects anything else with a
// human-readable reason.
type ArchiveUpload struct {
	ContractTitle         string
	VendorName            string
	ContractValue         string
	Currency              string
	StartDate             string
	EndDate               string
	TerminationPeriodDays string
}

// ArchiveReceipt acknowledges an archive upload.
type ArchiveReceipt struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// ListArchive returns archived documents, optionally narrowed by a
// server-side substring search over title, vendor and filename.
func (c *Client) ListArchive(ctx context.Context, search string) ([]ArchiveDocument, error) {
	var query url.Values
	if search != "" {
		query = url.Values{"search": {search}}
	}
	out, err := getJSON[[]ArchiveDocument](ctx, c, "/archive", query)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// UploadArchive stores a signed PDF plus its metadata in the repository.
func (c *Client) UploadArchive(ctx context.Context, meta ArchiveUpload, filename string, file io.Reader) (*ArchiveReceipt, error) {
	fields := map[string]string{
		"contract_title": meta.ContractTitle,
		"vendor_name":    meta.VendorName,
	}
	for k, v := range map[string]string{
		"contract_value":          meta.ContractValue,
		"currency":                meta.Currency,
		"start_date":              meta.StartDate,
		"end_date":                meta.EndDate,
		"termination_period_days": meta.TerminationPeriodDays,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	return upload[ArchiveReceipt](ctx, c, "/archive/upload", fields, filename, file)
}

// DownloadArchive saves an archived document to destPath.
func (c *Client) DownloadArchive(ctx context.Context, id int, destPath string) error {
	return c.Download(ctx, "/archive/"+strconv.Itoa(id)+"/download", destPath)
}

// DeleteArchive removes an archived document (admin only on the backend).
func (c *Client) DeleteArchive(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/archive/"+strconv.Itoa(id), nil, nil, "")
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
