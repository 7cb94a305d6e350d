package contractpro

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// EditorDocument identifies the document handed to the external editor.
type EditorDocument struct {
	FileType string `json:"fileType"`
	Key      string `json:"key"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

// EditorSession is the document-editor configuration for one contract.
// Raw preserves the full payload, since the editor integration consumes
// fields this client does not model.
type EditorSession struct {
	Document     EditorDocument `json:"document"`
	DocumentType string         `json:"documentType"`
	Token        string         `json:"token"`

	Raw json.RawMessage `json:"-"`
}

// EditorConfig fetches the external editor's session configuration for a
// contract's current document.
func (c *Client) EditorConfig(ctx context.Context, contractID int) (*EditorSession, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/editor/config/"+strconv.Itoa(contractID), nil, nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	var out EditorSession
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	out.Raw = raw
	return &out, nil
}
