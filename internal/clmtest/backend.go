// Package clmtest is an in-memory stand-in for the ContractPro REST
// backend, just enough behavior for client tests: bearer auth, contract
// workflow state, uploads, downloads and the aggregate endpoints.
package clmtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Account is a login the fake backend accepts.
type Account struct {
	Password string
	Role     string
}

// Contract mirrors the backend's contract detail payload.
type Contract struct {
	ID             int    `json:"id"`
	ContractNumber string `json:"contract_number"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	Category       string `json:"category"`
	VendorName     string `json:"vendor_name"`
	ContractValue  string `json:"contract_value"`
	Currency       string `json:"currency"`
	SLADays        int    `json:"sla_days"`
	CurrentHandler string `json:"current_handler_name"`
	CreatedAt      string `json:"created_at"`
	HasDocument    bool   `json:"has_document"`
	Version        int    `json:"current_version"`
}

// Activity mirrors one audit entry.
type Activity struct {
	User      string `json:"user"`
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
}

// Upload records one multipart request the backend received.
type Upload struct {
	Fields   map[string]string
	Filename string
	Content  []byte
}

// Backend holds mutable fake state. Zero value is unusable; use New.
type Backend struct {
	mu sync.Mutex

	Accounts   map[string]Account
	Contracts  map[int]*Contract
	Activities map[int][]Activity
	Documents  map[int][]byte

	// IssuedToken is what a successful login returns and what
	// authenticated routes then require.
	IssuedToken string

	// FailActivities makes every activity read return a 500.
	FailActivities bool
	// RejectTransition makes every status patch fail with the given
	// detail message when non-empty.
	RejectTransition string

	Uploads []Upload

	nextID int
}

func New() *Backend {
	return &Backend{
		Accounts: map[string]Account{
			"admin":  {Password: "admin123", Role: "admin"},
			"clerk":  {Password: "clerk123", Role: "user"},
			"vendor": {Password: "vendor123", Role: "vendor"},
		},
		Contracts:   map[int]*Contract{},
		Activities:  map[int][]Activity{},
		Documents:   map[int][]byte{},
		IssuedToken: "test-token",
		nextID:      1,
	}
}

// Seed adds a contract and returns its id.
func (b *Backend) Seed(c Contract) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	c.ID = id
	if c.ContractNumber == "" {
		c.ContractNumber = fmt.Sprintf("CTR-2026-%04d", id)
	}
	b.Contracts[id] = &c
	return id
}

// Server starts an httptest server around the backend's router. The
// caller owns the returned server and must Close it.
func (b *Backend) Server() *httptest.Server {
	return httptest.NewServer(b.Router())
}

func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/auth/login", b.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(b.requireAuth)
		r.Get("/contracts", b.handleListContracts)
		r.Post("/contracts/upload", b.handleUploadContract)
		r.Get("/contracts/{id}", b.handleGetContract)
		r.Get("/contracts/{id}/activities", b.handleActivities)
		r.Patch("/contracts/{id}/status", b.handleStatus)
		r.Delete("/contracts/{id}", b.handleDeleteContract)
		r.Get("/contracts/{id}/download", b.handleDownload)
		r.Get("/archive", b.handleListArchive)
		r.Post("/archive/upload", b.handleUploadArchive)
		r.Get("/archive/{id}/download", b.handleDownload)
		r.Get("/dashboard/stats", b.handleStats)
		r.Get("/reports/summary", b.handleStats)
		r.Get("/reports/export", b.handleExport)
		r.Get("/users", b.handleListUsers)
		r.Post("/users/sync-ad", b.handleSyncAD)
		r.Get("/vendors/my-contracts", b.handleVendorContracts)
		r.Post("/vendors/submit-feedback/{id}", b.handleVendorFeedback)
		r.Get("/editor/config/{id}", b.handleEditorConfig)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail mimics the backend's error envelope: {"detail": reason}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (b *Backend) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		want := "Bearer " + b.IssuedToken
		b.mu.Unlock()
		if r.Header.Get("Authorization") != want {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed form")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	b.mu.Lock()
	acct, ok := b.Accounts[username]
	token := b.IssuedToken
	b.mu.Unlock()
	if !ok || acct.Password != password {
		writeDetail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
		"role":         acct.Role,
	})
}

func (b *Backend) handleListContracts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	b.mu.Lock()
	out := make([]Contract, 0, len(b.Contracts))
	for id := 1; id < b.nextID; id++ {
		if c, ok := b.Contracts[id]; ok {
			out = append(out, *c)
		}
	}
	b.mu.Unlock()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) contractID(w http.ResponseWriter, r *http.Request) (int, *Contract, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Contract not found")
		return 0, nil, false
	}
	b.mu.Lock()
	c, ok := b.Contracts[id]
	b.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Contract not found")
		return 0, nil, false
	}
	return id, c, true
}

func (b *Backend) handleGetContract(w http.ResponseWriter, r *http.Request) {
	_, c, ok := b.contractID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	out := *c
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleActivities(w http.ResponseWriter, r *http.Request) {
	if b.FailActivities {
		writeDetail(w, http.StatusInternalServerError, "activity query failed")
		return
	}
	id, _, ok := b.contractID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	acts := append([]Activity(nil), b.Activities[id]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, acts)
}

func (b *Backend) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, c, ok := b.contractID(w, r)
	if !ok {
		return
	}
	if b.RejectTransition != "" {
		writeDetail(w, http.StatusBadRequest, b.RejectTransition)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed body")
		return
	}
	valid := map[string]bool{"draft": true, "in_review": true, "vendor_feedback": true, "approved": true, "signed": true}
	if !valid[body.Status] {
		writeDetail(w, http.StatusBadRequest, "Invalid status")
		return
	}
	b.mu.Lock()
	old := c.Status
	c.Status = body.Status
	b.Activities[id] = append([]Activity{{
		User:      "admin",
		Action:    "Changed status to " + body.Status,
		CreatedAt: "2026-01-02T10:00:00",
	}}, b.Activities[id]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{
		"message":    fmt.Sprintf("Status updated from %s to %s", old, body.Status),
		"old_status": old,
		"new_status": body.Status,
	})
}

func (b *Backend) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	id, c, ok := b.contractID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	if c.Status != "draft" {
		b.mu.Unlock()
		writeDetail(w, http.StatusBadRequest, "Only draft contracts can be deleted")
		return
	}
	delete(b.Contracts, id)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Contract deleted successfully"})
}

func (b *Backend) recordUpload(w http.ResponseWriter, r *http.Request) (Upload, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed multipart body")
		return Upload{}, false
	}
	up := Upload{Fields: map[string]string{}}
	for k, vs := range r.MultipartForm.Value {
		if len(vs) > 0 {
			up.Fields[k] = vs[0]
		}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "file is required")
		return Upload{}, false
	}
	defer file.Close()
	up.Filename = header.Filename
	up.Content, _ = io.ReadAll(file)
	b.mu.Lock()
	b.Uploads = append(b.Uploads, up)
	b.mu.Unlock()
	return up, true
}

func (b *Backend) handleUploadContract(w http.ResponseWriter, r *http.Request) {
	up, ok := b.recordUpload(w, r)
	if !ok {
		return
	}
	if up.Fields["reviewer_id"] == "" {
		writeDetail(w, http.StatusBadRequest, "reviewer_id is required")
		return
	}
	id := b.Seed(Contract{
		Title:      up.Fields["title"],
		Status:     "draft",
		Category:   up.Fields["category"],
		VendorName: up.Fields["vendor_name"],
	})
	b.mu.Lock()
	number := b.Contracts[id].ContractNumber
	b.Documents[id] = up.Content
	b.Contracts[id].HasDocument = true
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{
		"message":         "Contract uploaded",
		"contract_number": number,
	})
}

func (b *Backend) handleUploadArchive(w http.ResponseWriter, r *http.Request) {
	up, ok := b.recordUpload(w, r)
	if !ok {
		return
	}
	if !strings.HasSuffix(strings.ToLower(up.Filename), ".pdf") {
		writeDetail(w, http.StatusBadRequest, "Only PDF files are accepted.")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "Document archived successfully.",
		"filename": up.Filename,
	})
}

func (b *Backend) handleListArchive(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(r.URL.Query().Get("search"))
	docs := []map[string]any{
		{"id": 1, "contract_title": "Office Lease", "vendor_name": "Acme Properties", "original_filename": "lease.pdf", "signing_status": "signed"},
		{"id": 2, "contract_title": "Fleet Maintenance", "vendor_name": "Gears Ltd", "original_filename": "fleet.pdf", "signing_status": "signed"},
	}
	if search != "" {
		var kept []map[string]any
		for _, d := range docs {
			if strings.Contains(strings.ToLower(d["contract_title"].(string)), search) ||
				strings.Contains(strings.ToLower(d["vendor_name"].(string)), search) {
				kept = append(kept, d)
			}
		}
		docs = kept
	}
	writeJSON(w, http.StatusOK, docs)
}

func (b *Backend) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b.mu.Lock()
	doc, ok := b.Documents[id]
	b.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "File not found on server.")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(doc)
}

func (b *Backend) handleStats(w http.ResponseWriter, _ *http.Request) {
	counts := map[string]int{}
	b.mu.Lock()
	total := len(b.Contracts)
	for _, c := range b.Contracts {
		counts[c.Status]++
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{
		"total_contracts": total,
		"drafts":          counts["draft"],
		"in_review":       counts["in_review"],
		"vendor_feedback": counts["vendor_feedback"],
		"approved":        counts["approved"],
		"signed":          counts["signed"],
	})
}

func (b *Backend) handleExport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	_, _ = w.Write([]byte("PK\x03\x04 fake spreadsheet"))
}

func (b *Backend) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []map[string]any{
		{"id": 1, "username": "admin", "full_name": "Site Admin", "role": "admin", "is_active": true},
		{"id": 2, "username": "clerk", "full_name": "Contract Clerk", "role": "user", "is_active": true},
	})
}

func (b *Backend) handleSyncAD(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "Synced 3 new users", "total_ad_users": 12})
}

func (b *Backend) handleVendorContracts(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	out := []map[string]any{}
	for id := 1; id < b.nextID; id++ {
		if c, ok := b.Contracts[id]; ok && c.Status == "vendor_feedback" {
			out = append(out, map[string]any{"id": c.ID, "title": c.Title, "contract_number": c.ContractNumber})
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleVendorFeedback(w http.ResponseWriter, r *http.Request) {
	id, c, ok := b.contractID(w, r)
	if !ok {
		return
	}
	_ = r.ParseForm()
	b.mu.Lock()
	c.Status = "in_review"
	b.Activities[id] = append([]Activity{{
		User:      "vendor",
		Action:    "Vendor feedback submitted",
		CreatedAt: "2026-01-03T09:00:00",
	}}, b.Activities[id]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback submitted"})
}

func (b *Backend) handleEditorConfig(w http.ResponseWriter, r *http.Request) {
	id, c, ok := b.contractID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	hasDoc := c.HasDocument
	title := c.Title
	version := c.Version
	b.mu.Unlock()
	if !hasDoc {
		writeDetail(w, http.StatusNotFound, "No document found for this contract")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"document": map[string]any{
			"fileType": "docx",
			"key":      fmt.Sprintf("%d_v%d", id, version),
			"title":    title,
			"url":      "/api/editor/files/1/download",
		},
		"documentType": "word",
		"token":        "editor-jwt",
	})
}
