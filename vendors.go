package contractpro

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// NewVendor carries the form fields for creating a vendor account
// (admin only on the backend).
type NewVendor struct {
	Username string
	Email    string
	FullName string
	Company  string
	Password string
}

// VendorReceipt acknowledges vendor account creation.
type VendorReceipt struct {
	Message  string `json:"message"`
	VendorID int    `json:"vendor_id"`
}

// VendorProfile is the vendor's self-service view of their own account.
type VendorProfile struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
}

// VendorContract is the reduced contract shape served to vendors: only
// what they need to locate the contract awaiting their feedback.
type VendorContract struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	ContractNumber string `json:"contract_number"`
}

func (c *Client) CreateVendor(ctx context.Context, v NewVendor) (*VendorReceipt, error) {
	form := url.Values{}
	form.Set("username", v.Username)
	form.Set("email", v.Email)
	form.Set("full_name", v.FullName)
	form.Set("password", v.Password)
	if v.Company != "" {
		form.Set("company", v.Company)
	}
	return sendForm[VendorReceipt](ctx, c, http.MethodPost, "/vendors/create", form, nil)
}

func (c *Client) VendorProfile(ctx context.Context) (*VendorProfile, error) {
	return getJSON[VendorProfile](ctx, c, "/vendors/profile", nil)
}

// UpdateVendorProfile changes the vendor's display name and company.
// Empty fields are left unchanged by the backend.
func (c *Client) UpdateVendorProfile(ctx context.Context, fullName, company string) error {
	form := url.Values{}
	if fullName != "" {
		form.Set("full_name", fullName)
	}
	if company != "" {
		form.Set("company", company)
	}
	_, err := sendForm[messageResponse](ctx, c, http.MethodPut, "/vendors/profile", form, nil)
	return err
}

func (c *Client) ChangeVendorPassword(ctx context.Context, oldPassword, newPassword string) error {
	form := url.Values{}
	form.Set("old_password", oldPassword)
	form.Set("new_password", newPassword)
	_, err := sendForm[messageResponse](ctx, c, http.MethodPut, "/vendors/change-password", form, nil)
	return err
}

// VendorContracts lists the contracts currently awaiting this vendor's
// feedback.
func (c *Client) VendorContracts(ctx context.Context) ([]VendorContract, error) {
	out, err := getJSON[[]VendorContract](ctx, c, "/vendors/my-contracts", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// SubmitVendorFeedback returns a vendor_feedback contract to the review
// queue with the vendor's comments attached.
func (c *Client) SubmitVendorFeedback(ctx context.Context, contractID int, comments string) error {
	form := url.Values{}
	if comments != "" {
		form.Set("comments", comments)
	}
	_, err := sendForm[messageResponse](ctx, c, http.MethodPost, "/vendors/submit-feedback/"+strconv.Itoa(contractID), form, nil)
	return err
}
