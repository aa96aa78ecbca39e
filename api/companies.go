package api

import (
	"context"
	"net/http"
	"strconv"
)

// Company fetches a public company profile.
func (c *Client) Company(ctx context.Context, id int) (Company, error) {
	var company Company
	err := c.do(ctx, http.MethodGet, "/companies/"+strconv.Itoa(id), nil, nil, &company)
	return company, err
}

type updateCompanyRequest struct {
	Description string `json:"description"`
}

// UpdateCompanyDescription edits a company's description. Only the company's
// own members are authorized, enforced server-side.
func (c *Client) UpdateCompanyDescription(ctx context.Context, id int, description string) error {
	return c.do(ctx, http.MethodPut, "/companies/"+strconv.Itoa(id), nil,
		updateCompanyRequest{Description: description}, nil)
}

// Capabilities lists the full capability catalogue.
func (c *Client) Capabilities(ctx context.Context) ([]Capability, error) {
	var capabilities []Capability
	err := c.do(ctx, http.MethodGet, "/capabilities", nil, nil, &capabilities)
	return capabilities, err
}

// CompanyCapabilities lists the capabilities attached to one company.
func (c *Client) CompanyCapabilities(ctx context.Context, companyID int) ([]Capability, error) {
	var capabilities []Capability
	err := c.do(ctx, http.MethodGet, "/capabilities/company/"+strconv.Itoa(companyID), nil, nil, &capabilities)
	return capabilities, err
}

type addCapabilityRequest struct {
	CapabilityID int `json:"capability_id"`
}

// AddCapability attaches a catalogue capability to the caller's own company.
func (c *Client) AddCapability(ctx context.Context, capabilityID int) error {
	return c.do(ctx, http.MethodPost, "/capabilities/my-company", nil,
		addCapabilityRequest{CapabilityID: capabilityID}, nil)
}

// RemoveCapability detaches a capability from the caller's own company.
func (c *Client) RemoveCapability(ctx context.Context, capabilityID int) error {
	return c.do(ctx, http.MethodDelete, "/capabilities/my-company/"+strconv.Itoa(capabilityID), nil, nil, nil)
}

// AdminCompanies lists every company for the admin screen.
func (c *Client) AdminCompanies(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := c.do(ctx, http.MethodGet, "/admin/companies", nil, nil, &companies)
	return companies, err
}

// VerifyCompany marks a company as verified.
func (c *Client) VerifyCompany(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPut, "/admin/companies/"+strconv.Itoa(id)+"/verify", nil, nil, nil)
}

// AdminUsers lists every user account for the admin screen.
func (c *Client) AdminUsers(ctx context.Context) ([]UserProfile, error) {
	var users []UserProfile
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &users)
	return users, err
}

type updateUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// UpdateUserStatus activates or deactivates a user account.
func (c *Client) UpdateUserStatus(ctx context.Context, userID int, active bool) error {
	return c.do(ctx, http.MethodPut, "/admin/users/"+strconv.Itoa(userID)+"/status", nil,
		updateUserStatusRequest{IsActive: active}, nil)
}
