package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// RFQFilters narrows the dashboard RFQ listing. Zero values are omitted from
// the query string.
type RFQFilters struct {
	Search string
	City   string
}

// RFQs lists RFQs visible to the current user. Buyers get their own, suppliers
// get open RFQs matching the filters; that split is decided server-side.
func (c *Client) RFQs(ctx context.Context, filters RFQFilters) ([]RFQ, error) {
	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.City != "" {
		query.Set("city", filters.City)
	}

	var rfqs []RFQ
	err := c.do(ctx, http.MethodGet, "/rfqs", query, nil, &rfqs)
	return rfqs, err
}

// RFQ fetches a single RFQ's core record.
func (c *Client) RFQ(ctx context.Context, id int) (RFQ, error) {
	var rfq RFQ
	err := c.do(ctx, http.MethodGet, "/rfqs/"+strconv.Itoa(id), nil, nil, &rfq)
	return rfq, err
}

// RFQAttachments lists files uploaded with an RFQ.
func (c *Client) RFQAttachments(ctx context.Context, id int) ([]Attachment, error) {
	var attachments []Attachment
	err := c.do(ctx, http.MethodGet, "/rfqs/"+strconv.Itoa(id)+"/attachments", nil, nil, &attachments)
	return attachments, err
}

// ChatHistory returns the stored chat messages for an RFQ's room.
func (c *Client) ChatHistory(ctx context.Context, rfqID int) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := c.do(ctx, http.MethodGet, "/rfqs/"+strconv.Itoa(rfqID)+"/messages", nil, nil, &messages)
	return messages, err
}

// CreateRFQParams is the multipart form payload for posting a new RFQ.
type CreateRFQParams struct {
	Title       string
	Description string
	Quantity    int
	// Attachment is optional; Filename must be set when Content is non-nil.
	AttachmentName string
	Attachment     io.Reader
}

// CreateRFQ posts a new RFQ as a multipart form, streaming the optional
// attachment alongside the scalar fields.
func (c *Client) CreateRFQ(ctx context.Context, params CreateRFQParams) error {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		err := writeRFQForm(form, params)
		if closeErr := form.Close(); err == nil {
			err = closeErr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/rfqs", pr)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	return c.send(req, nil)
}

func writeRFQForm(form *multipart.Writer, params CreateRFQParams) error {
	if err := form.WriteField("title", params.Title); err != nil {
		return err
	}
	if err := form.WriteField("description", params.Description); err != nil {
		return err
	}
	if err := form.WriteField("quantity", strconv.Itoa(params.Quantity)); err != nil {
		return err
	}
	if params.Attachment == nil {
		return nil
	}
	part, err := form.CreateFormFile("attachment", params.AttachmentName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, params.Attachment)
	return err
}

// QuotesForRFQ lists the quotes submitted against an RFQ. Only the buyer that
// owns the RFQ is authorized; the server enforces that.
func (c *Client) QuotesForRFQ(ctx context.Context, rfqID int) ([]Quote, error) {
	var quotes []Quote
	err := c.do(ctx, http.MethodGet, "/rfqs/"+strconv.Itoa(rfqID)+"/quotes", nil, nil, &quotes)
	return quotes, err
}

// CreateQuoteParams is a supplier's quote submission.
type CreateQuoteParams struct {
	Price        float64 `json:"price"`
	LeadTimeDays int     `json:"lead_time_days"`
	Notes        string  `json:"notes"`
}

// CreateQuote submits a quote against an RFQ.
func (c *Client) CreateQuote(ctx context.Context, rfqID int, params CreateQuoteParams) error {
	return c.do(ctx, http.MethodPost, "/rfqs/"+strconv.Itoa(rfqID)+"/quotes", nil, params, nil)
}

// AcceptQuote accepts a quote. Server-side this also creates the purchase
// order and closes the RFQ to further quotes.
func (c *Client) AcceptQuote(ctx context.Context, quoteID int) error {
	return c.do(ctx, http.MethodPost, "/quotes/"+strconv.Itoa(quoteID)+"/accept", nil, nil, nil)
}
