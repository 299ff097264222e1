package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wetube/tube/internal/domain"
)

// ListMyInquiries returns one page of the caller's own inquiries.
func (c *Client) ListMyInquiries(ctx context.Context, page, limit int) (*domain.InquiryPage, error) {
	return c.inquiryPage(ctx, "/inquiries", page, limit)
}

// ListAllInquiries returns one page of every user's inquiries (admin only).
func (c *Client) ListAllInquiries(ctx context.Context, page, limit int) (*domain.InquiryPage, error) {
	return c.inquiryPage(ctx, "/inquiries/all", page, limit)
}

func (c *Client) inquiryPage(ctx context.Context, path string, page, limit int) (*domain.InquiryPage, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, pageQuery(page, limit), nil)
	if err != nil {
		return nil, err
	}

	var out domain.InquiryPage
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInquiry returns one inquiry with its answer, if any.
func (c *Client) GetInquiry(ctx context.Context, id int64) (*domain.Inquiry, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/inquiries/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var out domain.Inquiry
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInquiry opens a new support ticket.
func (c *Client) CreateInquiry(ctx context.Context, title, content string) (*domain.Inquiry, error) {
	payload := map[string]string{"title": title, "content": content}
	body, err := c.doRequest(ctx, http.MethodPost, "/inquiries", nil, payload)
	if err != nil {
		return nil, err
	}

	var out domain.Inquiry
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInquiry edits an unanswered inquiry.
func (c *Client) UpdateInquiry(ctx context.Context, id int64, title, content string) (*domain.Inquiry, error) {
	payload := map[string]string{"title": title, "content": content}
	body, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/inquiries/%d", id), nil, payload)
	if err != nil {
		return nil, err
	}

	var out domain.Inquiry
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInquiry removes an inquiry.
func (c *Client) DeleteInquiry(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/inquiries/%d", id), nil, nil)
	return err
}

// AnswerInquiry sets the admin answer on an inquiry.
func (c *Client) AnswerInquiry(ctx context.Context, id int64, answer string) (*domain.Inquiry, error) {
	payload := map[string]string{"answer": answer}
	body, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/inquiries/%d/answer", id), nil, payload)
	if err != nil {
		return nil, err
	}

	var out domain.Inquiry
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAnswer removes the admin answer, reopening the inquiry.
func (c *Client) DeleteAnswer(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/inquiries/%d/answer", id), nil, nil)
	return err
}
