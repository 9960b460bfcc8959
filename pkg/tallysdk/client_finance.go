package tallysdk

import (
	"context"
	"net/http"
	"net/url"
)

// AddFinance creates the entry for req.Month.
func (c *SDKClient) AddFinance(ctx context.Context, req FinanceRequest) (*MessageResponse, error) {
	return c.addFinance(ctx, req, "")
}

// GetFinanceData lists the entries of username in stored order.
func (c *SDKClient) GetFinanceData(ctx context.Context, username string) ([]FinanceEntry, error) {
	return c.getFinanceData(ctx, username, "")
}

// UpdateFinance replaces the entry for req.Month.
func (c *SDKClient) UpdateFinance(ctx context.Context, req FinanceRequest) (*MessageResponse, error) {
	return c.updateFinance(ctx, req, "")
}

// DeleteFinance removes every entry for month.
func (c *SDKClient) DeleteFinance(ctx context.Context, username, month string) (*MessageResponse, error) {
	return c.deleteFinance(ctx, DeleteFinanceRequest{Username: username, Month: month}, "")
}

func (c *SDKClient) addFinance(ctx context.Context, req FinanceRequest, token string) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/add-finance", req, token)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) getFinanceData(ctx context.Context, username, token string) ([]FinanceEntry, error) {
	q := url.Values{}
	q.Set("username", username)

	resp, err := c.doRequest(ctx, http.MethodGet, "/getfinancedata?"+q.Encode(), nil, token)
	if err != nil {
		return nil, err
	}

	var out []FinanceEntry
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SDKClient) updateFinance(ctx context.Context, req FinanceRequest, token string) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/update-finance", req, token)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) deleteFinance(ctx context.Context, req DeleteFinanceRequest, token string) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/delete-finance", req, token)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
