package api

import (
	"context"
	"net/http"
)

// SendEmail submits an email for delivery on behalf of the sub-account
// identified by the key. The response carries one receipt per recipient.
func (c *Client) SendEmail(ctx context.Context, subAccountKey string, req *SendEmailRequest) ([]SendReceiptDTO, error) {
	var result []SendReceiptDTO
	if err := c.DoSubAccount(ctx, subAccountKey, http.MethodPost, "/subaccount/email", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}
