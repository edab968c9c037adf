package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetMessage returns the processed message record for a message ID.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*MessageDTO, error) {
	var result MessageDTO
	path := fmt.Sprintf("/account/messages/%s", url.PathEscape(messageID))
	if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceMessage)
	}
	return &result, nil
}
