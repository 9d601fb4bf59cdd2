package horizon

import (
	"context"
	"fmt"
	"net/url"
)

// pageParams builds the query string shared by all record collections.
// Records are requested newest-first; cursor may be empty for the first page.
func pageParams(cursor string, limit int) string {
	params := url.Values{}
	params.Set("order", "desc")
	params.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	return params.Encode()
}

// FetchTransactions retrieves a page of transactions for an account.
func (c *Client) FetchTransactions(ctx context.Context, accountID, cursor string, limit int) ([]HorizonTransaction, error) {
	var p page[HorizonTransaction]
	path := fmt.Sprintf("/accounts/%s/transactions?%s", accountID, pageParams(cursor, limit))
	if err := c.getJSON(ctx, path, &p); err != nil {
		return nil, fmt.Errorf("fetching transactions for %s: %w", accountID, err)
	}
	return p.Embedded.Records, nil
}

// FetchOperations retrieves a page of operations for an account.
func (c *Client) FetchOperations(ctx context.Context, accountID, cursor string, limit int) ([]HorizonOperation, error) {
	var p page[HorizonOperation]
	path := fmt.Sprintf("/accounts/%s/operations?%s", accountID, pageParams(cursor, limit))
	if err := c.getJSON(ctx, path, &p); err != nil {
		return nil, fmt.Errorf("fetching operations for %s: %w", accountID, err)
	}
	return p.Embedded.Records, nil
}

// FetchEffects retrieves a page of effects for an account.
func (c *Client) FetchEffects(ctx context.Context, accountID, cursor string, limit int) ([]HorizonEffect, error) {
	var p page[HorizonEffect]
	path := fmt.Sprintf("/accounts/%s/effects?%s", accountID, pageParams(cursor, limit))
	if err := c.getJSON(ctx, path, &p); err != nil {
		return nil, fmt.Errorf("fetching effects for %s: %w", accountID, err)
	}
	return p.Embedded.Records, nil
}

// FetchOffers retrieves all open offers for an account. Offer lists are
// small enough that a single page suffices.
func (c *Client) FetchOffers(ctx context.Context, accountID string, limit int) ([]HorizonOffer, error) {
	var p page[HorizonOffer]
	path := fmt.Sprintf("/accounts/%s/offers?%s", accountID, pageParams("", limit))
	if err := c.getJSON(ctx, path, &p); err != nil {
		return nil, fmt.Errorf("fetching offers for %s: %w", accountID, err)
	}
	return p.Embedded.Records, nil
}
