package horizon

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mtlprog/wallet/internal/domain"
)

// FetchOrderbook retrieves the orderbook for a trading pair. Horizon returns
// bids and asks best-first; callers rely on that order.
func (c *Client) FetchOrderbook(ctx context.Context, selling, buying domain.Asset, limit int) (HorizonOrderbook, error) {
	params := url.Values{}
	setAssetParams(params, "selling", selling)
	setAssetParams(params, "buying", buying)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var ob HorizonOrderbook
	if err := c.getJSON(ctx, "/order_book?"+params.Encode(), &ob); err != nil {
		return HorizonOrderbook{}, fmt.Errorf("fetching orderbook: %w", err)
	}
	return ob, nil
}

func setAssetParams(params url.Values, side string, asset domain.Asset) {
	if asset.IsNative() {
		params.Set(side+"_asset_type", "native")
		return
	}
	params.Set(side+"_asset_type", string(asset.Type))
	params.Set(side+"_asset_code", asset.Code)
	params.Set(side+"_asset_issuer", asset.Issuer)
}
