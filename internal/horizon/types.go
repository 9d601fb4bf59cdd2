package horizon

import "time"

// HorizonAccount represents the JSON response from GET /accounts/{id}.
type HorizonAccount struct {
	ID                   string            `json:"id"`
	InflationDestination string            `json:"inflation_destination"`
	SubentryCount        int               `json:"subentry_count"`
	Balances             []HorizonBalance  `json:"balances"`
	Signers              []HorizonSigner   `json:"signers"`
	Data                 map[string]string `json:"data"`
}

// HorizonBalance represents a single balance entry in an account response.
type HorizonBalance struct {
	AssetType       string `json:"asset_type"`
	AssetCode       string `json:"asset_code"`
	AssetIssuer     string `json:"asset_issuer"`
	Balance         string `json:"balance"`
	Limit           string `json:"limit,omitempty"`
	LiquidityPoolID string `json:"liquidity_pool_id,omitempty"`
}

// HorizonSigner represents a signer entry in an account response.
type HorizonSigner struct {
	Key    string `json:"key"`
	Weight int    `json:"weight"`
	Type   string `json:"type"`
}

// HorizonTransaction represents a transaction record.
type HorizonTransaction struct {
	ID             string    `json:"id"`
	Ledger         int64     `json:"ledger"`
	CreatedAt      time.Time `json:"created_at"`
	FeeCharged     string    `json:"fee_charged"`
	Memo           string    `json:"memo,omitempty"`
	MemoType       string    `json:"memo_type,omitempty"`
	OperationCount int       `json:"operation_count"`
	SourceAccount  string    `json:"source_account"`
	SourceSequence string    `json:"source_account_sequence"`
	Signatures     []string  `json:"signatures"`
}

// HorizonOperation represents an operation record. Fields beyond the common
// header are populated depending on the "type" discriminator; unused ones
// stay empty.
type HorizonOperation struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	CreatedAt       time.Time `json:"created_at"`
	TransactionHash string    `json:"transaction_hash"`

	// payment / path payment
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Amount      string `json:"amount,omitempty"`
	AssetType   string `json:"asset_type,omitempty"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`

	// manage offer
	OfferID            int64  `json:"offer_id,omitempty"`
	Price              string `json:"price,omitempty"`
	SellingAssetType   string `json:"selling_asset_type,omitempty"`
	SellingAssetCode   string `json:"selling_asset_code,omitempty"`
	SellingAssetIssuer string `json:"selling_asset_issuer,omitempty"`
	BuyingAssetType    string `json:"buying_asset_type,omitempty"`
	BuyingAssetCode    string `json:"buying_asset_code,omitempty"`
	BuyingAssetIssuer  string `json:"buying_asset_issuer,omitempty"`

	// create account
	Funder          string `json:"funder,omitempty"`
	Account         string `json:"account,omitempty"`
	StartingBalance string `json:"starting_balance,omitempty"`

	// set options
	HomeDomain           string `json:"home_domain,omitempty"`
	InflationDestination string `json:"inflation_dest,omitempty"`
	SignerKey            string `json:"signer_key,omitempty"`
	SignerWeight         int    `json:"signer_weight,omitempty"`

	// change trust / allow trust
	Trustor   string `json:"trustor,omitempty"`
	Trustee   string `json:"trustee,omitempty"`
	Limit     string `json:"limit,omitempty"`
	Authorize bool   `json:"authorize,omitempty"`

	// account merge
	Into string `json:"into,omitempty"`
}

// HorizonEffect represents an effect record.
type HorizonEffect struct {
	ID          string    `json:"id"`
	PagingToken string    `json:"paging_token"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`

	Amount      string `json:"amount,omitempty"`
	AssetType   string `json:"asset_type,omitempty"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`

	// trade
	SoldAmount        string `json:"sold_amount,omitempty"`
	SoldAssetType     string `json:"sold_asset_type,omitempty"`
	SoldAssetCode     string `json:"sold_asset_code,omitempty"`
	SoldAssetIssuer   string `json:"sold_asset_issuer,omitempty"`
	BoughtAmount      string `json:"bought_amount,omitempty"`
	BoughtAssetType   string `json:"bought_asset_type,omitempty"`
	BoughtAssetCode   string `json:"bought_asset_code,omitempty"`
	BoughtAssetIssuer string `json:"bought_asset_issuer,omitempty"`
}

// HorizonOffer represents an open offer record from GET /accounts/{id}/offers.
type HorizonOffer struct {
	ID      string            `json:"id"`
	Seller  string            `json:"seller"`
	Selling HorizonOfferAsset `json:"selling"`
	Buying  HorizonOfferAsset `json:"buying"`
	Amount  string            `json:"amount"`
	Price   string            `json:"price"`
	PriceR  HorizonPriceR     `json:"price_r"`
}

// HorizonOfferAsset identifies one side of an offer.
type HorizonOfferAsset struct {
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
}

// HorizonPriceR is the rational price of an offer.
type HorizonPriceR struct {
	N int32 `json:"n"`
	D int32 `json:"d"`
}

// HorizonOrderbook represents the JSON response from GET /order_book.
type HorizonOrderbook struct {
	Bids []HorizonOrderbookEntry `json:"bids"`
	Asks []HorizonOrderbookEntry `json:"asks"`
}

// HorizonOrderbookEntry represents a single bid or ask in an orderbook.
type HorizonOrderbookEntry struct {
	Price  string        `json:"price"`
	Amount string        `json:"amount"`
	PriceR HorizonPriceR `json:"price_r"`
}

// page wraps the _embedded.records envelope Horizon uses for collections.
type page[T any] struct {
	Embedded struct {
		Records []T `json:"records"`
	} `json:"_embedded"`
}
