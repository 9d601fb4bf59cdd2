package worker

import (
	"testing"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/horizon"
)

const (
	testAccountID = "GACKTN5DAZGWXRWB2WLM6OPBDHAMT6SJNGLJZPQMEZBUR4JUGBX2UK7V"
	testSeller    = "GAQ5ERJVI6IW5UVNPEVXUUVMXH3GCDHJ4BJAXMAAKPR5VBWWAUOMABIZ"
)

func TestToOperationPayment(t *testing.T) {
	op := toOperation(horizon.HorizonOperation{
		ID:              "100",
		Type:            "payment",
		TransactionHash: "h1",
		From:            testAccountID,
		To:              testSeller,
		Amount:          "12.5",
		AssetType:       "credit_alphanum12",
		AssetCode:       "EURMTL",
		AssetIssuer:     testAccountID,
	})

	if op.Type != domain.OperationTypePayment {
		t.Fatalf("type = %q, want payment", op.Type)
	}
	if op.Payment == nil {
		t.Fatal("payment payload not populated")
	}
	if op.ManageOffer != nil || op.ChangeTrust != nil {
		t.Error("unrelated payloads populated")
	}
	if op.Payment.Amount != "12.5" || op.Payment.Asset.Code != "EURMTL" {
		t.Errorf("payment payload = %+v", op.Payment)
	}
}

func TestToOperationManageOfferVariants(t *testing.T) {
	for _, typ := range []string{"manage_sell_offer", "manage_buy_offer", "create_passive_sell_offer"} {
		op := toOperation(horizon.HorizonOperation{
			ID:                "1",
			Type:              typ,
			OfferID:           7,
			Amount:            "3",
			Price:             "0.5",
			SellingAssetType:  "native",
			BuyingAssetType:   "credit_alphanum4",
			BuyingAssetCode:   "MTL",
			BuyingAssetIssuer: testAccountID,
		})
		if op.Type != domain.OperationTypeManageOffer {
			t.Errorf("type for %s = %q, want manage_offer", typ, op.Type)
		}
		if op.ManageOffer == nil || op.ManageOffer.OfferID != 7 {
			t.Errorf("manage offer payload for %s = %+v", typ, op.ManageOffer)
		}
		if !op.ManageOffer.Selling.IsNative() {
			t.Errorf("selling asset for %s is not native", typ)
		}
	}
}

func TestToOperationUnknownTypeKeepsHeader(t *testing.T) {
	op := toOperation(horizon.HorizonOperation{ID: "9", Type: "bump_sequence", TransactionHash: "h9"})

	if op.ID != "9" || op.TransactionHash != "h9" {
		t.Errorf("header = %+v", op)
	}
	if op.Payment != nil || op.ManageOffer != nil || op.CreateAccount != nil ||
		op.SetOptions != nil || op.ChangeTrust != nil || op.AllowTrust != nil || op.AccountMerge != nil {
		t.Error("unknown type populated a payload")
	}
}

func TestToEffectTrade(t *testing.T) {
	e := toEffect(horizon.HorizonEffect{
		ID:                "100-1",
		Type:              "trade",
		SoldAmount:        "10",
		SoldAssetType:     "native",
		BoughtAmount:      "5",
		BoughtAssetType:   "credit_alphanum4",
		BoughtAssetCode:   "MTL",
		BoughtAssetIssuer: testAccountID,
	})

	if e.Type != domain.EffectTypeTrade {
		t.Errorf("type = %q, want trade", e.Type)
	}
	if !e.SoldAsset.IsNative() || e.BoughtAsset.Code != "MTL" {
		t.Errorf("trade assets = %+v / %+v", e.SoldAsset, e.BoughtAsset)
	}
}

func TestToOffersDropsMalformed(t *testing.T) {
	offers := toOffers([]horizon.HorizonOffer{
		{ID: "1", Seller: testSeller, Amount: "10", Price: "1", Selling: horizon.HorizonOfferAsset{AssetType: "native"}},
		{ID: "2", Seller: testSeller, Amount: "not-a-number", Price: "1"},
		{ID: "not-an-id", Seller: testSeller, Amount: "10", Price: "1"},
		{ID: "4", Seller: "too-short", Amount: "10", Price: "1"},
	})

	if len(offers) != 1 {
		t.Fatalf("offers kept = %d, want 1", len(offers))
	}
	if offers[0].ID != 1 {
		t.Errorf("kept offer id = %d, want 1", offers[0].ID)
	}
}

func TestOperationIDOfEffect(t *testing.T) {
	opID, ok := operationIDOfEffect("12884905985-1")
	if !ok || opID != "12884905985" {
		t.Errorf("operationIDOfEffect() = %q, %v", opID, ok)
	}
	if _, ok := operationIDOfEffect("noseparator"); ok {
		t.Error("operationIDOfEffect() accepted an id without separator")
	}
}
