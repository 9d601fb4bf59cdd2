package worker

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/horizon"
)

// assetFrom builds a domain asset from the flat asset fields Horizon embeds
// in operation and effect records.
func assetFrom(assetType, code, issuer string) domain.Asset {
	if assetType == string(domain.AssetTypeNative) || assetType == "" {
		return domain.NativeAsset("")
	}
	return domain.Asset{Type: domain.AssetType(assetType), Code: code, Issuer: issuer}
}

func toTransaction(r horizon.HorizonTransaction) domain.Transaction {
	return domain.Transaction{
		ID:             r.ID,
		Ledger:         r.Ledger,
		CreatedAt:      r.CreatedAt,
		FeePaid:        r.FeeCharged,
		Memo:           r.Memo,
		MemoType:       r.MemoType,
		OperationCount: r.OperationCount,
		SequenceNumber: r.SourceSequence,
		SourceAccount:  r.SourceAccount,
		Signatures:     r.Signatures,
	}
}

// toOperation normalizes a raw operation, populating the payload selected by
// the type discriminator. Unrecognized types keep the header only.
func toOperation(r horizon.HorizonOperation) domain.Operation {
	op := domain.Operation{
		ID:              r.ID,
		CreatedAt:       r.CreatedAt,
		Type:            domain.OperationType(r.Type),
		TransactionHash: r.TransactionHash,
	}

	switch r.Type {
	case "payment", "path_payment_strict_send", "path_payment_strict_receive":
		op.Type = domain.OperationTypePayment
		op.Payment = &domain.PaymentOp{
			From:   r.From,
			To:     r.To,
			Amount: r.Amount,
			Asset:  assetFrom(r.AssetType, r.AssetCode, r.AssetIssuer),
		}
	case "manage_sell_offer", "manage_buy_offer", "create_passive_sell_offer":
		op.Type = domain.OperationTypeManageOffer
		op.ManageOffer = &domain.ManageOfferOp{
			OfferID: r.OfferID,
			Amount:  r.Amount,
			Price:   r.Price,
			Selling: assetFrom(r.SellingAssetType, r.SellingAssetCode, r.SellingAssetIssuer),
			Buying:  assetFrom(r.BuyingAssetType, r.BuyingAssetCode, r.BuyingAssetIssuer),
		}
	case "create_account":
		op.Type = domain.OperationTypeCreateAccount
		op.CreateAccount = &domain.CreateAccountOp{
			Funder:          r.Funder,
			Account:         r.Account,
			StartingBalance: r.StartingBalance,
		}
	case "set_options":
		op.Type = domain.OperationTypeSetOptions
		op.SetOptions = &domain.SetOptionsOp{
			HomeDomain:           r.HomeDomain,
			InflationDestination: r.InflationDestination,
			SignerKey:            r.SignerKey,
			SignerWeight:         r.SignerWeight,
		}
	case "change_trust":
		op.Type = domain.OperationTypeChangeTrust
		op.ChangeTrust = &domain.ChangeTrustOp{
			Trustor: r.Trustor,
			Trustee: r.Trustee,
			Asset:   assetFrom(r.AssetType, r.AssetCode, r.AssetIssuer),
			Limit:   r.Limit,
		}
	case "allow_trust":
		op.Type = domain.OperationTypeAllowTrust
		op.AllowTrust = &domain.AllowTrustOp{
			Trustor:   r.Trustor,
			Trustee:   r.Trustee,
			Asset:     assetFrom(r.AssetType, r.AssetCode, r.AssetIssuer),
			Authorize: r.Authorize,
		}
	case "account_merge":
		op.Type = domain.OperationTypeAccountMerge
		op.AccountMerge = &domain.AccountMergeOp{
			Account: r.Account,
			Into:    r.Into,
		}
	}

	return op
}

func toEffect(r horizon.HorizonEffect) domain.Effect {
	return domain.Effect{
		ID:           r.ID,
		PagingToken:  r.PagingToken,
		Type:         domain.EffectType(r.Type),
		CreatedAt:    r.CreatedAt,
		Amount:       r.Amount,
		SoldAmount:   r.SoldAmount,
		BoughtAmount: r.BoughtAmount,
		Asset:        assetFrom(r.AssetType, r.AssetCode, r.AssetIssuer),
		SoldAsset:    assetFrom(r.SoldAssetType, r.SoldAssetCode, r.SoldAssetIssuer),
		BoughtAsset:  assetFrom(r.BoughtAssetType, r.BoughtAssetCode, r.BoughtAssetIssuer),
	}
}

// toOffers normalizes raw offers, dropping any record that fails strict
// construction. A malformed offer must never reach the ledger half-built.
func toOffers(records []horizon.HorizonOffer) []domain.AccountOffer {
	return lo.FilterMap(records, func(r horizon.HorizonOffer, _ int) (domain.AccountOffer, bool) {
		id, err := strconv.ParseInt(r.ID, 10, 64)
		if err != nil {
			slog.Warn("dropping offer with non-numeric id", "id", r.ID)
			return domain.AccountOffer{}, false
		}

		o, ok := domain.NewAccountOffer(
			id,
			r.Seller,
			r.Amount,
			r.Price,
			assetFrom(r.Selling.AssetType, r.Selling.AssetCode, r.Selling.AssetIssuer),
			assetFrom(r.Buying.AssetType, r.Buying.AssetCode, r.Buying.AssetIssuer),
			r.PriceR.N,
			r.PriceR.D,
		)
		if !ok {
			slog.Warn("dropping malformed offer", "id", r.ID, "seller", r.Seller, "amount", r.Amount)
		}
		return o, ok
	})
}

// operationIDOfEffect extracts the operation identifier an effect belongs
// to. Horizon effect ids are "<operation id>-<index>".
func operationIDOfEffect(effectID string) (string, bool) {
	opID, _, found := strings.Cut(effectID, "-")
	if !found || opID == "" {
		return "", false
	}
	return opID, true
}
