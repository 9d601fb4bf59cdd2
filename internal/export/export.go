// Package export renders account statements and delivers them to a
// spreadsheet destination, either a local XLSX file or a Google Sheets
// document.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/wallet/internal/domain"
	"github.com/mtlprog/wallet/internal/ledger"
)

// StatementRow is one asset line in an account statement.
type StatementRow struct {
	Code           string
	Issuer         string
	Total          decimal.Decimal
	Available      decimal.Decimal
	AvailableTrade decimal.Decimal
	AvailableSend  decimal.Decimal
	Outstanding    decimal.Decimal
}

// Statement is the spreadsheet-ready view of one account.
type Statement struct {
	AccountID   string
	GeneratedAt time.Time

	Trustlines  int
	DataEntries int
	Offers      int
	Signers     int
	MinBalance  decimal.Decimal

	Rows []StatementRow
}

// StatementWriter delivers statements to a destination.
type StatementWriter interface {
	Write(ctx context.Context, statements []Statement) error
}

// AccountSource provides the accounts to export.
type AccountSource interface {
	Account(id string) (*ledger.Account, bool)
	Tracked() []string
}

// Service builds statements for all tracked accounts and delegates
// writing to a StatementWriter.
type Service struct {
	accounts AccountSource
	writer   StatementWriter
}

// NewService creates a new export Service.
func NewService(accounts AccountSource, writer StatementWriter) *Service {
	return &Service{accounts: accounts, writer: writer}
}

// Export builds a statement for every tracked account and writes them out.
// Stub accounts are skipped: they have no snapshot to report.
func (s *Service) Export(ctx context.Context) error {
	statements := lo.FilterMap(s.accounts.Tracked(), func(id string, _ int) (Statement, bool) {
		account, ok := s.accounts.Account(id)
		if !ok || account.IsStub() {
			return Statement{}, false
		}
		return NewStatement(account), true
	})

	if len(statements) == 0 {
		return fmt.Errorf("no accounts ready for export")
	}
	return s.writer.Write(ctx, statements)
}

// NewStatement builds the statement for one account.
func NewStatement(a *ledger.Account) Statement {
	return Statement{
		AccountID:   a.AccountID,
		GeneratedAt: time.Now().UTC(),

		Trustlines:  a.TotalTrustlines,
		DataEntries: a.TotalDataEntries,
		Offers:      a.TotalOffers(),
		Signers:     a.AdditionalSigners,
		MinBalance:  a.MinBalance(),

		Rows: lo.Map(a.Assets, func(asset domain.Asset, _ int) StatementRow {
			return StatementRow{
				Code:           asset.ShortCode(),
				Issuer:         asset.Issuer,
				Total:          a.TotalBalance(asset),
				Available:      a.AvailableBalance(asset, true),
				AvailableTrade: a.AvailableTradeBalance(asset),
				AvailableSend:  a.AvailableSendBalance(asset),
				Outstanding:    a.OutstandingTradeAmounts[asset.Key()],
			}
		}),
	}
}

// statementHeader is the column layout shared by both writers.
var statementHeader = []any{
	"Asset", "Issuer", "Total", "Available", "Available (trade)", "Available (send)", "Outstanding",
}

// statementValues renders one statement as spreadsheet rows, starting with
// a summary row followed by the asset table.
func statementValues(st Statement) [][]any {
	data := make([][]any, 0, len(st.Rows)+3)
	data = append(data, []any{
		"Account", st.AccountID,
		"Trustlines", st.Trustlines,
		"Data entries", st.DataEntries,
		"Offers", st.Offers,
		"Extra signers", st.Signers,
		"Min balance", toFloat(st.MinBalance),
	})
	data = append(data, []any{})
	data = append(data, statementHeader)
	for _, row := range st.Rows {
		data = append(data, []any{
			row.Code, row.Issuer,
			toFloat(row.Total),
			toFloat(row.Available),
			toFloat(row.AvailableTrade),
			toFloat(row.AvailableSend),
			toFloat(row.Outstanding),
		})
	}
	return data
}

// sheetTitle derives a short per-account sheet name. Sheet titles are
// limited to 31 characters in XLSX, so use a truncated account id.
func sheetTitle(accountID string) string {
	if len(accountID) <= 12 {
		return accountID
	}
	return accountID[:6] + ".." + accountID[len(accountID)-4:]
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
