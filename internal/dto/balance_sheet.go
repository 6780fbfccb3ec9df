package dto

import (
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateBalanceSheetRequest is the payload for generating a persisted
// balance sheet snapshot.
type GenerateBalanceSheetRequest struct {
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	FinancialYear string `json:"financialYear" binding:"required,len=4,numeric"`
}

// ParseDate returns the parsed snapshot date.
func (r GenerateBalanceSheetRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

// BalanceSheetItemResponse is one account line of a persisted sheet.
type BalanceSheetItemResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	SectionType string          `json:"sectionType"`
	SubSection  string          `json:"subSection"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheetResponse is the persisted balance sheet response.
type BalanceSheetResponse struct {
	BalanceSheetID   string                     `json:"balanceSheetID"`
	BalanceSheetDate string                     `json:"balanceSheetDate"`
	FinancialYear    string                     `json:"financialYear"`
	Status           string                     `json:"status"`
	TotalAssets      decimal.Decimal            `json:"totalAssets"`
	TotalLiabilities decimal.Decimal            `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal            `json:"totalEquity"`
	IsBalanced       bool                       `json:"isBalanced"`
	Items            []BalanceSheetItemResponse `json:"items,omitempty"`
}

// ToBalanceSheetResponse converts a domain balance sheet snapshot.
func ToBalanceSheetResponse(s *domain.BalanceSheet) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		BalanceSheetID:   s.BalanceSheetID,
		BalanceSheetDate: s.BalanceSheetDate.Format(dateLayout),
		FinancialYear:    s.FinancialYear,
		Status:           string(s.Status),
		TotalAssets:      s.TotalAssets,
		TotalLiabilities: s.TotalLiabilities,
		TotalEquity:      s.TotalEquity,
		IsBalanced:       s.IsBalanced,
	}
	if len(s.Items) > 0 {
		resp.Items = make([]BalanceSheetItemResponse, len(s.Items))
		for i, item := range s.Items {
			resp.Items[i] = BalanceSheetItemResponse{
				AccountID:   item.AccountID,
				AccountCode: item.AccountCode,
				AccountName: item.AccountName,
				SectionType: string(item.SectionType),
				SubSection:  string(item.SubSection),
				Amount:      item.Amount,
			}
		}
	}
	return resp
}

// ToBalanceSheetResponses converts a slice of sheets (headers only).
func ToBalanceSheetResponses(sheets []domain.BalanceSheet) []BalanceSheetResponse {
	out := make([]BalanceSheetResponse, len(sheets))
	for i := range sheets {
		out[i] = ToBalanceSheetResponse(&sheets[i])
	}
	return out
}
