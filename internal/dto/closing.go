package dto

import (
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// YearEndCloseRequest is the payload for running a year-end close.
type YearEndCloseRequest struct {
	FinancialYear string `json:"financialYear" binding:"required,len=4,numeric"`
	ClosingDate   string `json:"closingDate" binding:"required,datetime=2006-01-02"`
}

// ParseClosingDate returns the parsed closing date.
func (r YearEndCloseRequest) ParseClosingDate() (time.Time, error) {
	return time.Parse(dateLayout, r.ClosingDate)
}

// ClosingResultResponse summarises a completed year-end close.
type ClosingResultResponse struct {
	FinancialYear   string          `json:"financialYear"`
	ClosingDate     string          `json:"closingDate"`
	ClosingEntryID  string          `json:"closingEntryID"`
	NetIncome       decimal.Decimal `json:"netIncome"`
	AccountsClosed  int             `json:"accountsClosed"`
	OpeningsCreated int             `json:"openingsCreated"`
}

// ToClosingResultResponse converts a domain closing result.
func ToClosingResultResponse(r *domain.ClosingResult) ClosingResultResponse {
	return ClosingResultResponse{
		FinancialYear:   r.FinancialYear,
		ClosingDate:     r.ClosingDate.Format(dateLayout),
		ClosingEntryID:  r.ClosingEntryID,
		NetIncome:       r.NetIncome,
		AccountsClosed:  r.AccountsClosed,
		OpeningsCreated: r.OpeningsCreated,
	}
}
