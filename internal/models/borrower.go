package models

import "fivec_analysis/internal/tabular"

// Canonical column names of the unified borrower table.
const (
	ColBorrowerID         = "borrower_id"
	ColBorrowerName       = "borrower_name"
	ColBorrowerType       = "borrower_type"
	ColAge                = "age"
	ColCreditScoreRaw     = "credit_score_raw"
	ColTransactionAmount  = "transaction_amount"
	ColAnnualRevenue      = "annual_revenue"
	ColAnnualIncome       = "annual_income"
	ColLoanAmount         = "loan_amount"
	ColPaymentDelays      = "payment_delays"
	ColIndustry           = "industry"
	ColYearsInBusiness    = "years_in_business"
	ColManagementExp      = "management_experience"
	ColCreditHistoryYears = "credit_history_years"

	ColCurrentAssets      = "current_assets"
	ColCurrentLiabilities = "current_liabilities"
	ColTotalAssets        = "total_assets"
	ColTotalEquity        = "total_equity"
	ColTotalDebt          = "total_debt"

	ColCurrentRatio       = "current_ratio"
	ColQuickRatio         = "quick_ratio"
	ColDebtToEquity       = "debt_to_equity"
	ColDebtServiceCover   = "debt_service_coverage_ratio"
	ColReturnOnAssets     = "return_on_assets"
	ColReturnOnEquity     = "return_on_equity"
	ColAssetTurnover      = "asset_turnover"
	ColWorkingCapital     = "working_capital"
	ColEquityRatio        = "equity_ratio"
	ColLoanToValue        = "loan_to_value"
	ColAssetCoverageRatio = "asset_coverage_ratio"
	ColIndustryRisk       = "industry_risk"

	ColCollateralType  = "collateral_type"
	ColCollateralValue = "collateral_value"
)

// Borrower type tags.
const (
	TypeConsumer = "consumer"
	TypeSME      = "sme"
)

// Borrower is one row of the unified table with every scoring-relevant
// field lifted into an explicit optional value. Records are built once
// after normalization and only read afterwards.
type Borrower struct {
	ID   tabular.Value
	Name tabular.Value
	Type tabular.Value

	Age               tabular.Value
	CreditScoreRaw    tabular.Value
	TransactionAmount tabular.Value
	AnnualRevenue     tabular.Value
	AnnualIncome      tabular.Value
	LoanAmount        tabular.Value
	PaymentDelays     tabular.Value
	Industry          tabular.Value
	YearsInBusiness   tabular.Value
	ManagementExp     tabular.Value
	CreditHistory     tabular.Value

	CurrentRatio       tabular.Value
	DebtToEquity       tabular.Value
	EquityRatio        tabular.Value
	WorkingCapital     tabular.Value
	TotalAssets        tabular.Value
	LoanToValue        tabular.Value
	AssetCoverageRatio tabular.Value
	CollateralType     tabular.Value
}

// BorrowerFromRow lifts a unified-table row into a Borrower.
func BorrowerFromRow(r tabular.Row) Borrower {
	return Borrower{
		ID:   r.Get(ColBorrowerID),
		Name: r.Get(ColBorrowerName),
		Type: r.Get(ColBorrowerType),

		Age:               r.Get(ColAge),
		CreditScoreRaw:    r.Get(ColCreditScoreRaw),
		TransactionAmount: r.Get(ColTransactionAmount),
		AnnualRevenue:     r.Get(ColAnnualRevenue),
		AnnualIncome:      r.Get(ColAnnualIncome),
		LoanAmount:        r.Get(ColLoanAmount),
		PaymentDelays:     r.Get(ColPaymentDelays),
		Industry:          r.Get(ColIndustry),
		YearsInBusiness:   r.Get(ColYearsInBusiness),
		ManagementExp:     r.Get(ColManagementExp),
		CreditHistory:     r.Get(ColCreditHistoryYears),

		CurrentRatio:       r.Get(ColCurrentRatio),
		DebtToEquity:       r.Get(ColDebtToEquity),
		EquityRatio:        r.Get(ColEquityRatio),
		WorkingCapital:     r.Get(ColWorkingCapital),
		TotalAssets:        r.Get(ColTotalAssets),
		LoanToValue:        r.Get(ColLoanToValue),
		AssetCoverageRatio: r.Get(ColAssetCoverageRatio),
		CollateralType:     r.Get(ColCollateralType),
	}
}
