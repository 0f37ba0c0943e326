package listing

import (
	"ledger-admin/internal/domain"
)

// FoboAccountSource lists FOBO accounts as {account_id, account_name,
// system_name}, sorted by account name unless the caller asks otherwise.
func FoboAccountSource(f domain.Fetcher) Source {
	return Source{
		Fetcher: f,
		IDField: "account_id",
		Fields:  []string{"account_id", "account_name", "system_name"},
		Sentinel: domain.Row{
			"account_id":   domain.SentinelID,
			"account_name": domain.SentinelLabel,
			"system_name":  domain.SentinelLabel,
		},
		DefaultSort: domain.Sort{{Field: "account_name"}},
	}
}

// BalanceTypeSource lists balance types with their classification names.
func BalanceTypeSource(f domain.Fetcher) Source {
	return Source{
		Fetcher: f,
		IDField: "id",
		Fields:  []string{"id", "name", "subledger_type", "financial_statement_type", "balance_type_mapping"},
		Sentinel: domain.Row{
			"id":                       domain.SentinelID,
			"name":                     domain.SentinelLabel,
			"subledger_type":           domain.SentinelLabel,
			"financial_statement_type": domain.SentinelLabel,
			"balance_type_mapping":     domain.SentinelLabel,
		},
		DefaultSort: domain.Sort{{Field: "name"}},
	}
}
