package database

import (
	"context"
	"fmt"
	"strings"

	"ledger-admin/internal/domain"

	"gorm.io/gorm"
)

// column maps a listing field to its SQL expression. Only text columns get
// predicates pushed down; the listing service re-applies every predicate.
type column struct {
	expr string
	text bool
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// pushDown narrows q with the predicates SQL can evaluate exactly as
// domain.Predicate.Match does. Anything else is left to the in-memory pass.
// Match reads NULL as "", which SQL comparisons never do, so empty values
// stay in memory.
func pushDown(q *gorm.DB, filter domain.Filter, cols map[string]column) *gorm.DB {
	for _, p := range filter {
		c, ok := cols[p.Field]
		if !ok || !c.text || p.Value == "" || !isASCII(p.Value) {
			continue
		}
		pattern := likeEscaper.Replace(strings.ToLower(p.Value))
		like := fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, c.expr)
		switch p.Op {
		case domain.OpEquals:
			q = q.Where(c.expr+" = ?", p.Value)
		case domain.OpContains:
			q = q.Where(like, "%"+pattern+"%")
		case domain.OpStartsWith:
			q = q.Where(like, pattern+"%")
		case domain.OpEndsWith:
			q = q.Where(like, "%"+pattern)
		}
	}
	return q
}

// SQLite's LOWER only folds ASCII.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

var foboAccountColumns = map[string]column{
	"account_id":   {expr: "fobo_accounts.id"},
	"account_name": {expr: "fobo_accounts.number", text: true},
	"system_name":  {expr: "source_systems.name", text: true},
}

type foboAccountRecord struct {
	AccountID   int64
	AccountName string
	SystemName  *string
}

// FoboAccountFetcher reads FOBO accounts joined with their source system.
type FoboAccountFetcher struct {
	DB *gorm.DB
}

func (f *FoboAccountFetcher) Fetch(ctx context.Context, filter domain.Filter) ([]domain.Row, error) {
	q := f.DB.WithContext(ctx).
		Table("fobo_accounts").
		Select("fobo_accounts.id AS account_id, fobo_accounts.number AS account_name, source_systems.name AS system_name").
		Joins("LEFT JOIN source_systems ON source_systems.id = fobo_accounts.source_system_id")
	var recs []foboAccountRecord
	if err := pushDown(q, filter, foboAccountColumns).Scan(&recs).Error; err != nil {
		return nil, fmt.Errorf("fetch fobo accounts: %w", err)
	}
	rows := make([]domain.Row, len(recs))
	for i, r := range recs {
		rows[i] = domain.Row{
			"account_id":   r.AccountID,
			"account_name": r.AccountName,
			"system_name":  nullable(r.SystemName),
		}
	}
	return rows, nil
}

var balanceTypeColumns = map[string]column{
	"id":                       {expr: "balance_types.id"},
	"name":                     {expr: "balance_types.name", text: true},
	"subledger_type":           {expr: "subledger_types.name", text: true},
	"financial_statement_type": {expr: "financial_statement_types.name", text: true},
	"balance_type_mapping":     {expr: "mapping.name", text: true},
}

type balanceTypeRecord struct {
	ID                     int64
	Name                   string
	SubledgerType          *string
	FinancialStatementType *string
	BalanceTypeMapping     *string
}

// BalanceTypeFetcher reads balance types with their classification names and
// the name of the balance type they map to.
type BalanceTypeFetcher struct {
	DB *gorm.DB
}

func (f *BalanceTypeFetcher) Fetch(ctx context.Context, filter domain.Filter) ([]domain.Row, error) {
	q := f.DB.WithContext(ctx).
		Table("balance_types").
		Select(`balance_types.id AS id, balance_types.name AS name,
			subledger_types.name AS subledger_type,
			financial_statement_types.name AS financial_statement_type,
			mapping.name AS balance_type_mapping`).
		Joins("LEFT JOIN subledger_types ON subledger_types.id = balance_types.subledger_type_id").
		Joins("LEFT JOIN financial_statement_types ON financial_statement_types.id = balance_types.financial_statement_type_id").
		Joins("LEFT JOIN balance_types AS mapping ON mapping.id = balance_types.balance_type_mapping_id")
	var recs []balanceTypeRecord
	if err := pushDown(q, filter, balanceTypeColumns).Scan(&recs).Error; err != nil {
		return nil, fmt.Errorf("fetch balance types: %w", err)
	}
	rows := make([]domain.Row, len(recs))
	for i, r := range recs {
		rows[i] = domain.Row{
			"id":                       r.ID,
			"name":                     r.Name,
			"subledger_type":           nullable(r.SubledgerType),
			"financial_statement_type": nullable(r.FinancialStatementType),
			"balance_type_mapping":     nullable(r.BalanceTypeMapping),
		}
	}
	return rows, nil
}
