package domain

// SourceSystem is the upstream system a FOBO account is booked in.
type SourceSystem struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

func (SourceSystem) TableName() string {
	return "source_systems"
}

type AccountType struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

func (AccountType) TableName() string {
	return "account_types"
}

// FoboAccount is a front-office/back-office account as booked in a source system.
type FoboAccount struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Number         string `gorm:"column:number;not null;index" json:"number"`
	SourceSystemID int64  `gorm:"column:source_system_id;not null" json:"source_system"`
	AccountTypeID  *int64 `gorm:"column:account_type_id" json:"account_type"`
}

func (FoboAccount) TableName() string {
	return "fobo_accounts"
}

// Contact is a person who can hold account ownership.
type Contact struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"column:name;not null" json:"name"`
	Email string `gorm:"column:email" json:"email"`
}

func (Contact) TableName() string {
	return "contacts"
}

type SubledgerType struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

func (SubledgerType) TableName() string {
	return "subledger_types"
}

type FinancialStatementType struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

func (FinancialStatementType) TableName() string {
	return "financial_statement_types"
}

// BalanceType classifies balances; BalanceTypeMappingID points at the balance
// type this one rolls up into, if any.
type BalanceType struct {
	ID                       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                     string `gorm:"column:name;not null" json:"name"`
	SubledgerTypeID          *int64 `gorm:"column:subledger_type_id" json:"subledger_type"`
	FinancialStatementTypeID *int64 `gorm:"column:financial_statement_type_id" json:"financial_statement_type"`
	BalanceTypeMappingID     *int64 `gorm:"column:balance_type_mapping_id" json:"balance_type_mapping"`
}

func (BalanceType) TableName() string {
	return "balance_types"
}
