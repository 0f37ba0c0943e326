package listing

import (
	"context"
	"errors"
	"testing"

	"ledger-admin/internal/domain"
	"ledger-admin/internal/infrastructure/database"
	"ledger-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFetcher struct {
	rows []domain.Row
	err  error
}

func (f staticFetcher) Fetch(context.Context, domain.Filter) ([]domain.Row, error) {
	return f.rows, f.err
}

func accountRows(names ...string) []domain.Row {
	rows := make([]domain.Row, len(names))
	for i, n := range names {
		rows[i] = domain.Row{"account_id": int64(i + 1), "account_name": n, "system_name": "S"}
	}
	return rows
}

func newService(rows []domain.Row) *Service {
	return &Service{Sources: map[domain.EntityType]Source{
		domain.EntityFoboAccount: FoboAccountSource(staticFetcher{rows: rows}),
	}}
}

func names(rows []domain.Row, field string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = domain.FormatValue(r[field])
	}
	return out
}

func TestList_AppendsSentinel(t *testing.T) {
	svc := newService(accountRows("A1", "A2", "A3"))

	res, err := svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Len(t, res.Rows, 4)

	last := res.Rows[3]
	assert.Equal(t, domain.SentinelID, last["account_id"])
	assert.Equal(t, domain.SentinelLabel, last["account_name"])
	assert.Equal(t, domain.SentinelLabel, last["system_name"])
}

func TestList_EmptyCollaboratorStillHasSentinel(t *testing.T) {
	svc := newService(nil)

	res, err := svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, domain.SentinelID, res.Rows[0]["account_id"])
}

func TestList_FilterExcludingSentinel(t *testing.T) {
	svc := newService(accountRows("A3333", "B555", "F4444", "V111"))

	res, err := svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{
		Filter: domain.Filter{{Field: "account_name", Op: domain.OpEquals, Value: "V111"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"V111"}, names(res.Rows, "account_name"))
}

func TestList_FilterMatchingOnlySentinel(t *testing.T) {
	svc := newService(accountRows("A3333", "B555"))

	res, err := svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{
		Filter: domain.Filter{{Field: "account_name", Op: domain.OpContains, Value: "unknown"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SentinelLabel}, names(res.Rows, "account_name"))
}

func TestList_SentinelSortedLexicographically(t *testing.T) {
	svc := newService(accountRows("V111", "F4444", "A3333", "B555"))

	res, err := svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{
		Sort: domain.Sort{{Field: "account_name"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A3333", "B555", "F4444", "V111", domain.SentinelLabel}, names(res.Rows, "account_name"))

	res, err = svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{
		Sort: domain.Sort{{Field: "account_name", Desc: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SentinelLabel, "V111", "F4444", "B555", "A3333"}, names(res.Rows, "account_name"))
}

func TestList_SortByIDPutsSentinelFirst(t *testing.T) {
	svc := newService(accountRows("B", "A"))

	res, err := svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{
		Sort: domain.Sort{{Field: "account_id"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"-1", "1", "2"}, names(res.Rows, "account_id"))
}

func TestList_TieBreakByID(t *testing.T) {
	rows := []domain.Row{
		{"account_id": int64(3), "account_name": "X", "system_name": "S"},
		{"account_id": int64(1), "account_name": "X", "system_name": "S"},
		{"account_id": int64(2), "account_name": "X", "system_name": "S"},
	}
	svc := newService(rows)

	res, err := svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{
		Sort: domain.Sort{{Field: "system_name"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "-1"}, names(res.Rows, "account_id"))
}

func TestList_Pagination(t *testing.T) {
	svc := newService(accountRows("A3333", "B555", "F4444", "V111"))
	ctx := context.Background()

	tests := []struct {
		name string
		page domain.Page
		want []string
	}{
		{"first page", domain.Page{Offset: 0, Limit: 2}, []string{"A3333", "B555"}},
		{"last page holds sentinel", domain.Page{Offset: 4, Limit: 2}, []string{domain.SentinelLabel}},
		{"past the end", domain.Page{Offset: 10, Limit: 2}, []string{}},
		{"unbounded", domain.Page{Offset: 3}, []string{"V111", domain.SentinelLabel}},
		{"row window", domain.RowWindow(1, 3), []string{"B555", "F4444"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.List(ctx, domain.EntityFoboAccount, domain.ListQuery{Page: tt.page})
			require.NoError(t, err)
			assert.Equal(t, 5, res.Total)
			assert.Equal(t, tt.want, names(res.Rows, "account_name"))
		})
	}
}

func TestList_Errors(t *testing.T) {
	svc := newService(accountRows("A"))
	ctx := context.Background()

	_, err := svc.List(ctx, domain.EntityType("widget"), domain.ListQuery{})
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.List(ctx, domain.EntityFoboAccount, domain.ListQuery{
		Filter: domain.Filter{{Field: "colour", Op: domain.OpEquals, Value: "x"}},
	})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.List(ctx, domain.EntityFoboAccount, domain.ListQuery{Sort: domain.Sort{{Field: "colour"}}})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.List(ctx, domain.EntityFoboAccount, domain.ListQuery{Page: domain.Page{Offset: -1}})
	assert.True(t, domain.IsValidation(err))

	boom := errors.New("boom")
	failing := &Service{Sources: map[domain.EntityType]Source{
		domain.EntityFoboAccount: FoboAccountSource(staticFetcher{err: boom}),
	}}
	_, err = failing.List(ctx, domain.EntityFoboAccount, domain.ListQuery{})
	assert.ErrorIs(t, err, boom)
}

func TestList_DoesNotMutateSentinelTemplate(t *testing.T) {
	src := FoboAccountSource(staticFetcher{})
	svc := &Service{Sources: map[domain.EntityType]Source{domain.EntityFoboAccount: src}}

	res, err := svc.List(context.Background(), domain.EntityFoboAccount, domain.ListQuery{})
	require.NoError(t, err)
	res.Rows[0]["account_name"] = "changed"

	assert.Equal(t, domain.SentinelLabel, src.Sentinel["account_name"])
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, -1, compareValues(nil, "a"))
	assert.Equal(t, 1, compareValues("a", nil))
	assert.Equal(t, 0, compareValues(nil, nil))
	assert.Equal(t, -1, compareValues(int64(9), int64(10)))
	assert.Equal(t, -1, compareValues(int64(-1), 2.5))
	assert.Equal(t, -1, compareValues("V111", "__unknown__"))
	assert.Equal(t, -1, compareValues("B", "a"))
}

func TestList_WithDatabaseFetchers(t *testing.T) {
	db := testutil.NewDB(t)
	system := testutil.SourceSystem(t, db, "SYS")
	for _, n := range []string{"V111", "A3333", "F4444", "B555"} {
		testutil.FoboAccount(t, db, n, system)
	}
	svc := &Service{Sources: map[domain.EntityType]Source{
		domain.EntityFoboAccount: FoboAccountSource(&database.FoboAccountFetcher{DB: db}),
		domain.EntityBalanceType: BalanceTypeSource(&database.BalanceTypeFetcher{DB: db}),
	}}
	ctx := context.Background()

	res, err := svc.List(ctx, domain.EntityFoboAccount, domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, []string{"A3333", "B555", "F4444", "V111", domain.SentinelLabel}, names(res.Rows, "account_name"))

	res, err = svc.List(ctx, domain.EntityFoboAccount, domain.ListQuery{
		Filter: domain.Filter{{Field: "account_name", Op: domain.OpEquals, Value: "V111"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	res, err = svc.List(ctx, domain.EntityBalanceType, domain.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, domain.SentinelLabel, res.Rows[0]["name"])
}

func TestList_EmptyFilterValueAgreesWithNullColumns(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&domain.BalanceType{Name: "Bare"}).Error)
	svc := &Service{Sources: map[domain.EntityType]Source{
		domain.EntityBalanceType: BalanceTypeSource(&database.BalanceTypeFetcher{DB: db}),
	}}
	ctx := context.Background()

	res, err := svc.List(ctx, domain.EntityBalanceType, domain.ListQuery{
		Filter: domain.Filter{{Field: "subledger_type", Op: domain.OpEquals, Value: ""}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"Bare"}, names(res.Rows, "name"))

	res, err = svc.List(ctx, domain.EntityBalanceType, domain.ListQuery{
		Filter: domain.Filter{{Field: "subledger_type", Op: domain.OpContains, Value: ""}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []string{"Bare", domain.SentinelLabel}, names(res.Rows, "name"))
}
