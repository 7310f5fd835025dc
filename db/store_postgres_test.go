package db

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"context"
	"errors"
	"testing"

	"github.com/DCSO/hostnamer/types"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
)

type execCall struct {
	SQL  string
	Args []interface{}
}

func makeTestPostgresStore(t *testing.T, table [][]string) (*PostgresStore, *[]execCall) {
	t.Helper()
	var calls []execCall
	s := MakePostgresStoreWithPool(context.TODO(), (*pgxpool.Pool)(nil), "sheet")
	s.QueryFn = func(ctx context.Context, sql string, args ...interface{}) ([][]string, error) {
		if sql == SQLGetColumns {
			assert.Equal(t, []interface{}{"sheet", "rownum"}, args)
			out := [][]string{}
			for _, c := range table[0] {
				out = append(out, []string{c})
			}
			return out, nil
		}
		assert.Equal(t, selectRowsSQL("sheet", "rownum", table[0]), sql)
		return table[1:], nil
	}
	s.ExecFn = func(ctx context.Context, sql string, args ...interface{}) (int64, error) {
		calls = append(calls, execCall{SQL: sql, Args: args})
		return 1, nil
	}
	return s, &calls
}

func TestPostgresStoreSQL(t *testing.T) {
	assert.Equal(t,
		`SELECT "rownum"::text, COALESCE("IP"::text, ''), COALESCE("Hostname"::text, '') FROM "sheet" ORDER BY "rownum";`,
		selectRowsSQL("sheet", "rownum", []string{"IP", "Hostname"}))
	assert.Equal(t,
		`UPDATE "sheet" SET "IP" = $1, "Hostname" = $2 WHERE "rownum" = $3;`,
		updateRowSQL("sheet", "rownum", []string{"IP", "Hostname"}))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}

func TestPostgresStoreHeaderRows(t *testing.T) {
	s, _ := makeTestPostgresStore(t, [][]string{
		{"IP", "Hostname"},
		{"10", "8.8.8.8", ""},
		{"12", "1.1.1.1", "one.one"},
	})
	h, err := s.Header()
	assert.NoError(t, err)
	assert.Equal(t, types.Header{"IP", "Hostname"}, h)
	rows, err := s.Rows()
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"8.8.8.8", ""}, {"1.1.1.1", "one.one"}}, rows)
}

func TestPostgresStoreWriteRowByKey(t *testing.T) {
	s, calls := makeTestPostgresStore(t, [][]string{
		{"IP", "Hostname"},
		{"10", "8.8.8.8", ""},
		{"12", "1.1.1.1", ""},
	})
	_, err := s.Rows()
	assert.NoError(t, err)
	err = s.WriteRow(2, []string{"1.1.1.1", "one.one"})
	assert.NoError(t, err)
	if assert.Len(t, *calls, 1) {
		c := (*calls)[0]
		assert.Equal(t, `UPDATE "sheet" SET "Hostname" = $1 WHERE "rownum" = $2;`, c.SQL)
		assert.Equal(t, []interface{}{"one.one", "12"}, c.Args)
	}
}

func TestPostgresStoreWriteRowKeepsUntouchedColumns(t *testing.T) {
	// "Seen" stands for a nullable non-text column; COALESCE renders NULL as ''
	s, calls := makeTestPostgresStore(t, [][]string{
		{"IP", "Hostname", "Seen"},
		{"10", "8.8.8.8", "", ""},
		{"11", "9.9.9.9", "", "2026-10-01 12:00:00+00"},
	})
	_, err := s.Rows()
	assert.NoError(t, err)
	err = s.WriteRow(1, []string{"8.8.8.8", "dns.google", ""})
	assert.NoError(t, err)
	err = s.WriteRow(2, []string{"9.9.9.9", "dns9.quad9.net", "2026-10-01 12:00:00+00"})
	assert.NoError(t, err)
	if assert.Len(t, *calls, 2) {
		for i, c := range *calls {
			assert.Equal(t, `UPDATE "sheet" SET "Hostname" = $1 WHERE "rownum" = $2;`, c.SQL)
			assert.Len(t, c.Args, 2, "call %d", i)
		}
		assert.Equal(t, []interface{}{"dns.google", "10"}, (*calls)[0].Args)
		assert.Equal(t, []interface{}{"dns9.quad9.net", "11"}, (*calls)[1].Args)
	}
}

func TestPostgresStoreWriteRowUnchanged(t *testing.T) {
	s, calls := makeTestPostgresStore(t, [][]string{
		{"IP", "Hostname"},
		{"10", "8.8.8.8", "dns.google"},
	})
	_, err := s.Rows()
	assert.NoError(t, err)
	err = s.WriteRow(1, []string{"8.8.8.8", "dns.google"})
	assert.NoError(t, err)
	assert.Empty(t, *calls)

	// a second write compares against the last written values
	err = s.WriteRow(1, []string{"8.8.8.8", "other"})
	assert.NoError(t, err)
	err = s.WriteRow(1, []string{"8.8.8.8", "other"})
	assert.NoError(t, err)
	assert.Len(t, *calls, 1)
}

func TestPostgresStoreWriteRowErrors(t *testing.T) {
	s, _ := makeTestPostgresStore(t, [][]string{
		{"IP", "Hostname"},
		{"10", "8.8.8.8", ""},
	})
	// no Rows() call yet
	err := s.WriteRow(1, []string{"8.8.8.8", "x"})
	assert.True(t, errors.Is(err, ErrRowOutOfRange))

	_, err = s.Rows()
	assert.NoError(t, err)
	err = s.WriteRow(2, []string{"8.8.8.8", "x"})
	assert.True(t, errors.Is(err, ErrRowOutOfRange))
	err = s.WriteRow(1, []string{"8.8.8.8"})
	assert.Error(t, err)

	s.ExecFn = func(ctx context.Context, sql string, args ...interface{}) (int64, error) {
		return 0, nil
	}
	err = s.WriteRow(1, []string{"8.8.8.8", "x"})
	assert.True(t, errors.Is(err, ErrRowOutOfRange))
}

func TestPostgresStoreNoColumns(t *testing.T) {
	s := MakePostgresStoreWithPool(context.TODO(), nil, "empty")
	s.QueryFn = func(ctx context.Context, sql string, args ...interface{}) ([][]string, error) {
		return [][]string{}, nil
	}
	_, err := s.Header()
	assert.Error(t, err)
}
