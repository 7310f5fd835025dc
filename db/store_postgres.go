package db

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DCSO/hostnamer/types"

	"github.com/jackc/pgx/v4/pgxpool"
	log "github.com/sirupsen/logrus"
)

var maxRetries = 20

// DefaultKeyColumn is the name of the column used to identify and order rows
// in a PostgreSQL sheet table.
const DefaultKeyColumn = "rownum"

// PostgresStore is a Store backed by a PostgreSQL table. Every column except
// the key column is part of the header; rows are ordered by key.
type PostgresStore struct {
	DB        *pgxpool.Pool
	Table     string
	KeyColumn string
	// QueryFn allows injecting a custom query executor for testing. It must
	// return all result rows with every column rendered as text.
	QueryFn func(ctx context.Context, sql string, args ...interface{}) ([][]string, error)
	// ExecFn allows injecting execution for UPDATE and DDL statements. It
	// returns the number of affected rows.
	ExecFn func(ctx context.Context, sql string, args ...interface{}) (int64, error)
	Logger *log.Entry
	ctx    context.Context
	header types.Header
	keys   []string
	read   [][]string
}

// MakePostgresStore connects to the given database and returns a store
// operating on the given table. If create is set, a table with the key
// column and the given default columns is created if it does not exist.
func MakePostgresStore(ctx context.Context, host, database, user, password,
	table string, cols types.Columns, create bool) (*PostgresStore, error) {
	var err error
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", user, password, host, database)
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}
	l := log.WithFields(log.Fields{
		"domain": "store",
		"store":  "postgres",
	})
	var pool *pgxpool.Pool
	for i := 0; ; i++ {
		pool, err = pgxpool.ConnectConfig(ctx, cfg)
		if err == nil {
			err = pool.Ping(ctx)
		}
		if err == nil || i > maxRetries || !strings.Contains(err.Error(), "system is starting up") {
			break
		}
		l.Warnf("problem connecting to database: %s -- retrying %d/%d",
			err.Error(), i, maxRetries)
		time.Sleep(10 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres via pgxpool: %w", err)
	}
	l.WithFields(log.Fields{
		"user":     user,
		"host":     host,
		"database": database,
		"table":    table,
	}).Info("connected to database")
	s := MakePostgresStoreWithPool(ctx, pool, table)
	if create {
		if _, err = s.exec(ctx, createSheetSQL(table, s.KeyColumn, cols.IP, cols.Hostname)); err != nil {
			pool.Close()
			return nil, fmt.Errorf("error creating table %s: %w", table, err)
		}
	}
	return s, nil
}

// MakePostgresStoreWithPool returns a store using an existing pool. The pool
// may be nil if QueryFn and ExecFn are set.
func MakePostgresStoreWithPool(ctx context.Context, pool *pgxpool.Pool, table string) *PostgresStore {
	return &PostgresStore{
		DB:        pool,
		Table:     table,
		KeyColumn: DefaultKeyColumn,
		Logger: log.WithFields(log.Fields{
			"domain": "store",
			"store":  "postgres",
			"table":  table,
		}),
		ctx: ctx,
	}
}

func (s *PostgresStore) query(ctx context.Context, sql string, args ...interface{}) ([][]string, error) {
	if s.QueryFn != nil {
		return s.QueryFn(ctx, sql, args...)
	}
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([][]string, 0)
	for rows.Next() {
		n := len(rows.FieldDescriptions())
		vals := make([]string, n)
		dest := make([]interface{}, n)
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, vals)
	}
	return out, rows.Err()
}

func (s *PostgresStore) exec(ctx context.Context, sql string, args ...interface{}) (int64, error) {
	if s.ExecFn != nil {
		return s.ExecFn(ctx, sql, args...)
	}
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Header returns the table's column names, excluding the key column.
func (s *PostgresStore) Header() (types.Header, error) {
	if s.header != nil {
		return append(types.Header{}, s.header...), nil
	}
	res, err := s.query(s.ctx, SQLGetColumns, s.Table, s.KeyColumn)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("table %s has no columns besides %s", s.Table, s.KeyColumn)
	}
	h := make(types.Header, 0, len(res))
	for _, r := range res {
		h = append(h, r[0])
	}
	s.header = h
	return append(types.Header{}, h...), nil
}

// Rows returns all table rows in key order. The row numbers used by
// subsequent WriteRow calls refer to the order returned here.
func (s *PostgresStore) Rows() ([][]string, error) {
	header, err := s.Header()
	if err != nil {
		return nil, err
	}
	res, err := s.query(s.ctx, selectRowsSQL(s.Table, s.KeyColumn, header))
	if err != nil {
		return nil, err
	}
	s.keys = make([]string, 0, len(res))
	s.read = make([][]string, 0, len(res))
	out := make([][]string, 0, len(res))
	for _, r := range res {
		if len(r) == 0 {
			continue
		}
		s.keys = append(s.keys, r[0])
		s.read = append(s.read, r[1:])
		out = append(out, append([]string{}, r[1:]...))
	}
	s.Logger.WithField("rows", len(out)).Debug("rows fetched")
	return out, nil
}

// WriteRow updates the table row that was returned at position rowNumber
// (1-based) by the last Rows() call. Only columns whose value differs from
// the one read are written, so untouched cells (including NULLs in
// non-text columns) keep their stored value.
func (s *PostgresStore) WriteRow(rowNumber int, values []string) error {
	if rowNumber < 1 || rowNumber > len(s.keys) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, rowNumber)
	}
	if len(values) != len(s.header) {
		return fmt.Errorf("row %d has %d values, table has %d columns",
			rowNumber, len(values), len(s.header))
	}
	prev := s.read[rowNumber-1]
	cols := make([]string, 0)
	args := make([]interface{}, 0)
	for i, v := range values {
		if i < len(prev) && prev[i] == v {
			continue
		}
		cols = append(cols, s.header[i])
		args = append(args, v)
	}
	if len(cols) == 0 {
		return nil
	}
	args = append(args, s.keys[rowNumber-1])
	n, err := s.exec(s.ctx, updateRowSQL(s.Table, s.KeyColumn, cols), args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d (key %s vanished)", ErrRowOutOfRange, rowNumber, s.keys[rowNumber-1])
	}
	s.read[rowNumber-1] = append([]string{}, values...)
	return nil
}

// Finish closes the connection pool.
func (s *PostgresStore) Finish() error {
	if s.DB != nil {
		s.DB.Close()
	}
	return nil
}
