package db

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
)

// SQLGetColumns is an SQL query to obtain the column names of a table in the
// current schema, in table order, excluding the row key column.
const SQLGetColumns = `SELECT column_name::text FROM information_schema.columns
 WHERE table_schema = current_schema()
   AND table_name = $1
   AND column_name <> $2
 ORDER BY ordinal_position;`

// SQLCreateSheet is an SQL/DDL clause to create a minimal sheet table with
// the default columns.
const SQLCreateSheet = `CREATE TABLE IF NOT EXISTS %s
  (%s bigserial PRIMARY KEY,
   %s text NOT NULL DEFAULT '',
   %s text NOT NULL DEFAULT '');`

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// selectRowsSQL builds a query returning the key and all given columns as
// text, NULLs mapped to empty strings, in key order.
func selectRowsSQL(table, key string, columns []string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(quoteIdent(key))
	b.WriteString("::text")
	for _, c := range columns {
		b.WriteString(", COALESCE(")
		b.WriteString(quoteIdent(c))
		b.WriteString("::text, '')")
	}
	fmt.Fprintf(&b, " FROM %s ORDER BY %s;", quoteIdent(table), quoteIdent(key))
	return b.String()
}

// updateRowSQL builds an UPDATE statement setting the given columns by
// position ($1..$n), selecting the row by key ($n+1).
func updateRowSQL(table, key string, columns []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "UPDATE %s SET ", quoteIdent(table))
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = $%d", quoteIdent(c), i+1)
	}
	fmt.Fprintf(&b, " WHERE %s = $%d;", quoteIdent(key), len(columns)+1)
	return b.String()
}

func createSheetSQL(table, key, ipCol, hostnameCol string) string {
	return fmt.Sprintf(SQLCreateSheet, quoteIdent(table), quoteIdent(key),
		quoteIdent(ipCol), quoteIdent(hostnameCol))
}
