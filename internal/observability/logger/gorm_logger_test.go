package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationFromSQL(t *testing.T) {
	cases := map[string]string{
		`SELECT * FROM "products" WHERE user_id = $1`:    "SELECT",
		`  insert into duty_categories (id) values (1)`:  "INSERT",
		`UPDATE "products" SET "item"=$1`:                "UPDATE",
		`DELETE FROM "products" WHERE id = $1`:           "DELETE",
		`WITH t AS (SELECT 1) SELECT * FROM t`:           "SELECT",
		``:                                               "UNKNOWN",
		`PRAGMA foreign_keys = ON`:                       "UNKNOWN",
	}
	for sql, want := range cases {
		assert.Equal(t, want, operationFromSQL(sql), sql)
	}
}
