package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"sequential", "INSERT INTO t VALUES (?, ?, ?)", "INSERT INTO t VALUES ($1, $2, $3)"},
		{"quoted literal kept", "SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
		{"non-ascii", "SELECT * FROM t WHERE name = ? AND note = 'Проект?'", "SELECT * FROM t WHERE name = $1 AND note = 'Проект?'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.query))
		})
	}
}

func TestBind_SQLiteIsPassthrough(t *testing.T) {
	var conn DBTX = numbered{}
	assert.Equal(t, conn, Bind(conn, DialectSQLite))
	_, wrapped := Bind(conn, DialectPostgres).(numbered)
	assert.True(t, wrapped)
}
