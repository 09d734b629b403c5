package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createContractRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE contract_records (
		id TEXT PRIMARY KEY,
		chain_id INTEGER NOT NULL,
		contract_address TEXT NOT NULL,
		contract_type TEXT NOT NULL,
		remote_name TEXT NOT NULL,
		version INTEGER NOT NULL,
		abi_band TEXT NOT NULL,
		abi_asset TEXT NOT NULL,
		roles TEXT,
		resolved_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
