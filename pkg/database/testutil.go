package database

import (
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

// NewMockPool returns a pgxmock pool for store tests. It satisfies the DBTX
// interface, so it drops into any store constructor in place of a real pool;
// finish each test with ExpectationsWereMet().
func NewMockPool() (pgxmock.PgxPoolIface, error) {
	return pgxmock.NewPool()
}
