package db

import (
	"github.com/jmoiron/sqlx"
)

// HDb wraps sqlx so repositories depend on one type and main owns the
// connection lifecycle.
type HDb struct {
	*sqlx.DB
}

func NewHDb(driverName, dataSourceUrl string) (*HDb, error) {
	database, err := sqlx.Connect(driverName, dataSourceUrl)
	if err != nil {
		return nil, err
	}
	return &HDb{database}, nil
}
