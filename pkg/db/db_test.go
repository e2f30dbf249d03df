package db

import (
	"testing"

	"github.com/smallbiznis/landedcost/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDSN(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		kind string
		dsn  string
	}{
		{
			name: "postgres defaults sslmode",
			cfg:  config.Config{DBType: "Postgres", DBHost: "db", DBPort: "5432", DBName: "catalog", DBUser: "shop", DBPassword: "pw"},
			kind: "postgres",
			dsn:  "host=db user=shop password=pw dbname=catalog port=5432 sslmode=disable TimeZone=UTC",
		},
		{
			name: "mysql",
			cfg:  config.Config{DBType: "mysql", DBHost: "db", DBPort: "3306", DBName: "catalog", DBUser: "shop", DBPassword: "pw"},
			kind: "mysql",
			dsn:  "shop:pw@tcp(db:3306)/catalog?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name: "sqlite default path",
			cfg:  config.Config{DBType: "sqlite"},
			kind: "sqlite",
			dsn:  "landedcost.db",
		},
		{
			name: "sqlite explicit path",
			cfg:  config.Config{DBPath: "/var/lib/shop.db"},
			kind: "sqlite",
			dsn:  "/var/lib/shop.db",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, dsn, err := DSN(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.dsn, dsn)
		})
	}

	_, err := Dialect(config.Config{DBType: "oracle"})
	assert.Error(t, err)
}

type uniqueRow struct {
	ID   int64  `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex"`
}

func TestIsDuplicateKeyErr(t *testing.T) {
	conn, err := NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&uniqueRow{}))

	require.NoError(t, conn.Create(&uniqueRow{ID: 1, Code: "x"}).Error)
	err = conn.Create(&uniqueRow{ID: 2, Code: "x"}).Error
	assert.True(t, IsDuplicateKeyErr(err))
	assert.False(t, IsDuplicateKeyErr(nil))

	var row uniqueRow
	err = conn.First(&row, "code = ?", "missing").Error
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
