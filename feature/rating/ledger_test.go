package rating

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"osu-db-tool/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newSQLiteLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	l := NewLedger(db)
	require.NoError(t, l.Migrate())
	return l
}

func TestLedger_RecordAndQuery(t *testing.T) {
	l := newSQLiteLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, "run-1", []Failure{
		{Hash: "aaa", Path: "/songs/a.osu", Err: errors.New("bad header")},
		{Hash: "bbb", Path: "/songs/b.osu", Err: errors.New("missing")},
	}))
	require.NoError(t, l.Record(ctx, "run-2", []Failure{
		{Hash: "aaa", Path: "/songs/a.osu", Err: errors.New("still bad")},
	}))

	records, err := l.Failures(ctx, "aaa")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-2", records[0].RunID)
	assert.Equal(t, "still bad", records[0].Error)
	assert.Equal(t, "run-1", records[1].RunID)
	assert.Equal(t, "/songs/a.osu", records[1].Path)

	none, err := l.Failures(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLedger_RecordNothing(t *testing.T) {
	l := newSQLiteLedger(t)
	assert.NoError(t, l.Record(context.Background(), "run", nil))
}

func TestLedger_MySQLInsert(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `rating_failures`")).
		WithArgs("run", "aaa", "/a.osu", "boom", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = NewLedger(db).Record(context.Background(), "run", []Failure{{Hash: "aaa", Path: "/a.osu", Err: errors.New("boom")}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_MySQLError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `rating_failures`")).
		WillReturnError(errors.New("table is read only"))
	mock.ExpectRollback()

	err = NewLedger(db).Record(context.Background(), "run", []Failure{{Hash: "aaa", Err: errors.New("boom")}})
	assert.EqualError(t, err, "table is read only")
}
