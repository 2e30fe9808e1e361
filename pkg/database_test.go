package hww

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingConn is a database/sql connection that records statements and
// can be told to fail inserts and rollbacks.
type recordingConn struct {
	execErr     error
	rollbackErr error
	queries     []string
	committed   bool
	rolledBack  bool
}

func (c *recordingConn) Connect(context.Context) (driver.Conn, error) { return c, nil }
func (c *recordingConn) Driver() driver.Driver                        { return recordingDriver{c} }

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	return &recordingStmt{conn: c, query: query}, nil
}
func (c *recordingConn) Close() error              { return nil }
func (c *recordingConn) Begin() (driver.Tx, error) { return recordingTx{c}, nil }

type recordingDriver struct{ conn *recordingConn }

func (d recordingDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

type recordingStmt struct {
	conn  *recordingConn
	query string
}

func (s *recordingStmt) Close() error  { return nil }
func (s *recordingStmt) NumInput() int { return -1 }

func (s *recordingStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.conn.queries = append(s.conn.queries, s.query)
	if s.conn.execErr != nil {
		return nil, s.conn.execErr
	}
	return driver.RowsAffected(len(args)), nil
}

func (s *recordingStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

type recordingTx struct{ conn *recordingConn }

func (t recordingTx) Commit() error {
	t.conn.committed = true
	return nil
}

func (t recordingTx) Rollback() error {
	t.conn.rolledBack = true
	return t.conn.rollbackErr
}

func recordingDB(conn *recordingConn) *sqlx.DB {
	return sqlx.NewDb(sql.OpenDB(conn), "mysql")
}

func twoStageMonitor() *Monitor {
	m := NewMonitor()
	m.Declare(TotalEvents, "baseline")
	m.CountAll(TotalEvents, 1)
	m.Count(MM, "baseline", 1)
	return m
}

func TestStoreCutflowCommits(t *testing.T) {
	conn := &recordingConn{}
	db := recordingDB(conn)
	defer db.Close()

	require.NoError(t, StoreCutflow(db, "job", 3, twoStageMonitor()))
	assert.True(t, conn.committed)
	assert.False(t, conn.rolledBack)
	require.Len(t, conn.queries, 1)
	assert.Contains(t, conn.queries[0], "INSERT INTO HWWCutflow")
}

func TestStoreCutflowEmptyMonitor(t *testing.T) {
	conn := &recordingConn{}
	db := recordingDB(conn)
	defer db.Close()

	require.NoError(t, StoreCutflow(db, "job", 3, NewMonitor()))
	assert.Empty(t, conn.queries)
	assert.False(t, conn.committed)
}

func TestStoreCutflowReportsRollbackFailure(t *testing.T) {
	errInsert := errors.New("table is read only")
	errRollback := errors.New("connection lost")

	conn := &recordingConn{execErr: errInsert, rollbackErr: errRollback}
	db := recordingDB(conn)
	defer db.Close()

	err := StoreCutflow(db, "job", 3, twoStageMonitor())
	require.Error(t, err)
	assert.True(t, conn.rolledBack)
	assert.False(t, conn.committed)
	assert.ErrorIs(t, err, errInsert)
	assert.ErrorIs(t, err, errRollback)

	conn.rollbackErr = nil
	err = StoreCutflow(db, "job", 3, twoStageMonitor())
	assert.ErrorIs(t, err, errInsert)
	assert.NotContains(t, err.Error(), "rolling back")
}

func TestCutflowRows(t *testing.T) {
	m := NewMonitor()
	m.Declare(TotalEvents, "baseline")
	m.CountAll(TotalEvents, 1)
	m.Count(EM, "baseline", 1)

	rows := cutflowRows("job", 7, m)
	require.Len(t, rows, 2*len(Channels))
	assert.Equal(t, CutflowRow{JobID: "job", RunNumber: 7, Channel: "mm", Stage: 0, Name: TotalEvents, Events: 1, Weight: 1}, rows[0])
	assert.Equal(t, CutflowRow{JobID: "job", RunNumber: 7, Channel: "em", Stage: 1, Name: "baseline", Events: 1, Weight: 1}, rows[6])
	assert.Equal(t, int64(0), rows[4].Events)
}

func TestMonitorFromRowsMergesJobs(t *testing.T) {
	first := NewMonitor()
	first.Declare(TotalEvents, "baseline", "opposite sign")
	first.CountAll(TotalEvents, 1)
	first.Count(MM, "baseline", 1)

	second := NewMonitor()
	second.Declare(TotalEvents, "baseline", "opposite sign")
	second.CountAll(TotalEvents, 1)
	second.Count(MM, "baseline", 1)
	second.Count(MM, "opposite sign", 1)

	rows := append(cutflowRows("a", 1, first), cutflowRows("b", 1, second)...)
	m, err := monitorFromRows(rows)
	require.NoError(t, err)

	assert.Equal(t, []string{TotalEvents, "baseline", "opposite sign"}, m.Names())
	assert.Equal(t, uint64(2), m.Events(EE, TotalEvents))
	assert.Equal(t, uint64(2), m.Events(MM, "baseline"))
	assert.Equal(t, uint64(1), m.Events(MM, "opposite sign"))
}

func TestMonitorFromRowsRejectsUnknownChannel(t *testing.T) {
	_, err := monitorFromRows([]CutflowRow{{JobID: "a", Channel: "tt", Name: "baseline"}})
	assert.Error(t, err)
}
