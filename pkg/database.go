package hww

import (
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// CutflowRow is one (stage, channel) entry of a stored cutflow.
type CutflowRow struct {
	JobID     string  `db:"JobID"`
	RunNumber int     `db:"RunNumber"`
	Channel   string  `db:"Channel"`
	Stage     int     `db:"Stage"`
	Name      string  `db:"Name"`
	Events    int64   `db:"Events"`
	Weight    float64 `db:"Weight"`
}

const insertCutflowQuery = `INSERT INTO HWWCutflow (JobID, RunNumber, Channel, Stage, Name, Events, Weight)
VALUES (:JobID, :RunNumber, :Channel, :Stage, :Name, :Events, :Weight)`

const selectCutflowQuery = `SELECT JobID, RunNumber, Channel, Stage, Name, Events, Weight
FROM HWWCutflow WHERE RunNumber = ? ORDER BY JobID, Stage`

func cutflowRows(jobID string, runNumber int, m *Monitor) []CutflowRow {
	rows := make([]CutflowRow, 0, m.Len()*len(Channels))
	for stage, c := range m.Counters() {
		for _, ch := range Channels {
			rows = append(rows, CutflowRow{
				JobID:     jobID,
				RunNumber: runNumber,
				Channel:   ch.String(),
				Stage:     stage,
				Name:      c.Name,
				Events:    int64(c.Events[ch]),
				Weight:    c.Weights[ch],
			})
		}
	}
	return rows
}

// monitorFromRows rebuilds a Monitor; rows must be sorted by stage within
// each job so that the first-seen order is the stage order.
func monitorFromRows(rows []CutflowRow) (*Monitor, error) {
	m := NewMonitor()
	for _, row := range rows {
		ch, err := ParseChannel(row.Channel)
		if err != nil {
			return nil, fmt.Errorf("error reading stage %q of job %s: %w", row.Name, row.JobID, err)
		}
		m.add(ch, row.Name, uint64(row.Events), row.Weight)
	}
	return m, nil
}

// StoreCutflow saves every counter of m for one job.
func StoreCutflow(db *sqlx.DB, jobID string, runNumber int, m *Monitor) error {
	rows := cutflowRows(jobID, runNumber, m)
	if len(rows) == 0 {
		return nil
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Storing %d cutflow rows for run %d", len(rows), runNumber)
		logger.Info(message, "database")
	}
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	if _, err := tx.NamedExec(insertCutflowQuery, rows); err != nil {
		err = fmt.Errorf("error inserting cutflow: %w", err)
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("error rolling back: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing cutflow: %w", err)
	}
	return nil
}

// LoadCutflow reads back all the jobs stored for a run merged into a
// single Monitor.
func LoadCutflow(db *sqlx.DB, runNumber int) (*Monitor, error) {
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s [%d]", selectCutflowQuery, runNumber)
		logger.Info(message, "database")
	}
	rows, err := db.Queryx(selectCutflowQuery, runNumber)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	var entries []CutflowRow
	for rows.Next() {
		result := CutflowRow{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		entries = append(entries, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	return monitorFromRows(entries)
}
