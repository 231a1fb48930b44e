// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/thor"
)

// LogDB indexes engine events in sqlite.
type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// in-memory databases are per connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() {
	db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

func addressValue(addr thor.Address) []byte {
	if addr.IsZero() {
		return nil
	}
	return addr.Bytes()
}

func hashValue(h thor.Bytes32) []byte {
	if h.IsZero() {
		return nil
	}
	return h.Bytes()
}

func amountValue(amount *big.Int) []byte {
	if amount == nil {
		return nil
	}
	// keep zero distinguishable from absent
	return append([]byte{0}, amount.Bytes()...)
}

// Insert stores events in one transaction and assigns their sequence numbers.
func (db *LogDB) Insert(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	seqs := make([]uint64, 0, len(events))
	for _, ev := range events {
		res, err := tx.Exec("INSERT INTO event(kind, poolID, contributionID, account, attestor, token, hash, amount, authorized, time) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
			ev.Kind,
			int64(ev.PoolID),
			int64(ev.ContributionID),
			addressValue(ev.Account),
			addressValue(ev.Attestor),
			addressValue(ev.Token),
			hashValue(ev.Hash),
			amountValue(ev.Amount),
			ev.Authorized,
			int64(ev.Time),
		)
		if err != nil {
			tx.Rollback()
			return errors.Wrap(err, "insert event")
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return err
		}
		seqs = append(seqs, uint64(id))
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	for i, ev := range events {
		ev.Seq = seqs[i]
	}
	return nil
}

// FilterEvents returns events matching the filter. A nil filter matches everything.
func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT * FROM event WHERE 1"
	if filter.AfterSeq > 0 {
		args = append(args, int64(filter.AfterSeq))
		stmt += " AND seq > ? "
	}
	if filter.Range != nil {
		args = append(args, int64(filter.Range.From))
		stmt += " AND time >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, int64(filter.Range.To))
			stmt += " AND time <= ? "
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Kind != nil {
			args = append(args, *criteria.Kind)
			stmt += " AND kind = ? "
		}
		if criteria.PoolID != nil {
			args = append(args, int64(*criteria.PoolID))
			stmt += " AND poolID = ? "
		}
		if criteria.ContributionID != nil {
			args = append(args, int64(*criteria.ContributionID))
			stmt += " AND contributionID = ? "
		}
		if criteria.Account != nil {
			args = append(args, criteria.Account.Bytes(), criteria.Account.Bytes())
			stmt += " AND (account = ? OR attestor = ?) "
		}
		stmt += ")"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += ")"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, int64(filter.Options.Offset), int64(filter.Options.Limit))
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq            int64
			kind           string
			poolID         int64
			contributionID int64
			account        []byte
			attestor       []byte
			token          []byte
			hash           []byte
			amount         []byte
			authorized     bool
			time           int64
		)
		if err := rows.Scan(
			&seq,
			&kind,
			&poolID,
			&contributionID,
			&account,
			&attestor,
			&token,
			&hash,
			&amount,
			&authorized,
			&time,
		); err != nil {
			return nil, err
		}
		ev := &Event{
			Seq:            uint64(seq),
			Kind:           kind,
			PoolID:         uint64(poolID),
			ContributionID: uint64(contributionID),
			Account:        thor.BytesToAddress(account),
			Attestor:       thor.BytesToAddress(attestor),
			Token:          thor.BytesToAddress(token),
			Hash:           thor.BytesToBytes32(hash),
			Authorized:     authorized,
			Time:           uint64(time),
		}
		if len(amount) > 0 {
			ev.Amount = new(big.Int).SetBytes(amount[1:])
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
