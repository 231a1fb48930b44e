// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	poolID INTEGER NOT NULL,
	contributionID INTEGER NOT NULL,
	account BLOB(20),
	attestor BLOB(20),
	token BLOB(20),
	hash BLOB(32),
	amount BLOB,
	authorized INTEGER NOT NULL,
	time INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(poolID, contributionID);
CREATE INDEX IF NOT EXISTS event_i1 ON event(account);
CREATE INDEX IF NOT EXISTS event_i2 ON event(kind);
CREATE INDEX IF NOT EXISTS event_i3 ON event(time);
`
