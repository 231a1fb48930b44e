// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"

	"github.com/Meharab/Proof-of-Contribution/api/events"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/logdb"
)

type msgReader interface {
	Read(ctx context.Context) ([]any, bool, error)
}

// eventReader walks the event index from a sequence position.
type eventReader struct {
	engine    *engine.Engine
	criteria  *logdb.EventCriteria
	pos       uint64
	batchSize uint64
}

func newEventReader(engine *engine.Engine, pos uint64, criteria *logdb.EventCriteria, batchSize uint64) *eventReader {
	return &eventReader{
		engine:    engine,
		criteria:  criteria,
		pos:       pos,
		batchSize: batchSize,
	}
}

// Read returns the matching events after the current position and advances it.
// The bool reports whether more events may be ready.
func (er *eventReader) Read(ctx context.Context) ([]any, bool, error) {
	filter := &logdb.EventFilter{
		AfterSeq: er.pos,
		Options:  &logdb.Options{Limit: er.batchSize},
	}
	if er.criteria != nil {
		filter.CriteriaSet = []*logdb.EventCriteria{er.criteria}
	}
	found, err := er.engine.FilterEvents(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	msgs := make([]any, 0, len(found))
	for _, ev := range found {
		msgs = append(msgs, events.ConvertEvent(ev))
		er.pos = ev.Seq
	}
	return msgs, uint64(len(found)) == er.batchSize, nil
}
