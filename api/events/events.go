// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"context"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/logdb"
)

type Events struct {
	engine *engine.Engine
	limit  uint64
}

// New creates the events handler. limit caps the number of events one query returns.
func New(engine *engine.Engine, limit uint64) *Events {
	return &Events{engine, limit}
}

func (e *Events) filter(ctx context.Context, filter *logdb.EventFilter) ([]*Event, error) {
	found, err := e.engine.FilterEvents(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]*Event, 0, len(found))
	for _, ev := range found {
		res = append(res, ConvertEvent(ev))
	}
	return res, nil
}

func (e *Events) parseFilter(req *http.Request) (*logdb.EventFilter, error) {
	q := req.URL.Query()
	criteria, err := ParseCriteria(q)
	if err != nil {
		return nil, err
	}
	filter := &logdb.EventFilter{
		Options: &logdb.Options{Limit: e.limit},
	}
	if criteria != nil {
		filter.CriteriaSet = []*logdb.EventCriteria{criteria}
	}

	switch order := logdb.Order(q.Get("order")); order {
	case "", logdb.ASC:
	case logdb.DESC:
		filter.Order = logdb.DESC
	default:
		return nil, errors.Errorf("order: unknown order %q", order)
	}

	if s := q.Get("offset"); s != "" {
		if filter.Options.Offset, err = utils.StringToUint64(s); err != nil {
			return nil, errors.WithMessage(err, "offset")
		}
	}
	if s := q.Get("limit"); s != "" {
		limit, err := utils.StringToUint64(s)
		if err != nil {
			return nil, errors.WithMessage(err, "limit")
		}
		if limit > e.limit {
			return nil, errors.Errorf("limit: exceeds maximum %d", e.limit)
		}
		filter.Options.Limit = limit
	}

	from, to := q.Get("from"), q.Get("to")
	if from != "" || to != "" {
		rng := &logdb.Range{To: math.MaxInt64}
		if from != "" {
			if rng.From, err = utils.StringToUint64(from); err != nil {
				return nil, errors.WithMessage(err, "from")
			}
		}
		if to != "" {
			if rng.To, err = utils.StringToUint64(to); err != nil {
				return nil, errors.WithMessage(err, "to")
			}
			if rng.To < rng.From {
				return nil, errors.New("to: must not be before from")
			}
			rng.To = min(rng.To, math.MaxInt64)
		}
		filter.Range = rng
	}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return utils.BadRequest(err)
	}
	res, err := e.filter(req.Context(), filter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
