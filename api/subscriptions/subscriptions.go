// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/Meharab/Proof-of-Contribution/api/events"
	"github.com/Meharab/Proof-of-Contribution/api/utils"
	"github.com/Meharab/Proof-of-Contribution/co"
	"github.com/Meharab/Proof-of-Contribution/engine"
	"github.com/Meharab/Proof-of-Contribution/log"
	"github.com/Meharab/Proof-of-Contribution/logdb"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10

	readBatchSize = 256
)

type Subscriptions struct {
	engine   *engine.Engine
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       co.Goes
}

// New creates the subscriptions handler. Cross origin upgrades are accepted from allowedOrigins
// only; "*" allows any origin.
func New(engine *engine.Engine, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		engine: engine,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		done: make(chan struct{}),
	}
}

// parsePosition returns the sequence number to stream after. Without a pos
// query value the stream starts after the latest indexed event.
func (s *Subscriptions) parsePosition(ctx context.Context, pos string) (uint64, error) {
	if pos != "" {
		return utils.StringToUint64(pos)
	}
	latest, err := s.engine.FilterEvents(ctx, &logdb.EventFilter{
		Order:   logdb.DESC,
		Options: &logdb.Options{Limit: 1},
	})
	if err != nil {
		return 0, err
	}
	if len(latest) == 0 {
		return 0, nil
	}
	return latest[0].Seq, nil
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	criteria, err := events.ParseCriteria(query)
	if err != nil {
		return utils.BadRequest(err)
	}
	pos, err := s.parsePosition(req.Context(), query.Get("pos"))
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "pos"))
	}

	conn, closed, err := s.setupConn(w, req)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}
	defer func() { s.closeConn(conn, err) }()

	err = s.pipe(conn, newEventReader(s.engine, pos, criteria, readBatchSize), closed)
	return nil
}

func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}

	closed := make(chan struct{})
	// start read loop to handle close event
	s.wg.Go(func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("websocket read err", "err", err)
				return
			}
		}
	})
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn, err error) {
	var closeMsg []byte
	if err != nil {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	} else {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	}

	if err := conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
		logger.Debug("write close message", "err", err)
	}

	if err := conn.Close(); err != nil {
		logger.Debug("close websocket", "err", err)
	}
}

func (s *Subscriptions) pipe(conn *websocket.Conn, reader msgReader, closed chan struct{}) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := s.engine.NewTicker()
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		msgs, hasMore, err := reader.Read(ctx)
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		}
		if hasMore {
			select {
			case <-s.done:
				return nil
			case <-closed:
				return nil
			default:
			}
			continue
		}
		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-ticker.C():
		case <-pingTicker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// Close ends every open subscription and waits for their read loops to exit.
func (s *Subscriptions) Close() {
	logger.Debug("closing subscriptions", "open", s.wg.Running())
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("WS /subscriptions/events").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
