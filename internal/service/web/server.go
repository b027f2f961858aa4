package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/darkty0x/net-volume-uniswap-oracle/internal/entity"
	"github.com/darkty0x/net-volume-uniswap-oracle/internal/event"
)

// Observer is the recorder's read side.
type Observer interface {
	Observe(pair string, secondsAgos []uint32) ([]entity.CumulativePoint, error)
}

type Server struct {
	web      *http.Server
	keeper   *keeper
	state    *state
	observer Observer
	promweb  http.Handler
}

func New(addr string, observer Observer, promweb http.Handler) *Server {
	serv := &Server{
		web: &http.Server{
			Addr: addr,
		},
		keeper:   newKeeper(),
		state:    newState(),
		observer: observer,
		promweb:  promweb,
	}
	serv.web.Handler = serv.router()
	return serv
}

func (s *Server) Run(ctx context.Context) error {
	closed := make(chan error, 1)

	go func() {
		closed <- s.web.ListenAndServe()
	}()

	select {
	case err := <-closed:
		return err
	case <-ctx.Done():
		_ = s.web.Shutdown(ctx)
		return ctx.Err()
	}
}

func (s *Server) UpdateStats(ctx context.Context, stats event.StatsUpdated) error {
	s.state.update(stats.Pairs)

	err := s.keeper.walkSubs(func(conn *websocket.Conn, subs map[string]struct{}) error {
		for sub := range subs {
			frames := make([]Frame, 0)
			for window, volume := range stats.Pairs[sub] {
				frames = append(frames, Frame{
					Window:      window,
					BaseVolume:  volume.Base,
					QuoteVolume: volume.Quote,
				})
			}

			msg := NewMessage(PairStats{Pair: sub, Frames: frames})
			js, err := json.MarshalIndent(msg, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal json: %w", err)
			}

			if err := conn.WriteMessage(websocket.TextMessage, js); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("walk subs: %w", err)
	}

	return nil
}
