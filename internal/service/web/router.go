package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
)

func (s *Server) router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println(err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		s.keeper.addConn(conn)
		go s.keeper.keep(conn)
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		pair := r.URL.Query().Get("pair")
		if pair == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		stats := s.state.get(pair)
		js, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(js)
	})

	mux.HandleFunc("/observe", func(w http.ResponseWriter, r *http.Request) {
		pair := r.URL.Query().Get("pair")
		agos, err := parseAgos(r.URL.Query().Get("ago"))
		if pair == "" || err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		points, err := s.observer.Observe(pair, agos)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		js, err := json.MarshalIndent(points, "", "  ")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(js)
	})

	mux.Handle("/metrics", s.promweb)

	return mux
}

// parseAgos splits a comma-separated lookback list, "0,5,30".
func parseAgos(raw string) ([]uint32, error) {
	parts := strings.Split(raw, ",")
	agos := make([]uint32, 0, len(parts))
	for _, part := range parts {
		ago, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		agos = append(agos, uint32(ago))
	}
	return agos, nil
}
