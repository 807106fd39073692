// Package control expõe o servidor HTTP de keep-alive do bot, usado por
// plataformas de hospedagem que derrubam processos sem tráfego.
package control

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
)

const keepAliveBody = "Bot PRO online"

// Server responde um corpo fixo em "/" para sinalizar que o bot está vivo.
type Server struct {
	addr       string
	httpServer *http.Server
	listener   net.Listener
}

// NewServer returns nil if addr is empty.
func NewServer(addr string) *Server {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	s := &Server{addr: addr}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	mux.HandleFunc("/", s.handleKeepAlive)

	return s
}

// Start opens the keep-alive listening socket.
func (s *Server) Start() error {
	if s == nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("bind keep-alive server: %w", err)
	}
	s.listener = ln

	log.ApplicationLogger().Info("Keep-alive server listening", "addr", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ApplicationLogger().Error("Keep-alive server stopped unexpectedly", "err", err)
		}
	}()

	return nil
}

// Stop shuts down the keep-alive server.
func (s *Server) Stop(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown keep-alive server: %w", err)
	}

	log.ApplicationLogger().Info("Keep-alive server stopped", "addr", s.addr)
	return nil
}

// Addr retorna o endereço em que o servidor escuta, resolvido após Start.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) handleKeepAlive(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, keepAliveBody)
}
