package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"focusmap/pkg/logger"

	"google.golang.org/grpc"
)

// Listener сетевой листенер шлюза: Unbound -> Bound -> Serving -> Stopped
type Listener interface {
	Name() string
	Bind() error
	Serve() error
	Shutdown(ctx context.Context) error
	// Close освобождает порт листенера, который еще не обслуживается
	Close() error
	Addr() net.Addr
}

// HTTPListener обслуживает gin engine (REST или SOAP)
type HTTPListener struct {
	name    string
	address string
	server  *http.Server
	lis     net.Listener
}

func NewHTTPListener(name, address string, handler http.Handler) *HTTPListener {
	return &HTTPListener{
		name:    name,
		address: address,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

func (l *HTTPListener) Name() string { return l.name }

func (l *HTTPListener) Bind() error {
	lis, err := net.Listen("tcp", l.address)
	if err != nil {
		return err
	}
	l.lis = lis
	return nil
}

func (l *HTTPListener) Serve() error {
	if err := l.server.Serve(l.lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (l *HTTPListener) Shutdown(ctx context.Context) error {
	return l.server.Shutdown(ctx)
}

func (l *HTTPListener) Close() error {
	if l.lis == nil {
		return nil
	}
	return l.lis.Close()
}

func (l *HTTPListener) Addr() net.Addr {
	if l.lis == nil {
		return nil
	}
	return l.lis.Addr()
}

// GRPCListener обслуживает *grpc.Server
type GRPCListener struct {
	name    string
	address string
	server  *grpc.Server
	lis     net.Listener
}

func NewGRPCListener(name, address string, server *grpc.Server) *GRPCListener {
	return &GRPCListener{
		name:    name,
		address: address,
		server:  server,
	}
}

func (l *GRPCListener) Name() string { return l.name }

func (l *GRPCListener) Bind() error {
	lis, err := net.Listen("tcp", l.address)
	if err != nil {
		return err
	}
	l.lis = lis
	return nil
}

func (l *GRPCListener) Serve() error {
	if err := l.server.Serve(l.lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Shutdown ждет завершения текущих вызовов, по истечении ctx обрывает их
func (l *GRPCListener) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		l.server.Stop()
		return ctx.Err()
	}
}

func (l *GRPCListener) Close() error {
	if l.lis == nil {
		return nil
	}
	return l.lis.Close()
}

func (l *GRPCListener) Addr() net.Addr {
	if l.lis == nil {
		return nil
	}
	return l.lis.Addr()
}

// Lifecycle владеет всеми листенерами процесса.
// Start сначала привязывает все порты, и только потом начинает обслуживание.
type Lifecycle struct {
	listeners []Listener
	errCh     chan error
	wg        sync.WaitGroup
	started   bool
}

func NewLifecycle(listeners ...Listener) *Lifecycle {
	return &Lifecycle{
		listeners: listeners,
		errCh:     make(chan error, len(listeners)),
	}
}

// Start привязывает порты всех листенеров; ошибка привязки (порт занят) возвращается,
// уже открытые порты при этом закрываются.
func (l *Lifecycle) Start() error {
	if l.started {
		return errors.New("lifecycle already started")
	}

	for i, lis := range l.listeners {
		if err := lis.Bind(); err != nil {
			l.release(l.listeners[:i])
			return fmt.Errorf("failed to bind %s listener: %w", lis.Name(), err)
		}
		logger.Info().Str("listener", lis.Name()).Str("address", lis.Addr().String()).Msg("Listener bound")
	}

	l.started = true
	for _, lis := range l.listeners {
		l.wg.Add(1)
		go func(lis Listener) {
			defer l.wg.Done()
			if err := lis.Serve(); err != nil {
				logger.Error().Err(err).Str("listener", lis.Name()).Msg("Listener stopped with error")
				l.errCh <- fmt.Errorf("%s listener: %w", lis.Name(), err)
			}
		}(lis)
	}

	return nil
}

// Errors возвращает канал ошибок обслуживания
func (l *Lifecycle) Errors() <-chan error {
	return l.errCh
}

// Wait блокируется до первой ошибки обслуживания или отмены ctx
func (l *Lifecycle) Wait(ctx context.Context) error {
	select {
	case err := <-l.errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Shutdown останавливает листенеры в обратном порядке
func (l *Lifecycle) Shutdown(ctx context.Context) error {
	if !l.started {
		return nil
	}

	var errs []error
	for i := len(l.listeners) - 1; i >= 0; i-- {
		lis := l.listeners[i]
		if err := lis.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s listener: %w", lis.Name(), err))
			continue
		}
		logger.Info().Str("listener", lis.Name()).Msg("Listener stopped")
	}

	l.wg.Wait()
	l.started = false

	return errors.Join(errs...)
}

// release закрывает уже привязанные листенеры после неудачного Start
func (l *Lifecycle) release(bound []Listener) {
	for _, lis := range bound {
		if err := lis.Close(); err != nil {
			logger.Warn().Err(err).Str("listener", lis.Name()).Msg("Failed to release listener")
		}
	}
}
