// Package stream serves rendered overlay bundles to remote compositors and
// debug viewers over gRPC.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/banshee-data/velocity.hud/internal/monitoring"
	"github.com/banshee-data/velocity.hud/internal/overlay"
)

// ErrPublisherStopped is returned by Publish when the server is not running.
var ErrPublisherStopped = errors.New("stream: publisher stopped")

// Config holds configuration for the stream server.
type Config struct {
	// ListenAddr is the address to listen on (e.g., "localhost:50061")
	ListenAddr string

	// MaxClients is the maximum number of concurrent streaming clients
	MaxClients int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddr: "localhost:50061",
		MaxClients: 5,
	}
}

// Publisher owns the gRPC server and fans bundles out to clients. Each
// client holds at most one pending frame; a newer frame replaces an unsent
// one and the replaced frame is counted as dropped.
type Publisher struct {
	config   Config
	server   *grpc.Server
	listener net.Listener

	clients   map[uint64]*client
	clientsMu sync.RWMutex
	nextID    uint64
	latest    *structpb.Struct

	frameCount    atomic.Uint64
	droppedFrames atomic.Uint64

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

type client struct {
	id uint64
	ch chan *structpb.Struct
}

// NewPublisher creates a Publisher with the given configuration.
func NewPublisher(cfg Config) *Publisher {
	return &Publisher{
		config:  cfg,
		clients: make(map[uint64]*client),
		stopCh:  make(chan struct{}),
	}
}

// Start listens on the configured address and serves in the background.
func (p *Publisher) Start() error {
	lis, err := net.Listen("tcp", p.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	if err := p.Serve(lis); err != nil {
		lis.Close()
		return err
	}
	return nil
}

// Serve serves on lis in the background.
func (p *Publisher) Serve(lis net.Listener) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("publisher already running")
	}
	p.listener = lis
	p.server = grpc.NewServer()
	RegisterOverlayServer(p.server, p)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		monitoring.Logf("[Stream] gRPC server listening on %s", lis.Addr())
		if err := p.server.Serve(lis); err != nil && p.running.Load() {
			monitoring.Logf("[Stream] gRPC server error: %v", err)
		}
	}()
	return nil
}

// Addr is the bound address, or nil before Start.
func (p *Publisher) Addr() net.Addr {
	if p.listener == nil {
		return nil
	}
	return p.listener.Addr()
}

// Stop ends every stream and shuts the server down. A stopped publisher
// cannot be restarted.
func (p *Publisher) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.stopCh)
	if p.server != nil {
		p.server.GracefulStop()
	}
	p.wg.Wait()
	monitoring.Logf("[Stream] gRPC server stopped")
}

// Publish queues b for every connected client. It never blocks.
func (p *Publisher) Publish(_ context.Context, b *overlay.Bundle) error {
	if !p.running.Load() {
		return ErrPublisherStopped
	}
	st, err := ToStruct(b)
	if err != nil {
		return err
	}
	p.frameCount.Add(1)

	p.clientsMu.Lock()
	p.latest = st
	for _, c := range p.clients {
		p.offer(c, st)
	}
	p.clientsMu.Unlock()
	return nil
}

func (p *Publisher) offer(c *client, st *structpb.Struct) {
	select {
	case c.ch <- st:
		return
	default:
	}
	select {
	case <-c.ch:
		p.droppedFrames.Add(1)
	default:
	}
	select {
	case c.ch <- st:
	default:
		p.droppedFrames.Add(1)
	}
}

// StreamFrames implements OverlayServer. A new client first receives the
// most recent frame, if any.
func (p *Publisher) StreamFrames(_ *emptypb.Empty, stream FrameStream) error {
	c, err := p.addClient()
	if err != nil {
		return err
	}
	defer p.removeClient(c.id)

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.stopCh:
			return nil
		case st := <-c.ch:
			if err := stream.Send(st); err != nil {
				return err
			}
		}
	}
}

func (p *Publisher) addClient() (*client, error) {
	p.clientsMu.Lock()
	defer p.clientsMu.Unlock()
	if p.config.MaxClients > 0 && len(p.clients) >= p.config.MaxClients {
		return nil, status.Errorf(codes.ResourceExhausted, "client limit %d reached", p.config.MaxClients)
	}
	p.nextID++
	c := &client{id: p.nextID, ch: make(chan *structpb.Struct, 1)}
	if p.latest != nil {
		c.ch <- p.latest
	}
	p.clients[c.id] = c
	monitoring.Logf("[Stream] Client connected: %d (total: %d)", c.id, len(p.clients))
	return c, nil
}

func (p *Publisher) removeClient(id uint64) {
	p.clientsMu.Lock()
	delete(p.clients, id)
	n := len(p.clients)
	p.clientsMu.Unlock()
	monitoring.Logf("[Stream] Client disconnected: %d (remaining: %d)", id, n)
}

// PublisherStats contains publisher statistics.
type PublisherStats struct {
	Frames  uint64 `json:"frames"`
	Dropped uint64 `json:"dropped"`
	Clients int    `json:"clients"`
	Running bool   `json:"running"`
}

// Stats returns current publisher statistics.
func (p *Publisher) Stats() PublisherStats {
	p.clientsMu.RLock()
	n := len(p.clients)
	p.clientsMu.RUnlock()
	return PublisherStats{
		Frames:  p.frameCount.Load(),
		Dropped: p.droppedFrames.Load(),
		Clients: n,
		Running: p.running.Load(),
	}
}
