// Package grpcnet connects ranks running in separate processes. Every rank
// runs a Node: a gRPC server that feeds a local mailbox, plus one client
// stream per (peer, message kind) for outgoing traffic.
package grpcnet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/katalvlaran/ringpath/internal/mailbox"
	"github.com/katalvlaran/ringpath/metrics"
	"github.com/katalvlaran/ringpath/ring"
)

var (
	ErrNoPeers         = errors.New("grpcnet: peer list is empty")
	ErrRankOutOfRange  = errors.New("grpcnet: rank out of range")
	ErrUnknownKind     = errors.New("grpcnet: unknown message kind")
	ErrClosed          = errors.New("grpcnet: node closed")
	ErrMissingPeerRank = errors.New("grpcnet: stream carries no sender rank")
)

type streamKey struct {
	dst  int
	kind ring.Kind
}

type outStream struct {
	mu     sync.Mutex
	stream grpc.ClientStream
}

// Node is one rank of a ring spread over processes. It implements ring.Comm.
type Node struct {
	rank  int
	peers []string
	opts  options
	l     *zap.Logger

	lis    net.Listener
	server *grpc.Server
	box    *mailbox.Mailbox
	codec  *codec

	// ctx outlives any single Send and carries the client streams.
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	conns   map[int]*grpc.ClientConn
	streams map[streamKey]*outStream
	closed  bool

	messages metrics.Int64Counter
	cells    metrics.Int64Counter
	bytes    metrics.Int64Counter

	closeOnce sync.Once
	closeErr  error
}

var _ ring.Comm = (*Node)(nil)

// New starts serving rank's endpoint and returns the Node. peers lists every
// rank's address, indexed by rank.
func New(ctx context.Context, rank int, peers []string, opts ...Option) (*Node, error) {
	if len(peers) == 0 {
		return nil, ErrNoPeers
	}
	if rank < 0 || rank >= len(peers) {
		return nil, fmt.Errorf("rank %d of %d: %w", rank, len(peers), ErrRankOutOfRange)
	}

	o := options{closeTimeout: DefaultCloseTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = ctxzap.Extract(ctx)
	}
	o.metrics = metrics.OrNoop(o.metrics)
	if o.listen == "" {
		o.listen = peers[rank]
	}

	cdc, err := newCodec(o.compress)
	if err != nil {
		return nil, fmt.Errorf("grpcnet: codec: %w", err)
	}

	lis := o.listener
	if lis == nil {
		if lis, err = net.Listen("tcp", o.listen); err != nil {
			cdc.close()
			return nil, fmt.Errorf("grpcnet: listen %s: %w", o.listen, err)
		}
	}

	nctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	l := o.logger.With(zap.Int("rank", rank))
	h := o.metrics.WithTags(map[string]string{"rank": strconv.Itoa(rank)})
	n := &Node{
		rank:     rank,
		peers:    append([]string(nil), peers...),
		opts:     o,
		l:        l,
		lis:      lis,
		box:      mailbox.New(len(peers)),
		codec:    cdc,
		ctx:      nctx,
		cancel:   cancel,
		conns:    make(map[int]*grpc.ClientConn),
		streams:  make(map[streamKey]*outStream),
		messages: h.Int64Counter(metrics.RingMessagesSent, "messages sent to a ring neighbour", metrics.Dimensionless),
		cells:    h.Int64Counter(metrics.RingCellsSent, "matrix cells sent to a ring neighbour", metrics.Dimensionless),
		bytes:    h.Int64Counter(metrics.RingFrameBytesSent, "encoded frame bytes sent to a ring neighbour", metrics.Bytes),
	}

	n.server = grpc.NewServer(
		grpc.Creds(insecure.NewCredentials()),
		grpc.ChainStreamInterceptor(streamServerInterceptors(l)...),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	n.server.RegisterService(&ringServiceDesc, &server{n: n})

	go func() {
		if err := n.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			l.Error("grpcnet: serve failed", zap.Error(err))
		}
	}()
	l.Debug("grpcnet: node listening", zap.String("addr", lis.Addr().String()), zap.Int("size", len(peers)))

	return n, nil
}

func (n *Node) Rank() int { return n.rank }

func (n *Node) Size() int { return len(n.peers) }

// Addr is the address the node serves on.
func (n *Node) Addr() net.Addr { return n.lis.Addr() }

func (n *Node) Send(ctx context.Context, dst int, kind ring.Kind, payload []float64) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if dst < 0 || dst >= len(n.peers) {
		return fmt.Errorf("send to %d: %w", dst, ErrRankOutOfRange)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := n.stream(dst, kind)
	if err != nil {
		return err
	}
	frame := n.codec.encode(kind, payload)

	out.mu.Lock()
	err = out.stream.SendMsg(&wrapperspb.BytesValue{Value: frame})
	if errors.Is(err, io.EOF) {
		// The server ended the stream; its status is the real error.
		err = out.stream.RecvMsg(&emptypb.Empty{})
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
	}
	out.mu.Unlock()
	if err != nil {
		return fmt.Errorf("send %s to %d: %w", kind, dst, err)
	}

	tags := map[string]string{"kind": kind.String()}
	n.messages.Add(ctx, 1, tags)
	n.cells.Add(ctx, int64(len(payload)), tags)
	n.bytes.Add(ctx, int64(len(frame)), tags)
	return nil
}

func (n *Node) Recv(ctx context.Context, src int, kind ring.Kind) ([]float64, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return n.box.Recv(ctx, src, kind)
}

func (n *Node) Probe(ctx context.Context, src int, kind ring.Kind) (int, error) {
	if !kind.Valid() {
		return 0, ErrUnknownKind
	}
	return n.box.Probe(ctx, src, kind)
}

// stream returns the client stream for (dst, kind), dialling on first use.
func (n *Node) stream(dst int, kind ring.Kind) (*outStream, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil, ErrClosed
	}

	key := streamKey{dst: dst, kind: kind}
	if s, ok := n.streams[key]; ok {
		return s, nil
	}

	cc, ok := n.conns[dst]
	if !ok {
		var err error
		if cc, err = n.dial(n.peers[dst]); err != nil {
			return nil, fmt.Errorf("dial rank %d at %s: %w", dst, n.peers[dst], err)
		}
		n.conns[dst] = cc
	}

	sctx := metadata.AppendToOutgoingContext(n.ctx, rankMetadataKey, strconv.Itoa(n.rank))
	cs, err := cc.NewStream(sctx, &ringServiceDesc.Streams[0], deliverMethod)
	if err != nil {
		return nil, fmt.Errorf("open %s stream to rank %d: %w", kind, dst, err)
	}
	s := &outStream{stream: cs}
	n.streams[key] = s
	return s, nil
}

func (n *Node) dial(addr string) (*grpc.ClientConn, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.WaitForReady(true)),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
	target := addr
	if n.opts.dialer != nil {
		dialOpts = append(dialOpts, grpc.WithContextDialer(n.opts.dialer))
		target = "passthrough:///" + addr
	}
	return grpc.NewClient(target, dialOpts...)
}

// Close half-closes every outgoing stream, waits for peers to take the
// frames already sent and stops the server. Waiting is bounded by the close
// timeout; after it the node is torn down regardless.
func (n *Node) Close() error {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		streams := make([]*outStream, 0, len(n.streams))
		for _, s := range n.streams {
			streams = append(streams, s)
		}
		conns := make([]*grpc.ClientConn, 0, len(n.conns))
		for _, cc := range n.conns {
			conns = append(conns, cc)
		}
		n.mu.Unlock()

		drained := make(chan error, 1)
		go func() {
			var errs []error
			for _, s := range streams {
				s.mu.Lock()
				if err := s.stream.CloseSend(); err != nil {
					errs = append(errs, err)
				} else if err := s.stream.RecvMsg(&emptypb.Empty{}); err != nil && !errors.Is(err, io.EOF) {
					errs = append(errs, err)
				}
				s.mu.Unlock()
			}
			drained <- errors.Join(errs...)
		}()

		select {
		case n.closeErr = <-drained:
		case <-time.After(n.opts.closeTimeout):
			n.closeErr = fmt.Errorf("grpcnet: close: %w", context.DeadlineExceeded)
		}

		n.cancel()
		n.box.Close()
		for _, cc := range conns {
			_ = cc.Close()
		}
		n.stopServer()
		n.codec.close()
		n.l.Debug("grpcnet: node closed", zap.Error(n.closeErr))
	})
	return n.closeErr
}

func (n *Node) stopServer() {
	stopped := make(chan struct{})
	go func() {
		n.server.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(n.opts.closeTimeout):
		n.server.Stop()
		<-stopped
	}
}

// server receives frames from one peer stream and delivers them into the
// node's mailbox in arrival order.
type server struct {
	n *Node
}

func (s *server) Deliver(stream grpc.ServerStream) error {
	ctx := stream.Context()
	src, err := peerRank(ctx, s.n.Size())
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	grpc_ctxtags.Extract(ctx).Set("peer.rank", src)

	for {
		var msg wrapperspb.BytesValue
		if err := stream.RecvMsg(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return stream.SendMsg(&emptypb.Empty{})
			}
			return err
		}
		kind, cells, err := s.n.codec.decode(msg.GetValue())
		if err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		if err := s.n.box.Deliver(ctx, src, kind, cells); err != nil {
			if errors.Is(err, mailbox.ErrClosed) {
				return status.Error(codes.Unavailable, err.Error())
			}
			return status.FromContextError(err).Err()
		}
	}
}

func peerRank(ctx context.Context, size int) (int, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return 0, ErrMissingPeerRank
	}
	vals := md.Get(rankMetadataKey)
	if len(vals) != 1 {
		return 0, ErrMissingPeerRank
	}
	r, err := strconv.Atoi(vals[0])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", vals[0], ErrMissingPeerRank)
	}
	if r < 0 || r >= size {
		return 0, fmt.Errorf("sender %d of %d: %w", r, size, ErrRankOutOfRange)
	}
	return r, nil
}
