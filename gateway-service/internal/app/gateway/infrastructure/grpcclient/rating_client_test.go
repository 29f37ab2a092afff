package grpcclient

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"focusmap/gateway-service/internal/app/gateway/infrastructure"
	"focusmap/gateway-service/internal/app/gateway/ratingpb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeRatingServer struct {
	ratingpb.UnimplementedRatingServiceServer
	calls   atomic.Int32
	handler func(n int32, req *ratingpb.CalculateAverageRatingsRequest) (*ratingpb.AverageRatingsResponse, error)
}

func (f *fakeRatingServer) CalculateAverageRatings(ctx context.Context, req *ratingpb.CalculateAverageRatingsRequest) (*ratingpb.AverageRatingsResponse, error) {
	return f.handler(f.calls.Add(1), req)
}

func newTestClient(t *testing.T, fake *fakeRatingServer, cfg Config) *RatingClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	ratingpb.RegisterRatingServiceServer(srv, fake)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	cfg.Address = "passthrough:///bufnet"
	client, err := NewRatingClient(cfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestCalculateAverageRatings_Success(t *testing.T) {
	fake := &fakeRatingServer{
		handler: func(_ int32, req *ratingpb.CalculateAverageRatingsRequest) (*ratingpb.AverageRatingsResponse, error) {
			assert.Equal(t, "w1", req.GetWorkspaceId())
			assert.Equal(t, "cafe", req.GetType())
			return &ratingpb.AverageRatingsResponse{Wifi: 11.0 / 3, Taste: 4, TotalRatings: 3}, nil
		},
	}
	client := newTestClient(t, fake, Config{Timeout: time.Second})

	resp, err := client.CalculateAverageRatings(context.Background(), "w1", "cafe")

	require.NoError(t, err)
	assert.InDelta(t, 3.667, resp.GetWifi(), 1e-3)
	assert.Equal(t, int32(3), resp.GetTotalRatings())
}

func TestCalculateAverageRatings_FaultIsNotRetried(t *testing.T) {
	fake := &fakeRatingServer{
		handler: func(int32, *ratingpb.CalculateAverageRatingsRequest) (*ratingpb.AverageRatingsResponse, error) {
			return nil, status.Error(codes.Internal, "workspace not found: w1")
		},
	}
	client := newTestClient(t, fake, Config{Timeout: time.Second, MaxRetries: 3})

	resp, err := client.CalculateAverageRatings(context.Background(), "w1", "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, infrastructure.ErrProtocolFault)
	var callErr *infrastructure.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "Internal", callErr.Code)
	assert.Equal(t, "workspace not found: w1", callErr.Message)
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestCalculateAverageRatings_RetriesUnavailable(t *testing.T) {
	fake := &fakeRatingServer{
		handler: func(n int32, _ *ratingpb.CalculateAverageRatingsRequest) (*ratingpb.AverageRatingsResponse, error) {
			if n < 3 {
				return nil, status.Error(codes.Unavailable, "try again")
			}
			return &ratingpb.AverageRatingsResponse{TotalRatings: 1}, nil
		},
	}
	client := newTestClient(t, fake, Config{Timeout: time.Second, MaxRetries: 2, RetryBackoff: time.Millisecond})

	resp, err := client.CalculateAverageRatings(context.Background(), "w1", "")

	require.NoError(t, err)
	assert.Equal(t, int32(1), resp.GetTotalRatings())
	assert.Equal(t, int32(3), fake.calls.Load())
}

func TestCalculateAverageRatings_Timeout(t *testing.T) {
	fake := &fakeRatingServer{
		handler: func(int32, *ratingpb.CalculateAverageRatingsRequest) (*ratingpb.AverageRatingsResponse, error) {
			time.Sleep(200 * time.Millisecond)
			return &ratingpb.AverageRatingsResponse{}, nil
		},
	}
	client := newTestClient(t, fake, Config{Timeout: 20 * time.Millisecond, MaxRetries: 2})

	_, err := client.CalculateAverageRatings(context.Background(), "w1", "")

	assert.ErrorIs(t, err, infrastructure.ErrTimeout)
	assert.NotErrorIs(t, err, infrastructure.ErrProtocolFault)
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestCalculateAverageRatings_NoServer(t *testing.T) {
	client, err := NewRatingClient(Config{
		Address:      "passthrough:///unreachable",
		Timeout:      200 * time.Millisecond,
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	}, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: assert.AnError}
	}))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.CalculateAverageRatings(context.Background(), "w1", "")

	assert.ErrorIs(t, err, infrastructure.ErrTransport)
	var callErr *infrastructure.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "Unavailable", callErr.Code)
}

func TestCalculateAverageRatings_CallerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeRatingServer{
		handler: func(int32, *ratingpb.CalculateAverageRatingsRequest) (*ratingpb.AverageRatingsResponse, error) {
			cancel()
			time.Sleep(100 * time.Millisecond)
			return &ratingpb.AverageRatingsResponse{}, nil
		},
	}
	client := newTestClient(t, fake, Config{Timeout: time.Second, MaxRetries: 2, RetryBackoff: time.Millisecond})

	_, err := client.CalculateAverageRatings(ctx, "w1", "")

	assert.ErrorIs(t, err, infrastructure.ErrCanceled)
	assert.NotErrorIs(t, err, infrastructure.ErrProtocolFault)
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestClassify_CanceledStatus(t *testing.T) {
	err := classify(status.Error(codes.Canceled, "context canceled"))

	assert.ErrorIs(t, err, infrastructure.ErrCanceled)
	assert.NotErrorIs(t, err, infrastructure.ErrProtocolFault)
	assert.NotErrorIs(t, err, infrastructure.ErrTransport)
	assert.Equal(t, "canceled", infrastructure.Outcome(err))
}
