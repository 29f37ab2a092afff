package grpcclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"focusmap/gateway-service/internal/app/gateway/infrastructure"
	"focusmap/gateway-service/internal/app/gateway/ratingpb"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
)

const operationCalculateAverage = "CalculateAverageRatings"

type Config struct {
	Address      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Tracing      bool
}

// RatingClient адаптер REST -> gRPC RatingService.
// Держит одно долгоживущее соединение на все запросы.
type RatingClient struct {
	conn   *grpc.ClientConn
	client ratingpb.RatingServiceClient
	policy infrastructure.CallPolicy
}

// NewRatingClient создает клиента. Соединение устанавливается лениво при первом вызове.
func NewRatingClient(cfg Config, opts ...grpc.DialOption) (*RatingClient, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                30 * time.Second,
			Timeout:             10 * time.Second,
			PermitWithoutStream: true,
		}),
	}
	if cfg.Tracing {
		dialOpts = append(dialOpts, grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(cfg.Address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for %s: %w", cfg.Address, err)
	}

	return &RatingClient{
		conn:   conn,
		client: ratingpb.NewRatingServiceClient(conn),
		policy: infrastructure.CallPolicy{
			Timeout:      cfg.Timeout,
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff,
		},
	}, nil
}

// CalculateAverageRatings вызывает RatingService.CalculateAverageRatings.
// Ошибки классифицируются в infrastructure.CallError.
func (c *RatingClient) CalculateAverageRatings(ctx context.Context, workspaceID, category string) (*ratingpb.AverageRatingsResponse, error) {
	req := &ratingpb.CalculateAverageRatingsRequest{
		WorkspaceId: workspaceID,
		Type:        category,
	}

	var resp *ratingpb.AverageRatingsResponse
	err := infrastructure.Invoke(ctx, infrastructure.ProtocolGRPC, operationCalculateAverage, c.policy, func(ctx context.Context) error {
		var err error
		resp, err = c.client.CalculateAverageRatings(ctx, req)
		if err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *RatingClient) Close() error {
	return c.conn.Close()
}

func classify(err error) error {
	st := status.Convert(err)

	kind := infrastructure.ErrProtocolFault
	switch {
	case st.Code() == codes.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded):
		kind = infrastructure.ErrTimeout
	case st.Code() == codes.Canceled || errors.Is(err, context.Canceled):
		kind = infrastructure.ErrCanceled
	case st.Code() == codes.Unavailable:
		kind = infrastructure.ErrTransport
	}

	return &infrastructure.CallError{
		Protocol:  infrastructure.ProtocolGRPC,
		Operation: operationCalculateAverage,
		Kind:      kind,
		Code:      st.Code().String(),
		Message:   st.Message(),
		Err:       err,
	}
}
