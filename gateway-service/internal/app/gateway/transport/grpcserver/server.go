package grpcserver

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"time"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/ratingpb"
	"focusmap/gateway-service/internal/app/gateway/service"
	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

const serviceName = "gateway-grpc"

// RatingCalculator считает средние оценки рабочего места
type RatingCalculator interface {
	CalculateAverage(ctx context.Context, workspaceID string, hint entity.WorkspaceType) (*entity.AverageRatingResult, error)
}

// Server реализует rating.RatingService поверх сервиса оценок
type Server struct {
	ratingpb.UnimplementedRatingServiceServer
	ratings RatingCalculator
}

func NewServer(ratings RatingCalculator) *Server {
	return &Server{ratings: ratings}
}

// CalculateAverageRatings возвращает средние оценки рабочего места.
// Категория всегда определяется по хранилищу, поле type запроса только подсказка.
func (s *Server) CalculateAverageRatings(ctx context.Context, req *ratingpb.CalculateAverageRatingsRequest) (*ratingpb.AverageRatingsResponse, error) {
	workspaceID := strings.TrimSpace(req.GetWorkspaceId())
	if workspaceID == "" {
		return nil, status.Error(codes.InvalidArgument, "workspace_id is required")
	}

	result, err := s.ratings.CalculateAverage(ctx, workspaceID, entity.WorkspaceType(req.GetType()))
	if err != nil {
		// отсутствие рабочего места остается Internal, как у существующих клиентов
		if errors.Is(err, service.ErrWorkspaceNotFound) {
			return nil, status.Errorf(codes.Internal, "workspace not found: %s", workspaceID)
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, status.FromContextError(err).Err()
		}
		logger.Error().Err(err).Str("workspace_id", workspaceID).Msg("Failed to calculate average ratings")
		return nil, status.Error(codes.Internal, "failed to calculate average ratings")
	}

	return toResponse(result), nil
}

func toResponse(r *entity.AverageRatingResult) *ratingpb.AverageRatingsResponse {
	return &ratingpb.AverageRatingsResponse{
		Wifi:         r.Wifi,
		Quiet:        r.Quiet,
		Power:        r.Power,
		Cleanliness:  r.Cleanliness,
		Taste:        r.Taste,
		Resources:    r.Resources,
		Computers:    r.Computers,
		TotalRatings: int32(r.TotalRatings),
	}
}

// NewGRPCServer собирает *grpc.Server с общими для шлюза опциями:
// логирование, метрики, восстановление после паники, health и reflection
func NewGRPCServer(srv ratingpb.RatingServiceServer, tracingEnabled bool, opts ...grpc.ServerOption) *grpc.Server {
	serverOpts := []grpc.ServerOption{
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             10 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: 5 * time.Minute,
		}),
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(recoverPanic)),
			logger.GrpcUnaryServerInterceptor(),
			metrics.GrpcUnaryServerInterceptor(serviceName),
		),
	}
	if tracingEnabled {
		serverOpts = append(serverOpts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	serverOpts = append(serverOpts, opts...)

	s := grpc.NewServer(serverOpts...)
	ratingpb.RegisterRatingServiceServer(s, srv)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("rating.RatingService", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	reflection.Register(s)

	return s
}

// recoverPanic превращает панику обработчика в codes.Internal
func recoverPanic(ctx context.Context, p any) error {
	method, _ := grpc.Method(ctx)
	logger.Error().
		Interface("panic", p).
		Str("method", method).
		Bytes("stack", debug.Stack()).
		Msg("Recovered from panic in gRPC handler")
	return status.Error(codes.Internal, "internal error")
}
