package logger

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// GrpcUnaryServerInterceptor логирует каждый unary вызов по аналогии с GinLoggerMiddleware
func GrpcUnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		st := status.Convert(err)
		event := Info()
		switch st.Code() {
		case codes.OK:
		case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
			event = Error()
		default:
			event = Warn()
		}

		remote := ""
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			remote = p.Addr.String()
		}

		logEvent := event.
			Str("method", info.FullMethod).
			Str("code", st.Code().String()).
			Str("remote_addr", remote).
			Float64("duration_ms", float64(time.Since(start).Milliseconds()))

		if err != nil {
			logEvent.Str("error", st.Message())
		}

		logEvent.Msg("gRPC request")

		return resp, err
	}
}
