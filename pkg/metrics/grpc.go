package metrics

import (
	"context"
	"path"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// GrpcUnaryServerInterceptor собирает grpc_server_handled_total и grpc_server_handling_seconds
func GrpcUnaryServerInterceptor(serviceName string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		timer := NewTimer()

		resp, err := handler(ctx, req)

		method := path.Base(info.FullMethod)
		GrpcServerHandled.WithLabelValues(serviceName, method, status.Code(err).String()).Inc()
		GrpcServerDuration.WithLabelValues(serviceName, method).Observe(timer.Seconds())

		return resp, err
	}
}
