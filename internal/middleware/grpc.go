package middleware

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// ContextInterceptor copies the caller identity from metadata onto the context
// and logs failed calls.
func ContextInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if actor := auth.GetActor(ctx); actor != "" {
			ctx = auth.WithActor(ctx, actor)
		}

		resp, err := handler(ctx, req)
		if err != nil {
			log.Warn("grpc_request", zap.String("method", info.FullMethod), zap.Error(err))
		}
		return resp, err
	}
}
