package grpcnet

import (
	"context"
	"path"
	"time"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/logging"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func streamServerInterceptors(l *zap.Logger) []grpc.StreamServerInterceptor {
	return []grpc.StreamServerInterceptor{
		grpc_ctxtags.StreamServerInterceptor(),
		loggingStreamServerInterceptor(l),
		grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoveryHandler)),
	}
}

func recoveryHandler(ctx context.Context, p interface{}) error {
	l := ctxzap.Extract(ctx)
	if p == nil {
		return nil
	}

	err := status.Errorf(codes.Internal, "Internal Server Error")
	l.Error("gRPC handler panic",
		zap.Stack("stack"),
		zap.Any("panic", p),
		zap.Error(err),
	)
	return err
}

// loggingStreamServerInterceptor attaches l, annotated with the call, to the
// stream context and logs the stream's outcome.
func loggingStreamServerInterceptor(l *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		startTime := time.Now()
		newCtx := newLoggerForCall(ctxzap.ToContext(stream.Context(), l), info.FullMethod, startTime)
		wrapped := grpc_middleware.WrapServerStream(stream)
		wrapped.WrappedContext = newCtx

		err := handler(srv, wrapped)
		code := grpc_logging.DefaultErrorToCode(err)
		level := grpc_zap.DefaultCodeToLevel(code)
		duration := grpc_zap.DefaultDurationToField(time.Since(startTime))

		ctxzap.Extract(newCtx).Check(level, "finished stream call with code "+code.String()).Write(
			zap.Error(err),
			zap.String("grpc.code", code.String()),
			duration,
		)
		return err
	}
}

func newLoggerForCall(ctx context.Context, fullMethodString string, start time.Time) context.Context {
	logger := ctxzap.Extract(ctx)
	f := []zapcore.Field{
		zap.String("grpc.start_time", start.Format(time.RFC3339)),
		zap.String("grpc.service", path.Dir(fullMethodString)[1:]),
		zap.String("grpc.method", path.Base(fullMethodString)),
	}
	return ctxzap.ToContext(ctx, logger.With(f...))
}
