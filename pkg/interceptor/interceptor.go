// Package interceptor times gRPC calls with a fresh timer per call.
package interceptor

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/noders-team/thyming/pkg/timer"
)

// UnaryServerInterceptor times every handled unary call. The timer is named
// after the full method and the call's status code is logged after the lap.
func UnaryServerInterceptor(opts ...timer.Option) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		var resp interface{}
		err := timeCall(info.FullMethod, opts, func() error {
			var err error
			resp, err = handler(ctx, req)
			return err
		})
		return resp, err
	}
}

// UnaryClientInterceptor times every outgoing unary call.
func UnaryClientInterceptor(opts ...timer.Option) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, callOpts ...grpc.CallOption) error {
		return timeCall(method, opts, func() error {
			return invoker(ctx, method, req, reply, cc, callOpts...)
		})
	}
}

func timeCall(method string, opts []timer.Option, call func() error) error {
	opts = append(append([]timer.Option(nil), opts...), timer.WithName(method))
	tm := timer.New(opts...)

	// a fresh timer cannot already be running
	_ = tm.Start(timer.NoMessage)
	err := call()
	_, _ = tm.Stop(timer.NoMessage, timer.Text("code="+status.Code(err).String()))
	return err
}
