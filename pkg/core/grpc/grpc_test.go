package grpc

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newTestLogger() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{Level: "debug", Output: &buf}), "grpc"), &buf
}

func startBufServer(t *testing.T, register func(*Server)) (*grpc.ClientConn, *bytes.Buffer) {
	t.Helper()

	logger, buf := newTestLogger()
	cfg := DefaultServerConfig()
	cfg.Logger = logger
	server := NewServer(cfg)
	if register != nil {
		register(server)
	}

	listener := bufconn.Listen(1024 * 1024)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	clientCfg := DefaultClientConfig("passthrough:///bufnet")
	clientCfg.Logger = logger
	conn, err := Dial(clientCfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return listener.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn, buf
}

func TestServer_Health(t *testing.T) {
	conn, logs := startBufServer(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}
	if !strings.Contains(logs.String(), "/grpc.health.v1.Health/Check") {
		t.Errorf("request was not logged: %s", logs.String())
	}
}

func TestServer_RegisterServiceMarksServing(t *testing.T) {
	desc := &grpc.ServiceDesc{ServiceName: "monkey.test.Empty", HandlerType: (*interface{})(nil)}
	conn, _ := startBufServer(t, func(s *Server) {
		s.RegisterService(desc, struct{}{})
	})
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: "monkey.test.Empty"})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "monkey.test.Missing"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("unregistered service status = %v, want NotFound", status.Code(err))
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	logger, logs := newTestLogger()
	interceptor := RecoveryInterceptor(logger)

	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/Boom"},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			panic("boom")
		})

	if status.Code(err) != codes.Internal {
		t.Errorf("code = %v, want Internal", status.Code(err))
	}
	if !strings.Contains(logs.String(), "gRPC panic recovered") {
		t.Errorf("panic was not logged: %s", logs.String())
	}
}

func TestRequestIDInterceptor(t *testing.T) {
	interceptor := RequestIDInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Y"}

	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"generated", context.Background(), ""},
		{"from metadata", metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-42")), "req-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			_, err := interceptor(tt.ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				seen = GetRequestID(ctx)
				return nil, nil
			})
			if err != nil {
				t.Fatalf("interceptor error = %v", err)
			}
			if tt.want != "" && seen != tt.want {
				t.Errorf("request id = %q, want %q", seen, tt.want)
			}
			if tt.want == "" && len(seen) != 36 {
				t.Errorf("generated request id = %q, want a UUID", seen)
			}
		})
	}
}

func TestClientTimeoutInterceptor(t *testing.T) {
	interceptor := ClientTimeoutInterceptor(time.Second)

	var hadDeadline bool
	err := interceptor(context.Background(), "/x/Y", nil, nil, nil,
		func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			_, hadDeadline = ctx.Deadline()
			return nil
		})
	if err != nil {
		t.Fatalf("interceptor error = %v", err)
	}
	if !hadDeadline {
		t.Error("call should carry a deadline")
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"too large", mdwerror.New("big").WithCode(mdwerror.CodeInputTooLarge), codes.InvalidArgument},
		{"database", mdwerror.New("db").WithCode(mdwerror.CodeDatabaseError), codes.Internal},
		{"not found", mdwerror.New("nf").WithCode(mdwerror.CodeNotFound), codes.NotFound},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"plain", errors.New("plain"), codes.Unknown},
		{"already status", status.Error(codes.Aborted, "x"), codes.Aborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(ToStatus(tt.err)); got != tt.want {
				t.Errorf("ToStatus() code = %v, want %v", got, tt.want)
			}
		})
	}

	if ToStatus(nil) != nil {
		t.Error("ToStatus(nil) should be nil")
	}
}

func TestFromStatus(t *testing.T) {
	err := FromStatus(status.Error(codes.InvalidArgument, "input exceeds maximum length"), "client.Parse")

	mdwErr, ok := mdwerror.As(err)
	if !ok {
		t.Fatalf("FromStatus() = %T, want *mdwerror.Error", err)
	}
	if mdwErr.Code() != mdwerror.CodeInvalidInput {
		t.Errorf("Code() = %v, want INVALID_INPUT", mdwErr.Code())
	}
	if mdwErr.Operation() != "client.Parse" {
		t.Errorf("Operation() = %q", mdwErr.Operation())
	}
	if mdwErr.Message() != "input exceeds maximum length" {
		t.Errorf("Message() = %q", mdwErr.Message())
	}
}
