package server

import (
	"context"
	"time"

	"github.com/msto63/monkey/internal/service"
	"github.com/msto63/monkey/internal/store"
	coregrpc "github.com/msto63/monkey/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a remote Frontend service
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client on an existing connection
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial connects to the Frontend service at target
func Dial(cfg coregrpc.ClientConfig, opts ...grpc.DialOption) (*Client, *grpc.ClientConn, error) {
	conn, err := coregrpc.Dial(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return NewClient(conn), conn, nil
}

// Tokenize tokenizes source remotely
func (c *Client) Tokenize(ctx context.Context, source string) (*service.TokenizeResult, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, TokenizeMethod, wrapperspb.String(source), out); err != nil {
		return nil, coregrpc.FromStatus(err, "client.Tokenize")
	}
	var result service.TokenizeResult
	if err := decodeStruct(out, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Parse parses source remotely
func (c *Client) Parse(ctx context.Context, source string) (*service.ParseResult, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, ParseMethod, wrapperspb.String(source), out); err != nil {
		return nil, coregrpc.FromStatus(err, "client.Parse")
	}
	var result service.ParseResult
	if err := decodeStruct(out, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History lists remote history records matching filter
func (c *Client) History(ctx context.Context, filter store.Filter) (*HistoryPage, error) {
	query := historyQuery{
		Operation:  string(filter.Operation),
		OnlyFailed: filter.OnlyFailed,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if !filter.Since.IsZero() {
		query.Since = filter.Since.UTC().Format(time.RFC3339)
	}
	in, err := encodeStruct(query)
	if err != nil {
		return nil, coregrpc.FromStatus(err, "client.History")
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, HistoryMethod, in, out); err != nil {
		return nil, coregrpc.FromStatus(err, "client.History")
	}
	var page HistoryPage
	if err := decodeStruct(out, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
