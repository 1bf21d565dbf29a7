package server

import (
	"context"
	"encoding/json"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/internal/service"
	"github.com/msto63/monkey/internal/store"
	coregrpc "github.com/msto63/monkey/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Frontend service and method names
const (
	FrontendServiceName = "monkey.v1.Frontend"

	TokenizeMethod = "/" + FrontendServiceName + "/Tokenize"
	ParseMethod    = "/" + FrontendServiceName + "/Parse"
	HistoryMethod  = "/" + FrontendServiceName + "/History"
)

// FrontendServer is the server API of the Frontend service. Sources travel
// as StringValue, results as Struct holding the JSON form of the service
// result types.
type FrontendServer interface {
	Tokenize(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	Parse(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// FrontendServiceDesc describes the Frontend service for registration
var FrontendServiceDesc = grpc.ServiceDesc{
	ServiceName: FrontendServiceName,
	HandlerType: (*FrontendServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Tokenize", Handler: tokenizeHandler},
		{MethodName: "Parse", Handler: parseHandler},
		{MethodName: "History", Handler: historyHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func tokenizeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendServer).Tokenize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TokenizeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FrontendServer).Tokenize(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func parseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ParseMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FrontendServer).Parse(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func historyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FrontendServer).History(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: HistoryMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FrontendServer).History(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// frontend implements FrontendServer on top of the service
type frontend struct {
	service *service.Service
}

func (f *frontend) Tokenize(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	result, err := f.service.Tokenize(ctx, req.GetValue())
	if err != nil {
		return nil, coregrpc.ToStatus(err)
	}
	return encodeStruct(result)
}

func (f *frontend) Parse(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	result, err := f.service.Parse(ctx, req.GetValue())
	if err != nil {
		return nil, coregrpc.ToStatus(err)
	}
	return encodeStruct(result)
}

// HistoryPage is the History response
type HistoryPage struct {
	Records    []*store.Record   `json:"records"`
	Statistics *store.Statistics `json:"statistics"`
}

// historyQuery is the History request
type historyQuery struct {
	Operation  string `json:"operation,omitempty"`
	OnlyFailed bool   `json:"only_failed,omitempty"`
	Since      string `json:"since,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

func (q historyQuery) filter() (store.Filter, error) {
	filter := store.Filter{
		Operation:  store.Operation(q.Operation),
		OnlyFailed: q.OnlyFailed,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if q.Limit < 0 || q.Offset < 0 {
		return filter, mdwerror.New("limit and offset must not be negative").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("server.History").
			WithDetail("limit", q.Limit).
			WithDetail("offset", q.Offset)
	}
	if q.Since != "" {
		since, err := time.Parse(time.RFC3339, q.Since)
		if err != nil {
			return filter, mdwerror.Wrap(err, "invalid since timestamp").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("server.History")
		}
		filter.Since = since
	}
	return filter, nil
}

func (f *frontend) History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var query historyQuery
	if err := decodeStruct(req, &query); err != nil {
		return nil, coregrpc.ToStatus(err)
	}
	filter, err := query.filter()
	if err != nil {
		return nil, coregrpc.ToStatus(err)
	}

	records, err := f.service.History(ctx, filter)
	if err != nil {
		return nil, coregrpc.ToStatus(err)
	}
	stats, err := f.service.Statistics(ctx)
	if err != nil {
		return nil, coregrpc.ToStatus(err)
	}
	if records == nil {
		records = []*store.Record{}
	}
	return encodeStruct(&HistoryPage{Records: records, Statistics: stats})
}

// encodeStruct converts v into a Struct through its JSON form
func encodeStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, coregrpc.ToStatus(mdwerror.Wrap(err, "failed to encode result").WithCode(mdwerror.CodeInternal))
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, coregrpc.ToStatus(mdwerror.Wrap(err, "failed to encode result").WithCode(mdwerror.CodeInternal))
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, coregrpc.ToStatus(mdwerror.Wrap(err, "failed to encode result").WithCode(mdwerror.CodeInternal))
	}
	return s, nil
}

// decodeStruct fills v from the JSON form of s
func decodeStruct(s *structpb.Struct, v interface{}) error {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return mdwerror.Wrap(err, "failed to decode struct").WithCode(mdwerror.CodeInvalidInput)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return mdwerror.Wrap(err, "failed to decode struct").WithCode(mdwerror.CodeInvalidInput)
	}
	return nil
}
