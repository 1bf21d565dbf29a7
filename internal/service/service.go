package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/foundation/monkey"
	"github.com/msto63/monkey/foundation/monkey/ast"
	"github.com/msto63/monkey/foundation/monkey/parser"
	"github.com/msto63/monkey/foundation/monkey/token"
	"github.com/msto63/monkey/internal/store"
	"github.com/msto63/monkey/pkg/core/cache"
	coregrpc "github.com/msto63/monkey/pkg/core/grpc"
	"github.com/msto63/monkey/pkg/core/logging"
)

// TokenView is a transport-neutral token
type TokenView struct {
	Type    string `json:"type"`
	Literal string `json:"literal"`
	Debug   string `json:"debug"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// Diagnostic is a transport-neutral parse error
type Diagnostic struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Expected string `json:"expected,omitempty"`
	Found    string `json:"found,omitempty"`
}

// TokenizeResult is the result of a tokenize request
type TokenizeResult struct {
	ID       string        `json:"id,omitempty"`
	Tokens   []TokenView   `json:"tokens"`
	Illegal  int           `json:"illegal"`
	Duration time.Duration `json:"duration"`
}

// ParseResult is the result of a parse request. Syntax errors are part of
// the result, not a failure of the request.
type ParseResult struct {
	ID          string        `json:"id,omitempty"`
	OK          bool          `json:"ok"`
	Canonical   string        `json:"canonical,omitempty"`
	Tree        string        `json:"tree,omitempty"`
	Statements  int           `json:"statements"`
	Identifiers []string      `json:"identifiers,omitempty"`
	Integers    []int32       `json:"integers,omitempty"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// String renders the diagnostic with its position
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Messages returns every diagnostic rendered with its position
func (r *ParseResult) Messages() []string {
	msgs := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		msgs[i] = d.String()
	}
	return msgs
}

// clone copies the token slice so cache entries never alias a caller's result
func (r TokenizeResult) clone() TokenizeResult {
	r.Tokens = slices.Clone(r.Tokens)
	return r
}

func (r ParseResult) clone() ParseResult {
	r.Identifiers = slices.Clone(r.Identifiers)
	r.Integers = slices.Clone(r.Integers)
	r.Diagnostics = slices.Clone(r.Diagnostics)
	return r
}

// Service runs front-end requests and records them in the history store
type Service struct {
	engine *monkey.Engine
	store  store.HistoryStore
	logger *logging.Logger

	// nil when caching is disabled
	tokenCache *cache.Cache[TokenizeResult]
	parseCache *cache.Cache[ParseResult]
}

// Config holds service configuration
type Config struct {
	// MaxInputLength limits request source length (0 = engine default)
	MaxInputLength int

	// Store records every request; nil disables history
	Store store.HistoryStore

	// CacheSize bounds the result caches per operation (0 disables caching)
	CacheSize int
	CacheTTL  time.Duration

	Logger *logging.Logger
}

// NewService creates a new front-end service
func NewService(cfg Config) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("monkey-service")
	}

	engine := monkey.New(monkey.Options{
		Logger:         logger.Logger,
		MaxInputLength: cfg.MaxInputLength,
	})

	svc := &Service{
		engine: engine,
		store:  cfg.Store,
		logger: logger,
	}
	if cfg.CacheSize > 0 {
		cacheCfg := cache.Config{MaxItems: cfg.CacheSize, TTL: cfg.CacheTTL}
		svc.tokenCache = cache.New[TokenizeResult](cacheCfg)
		svc.parseCache = cache.New[ParseResult](cacheCfg)
	}
	return svc, nil
}

// Close releases the result caches. The history store belongs to the caller.
func (s *Service) Close() {
	if s.tokenCache != nil {
		s.tokenCache.Close()
		s.parseCache.Close()
	}
}

// MaxInputLength returns the effective input limit
func (s *Service) MaxInputLength() int {
	return s.engine.MaxInputLength()
}

// Tokenize returns the token stream of source through EOF
func (s *Service) Tokenize(ctx context.Context, source string) (*TokenizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.tokenize(source)
	if err != nil {
		return nil, withRequestID(ctx, err)
	}
	result.Duration = time.Since(start)

	result.ID = s.record(ctx, &store.Record{
		Operation:  store.OperationTokenize,
		Source:     source,
		TokenCount: len(result.Tokens),
	})
	return result, nil
}

// tokenize returns a private copy of the token views of source
func (s *Service) tokenize(source string) (*TokenizeResult, error) {
	key := cache.SourceKey(string(store.OperationTokenize), source)
	if s.tokenCache != nil {
		if cached, ok := s.tokenCache.Get(key); ok {
			cached = cached.clone()
			return &cached, nil
		}
	}

	tokens, err := s.engine.Tokenize(source)
	if err != nil {
		return nil, err
	}
	result := TokenizeResult{Tokens: make([]TokenView, len(tokens))}
	for i, tok := range tokens {
		result.Tokens[i] = NewTokenView(tok)
		if tok.Type == token.ILLEGAL {
			result.Illegal++
		}
	}

	if s.tokenCache != nil {
		s.tokenCache.Set(key, result.clone())
	}
	return &result, nil
}

// Parse parses source. A returned error means the request itself failed
// (input too large, cancelled); syntax errors come back as diagnostics.
func (s *Service) Parse(ctx context.Context, source string) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.parse(source)
	if err != nil {
		return nil, withRequestID(ctx, err)
	}
	result.Duration = time.Since(start)

	result.ID = s.record(ctx, &store.Record{
		Operation:   store.OperationParse,
		Source:      source,
		Canonical:   result.Canonical,
		ErrorCount:  len(result.Diagnostics),
		Diagnostics: result.Messages(),
	})
	return result, nil
}

// parse returns a private copy of the parse result of source. Only request
// failures are returned as errors.
func (s *Service) parse(source string) (*ParseResult, error) {
	key := cache.SourceKey(string(store.OperationParse), source)
	if s.parseCache != nil {
		if cached, ok := s.parseCache.Get(key); ok {
			cached = cached.clone()
			return &cached, nil
		}
	}

	var result ParseResult
	parsed, err := s.engine.Parse(source)
	switch {
	case err == nil:
		collected := ast.CollectNodes(parsed.Program)
		result.OK = true
		result.Canonical = parsed.Canonical
		result.Tree = ast.TreeString(parsed.Program)
		result.Statements = len(parsed.Program.Statements)
		result.Identifiers = collected.IdentifierNames()
		for _, lit := range collected.Integers {
			result.Integers = append(result.Integers, lit.Value)
		}
	case mdwerror.HasCode(err, mdwerror.CodeSyntax):
		for _, d := range monkey.Diagnostics(err) {
			result.Diagnostics = append(result.Diagnostics, NewDiagnostic(d))
		}
	default:
		return nil, err
	}

	if s.parseCache != nil {
		s.parseCache.Set(key, result.clone())
	}
	return &result, nil
}

// History lists recorded requests, newest first
func (s *Service) History(ctx context.Context, filter store.Filter) ([]*store.Record, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, filter)
}

// Record returns one recorded request
func (s *Service) Record(ctx context.Context, id string) (*store.Record, error) {
	if s.store == nil {
		return nil, mdwerror.New("history is disabled").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("service.Record")
	}
	return s.store.Get(ctx, id)
}

// Statistics summarizes the recorded history
func (s *Service) Statistics(ctx context.Context) (*store.Statistics, error) {
	if s.store == nil {
		return &store.Statistics{ByOperation: map[store.Operation]int64{}}, nil
	}
	return s.store.Statistics(ctx)
}

// Prune deletes records older than olderThan and returns how many were removed
func (s *Service) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	return s.store.Prune(ctx, olderThan)
}

// HealthCheck verifies that the history store answers
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	_, err := s.store.Statistics(ctx)
	return err
}

// record stores rec and returns its ID. History is best effort; failures
// are logged and never fail the request.
func (s *Service) record(ctx context.Context, rec *store.Record) string {
	if s.store == nil {
		return ""
	}
	rec.RequestID = coregrpc.GetRequestID(ctx)
	if err := s.store.Record(ctx, rec); err != nil {
		s.logger.Warn("failed to record history", "operation", string(rec.Operation), "error", err)
		return ""
	}
	return rec.ID
}

func withRequestID(ctx context.Context, err error) error {
	if mdwErr, ok := mdwerror.As(err); ok {
		if id := coregrpc.GetRequestID(ctx); id != "" {
			mdwErr.WithRequestID(id)
		}
	}
	return err
}

// NewTokenView converts a token
func NewTokenView(tok token.Token) TokenView {
	return TokenView{
		Type:    tok.Type.String(),
		Literal: tok.Literal,
		Debug:   tok.Debug(),
		Line:    tok.Pos.Line,
		Column:  tok.Pos.Column,
	}
}

// NewDiagnostic converts a parser error
func NewDiagnostic(e *parser.Error) Diagnostic {
	d := Diagnostic{
		Kind:    e.Kind.String(),
		Message: e.Message(),
		Line:    e.Pos.Line,
		Column:  e.Pos.Column,
	}
	switch e.Kind {
	case parser.ExpectToken:
		d.Expected = e.Expected.String()
		d.Found = e.Found.String()
	case parser.ExpectExpression:
		d.Found = e.Found.String()
	}
	return d
}
