package ctxutil

import (
	"context"
	"strings"
)

type requestDataKey struct{}

// RequestData is the authenticated caller, populated by the auth middleware.
type RequestData struct {
	UserID   string
	Username string
	Roles    []string
	Token    string
}

// IsAdmin reports whether any role contains "admin", case-insensitively.
func (rd *RequestData) IsAdmin() bool {
	if rd == nil {
		return false
	}
	for _, r := range rd.Roles {
		if strings.Contains(strings.ToLower(r), "admin") {
			return true
		}
	}
	return false
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// BearerToken returns the caller's token so outbound calls can act on its behalf.
func BearerToken(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.Token
	}
	return ""
}

type traceDataKey struct{}

// TraceData correlates log lines and outbound calls with the inbound request.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}
