package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/types"
)

type contextKey struct{}

var requestDataKey = contextKey{}

// RequestData is the per-request identity resolved from the access token.
// Handlers and services read it instead of re-parsing the token.
type RequestData struct {
	TokenString  string
	RefreshToken string
	UserID       uuid.UUID
	Username     string
	Role         types.Role
	IsAdmin      bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
