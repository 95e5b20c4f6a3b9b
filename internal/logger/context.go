package logger

import "context"

type contextKey string

const ProfileKey contextKey = "profile"
const SessionIDKey contextKey = "session_id"

func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, ProfileKey, profile)
}

func GetProfile(ctx context.Context) string {
	if p, ok := ctx.Value(ProfileKey).(string); ok {
		return p
	}
	return ""
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}
