package logger

import "log/slog"

// LogDB logs a failed database operation.
func LogDB(msg string, err error, operation, table string) {
	slog.Error(msg,
		slog.String("type", "db"),
		slog.String("operation", operation),
		slog.String("table", table),
		slog.Any("error", err),
	)
}

// LogUpstream logs a call against the store API.
func LogUpstream(msg string, accountID string, err error, attrs ...any) {
	base := []any{
		slog.String("type", "upstream"),
		slog.String("account_id", accountID),
	}
	if err != nil {
		slog.Warn(msg, append(append(base, slog.Any("error", err)), attrs...)...)
		return
	}
	slog.Info(msg, append(base, attrs...)...)
}

// LogSystem logs lifecycle events under the sys tag.
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs err under the error tag.
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
