package directory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/graph-mcp/graph-mcp/internal/graph"
)

const (
	// windowLayout renders a UTC instant at second precision with an
	// explicit Z suffix, the form the audit log filters require.
	windowLayout = "2006-01-02T15:04:05Z"

	logPageSize = 1000
)

// window computes the [now-days, now] UTC range as filter-ready strings.
func window(days int, now time.Time) (start, end string) {
	endTime := now.UTC()
	startTime := endTime.AddDate(0, 0, -days)
	return startTime.Format(windowLayout), endTime.Format(windowLayout)
}

func auditLogFilter(userID, start, end string) string {
	return fmt.Sprintf("initiatedBy/user/id eq '%s' and activityDateTime ge %s and activityDateTime le %s", graph.EscapeODataLiteral(userID), start, end)
}

func signInLogFilter(userID, start, end string) string {
	return fmt.Sprintf("createdDateTime ge %s and createdDateTime le %s and userId eq '%s'", start, end, graph.EscapeODataLiteral(userID))
}

// GetUserAuditLogs returns the directory audit events initiated by the user
// within the last N days, newest first.
func (s *Service) GetUserAuditLogs(ctx context.Context, userID string, days int) ([]Record, error) {
	start, end := window(days, time.Now())
	query := graph.LogQuery{
		Filter:  auditLogFilter(userID, start, end),
		OrderBy: "activityDateTime desc",
		Top:     logPageSize,
	}
	slog.Info("fetching directory audit logs", "user_id", userID, "start", start, "end", end)

	items, err := s.client.ListDirectoryAudits(ctx, query)
	if err != nil {
		slog.Error("fetching directory audit logs failed", "user_id", userID, "error", err)
		return nil, err
	}
	return normalizeList(items, directoryAuditSchema)
}

// GetUserSignInLogs returns the user's sign-in events within the last N
// days, newest first.
func (s *Service) GetUserSignInLogs(ctx context.Context, userID string, days int) ([]Record, error) {
	start, end := window(days, time.Now())
	query := graph.LogQuery{
		Filter:  signInLogFilter(userID, start, end),
		OrderBy: "createdDateTime desc",
		Top:     logPageSize,
	}
	slog.Info("fetching sign-in logs", "user_id", userID, "start", start, "end", end)

	items, err := s.client.ListSignIns(ctx, query)
	if err != nil {
		slog.Error("fetching sign-in logs failed", "user_id", userID, "error", err)
		return nil, err
	}
	return normalizeList(items, signInSchema)
}
