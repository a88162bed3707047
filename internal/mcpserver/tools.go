package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/graph-mcp/graph-mcp/internal/directory"
)

const (
	defaultListLimit  = 100
	defaultAuditDays  = 30
	defaultSignInDays = 7
)

// DirectoryService is the accessor surface the tools call into.
type DirectoryService interface {
	ListApplications(ctx context.Context, limit int) ([]directory.Record, error)
	GetApplicationByID(ctx context.Context, id string) (directory.Record, error)
	CreateApplication(ctx context.Context, fields map[string]any) (directory.Record, error)
	UpdateApplication(ctx context.Context, id string, fields map[string]any) (directory.Record, error)
	DeleteApplication(ctx context.Context, id string) (bool, error)
	GetUserAuditLogs(ctx context.Context, userID string, days int) ([]directory.Record, error)
	GetUserSignInLogs(ctx context.Context, userID string, days int) ([]directory.Record, error)
}

func registerTools(s *server.MCPServer, svc DirectoryService) {
	s.AddTool(mcp.NewTool("list_applications",
		mcp.WithDescription("List application registrations in the tenant."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of applications to return."),
			mcp.DefaultNumber(defaultListLimit),
		),
	), instrumented("list_applications", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", defaultListLimit)
		apps, err := svc.ListApplications(ctx, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(apps)
	}))

	s.AddTool(mcp.NewTool("get_application_by_id",
		mcp.WithDescription("Get one application registration by object id, including its service principal's app role assignments and OAuth2 permission grants. Returns null when the application does not exist."),
		mcp.WithString("app_id",
			mcp.Required(),
			mcp.Description("The application's directory object id."),
		),
	), instrumented("get_application_by_id", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("app_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		app, err := svc.GetApplicationByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if app == nil {
			return mcp.NewToolResultText("null"), nil
		}
		return jsonResult(app)
	}))

	s.AddTool(mcp.NewTool("create_application",
		mcp.WithDescription("Create a new application registration. Accepted fields: displayName, signInAudience, tags, identifierUris, web, api, requiredResourceAccess; any other field is ignored."),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Application properties to set."),
		),
	), instrumented("create_application", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fields, ok := request.GetArguments()["fields"].(map[string]any)
		if !ok {
			return mcp.NewToolResultError("fields must be an object"), nil
		}
		app, err := svc.CreateApplication(ctx, fields)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(app)
	}))

	s.AddTool(mcp.NewTool("update_application",
		mcp.WithDescription("Update an application registration and return its post-write state. Accepts the same fields as create_application."),
		mcp.WithString("app_id",
			mcp.Required(),
			mcp.Description("The application's directory object id."),
		),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Application properties to change."),
		),
	), instrumented("update_application", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("app_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fields, ok := request.GetArguments()["fields"].(map[string]any)
		if !ok {
			return mcp.NewToolResultError("fields must be an object"), nil
		}
		app, err := svc.UpdateApplication(ctx, id, fields)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(app)
	}))

	s.AddTool(mcp.NewTool("delete_application",
		mcp.WithDescription("Delete an application registration by object id."),
		mcp.WithString("app_id",
			mcp.Required(),
			mcp.Description("The application's directory object id."),
		),
	), instrumented("delete_application", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("app_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		deleted, err := svc.DeleteApplication(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]bool{"deleted": deleted})
	}))

	s.AddTool(mcp.NewTool("get_user_audit_logs",
		mcp.WithDescription("Get directory audit log events initiated by a user within the last N days."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("The user's directory object id."),
		),
		mcp.WithNumber("days",
			mcp.Description("How many past days of events to return."),
			mcp.DefaultNumber(defaultAuditDays),
		),
	), instrumented("get_user_audit_logs", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := request.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		logs, err := svc.GetUserAuditLogs(ctx, userID, request.GetInt("days", defaultAuditDays))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(logs)
	}))

	s.AddTool(mcp.NewTool("get_user_sign_in_logs",
		mcp.WithDescription("Get sign-in log events for a user within the last N days."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("The user's directory object id."),
		),
		mcp.WithNumber("days",
			mcp.Description("How many past days of events to return."),
			mcp.DefaultNumber(defaultSignInDays),
		),
	), instrumented("get_user_sign_in_logs", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := request.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		logs, err := svc.GetUserSignInLogs(ctx, userID, request.GetInt("days", defaultSignInDays))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(logs)
	}))
}
