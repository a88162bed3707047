package directory

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/graph-mcp/graph-mcp/internal/graph"
)

// writableApplicationFields is the allowlist for create and update payloads;
// any other key in the caller's mapping is silently dropped.
var writableApplicationFields = []string{
	"displayName",
	"signInAudience",
	"tags",
	"identifierUris",
	"web",
	"api",
	"requiredResourceAccess",
}

// Service exposes normalized directory accessors over a Graph client.
type Service struct {
	client *graph.Client
}

func NewService(client *graph.Client) *Service {
	return &Service{client: client}
}

// ListApplications returns up to limit normalized application records.
func (s *Service) ListApplications(ctx context.Context, limit int) ([]Record, error) {
	items, err := s.client.ListApplications(ctx, limit)
	if err != nil {
		slog.Error("listing applications failed", "error", err)
		return nil, err
	}
	return normalizeList(items, applicationSchema)
}

// GetApplicationByID returns one application with its service principal's
// role assignments and permission grants attached. A missing application
// yields (nil, nil).
func (s *Service) GetApplicationByID(ctx context.Context, id string) (Record, error) {
	raw, err := s.client.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			return nil, nil
		}
		slog.Error("getting application failed", "app_object_id", id, "error", err)
		return nil, err
	}

	record, err := normalizeRaw(raw, applicationSchema)
	if err != nil {
		return nil, err
	}

	enr := s.enrich(ctx, toString(record["appId"]))
	record["appRoleAssignments"] = enr.roleAssignments
	record["oauth2PermissionGrants"] = enr.permissionGrants
	return record, nil
}

// CreateApplication registers a new application from the allowlisted fields.
func (s *Service) CreateApplication(ctx context.Context, fields map[string]any) (Record, error) {
	raw, err := s.client.CreateApplication(ctx, filterWriteFields(fields))
	if err != nil {
		slog.Error("creating application failed", "error", err)
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("graph returned no object for created application")
	}
	return normalizeRaw(raw, applicationSchema)
}

// UpdateApplication patches the allowlisted fields, then re-reads the
// application so the caller sees post-write state.
func (s *Service) UpdateApplication(ctx context.Context, id string, fields map[string]any) (Record, error) {
	if err := s.client.UpdateApplication(ctx, id, filterWriteFields(fields)); err != nil {
		slog.Error("updating application failed", "app_object_id", id, "error", err)
		return nil, err
	}
	return s.GetApplicationByID(ctx, id)
}

// DeleteApplication removes an application registration by object id.
func (s *Service) DeleteApplication(ctx context.Context, id string) (bool, error) {
	if err := s.client.DeleteApplication(ctx, id); err != nil {
		slog.Error("deleting application failed", "app_object_id", id, "error", err)
		return false, err
	}
	return true, nil
}

// enrichment carries the joined sub-collections for one application. failed
// distinguishes a resolution failure from a legitimately empty result; it
// only feeds the warning log, never control flow.
type enrichment struct {
	roleAssignments  []Record
	permissionGrants []Record
	failed           bool
}

// enrich resolves the application's service principal and fetches both
// dependent collections to exhaustion. Every failure degrades to an empty
// list; the parent fetch never aborts here.
func (s *Service) enrich(ctx context.Context, appID string) enrichment {
	enr := enrichment{
		roleAssignments:  []Record{},
		permissionGrants: []Record{},
	}
	if appID == "" {
		return enr
	}

	sp, err := s.client.GetServicePrincipalByAppID(ctx, appID)
	if err != nil {
		if !errors.Is(err, graph.ErrNotFound) {
			enr.failed = true
			slog.Warn("resolving service principal failed", "app_id", appID, "error", err)
		}
		return enr
	}

	var principal struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(sp, &principal); err != nil || principal.ID == "" {
		enr.failed = true
		slog.Warn("service principal has no usable id", "app_id", appID, "error", err)
		return enr
	}

	if items, err := s.client.ListAppRoleAssignments(ctx, principal.ID); err != nil {
		enr.failed = true
		slog.Warn("fetching app role assignments failed", "service_principal_id", principal.ID, "error", err)
	} else if records, err := normalizeList(items, appRoleAssignmentSchema); err != nil {
		enr.failed = true
		slog.Warn("normalizing app role assignments failed", "service_principal_id", principal.ID, "error", err)
	} else {
		enr.roleAssignments = records
	}

	if items, err := s.client.ListOAuth2PermissionGrants(ctx, principal.ID); err != nil {
		enr.failed = true
		slog.Warn("fetching oauth2 permission grants failed", "service_principal_id", principal.ID, "error", err)
	} else if records, err := normalizeList(items, oauth2PermissionGrantSchema); err != nil {
		enr.failed = true
		slog.Warn("normalizing oauth2 permission grants failed", "service_principal_id", principal.ID, "error", err)
	} else {
		enr.permissionGrants = records
	}

	return enr
}

func filterWriteFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for _, key := range writableApplicationFields {
		if value, ok := in[key]; ok {
			out[key] = value
		}
	}
	return out
}
