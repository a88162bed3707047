package graph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultListTop = "999"

	// Graph requires this header for filtered queries against directory
	// objects and the audit log collections.
	consistencyHeader   = "ConsistencyLevel"
	consistencyEventual = "eventual"
)

// ListOptions controls a paged list call.
type ListOptions struct {
	// Limit caps the accumulated item count; 0 fetches to exhaustion. Pages
	// are appended whole, then the result is trimmed to the limit.
	Limit   int
	Headers map[string]string
}

// LogQuery describes a filtered, ordered audit or sign-in log request.
type LogQuery struct {
	Filter  string
	OrderBy string
	Top     int
}

// listPaged follows @odata.nextLink until the collection is exhausted or the
// limit is reached. Items are returned raw, in server order.
func (c *Client) listPaged(ctx context.Context, endpoint string, opts ListOptions) ([]json.RawMessage, error) {
	var out []json.RawMessage
	for {
		body, err := c.get(ctx, endpoint, opts.Headers)
		if err != nil {
			return nil, err
		}
		var page struct {
			Value    []json.RawMessage `json:"value"`
			NextLink string            `json:"@odata.nextLink"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Value...)

		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
		next := strings.TrimSpace(page.NextLink)
		if next == "" {
			break
		}
		endpoint = next
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// ListApplications returns up to limit application registrations; limit 0
// fetches every page.
func (c *Client) ListApplications(ctx context.Context, limit int) ([]json.RawMessage, error) {
	endpoint, err := c.graphURL("/applications", url.Values{
		"$select": []string{"id,appId,displayName,createdDateTime,signInAudience,publisherDomain,tags"},
		"$top":    []string{defaultListTop},
	})
	if err != nil {
		return nil, err
	}
	return c.listPaged(ctx, endpoint, ListOptions{Limit: limit})
}

// GetApplication returns one application by object id, or ErrNotFound.
func (c *Client) GetApplication(ctx context.Context, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("application id is required")
	}
	endpoint, err := c.graphURL("/applications/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, endpoint, nil)
}

// CreateApplication posts a new application registration and returns the
// created object as Graph echoed it back.
func (c *Client) CreateApplication(ctx context.Context, fields map[string]any) (json.RawMessage, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	endpoint, err := c.graphURL("/applications", nil)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, endpoint, payload, nil)
}

// UpdateApplication patches an existing application registration.
func (c *Client) UpdateApplication(ctx context.Context, id string, fields map[string]any) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("application id is required")
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	endpoint, err := c.graphURL("/applications/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPatch, endpoint, payload, nil)
	return err
}

// DeleteApplication removes an application registration by object id.
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("application id is required")
	}
	endpoint, err := c.graphURL("/applications/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, endpoint, nil, nil)
	return err
}

// GetServicePrincipalByAppID resolves the service principal whose appId
// matches the given application identifier. Returns ErrNotFound when the
// tenant has no matching principal.
func (c *Client) GetServicePrincipalByAppID(ctx context.Context, appID string) (json.RawMessage, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return nil, errors.New("app id is required")
	}
	endpoint, err := c.graphURL("/servicePrincipals", url.Values{
		"$filter": []string{"appId eq '" + EscapeODataLiteral(appID) + "'"},
		"$select": []string{"id,appId,displayName,accountEnabled,servicePrincipalType"},
		"$top":    []string{"1"},
	})
	if err != nil {
		return nil, err
	}
	items, err := c.listPaged(ctx, endpoint, ListOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return items[0], nil
}

// ListAppRoleAssignments returns every app role assignment granted to the
// service principal.
func (c *Client) ListAppRoleAssignments(ctx context.Context, servicePrincipalID string) ([]json.RawMessage, error) {
	servicePrincipalID = strings.TrimSpace(servicePrincipalID)
	if servicePrincipalID == "" {
		return nil, errors.New("service principal id is required")
	}
	endpoint, err := c.graphURL("/servicePrincipals/"+url.PathEscape(servicePrincipalID)+"/appRoleAssignments", url.Values{
		"$top": []string{defaultListTop},
	})
	if err != nil {
		return nil, err
	}
	return c.listPaged(ctx, endpoint, ListOptions{})
}

// ListOAuth2PermissionGrants returns every delegated permission grant held by
// the service principal.
func (c *Client) ListOAuth2PermissionGrants(ctx context.Context, servicePrincipalID string) ([]json.RawMessage, error) {
	servicePrincipalID = strings.TrimSpace(servicePrincipalID)
	if servicePrincipalID == "" {
		return nil, errors.New("service principal id is required")
	}
	endpoint, err := c.graphURL("/servicePrincipals/"+url.PathEscape(servicePrincipalID)+"/oauth2PermissionGrants", url.Values{
		"$top": []string{defaultListTop},
	})
	if err != nil {
		return nil, err
	}
	return c.listPaged(ctx, endpoint, ListOptions{})
}

// ListDirectoryAudits returns directory audit events matching the query.
func (c *Client) ListDirectoryAudits(ctx context.Context, q LogQuery) ([]json.RawMessage, error) {
	endpoint, err := c.graphURL("/auditLogs/directoryAudits", logQueryValues(q))
	if err != nil {
		return nil, err
	}
	return c.listPaged(ctx, endpoint, ListOptions{
		Headers: map[string]string{consistencyHeader: consistencyEventual},
	})
}

// ListSignIns returns sign-in events matching the query.
func (c *Client) ListSignIns(ctx context.Context, q LogQuery) ([]json.RawMessage, error) {
	endpoint, err := c.graphURL("/auditLogs/signIns", logQueryValues(q))
	if err != nil {
		return nil, err
	}
	return c.listPaged(ctx, endpoint, ListOptions{
		Headers: map[string]string{consistencyHeader: consistencyEventual},
	})
}

func logQueryValues(q LogQuery) url.Values {
	values := url.Values{}
	if strings.TrimSpace(q.Filter) != "" {
		values.Set("$filter", q.Filter)
	}
	if strings.TrimSpace(q.OrderBy) != "" {
		values.Set("$orderby", q.OrderBy)
	}
	if q.Top > 0 {
		values.Set("$top", strconv.Itoa(q.Top))
	}
	return values
}

// EscapeODataLiteral doubles single quotes inside a quoted OData string.
func EscapeODataLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
