// Package account is a client for the hosted account/list service. It owns
// no business rules beyond the membership lookup that decides whether a
// toggle adds or removes; uniqueness of (listId, mediaId) pairs is enforced
// server-side.
package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okonma/arc/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second

	collectionProfiles  = "profile"
	collectionLists     = "lists"
	collectionListItems = "list_items"
)

// Client talks to the account service's REST API.
type Client struct {
	endpoint   string
	projectID  string
	databaseID string
	session    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the account service.
func NewClient(endpoint, projectID, databaseID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		projectID:  projectID,
		databaseID: databaseID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetSession installs a session secret for authenticated calls.
func (c *Client) SetSession(session string) { c.session = session }

// HasSession reports whether a session secret is installed.
func (c *Client) HasSession() bool { return c.session != "" }

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload, dest any) error {
	reqURL := c.endpoint + path
	if query != nil {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.projectID)
	if c.session != "" {
		req.Header.Set("X-Appwrite-Session", c.session)
	}

	c.logger.Debug("account request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("account request failed", "error", err)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Error("account request error", "status", resp.StatusCode)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	return json.Unmarshal(respBody, dest)
}

// Login opens an email/password session and installs its secret.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var session struct {
		Secret string `json:"secret"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/account/sessions/email", nil, payload, &session); err != nil {
		return "", err
	}
	c.session = session.Secret
	return session.Secret, nil
}

// CurrentUser returns the user behind the installed session.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/account", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) documentsPath(collection string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", c.databaseID, collection)
}

func (c *Client) listDocuments(ctx context.Context, collection string, queries []string, dest any) error {
	q := url.Values{}
	for _, query := range queries {
		q.Add("queries[]", query)
	}
	return c.doRequest(ctx, http.MethodGet, c.documentsPath(collection), q, nil, dest)
}

func (c *Client) createDocument(ctx context.Context, collection string, data, dest any) error {
	payload := map[string]any{
		"documentId": "unique()",
		"data":       data,
	}
	return c.doRequest(ctx, http.MethodPost, c.documentsPath(collection), nil, payload, dest)
}

func (c *Client) deleteDocument(ctx context.Context, collection, documentID string) error {
	return c.doRequest(ctx, http.MethodDelete, c.documentsPath(collection)+"/"+documentID, nil, nil, nil)
}

func equalQuery(attribute, value string) string {
	data, _ := json.Marshal(map[string]any{
		"method":    "equal",
		"attribute": attribute,
		"values":    []string{value},
	})
	return string(data)
}

func limitQuery(n int) string {
	data, _ := json.Marshal(map[string]any{
		"method": "limit",
		"values": []int{n},
	})
	return string(data)
}

// GetProfile returns the profile owned by userID, or ErrNotFound.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var page documentPage[Profile]
	queries := []string{equalQuery("userId", userID), limitQuery(1)}
	if err := c.listDocuments(ctx, collectionProfiles, queries, &page); err != nil {
		return nil, err
	}
	if len(page.Documents) == 0 {
		return nil, domain.ErrNotFound
	}
	return &page.Documents[0], nil
}

// GetLists returns all lists owned by ownerID.
func (c *Client) GetLists(ctx context.Context, ownerID string) ([]List, error) {
	var page documentPage[List]
	if err := c.listDocuments(ctx, collectionLists, []string{equalQuery("ownerId", ownerID)}, &page); err != nil {
		return nil, err
	}
	return page.Documents, nil
}

// CreateList creates a user list.
func (c *Client) CreateList(ctx context.Context, ownerID, name string) (*List, error) {
	var list List
	data := map[string]any{"ownerId": ownerID, "name": name, "isSystemList": false}
	if err := c.createDocument(ctx, collectionLists, data, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetListItems returns the items of one list.
func (c *Client) GetListItems(ctx context.Context, listID string) ([]ListItem, error) {
	var page documentPage[ListItem]
	queries := []string{equalQuery("listId", listID), limitQuery(5000)}
	if err := c.listDocuments(ctx, collectionListItems, queries, &page); err != nil {
		return nil, err
	}
	return page.Documents, nil
}

// FindListItem returns the item for (listID, mediaID), or ErrNotFound.
func (c *Client) FindListItem(ctx context.Context, listID string, mediaID int) (*ListItem, error) {
	var page documentPage[ListItem]
	queries := []string{
		equalQuery("listId", listID),
		equalQuery("anilistId", strconv.Itoa(mediaID)),
		limitQuery(1),
	}
	if err := c.listDocuments(ctx, collectionListItems, queries, &page); err != nil {
		return nil, err
	}
	if len(page.Documents) == 0 {
		return nil, domain.ErrNotFound
	}
	return &page.Documents[0], nil
}

// ToggleListItem adds mediaID to the list when absent and removes it when
// present. Returns true when the toggle added the item.
func (c *Client) ToggleListItem(ctx context.Context, ownerID, listID string, mediaID int) (bool, error) {
	existing, err := c.FindListItem(ctx, listID, mediaID)
	if err != nil && err != domain.ErrNotFound {
		return false, err
	}

	if existing != nil {
		if err := c.deleteDocument(ctx, collectionListItems, existing.DocumentID); err != nil {
			return false, err
		}
		return false, nil
	}

	data := map[string]any{"ownerId": ownerID, "listId": listID, "anilistId": mediaID}
	if err := c.createDocument(ctx, collectionListItems, data, nil); err != nil {
		return false, err
	}
	return true, nil
}
