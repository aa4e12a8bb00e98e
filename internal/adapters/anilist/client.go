// Package anilist implements the metadata secondary port against the
// AniList GraphQL API.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/gachabot/internal/ports/secondary"
)

const defaultEndpoint = "https://graphql.anilist.co"

const characterQuery = `query ($id: Int) {
  Character(id: $id) {
    id
    name { full }
    siteUrl
    image { large }
    description
  }
}`

// Client is a thin AniList API client implementing
// secondary.MetadataClient.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates an AniList client against the public API.
func NewClient() *Client {
	return &Client{
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithEndpoint creates a client against a custom endpoint, used in
// tests.
func NewClientWithEndpoint(endpoint string) *Client {
	client := NewClient()
	client.endpoint = endpoint
	return client
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type characterResponse struct {
	Data struct {
		Character *struct {
			ID   int64 `json:"id"`
			Name struct {
				Full string `json:"full"`
			} `json:"name"`
			SiteURL string `json:"siteUrl"`
			Image   struct {
				Large string `json:"large"`
			} `json:"image"`
			Description string `json:"description"`
		} `json:"Character"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Character fetches metadata for one character by AniList ID.
func (c *Client) Character(ctx context.Context, anilistID int64) (*secondary.CharacterMeta, error) {
	body, err := json.Marshal(graphqlRequest{
		Query:     characterQuery,
		Variables: map[string]any{"id": anilistID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("metadata request returned %d: %s", resp.StatusCode, payload)
	}

	var parsed characterResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode metadata response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("metadata query failed: %s", parsed.Errors[0].Message)
	}
	if parsed.Data.Character == nil {
		return nil, fmt.Errorf("character %d not found upstream", anilistID)
	}

	character := parsed.Data.Character
	return &secondary.CharacterMeta{
		AnilistID:   character.ID,
		Name:        character.Name.Full,
		SiteURL:     character.SiteURL,
		ImageURL:    character.Image.Large,
		Description: character.Description,
	}, nil
}

// Ensure Client implements the metadata port.
var _ secondary.MetadataClient = (*Client)(nil)
