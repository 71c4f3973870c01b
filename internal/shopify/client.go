package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"schoolmerch-backend/internal/apperrors"
)

// UserError is one field-scoped rejection from the platform. The full list
// is always surfaced to the caller, never truncated.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// CreateResult is the outcome of a productCreate call. Exactly one of
// ProductID and UserErrors is populated.
type CreateResult struct {
	ProductID  string
	UserErrors []UserError
}

const productCreateMutation = `
mutation productCreate($input: ProductInput!) {
  productCreate(input: $input) {
    product {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

type Client struct {
	storeDomain string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
}

func NewClient(storeDomain, accessToken, apiVersion string) *Client {
	return &Client{
		storeDomain: storeDomain,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// endpoint accepts either a bare store handle or a full base URL, the
// latter mainly for pointing tests somewhere local.
func (c *Client) endpoint() string {
	if strings.Contains(c.storeDomain, "://") {
		return fmt.Sprintf("%s/admin/api/%s/graphql.json", strings.TrimSuffix(c.storeDomain, "/"), c.apiVersion)
	}
	return fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json", c.storeDomain, c.apiVersion)
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type productCreateResponse struct {
	Data struct {
		ProductCreate struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"productCreate"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// CreateProduct submits one product via the productCreate mutation.
func (c *Client) CreateProduct(ctx context.Context, input *ProductInput) (*CreateResult, error) {
	jsonData, err := json.Marshal(graphqlRequest{
		Query:     productCreateMutation,
		Variables: map[string]any{"input": input},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstreamFailure, "platform request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to read platform response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Newf(apperrors.KindUpstreamFailure,
			"platform returned status %d: %s", resp.StatusCode, string(body))
	}

	var result productCreateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to decode platform response", err)
	}
	if len(result.Errors) > 0 {
		return nil, apperrors.Newf(apperrors.KindUpstreamFailure,
			"platform rejected the mutation: %s", result.Errors[0].Message)
	}

	payload := result.Data.ProductCreate
	if len(payload.UserErrors) > 0 {
		return &CreateResult{UserErrors: payload.UserErrors}, nil
	}
	if payload.Product == nil || payload.Product.ID == "" {
		return nil, apperrors.New(apperrors.KindUpstreamFailure, "platform returned neither a product id nor user errors")
	}

	return &CreateResult{ProductID: payload.Product.ID}, nil
}
