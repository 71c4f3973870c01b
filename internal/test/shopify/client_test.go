package shopify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/shopify"
)

func TestCreateProduct_Success(t *testing.T) {
	var gotToken string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"productCreate": {
					"product": {"id": "gid://shopify/Product/123"},
					"userErrors": []
				}
			}
		}`))
	}))
	defer server.Close()

	client := shopify.NewClient(server.URL, "test-token", "2024-07")
	result, err := client.CreateProduct(context.Background(), &shopify.ProductInput{Title: "Hoodie"})
	require.NoError(t, err)

	assert.Equal(t, "gid://shopify/Product/123", result.ProductID)
	assert.Empty(t, result.UserErrors)
	assert.Equal(t, "test-token", gotToken)

	variables, ok := gotBody["variables"].(map[string]any)
	require.True(t, ok)
	input, ok := variables["input"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hoodie", input["title"])
}

func TestCreateProduct_UserErrorsReturnedInFull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"productCreate": {
					"product": null,
					"userErrors": [
						{"field": ["title"], "message": "Title can't be blank"},
						{"field": ["variants", "0", "price"], "message": "Price is invalid"}
					]
				}
			}
		}`))
	}))
	defer server.Close()

	client := shopify.NewClient(server.URL, "test-token", "2024-07")
	result, err := client.CreateProduct(context.Background(), &shopify.ProductInput{})
	require.NoError(t, err)

	require.Len(t, result.UserErrors, 2)
	assert.Equal(t, []string{"title"}, result.UserErrors[0].Field)
	assert.Equal(t, "Title can't be blank", result.UserErrors[0].Message)
	assert.Equal(t, "Price is invalid", result.UserErrors[1].Message)
	assert.Empty(t, result.ProductID)
}

func TestCreateProduct_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := shopify.NewClient(server.URL, "test-token", "2024-07")
	_, err := client.CreateProduct(context.Background(), &shopify.ProductInput{Title: "Hoodie"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstreamFailure))
}

func TestCreateProduct_GraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors": [{"message": "query malformed"}]}`))
	}))
	defer server.Close()

	client := shopify.NewClient(server.URL, "test-token", "2024-07")
	_, err := client.CreateProduct(context.Background(), &shopify.ProductInput{Title: "Hoodie"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstreamFailure))
}

func TestCreateProduct_EmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"productCreate": {"product": null, "userErrors": []}}}`))
	}))
	defer server.Close()

	client := shopify.NewClient(server.URL, "test-token", "2024-07")
	_, err := client.CreateProduct(context.Background(), &shopify.ProductInput{Title: "Hoodie"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstreamFailure))
}
