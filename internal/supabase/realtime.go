package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The wizard UI subscribes to Postgres changes on lead_configurations,
	// so database updates already reach it through Realtime. Explicit event
	// publishing is a placeholder until the Go client exposes broadcast.
	return nil
}

func (r *RealtimeClient) PublishLeadEvent(leadID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("lead:%s", leadID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func ConfigurationConfirmedPayload(leadID, shopID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"lead_id": leadID.String(),
		"shop_id": shopID.String(),
		"status":  "approved",
	}
}

func ProductsProvisionedPayload(leadID uuid.UUID, created, requested int) map[string]interface{} {
	return map[string]interface{}{
		"lead_id":   leadID.String(),
		"status":    "provisioned",
		"created":   created,
		"requested": requested,
	}
}

func ExportCompletedPayload(productID uuid.UUID, platformProductID string) map[string]interface{} {
	return map[string]interface{}{
		"product_id":          productID.String(),
		"platform_product_id": platformProductID,
		"status":              "exported",
	}
}
