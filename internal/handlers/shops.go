package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolmerch-backend/internal/apperrors"
	"schoolmerch-backend/internal/models"
	"schoolmerch-backend/internal/supabase"
)

func shopLookupErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.Wrap(apperrors.KindNotFound, "shop not found", err)
	}
	return apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to load shop", err)
}

type ShopsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewShopsHandler(dbClient *supabase.DatabaseClient) *ShopsHandler {
	return &ShopsHandler{dbClient: dbClient}
}

func (h *ShopsHandler) GetShop(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	shopID, ok := pathUUID(c, "shop_id")
	if !ok {
		return
	}

	shop, err := h.dbClient.GetShop(c.Request.Context(), shopID)
	if err != nil {
		writeError(c, shopLookupErr(err))
		return
	}
	if !actor.CanManageSchool(shop.SchoolID) {
		writeError(c, apperrors.New(apperrors.KindForbidden, "not allowed to view this shop"))
		return
	}

	c.JSON(http.StatusOK, models.ShopResponse{
		ID:        shop.ID.String(),
		SchoolID:  shop.SchoolID.String(),
		Slug:      shop.Slug,
		Status:    shop.Status,
		Currency:  shop.Currency,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	})
}

func (h *ShopsHandler) ListProducts(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	shopID, ok := pathUUID(c, "shop_id")
	if !ok {
		return
	}

	shop, err := h.dbClient.GetShop(c.Request.Context(), shopID)
	if err != nil {
		writeError(c, shopLookupErr(err))
		return
	}
	if !actor.CanManageSchool(shop.SchoolID) {
		writeError(c, apperrors.New(apperrors.KindForbidden, "not allowed to view this shop"))
		return
	}

	products, err := h.dbClient.ListProductsByShop(c.Request.Context(), shopID)
	if err != nil {
		writeError(c, apperrors.Wrap(apperrors.KindUpstreamFailure, "failed to list products", err))
		return
	}

	resp := models.ProductListResponse{
		ShopID:   shopID.String(),
		Products: []models.ProductSummary{},
	}
	for _, p := range products {
		summary := models.ProductSummary{
			ID:        p.ID.String(),
			TextileID: p.TextileID.String(),
			Name:      p.Name,
			Price:     p.Price,
			CreatedAt: p.CreatedAt,
		}
		if p.PlatformProductID.Valid {
			summary.PlatformProductID = p.PlatformProductID.String
		}
		resp.Products = append(resp.Products, summary)
	}

	c.JSON(http.StatusOK, resp)
}
