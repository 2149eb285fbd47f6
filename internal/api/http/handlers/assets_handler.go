package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/assetflow/asset-service/internal/api/dto"
	"github.com/assetflow/asset-service/internal/repository"
	"github.com/assetflow/asset-service/internal/service"
)

// AssetsHandler exposes the asset catalog.
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// List handles GET /assets. HR accounts list their own catalog; employees
// may narrow by hrEmail.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	filter := repository.AssetFilter{SearchTerm: queryString(c, "search")}
	if p.IsHR() {
		email := p.Email()
		filter.HREmail = &email
	} else {
		filter.HREmail = queryString(c, "hrEmail")
	}
	filter.Limit, filter.Offset = pageQuery(c)
	filter.Limit, filter.Offset = repository.NormalizePage(filter.Limit, filter.Offset)

	assets, total, err := h.assets.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, dto.NewAssetResponse(&assets[i]))
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": dto.PageMeta{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Get handles GET /assets/:id.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	asset, err := h.assets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Create handles POST /assets.
func (h *AssetsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateAssetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	asset, err := h.assets.Create(c.UserContext(), p.User, service.AssetCreateInput{
		Name:            req.Name,
		Type:            req.Type,
		Image:           req.Image,
		CompanyLogo:     req.CompanyLogo,
		ProductQuantity: req.ProductQuantity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Update handles PUT /assets/:id.
func (h *AssetsHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAssetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	asset, err := h.assets.Update(c.UserContext(), p.Email(), c.Params("id"), service.AssetPatch{
		Name:  req.Name,
		Type:  req.Type,
		Image: req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Delete handles DELETE /assets/:id.
func (h *AssetsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.assets.Delete(c.UserContext(), p.Email(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Asset deleted"})
}
