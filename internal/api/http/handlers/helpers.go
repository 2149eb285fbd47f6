package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/assetflow/asset-service/internal/auth"
	"github.com/assetflow/asset-service/internal/domain"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	return auth.MustPrincipal(c)
}

// sameEmail compares account emails case-insensitively.
func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func queryString(c *fiber.Ctx, key string) *string {
	return domain.OptionalString(c.Query(key))
}

func pageQuery(c *fiber.Ctx) (int, int) {
	return c.QueryInt("limit", 0), c.QueryInt("offset", 0)
}
