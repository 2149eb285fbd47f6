package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assetflow/asset-service/internal/api/dto"
	"github.com/assetflow/asset-service/internal/service"
)

// SignatureHeader carries the HMAC of a webhook body.
const SignatureHeader = "X-Signature"

// PaymentsHandler exposes packages, payment history and the gateway webhook.
type PaymentsHandler struct {
	billing *service.BillingService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(billing *service.BillingService) *PaymentsHandler {
	return &PaymentsHandler{billing: billing}
}

// Packages handles GET /packages.
func (h *PaymentsHandler) Packages(c *fiber.Ctx) error {
	pkgs, err := h.billing.ListPackages(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PackageResponse, 0, len(pkgs))
	for i := range pkgs {
		items = append(items, dto.NewPackageResponse(&pkgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// List handles GET /payments.
func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	payments, err := h.billing.ListPayments(c.UserContext(), p.Email())
	if err != nil {
		return err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, dto.NewPaymentResponse(&payments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Webhook handles POST /payments/webhook.
func (h *PaymentsHandler) Webhook(c *fiber.Ctx) error {
	body := append([]byte(nil), c.Body()...)
	result, err := h.billing.HandleWebhook(c.UserContext(), body, c.Get(SignatureHeader))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"received": true,
		"applied":  result.Applied,
		"replayed": result.Replayed,
	})
}
