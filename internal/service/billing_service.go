package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assetflow/asset-service/internal/domain"
	"github.com/assetflow/asset-service/internal/events"
	"github.com/assetflow/asset-service/internal/repository"
	apperrors "github.com/assetflow/asset-service/pkg/util"
)

var errPaymentReplayed = errors.New("payment already applied")

// BillingService applies gateway payments to HR packages.
type BillingService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	secret     []byte
	now        func() time.Time
}

// BillingDependencies bundles collaborators for the billing service.
type BillingDependencies struct {
	Store         repository.Store
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	WebhookSecret string
	Now           func() time.Time
}

// NewBillingService constructs the service.
func NewBillingService(deps BillingDependencies) *BillingService {
	s := &BillingService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		secret:     []byte(deps.WebhookSecret),
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// PaymentEvent is the webhook body sent by the gateway.
type PaymentEvent struct {
	TransactionID string               `json:"transactionId"`
	HREmail       string               `json:"hrEmail"`
	PackageName   string               `json:"packageName"`
	Amount        int64                `json:"amount"`
	Status        domain.PaymentStatus `json:"status"`
}

// WebhookResult reports what a webhook delivery changed.
type WebhookResult struct {
	Applied  bool
	Replayed bool
	Payment  *domain.Payment
}

// SignPayload returns the hex HMAC-SHA256 of payload under secret.
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a "sha256=<hex>" or bare hex signature.
func (s *BillingService) VerifySignature(payload []byte, signature string) error {
	if len(s.secret) == 0 {
		return apperrors.NewUnauthorized("webhook secret not configured")
	}
	signature = strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")
	got, err := hex.DecodeString(signature)
	if err != nil || len(got) == 0 {
		return apperrors.NewUnauthorized("invalid webhook signature")
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return apperrors.NewUnauthorized("invalid webhook signature")
	}
	return nil
}

// HandleWebhook verifies and applies a gateway notification. Only completed
// transactions change state; a known transaction id is acknowledged without
// applying it twice.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if err := s.VerifySignature(payload, signature); err != nil {
		return nil, err
	}

	var evt PaymentEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, apperrors.NewValidationError("invalid webhook body", nil)
	}
	evt.TransactionID = strings.TrimSpace(evt.TransactionID)
	evt.HREmail = normalizeEmail(evt.HREmail)
	evt.PackageName = strings.TrimSpace(evt.PackageName)

	if missing := missingFields(map[string]string{
		"transactionId": evt.TransactionID,
		"hrEmail":       evt.HREmail,
		"packageName":   evt.PackageName,
	}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", map[string]any{"missing": missing})
	}

	if evt.Status != domain.PaymentStatusCompleted {
		s.logger.Info("ignoring incomplete payment",
			zap.String("transaction_id", evt.TransactionID),
			zap.String("status", string(evt.Status)))
		return &WebhookResult{}, nil
	}

	pkg, err := s.store.Packages().GetByName(ctx, evt.PackageName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("unknown package", map[string]any{"packageName": evt.PackageName})
		}
		return nil, err
	}

	payment := &domain.Payment{
		TransactionID: evt.TransactionID,
		HREmail:       evt.HREmail,
		PackageName:   pkg.Name,
		EmployeeLimit: pkg.EmployeeLimit,
		Amount:        evt.Amount,
		Status:        domain.PaymentStatusCompleted,
		PaymentDate:   s.now(),
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		hr, err := tx.Users().GetByEmailForUpdate(ctx, evt.HREmail)
		if err != nil {
			return notFoundOr(err, "hr user", map[string]any{"hrEmail": evt.HREmail})
		}
		if !hr.IsHR() {
			return apperrors.NewNotFound("hr user", map[string]any{"hrEmail": evt.HREmail})
		}
		// A known transaction is acknowledged before any check against the
		// account's current state.
		if _, err := tx.Payments().GetByTransactionID(ctx, evt.TransactionID); err == nil {
			return errPaymentReplayed
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if pkg.EmployeeLimit < hr.CurrentEmployees {
			return apperrors.NewInvalidState("package limit below current employees", map[string]any{
				"employeeLimit":    pkg.EmployeeLimit,
				"currentEmployees": hr.CurrentEmployees,
			})
		}

		if err := tx.Payments().Create(ctx, payment); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errPaymentReplayed
			}
			return err
		}
		if err := tx.Users().UpgradePackage(ctx, hr.Email, pkg.Name, pkg.EmployeeLimit); err != nil {
			return notFoundOr(err, "hr user", map[string]any{"hrEmail": hr.Email})
		}
		return nil
	})
	if errors.Is(err, errPaymentReplayed) {
		s.logger.Info("payment replay acknowledged", zap.String("transaction_id", evt.TransactionID))
		return &WebhookResult{Replayed: true}, nil
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, payment)
	return &WebhookResult{Applied: true, Payment: payment}, nil
}

// ListPayments returns the payments of one HR account, newest first.
func (s *BillingService) ListPayments(ctx context.Context, hrEmail string) ([]domain.Payment, error) {
	return s.store.Payments().ListByHR(ctx, normalizeEmail(hrEmail))
}

// ListPackages returns the purchasable tiers.
func (s *BillingService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return s.store.Packages().List(ctx)
}

func (s *BillingService) publish(ctx context.Context, payment *domain.Payment) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventPackageUpgraded,
		ResourceID: payment.HREmail,
		Actor:      events.Actor{Email: payment.HREmail, Role: domain.RoleHR},
		Timestamp:  s.now(),
		Payload: events.PackageUpgradedPayload{
			HREmail:       payment.HREmail,
			PackageName:   payment.PackageName,
			EmployeeLimit: payment.EmployeeLimit,
			TransactionID: payment.TransactionID,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
