package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billingdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/billing/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/cache"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/pkg/repository"
)

// Entitlement lookups happen on every gated request; cache hits keep
// webhooks as the only writer of subscription state.
const planCacheTTL = 30 * time.Second

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Cfg     config.Config
	Billing billingdomain.Adapter
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	cfg     config.Config
	billing billingdomain.Adapter

	repo      repository.Repository[subscriptiondomain.Subscription]
	planCache *cache.TTLCache[string, subscriptiondomain.Plan]
}

func NewService(p Params) subscriptiondomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("subscription.service"),
		genID:     p.GenID,
		cfg:       p.Cfg,
		billing:   p.Billing,
		repo:      repository.ProvideStore[subscriptiondomain.Subscription](p.DB),
		planCache: cache.NewTTLCache[string, subscriptiondomain.Plan](),
	}
}

func (s *Service) GetPlan(ctx context.Context, userID string) (subscriptiondomain.Plan, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return subscriptiondomain.PlanFree, subscriptiondomain.ErrInvalidUser
	}

	if plan, ok := s.planCache.Get(userID); ok {
		return plan, nil
	}

	row, err := s.repo.FindOne(ctx, map[string]any{"user_id": userID})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.planCache.Set(userID, subscriptiondomain.PlanFree, planCacheTTL)
			return subscriptiondomain.PlanFree, nil
		}
		return subscriptiondomain.PlanFree, err
	}

	plan := subscriptiondomain.NormalizePlan(row.Plan)
	if row.Status == subscriptiondomain.StatusCanceled && !row.Lifetime {
		plan = subscriptiondomain.PlanFree
	}
	s.planCache.Set(userID, plan, planCacheTTL)
	return plan, nil
}

func (s *Service) CreateCheckout(ctx context.Context, req subscriptiondomain.CheckoutRequest) (*subscriptiondomain.CheckoutResponse, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, subscriptiondomain.ErrInvalidUser
	}
	priceID := s.priceForPlan(req.Plan)
	if priceID == "" {
		return nil, subscriptiondomain.ErrInvalidPlan
	}
	if s.billing == nil {
		return nil, subscriptiondomain.ErrBillingUnavailable
	}

	sess, err := s.billing.CreateCheckoutSession(ctx, billingdomain.CheckoutParams{
		UserID:     req.UserID,
		PriceID:    priceID,
		SuccessURL: s.cfg.Stripe.SuccessURL,
		CancelURL:  s.cfg.Stripe.CancelURL,
	})
	if err != nil {
		s.log.Warn("checkout session failed", zap.Error(err))
		return nil, subscriptiondomain.ErrBillingUnavailable
	}
	return &subscriptiondomain.CheckoutResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

func (s *Service) ApplyBillingUpdate(ctx context.Context, update subscriptiondomain.BillingUpdate) error {
	row, err := s.findForUpdate(ctx, update)
	if err != nil {
		return err
	}
	if row == nil {
		if strings.TrimSpace(update.UserID) == "" {
			// Subscription events can arrive before the checkout event
			// that links the customer to a user. Nothing to update yet.
			s.log.Warn("billing update without a matching subscription row",
				zap.String("stripe_subscription_id", update.StripeSubscriptionID))
			return nil
		}
		row = &subscriptiondomain.Subscription{
			ID:     s.genID.Generate(),
			UserID: update.UserID,
			Plan:   string(subscriptiondomain.PlanFree),
			Status: subscriptiondomain.StatusActive,
		}
	}

	if update.StripeCustomerID != "" {
		row.StripeCustomerID = update.StripeCustomerID
	}
	if update.StripeSubscriptionID != "" {
		row.StripeSubscriptionID = update.StripeSubscriptionID
	}

	switch {
	case update.Canceled:
		if !row.Lifetime {
			row.Status = subscriptiondomain.StatusCanceled
			row.Plan = string(subscriptiondomain.PlanFree)
		}
	case update.PriceID != "":
		plan, err := s.planForPrice(ctx, update.PriceID)
		if err != nil {
			return err
		}
		row.StripePriceID = update.PriceID
		row.Plan = string(plan)
		if update.Status != "" {
			row.Status = update.Status
		} else {
			row.Status = subscriptiondomain.StatusActive
		}
	case update.Status != "":
		row.Status = update.Status
	}

	row.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, row); err != nil {
		return err
	}
	s.planCache.Delete(row.UserID)
	return nil
}

func (s *Service) findForUpdate(ctx context.Context, update subscriptiondomain.BillingUpdate) (*subscriptiondomain.Subscription, error) {
	lookups := []map[string]any{}
	if update.UserID != "" {
		lookups = append(lookups, map[string]any{"user_id": update.UserID})
	}
	if update.StripeSubscriptionID != "" {
		lookups = append(lookups, map[string]any{"stripe_subscription_id": update.StripeSubscriptionID})
	}
	if update.StripeCustomerID != "" {
		lookups = append(lookups, map[string]any{"stripe_customer_id": update.StripeCustomerID})
	}
	for _, filter := range lookups {
		row, err := s.repo.FindOne(ctx, filter)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		return row, nil
	}
	return nil, nil
}

func (s *Service) planForPrice(ctx context.Context, priceID string) (subscriptiondomain.Plan, error) {
	var mapping subscriptiondomain.PlanMapping
	err := s.db.WithContext(ctx).
		Where("provider = ? AND provider_price_id = ?", "stripe", priceID).
		First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("no plan mapping for price", zap.String("price_id", priceID))
			return subscriptiondomain.PlanFree, nil
		}
		return subscriptiondomain.PlanFree, err
	}
	return subscriptiondomain.NormalizePlan(mapping.Plan), nil
}

func (s *Service) priceForPlan(plan subscriptiondomain.Plan) string {
	switch subscriptiondomain.NormalizePlan(string(plan)) {
	case subscriptiondomain.PlanSouthLoop:
		return s.cfg.Stripe.PriceSouthLoop
	case subscriptiondomain.PlanRiverNorth:
		return s.cfg.Stripe.PriceRiverNorth
	case subscriptiondomain.PlanTheLoop:
		return s.cfg.Stripe.PriceTheLoop
	}
	return ""
}
