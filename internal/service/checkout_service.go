package service

import (
	"errors"
	"fmt"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/internal/notification"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
	"github.com/Ordones18/Ponte-Once-Store/pkg/metrics"
)

type CheckoutService struct {
	purchases  domain.PurchaseRepository
	products   domain.ProductRepository
	dispatcher domain.EmailDispatcher
	mailer     *notification.Mailer
	logger     logger.Logger
}

func NewCheckoutService(
	purchases domain.PurchaseRepository,
	products domain.ProductRepository,
	dispatcher domain.EmailDispatcher,
	mailer *notification.Mailer,
	logger logger.Logger,
) domain.CheckoutService {
	return &CheckoutService{
		purchases:  purchases,
		products:   products,
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// Buy records the purchase with the price the buyer's request carried.
// The stored total is not validated against the catalog price; the
// storefront treats the client payload as the source of truth here.
func (s *CheckoutService) Buy(req *domain.BuyRequest) (*domain.Purchase, error) {
	product, err := s.products.FindByID(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	purchase := &domain.Purchase{
		BuyerName:  req.Name,
		Cedula:     req.Cedula,
		Email:      req.Email,
		Phone:      req.Phone,
		ProductID:  req.ProductID,
		TotalPrice: req.Price,
	}

	if err := s.purchases.CreateWithStockDecrement(purchase); err != nil {
		if errors.Is(err, domain.ErrOutOfStock) || errors.Is(err, domain.ErrProductNotFound) {
			metrics.RecordPurchase("rejected")
			return nil, err
		}
		metrics.RecordPurchase("error")
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	metrics.RecordPurchase("completed")
	s.logger.Info("purchase completed", map[string]interface{}{
		"purchase_id": purchase.ID,
		"product_id":  purchase.ProductID,
		"total_price": purchase.TotalPrice,
	})

	// Confirmation mail is fire-and-forget; a full queue or gateway
	// failure never turns a completed purchase into an error.
	if !s.dispatcher.Enqueue(s.mailer.PurchaseConfirmation(purchase, product)) {
		s.logger.Warn("confirmation email dropped, queue full", map[string]interface{}{
			"purchase_id": purchase.ID,
		})
	}

	return purchase, nil
}
