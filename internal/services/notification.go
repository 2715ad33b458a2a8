package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"github.com/trendprints/storefront/pkg/sendgrid"
)

type NotificationService interface {
	// OrderPlaced mails an order confirmation. Failures are logged, never returned.
	OrderPlaced(ctx context.Context, order *models.Order)
}

type notificationService struct {
	users        repository.UserRepository
	emailService sendgrid.EmailService
}

// NewNotificationService returns a notifier that does nothing when emailService is nil.
func NewNotificationService(users repository.UserRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{users: users, emailService: emailService}
}

func orderConfirmation(user *models.User, order *models.Order) *sendgrid.Message {

	var lines strings.Builder

	for _, item := range order.Items {
		fmt.Fprintf(&lines, "%d x %s (%s) @ ₹%.2f\n", item.Quantity, item.Name, item.Size, item.Price)
	}

	a := order.ShippingAddress

	content := fmt.Sprintf(
		"Hi %s,\n\nThanks for shopping with TrendPrints. Your order %s is %s.\n\n%s\nTotal: ₹%.2f\nPayment: %s\n\nShipping to:\n%s\n%s\n%s - %s\n%s\n",
		user.Username, order.ID.Hex(), order.Status, lines.String(), order.Total, order.PaymentMethod,
		a.FullName, a.Address, a.City, a.Pincode, a.Phone,
	)

	return &sendgrid.Message{
		To:      user.Email,
		ToName:  user.Username,
		Subject: "Your TrendPrints order " + order.ID.Hex(),
		Content: content,
	}
}

func (n *notificationService) OrderPlaced(ctx context.Context, order *models.Order) {

	if n.emailService == nil {
		return
	}

	logger := middleware.LoggerFromContext(ctx).With(slog.String("orderId", order.ID.Hex()))

	user, err := n.users.GetUserByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("Skipping order confirmation, owner lookup failed", slog.Any("error", err))
		return
	}

	if err := n.emailService.Send(ctx, orderConfirmation(user, order)); err != nil {
		logger.Warn("Failed to send order confirmation", slog.Any("error", err))
		return
	}

	logger.Info("Order confirmation sent")
}
