package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/payhub_backend/internal/apperrors"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/dto"
	"github.com/SscSPs/payhub_backend/internal/middleware"
)

// DemoPassword is the password every demo user signs in with.
const DemoPassword = "password123"

// DemoUsername is the demo user that owns the seeded cards, contacts and history.
const DemoUsername = "johndoe"

func strRef(s string) *string { return &s }

var demoUsers = []dto.RegisterUserRequest{
	{Username: DemoUsername, Password: DemoPassword, FirstName: "John", LastName: "Doe", Email: "john.doe@example.com",
		Phone: strRef("(123) 456-7890"), Address: strRef("123 Main St, Anytown, CA 12345")},
	{Username: "sarahjohnson", Password: DemoPassword, FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@example.com",
		Phone: strRef("(234) 567-8901"), Address: strRef("456 Oak St, Somewhere, NY 67890")},
	{Username: "michaelbrown", Password: DemoPassword, FirstName: "Michael", LastName: "Brown", Email: "michael.brown@example.com",
		Phone: strRef("(345) 678-9012"), Address: strRef("789 Pine St, Elsewhere, TX 54321")},
}

var demoCards = []dto.CreateCardRequest{
	{CardNumber: "4111111111114582", CardholderName: "John Doe", ExpiryDate: "09/25", CVV: "123", CardType: "visa", IsDefault: true},
	{CardNumber: "5555555555557591", CardholderName: "John Doe", ExpiryDate: "12/26", CVV: "456", CardType: "mastercard"},
}

// demoTransaction is a posting; usesCard links it to the seeded default card.
type demoTransaction struct {
	req      dto.PostTransactionRequest
	usesCard bool
}

func demoPosting(amount, txType, description, category, recipient, method string) dto.PostTransactionRequest {
	return dto.PostTransactionRequest{
		Amount:          amount,
		TransactionType: txType,
		Description:     description,
		Category:        category,
		RecipientName:   strRef(recipient),
		PaymentMethod:   strRef(method),
	}
}

var demoTransactions = []demoTransaction{
	{req: demoPosting("25.00", "credit", "Payment Received", "payment", "Michael Brown", "bank")},
	{req: demoPosting("39.99", "debit", "Online Purchase", "shopping", "Amazon.com", "card"), usesCard: true},
	{req: demoPosting("85.50", "debit", "Bill Payment", "bill", "Electric Company", "card"), usesCard: true},
	{req: demoPosting("5.75", "debit", "QR Payment", "shopping", "Coffee Shop", "qr")},
	{req: demoPosting("24.99", "debit", "QR Payment", "shopping", "Bookstore", "qr")},
	{req: demoPosting("15.50", "credit", "QR Payment Received", "payment", "Michael Brown", "qr")},
	{req: demoPosting("50.00", "debit", "Money Sent", "payment", "Sarah Johnson", "direct")},
}

// SeedDemoData creates the demo users with cards, contacts and transaction history,
// going through the services so every invariant holds. It does nothing when the
// demo user already exists.
func SeedDemoData(ctx context.Context, container *portssvc.ServiceContainer) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := container.User.GetUserByUsername(ctx, DemoUsername); err == nil {
		logger.Info("Demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check for demo data: %w", err)
	}

	ownerID := ""
	payees := make([]string, 0, len(demoUsers)-1)
	for _, req := range demoUsers {
		user, err := container.User.RegisterUser(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", req.Username, err)
		}
		if req.Username == DemoUsername {
			ownerID = user.UserID
		} else {
			payees = append(payees, user.Username)
		}
	}

	var defaultCardID string
	for _, req := range demoCards {
		card, err := container.Card.CreateCard(ctx, ownerID, req)
		if err != nil {
			return fmt.Errorf("failed to seed card: %w", err)
		}
		if card.IsDefault {
			defaultCardID = card.CardID
		}
	}

	for _, username := range payees {
		if _, err := container.Contact.AddContact(ctx, ownerID, dto.AddContactRequest{Username: username}); err != nil {
			return fmt.Errorf("failed to seed contact %s: %w", username, err)
		}
	}

	for _, t := range demoTransactions {
		req := t.req
		if t.usesCard {
			req.CardID = strRef(defaultCardID)
		}
		if _, err := container.Ledger.PostTransaction(ctx, ownerID, req); err != nil {
			return fmt.Errorf("failed to seed transaction %q: %w", req.Description, err)
		}
	}

	logger.Info("Demo data seeded",
		slog.String("user_id", ownerID),
		slog.Int("users", len(demoUsers)),
		slog.Int("transactions", len(demoTransactions)))
	return nil
}
