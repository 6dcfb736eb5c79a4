package services

import (
	portsrepo "github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/events"
	"github.com/SscSPs/payhub_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// QR codes first since registration issues one
	container.QRCode = NewQRCodeService(repos.QRCodeRepo, repos.UserRepo)

	container.User = NewUserService(
		repos.UserRepo,
		WithOpeningBalance(cfg.OpeningBalance),
		WithUserEventPublisher(publisher),
		WithQRCodeIssuer(container.QRCode),
	)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Contact = NewContactService(repos.ContactRepo, repos.UserRepo)
	container.Card = NewCardService(repos.CardRepo)

	container.Ledger = NewLedgerService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.ContactRepo,
		WithEventPublisher(publisher),
		WithBalanceFloorPolicy(cfg.BalanceFloorPolicy),
	)

	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.Captcha = NewCaptchaVerifier(cfg.RecaptchaSecretKey)

	return container
}
