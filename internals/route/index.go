package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/constants"
	donationModel "amanah_backend/internals/features/donations/donations/model"
	donationService "amanah_backend/internals/features/donations/donations/service"
	subscriptionService "amanah_backend/internals/features/donations/subscriptions/service"
	mediaService "amanah_backend/internals/features/media/service"
	"amanah_backend/internals/helpers/mailer"
	"amanah_backend/internals/helpers/storage"
	middlewares "amanah_backend/internals/middlewares"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	routeDetails "amanah_backend/internals/route/details"
)

var startTime time.Time

// Deps are the shared services handed to every feature router.
type Deps struct {
	Mailer        mailer.Mailer
	Media         *storage.Processor
	MediaService  *mediaService.MediaService
	Donations     *donationService.DonationService
	Subscriptions *subscriptionService.SubscriptionService
	NotifyAddress string
}

// NewDeps wires mail, media storage and payment gateways from the environment.
// A storage error leaves Media nil; upload endpoints then answer 503.
func NewDeps(ctx context.Context, db *gorm.DB, app configs.AppConfig) *Deps {
	mailCfg := configs.LoadMailConfig()
	m := mailer.New(mailCfg)

	var media *storage.Processor
	var mediaSvc *mediaService.MediaService
	origins := middlewares.ParseOrigins(app.CORSOrigins, configs.FrontendURL)
	store, err := storage.NewFromConfig(ctx, configs.LoadStorageConfig(), origins)
	if err != nil {
		log.Error().Err(err).Msg("media storage disabled")
	} else {
		media = storage.NewProcessor(store, configs.LoadMediaConfig())
		mediaSvc = mediaService.NewMediaService(db, store)
		media.Guard = mediaSvc
	}

	stripeCfg := configs.LoadStripeConfig()
	midtransCfg := configs.LoadMidtransConfig()
	var gws []donationService.Gateway
	if stripeCfg.SecretKey != "" {
		gws = append(gws, donationService.NewStripeGateway(stripeCfg))
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY is not set, Stripe checkout disabled")
	}
	if midtransCfg.ServerKey != "" {
		gws = append(gws, donationService.NewMidtransGateway(midtransCfg))
	}
	defaultGateway := app.PaymentGateway
	if defaultGateway != donationModel.GatewayMidtrans {
		defaultGateway = donationModel.GatewayStripe
	}

	donations := &donationService.DonationService{
		DB:                  db,
		Mailer:              m,
		Gateways:            donationService.NewGateways(defaultGateway, gws...),
		Currency:            stripeCfg.Currency,
		StripeWebhookSecret: stripeCfg.WebhookSecret,
		MidtransServerKey:   midtransCfg.ServerKey,
	}

	return &Deps{
		Mailer:        m,
		Media:         media,
		MediaService:  mediaSvc,
		Donations:     donations,
		Subscriptions: subscriptionService.NewSubscriptionService(db, donations),
		NotifyAddress: mailCfg.AdminAddress,
	}
}

// SetupRoutes mounts every feature under /api and its /api/v1 alias.
func SetupRoutes(app *fiber.App, db *gorm.DB, deps *Deps) {
	startTime = time.Now()
	BaseRoutes(app, db)

	for _, prefix := range []string{"/api", "/api/v1"} {
		api := app.Group(prefix)
		admin := api.Group("/admin",
			authMiddleware.AuthMiddleware(db),
			authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this area"), constants.AdminAndAbove...),
		)

		log.Info().Str("prefix", prefix).Msg("mounting routes")
		routeDetails.AuthRoutes(api, admin, db, deps.Mailer)
		routeDetails.DonationRoutes(api, admin, db, deps.Donations, deps.Subscriptions)
		routeDetails.ContentRoutes(api, admin, db, deps.Media)
		routeDetails.EngagementRoutes(api, admin, db, deps.Mailer, deps.NotifyAddress)
		routeDetails.SiteRoutes(api, admin, db, deps.Media, deps.MediaService)
	}
}
