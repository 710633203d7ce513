package cmd

import (
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/distributorrepo"
	"fulfillment/internal/adapters/out/postgres/ledgerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	stores     commands.Stores
	locator    ports.CourierLocator
	notifier   ports.Notifier
	engine     services.RankingEngine
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	locator ports.CourierLocator,
	notifier ports.Notifier,
	logger *slog.Logger,
) (CompositionRoot, error) {
	engine, err := services.NewRankingEngine(cfg.RankingMaxDistanceMeters)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		stores: commands.Stores{
			Distributors:      distributorrepo.NewGormDistributorRepository(gormDB),
			DistributorOrders: orderrepo.NewGormDistributorOrderRepository(gormDB),
			ClientOrders:      orderrepo.NewGormClientOrderRepository(gormDB),
			Couriers:          courierrepo.NewGormCourierRepository(gormDB),
		},
		locator:  locator,
		notifier: notifier,
		engine:   engine,
		logger:   logger,
	}, nil
}

func (c *CompositionRoot) ledgerWriter() commands.LedgerWriter {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLedgerWriter(f)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.stores, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.stores, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.stores, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateValidateDeliveryCommandHandler() commands.ValidateDeliveryCommandHandler {
	return commands.NewValidateDeliveryCommandHandler(c.stores, c.ledgerWriter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCompletePickupCommandHandler() commands.CompletePickupCommandHandler {
	return commands.NewCompletePickupCommandHandler(c.stores, c.ledgerWriter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.stores, c.ledgerWriter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.stores.Couriers, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.stores.Couriers, c.locator)
}

func (c *CompositionRoot) CreateRefreshCourierScoresCommandHandler() commands.RefreshCourierScoresCommandHandler {
	return commands.NewRefreshCourierScoresCommandHandler(c.stores.Couriers, c.engine, c.logger)
}

func (c *CompositionRoot) CreateResyncBalanceCommandHandler() commands.ResyncBalanceCommandHandler {
	return commands.NewResyncBalanceCommandHandler(c.ledgerWriter(), ledgerrepo.NewGormLedgerRepository(c.gormDB), c.logger)
}

func (c *CompositionRoot) CreateWithdrawCommandHandler() commands.WithdrawCommandHandler {
	return commands.NewWithdrawCommandHandler(c.ledgerWriter(), c.logger)
}

func (c *CompositionRoot) CreateRankAvailableCouriersQueryHandler() queries.RankAvailableCouriersQueryHandler {
	return queries.NewRankAvailableCouriersQueryHandler(
		c.stores.Distributors, c.stores.Couriers, c.locator, c.engine, c.logger)
}

func (c *CompositionRoot) CreateGetValidationCodeQueryHandler() queries.GetValidationCodeQueryHandler {
	return queries.NewGetValidationCodeQueryHandler(c.stores.ClientOrders, c.stores.DistributorOrders, c.logger)
}

func (c *CompositionRoot) CreateGetBalanceQueryHandler() queries.GetBalanceQueryHandler {
	return queries.NewGetBalanceQueryHandler(
		ledgerrepo.NewGormAccountRepository(c.gormDB), ledgerrepo.NewGormLedgerRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCouriersQueryHandler() queries.ListCouriersQueryHandler {
	return queries.NewListCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		ConfirmOrder:      c.CreateConfirmOrderCommandHandler(),
		AssignCourier:     c.CreateAssignCourierCommandHandler(),
		CompletePickup:    c.CreateCompletePickupCommandHandler(),
		RejectOrder:       c.CreateRejectOrderCommandHandler(),
		StartDelivery:     c.CreateStartDeliveryCommandHandler(),
		ValidateDelivery:  c.CreateValidateDeliveryCommandHandler(),
		CancelDelivery:    c.CreateCancelDeliveryCommandHandler(),
		UpdateLocation:    c.CreateUpdateCourierLocationCommandHandler(),
		ResyncBalance:     c.CreateResyncBalanceCommandHandler(),
		Withdraw:          c.CreateWithdrawCommandHandler(),
		RankCouriers:      c.CreateRankAvailableCouriersQueryHandler(),
		GetValidationCode: c.CreateGetValidationCodeQueryHandler(),
		GetBalance:        c.CreateGetBalanceQueryHandler(),
		GetOpenOrders:     c.CreateGetOpenOrdersQueryHandler(),
		ListCouriers:      c.CreateListCouriersQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewCourierScoreJob(c.CreateRefreshCourierScoresCommandHandler(), c.cfg.CourierScoreSchedule, c.logger),
		jobs.NewBalanceResyncJob(c.CreateResyncBalanceCommandHandler(), c.cfg.BalanceResyncSchedule, c.logger),
	)
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}
