package appcontext

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/api"
	"github.com/RoyceAzure/lab/shopcenter/internal/api/handler"
	"github.com/RoyceAzure/lab/shopcenter/internal/config"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/audit"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/cache"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/gateway"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/worker"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api/token"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ApplicationContext struct {
	Cf         *config.Config
	Logger     *zerolog.Logger
	DbConn     *pgxpool.Pool
	DbDao      db.IStore
	RedisConn  *redis.Client
	TokenMaker token.Maker

	ProductCache   *cache.ProductCache
	AuditPublisher audit.IPublisher
	Gateway        gateway.IPaymentGateway

	AuditService    service.IAuditService
	UserService     service.IUserService
	AuthService     service.IAuthService
	ProductService  service.IProductService
	CartService     service.ICartService
	OrderService    service.IOrderService
	PaymentService  service.IPaymentService
	ReviewService   service.IReviewService
	WishlistService service.IWishlistService
	DiscountService service.IDiscountService

	PaymentExpiryWorker *worker.PaymentExpiryWorker
	Server              *api.Server
}

func NewApplicationContext(cf *config.Config, logger *zerolog.Logger) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf:     cf,
		Logger: logger,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDbConn()
	if err != nil {
		return err
	}
	err = app.setUpDbDao()
	if err != nil {
		return err
	}
	err = app.setUpRedis()
	if err != nil {
		return err
	}
	err = app.setTokenMaker()
	if err != nil {
		return err
	}
	err = app.setUpInfra()
	if err != nil {
		return err
	}
	err = app.setUpServices()
	if err != nil {
		return err
	}
	err = app.setUpWorker()
	if err != nil {
		return err
	}
	err = app.setUpServer()
	if err != nil {
		return err
	}

	if app.Cf.RunMigration {
		err = app.dbInit()
		if err != nil {
			return err
		}
	}

	return nil
}

func (app *ApplicationContext) dbSource() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		app.Cf.DbUser, app.Cf.DbPas, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbName)
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := pgxpool.New(context.Background(), app.dbSource())
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpDbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewStore(app.DbConn)
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis connection")
	app.RedisConn = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})
	log.Printf("Finish setup redis connection")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	log.Printf("Start setup token maker")
	tokenMaker, err := token.NewPasetoMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return err
	}
	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpInfra() error {
	log.Printf("Start setup infra")
	app.ProductCache = cache.NewProductCache(app.DbDao, app.RedisConn, app.Logger)
	app.Gateway = gateway.NewHTTPGateway(app.Cf.GatewayBaseURL, app.Cf.GatewaySecret,
		time.Duration(app.Cf.GatewayTimeoutSeconds)*time.Second)

	if app.Cf.KafkaBrokers != "" {
		app.AuditPublisher = audit.NewKafkaPublisher(strings.Split(app.Cf.KafkaBrokers, ","), app.Cf.AuditTopic, app.Logger)
	} else {
		app.AuditPublisher = audit.NopPublisher{}
	}
	log.Printf("Finish setup infra")
	return nil
}

func (app *ApplicationContext) pricing() (service.Pricing, error) {
	taxRate, err := decimal.NewFromString(app.Cf.TaxRate)
	if err != nil {
		return service.Pricing{}, fmt.Errorf("invalid TAX_RATE: %w", err)
	}
	shippingFee, err := decimal.NewFromString(app.Cf.FlatShippingFee)
	if err != nil {
		return service.Pricing{}, fmt.Errorf("invalid FLAT_SHIPPING_FEE: %w", err)
	}
	threshold, err := decimal.NewFromString(app.Cf.FreeShippingThreshold)
	if err != nil {
		return service.Pricing{}, fmt.Errorf("invalid FREE_SHIPPING_THRESHOLD: %w", err)
	}
	return service.Pricing{
		TaxRate:               taxRate,
		FlatShippingFee:       shippingFee,
		FreeShippingThreshold: threshold,
	}, nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")

	pricing, err := app.pricing()
	if err != nil {
		return err
	}

	app.AuditService = service.NewAuditService(app.DbDao, app.AuditPublisher, app.Logger)
	app.UserService = service.NewUserService(app.DbDao)
	app.AuthService = service.NewAuthService(app.DbDao, app.UserService, app.TokenMaker)
	app.ProductService = service.NewProductService(app.DbDao, app.ProductCache, app.ProductCache, app.AuditService)
	app.CartService = service.NewCartService(app.DbDao)
	app.OrderService = service.NewOrderService(app.DbDao, pricing, app.AuditService)
	app.PaymentService = service.NewPaymentService(app.DbDao, app.Gateway, app.Logger)
	app.ReviewService = service.NewReviewService(app.DbDao, app.ProductCache)
	app.WishlistService = service.NewWishlistService(app.DbDao)
	app.DiscountService = service.NewDiscountService(app.DbDao, app.AuditService)

	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) setUpWorker() error {
	log.Printf("Start setup payment expiry worker")
	app.PaymentExpiryWorker = worker.NewPaymentExpiryWorker(
		app.PaymentService,
		time.Minute,
		time.Duration(app.Cf.PaymentExpiryMinutes)*time.Minute,
		app.Logger,
	)
	log.Printf("Finish setup payment expiry worker")
	return nil
}

func (app *ApplicationContext) setUpServer() error {
	log.Printf("Start setup server")
	app.Server = api.NewServer(
		handler.NewAuthHandler(app.AuthService),
		handler.NewProductHandler(app.ProductService),
		handler.NewCartHandler(app.CartService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewPaymentHandler(app.PaymentService),
		handler.NewReviewHandler(app.ReviewService),
		handler.NewWishlistHandler(app.WishlistService),
		handler.NewDiscountHandler(app.DiscountService),
		handler.NewAdminHandler(app.UserService, app.AuditService),
	)
	log.Printf("Finish setup server")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.PaymentExpiryWorker != nil {
			log.Printf("Stopping payment expiry worker...")
			app.PaymentExpiryWorker.Stop()
		}

		if app.RedisConn != nil {
			log.Printf("Closing redis connection...")
			if err := app.RedisConn.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}

		if app.AuditPublisher != nil {
			log.Printf("Closing audit publisher...")
			if err := app.AuditPublisher.Close(); err != nil {
				log.Printf("audit publisher close error: %v", err)
			}
		}

		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			app.DbConn.Close()
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}

func runDBMigration(migrationURL string, dbSource string) error {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return err
	}

	return migration.Up()
}

// db migration
func (app *ApplicationContext) dbInit() error {
	log.Printf("Start setup db init")

	err := runDBMigration(
		fmt.Sprintf("file://%s", strings.TrimPrefix(app.Cf.MigrationPath, "/")),
		app.dbSource(),
	)
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	log.Printf("Finish setup db init")
	return nil
}
