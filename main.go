package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/redis/v3"
	goredis "github.com/redis/go-redis/v9"
	"github.com/tayothecoder/cornerfield-sub004/internal/audit"
	"github.com/tayothecoder/cornerfield-sub004/internal/auth"
	"github.com/tayothecoder/cornerfield-sub004/internal/common"
	"github.com/tayothecoder/cornerfield-sub004/internal/config"
	"github.com/tayothecoder/cornerfield-sub004/internal/handlers/api"
	"github.com/tayothecoder/cornerfield-sub004/internal/handlers/web"
	"github.com/tayothecoder/cornerfield-sub004/internal/invest"
	"github.com/tayothecoder/cornerfield-sub004/internal/mail"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/csrf"
	"github.com/tayothecoder/cornerfield-sub004/internal/middlewares/sessions"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/internal/settings"
	"github.com/tayothecoder/cornerfield-sub004/internal/store"
	"github.com/tayothecoder/cornerfield-sub004/internal/users"
	"github.com/tayothecoder/cornerfield-sub004/model"
	"github.com/tayothecoder/cornerfield-sub004/params"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Env-style config file",
		Value: ".env",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "cornerfield - investment platform server"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitDatabase(dbConfig config.MySQLConfig) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dbConfig.Dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dbConfig.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if len(dbConfig.Replicas) > 0 {
		var replicas []gorm.Dialector
		for _, dsn := range dbConfig.Replicas {
			replicas = append(replicas, mysql.Open(dsn))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})
		if dbConfig.MaxIdleConns > 0 {
			resolver = resolver.SetMaxIdleConns(dbConfig.MaxIdleConns)
		}
		if dbConfig.MaxOpenConns > 0 {
			resolver = resolver.SetMaxOpenConns(dbConfig.MaxOpenConns)
		}
		if err := db.Use(resolver); err != nil {
			slog.Error("Failed to register database replicas", "error", err)
			os.Exit(1)
		}
	}

	if err := db.AutoMigrate(model.Models...); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	return db
}

func mustInitMailSender(smtpCfg config.SMTPConfig) mail.MailSender {
	if smtpCfg.Host == "" {
		slog.Warn("SMTP is not configured, outgoing mail is discarded")
		return &mail.NullMailSender{}
	}
	return mail.NewSMTPMailSender(smtpCfg)
}

func mustInitRedisStorage(redisCfg config.RedisConfig) *redis.Storage {
	return redis.New(redis.Config{
		URL:           redisCfg.URL,
		PoolSize:      redisCfg.PoolSize,
		IsClusterMode: redisCfg.ClusterMode,
	})
}

func setupWebRoutes(
	router fiber.Router,
	config *config.Config,
	sessionStorage fiber.Storage,
	authenticator *auth.Authenticator,
	userService *users.UserService,
	investService *invest.Service,
	settingsService *settings.Service,
	auditRepo audit.AuditEventRepository,
	mailSender mail.MailSender) {

	// handlers
	var (
		loginHandler         = web.NewLoginHandler(userService, authenticator)
		registerHandler      = web.NewRegisterHandler(userService, mailSender, config.BaseURL)
		resetPasswordHandler = web.NewResetPasswordHandler(userService, mailSender, config.BaseURL)
		dashboardHandler     = web.NewDashboardHandler(userService, investService)
		investHandler        = web.NewInvestHandler(userService, investService, mailSender)
		adminHandler         = web.NewAdminHandler(userService, authenticator, settingsService, auditRepo)
		accountHandler       = api.NewAccountHandler(userService, investService)
	)

	// routes
	router.Static("/static", config.StaticDir)
	router.Use(sessions.New(sessions.Config{
		Storage:        sessionStorage,
		SessionMaxAge:  config.Session.SessionMaxAge,
		CookieSecure:   config.Session.CookieSecure,
		CookieHttpOnly: config.Session.CookieHttpOnly,
		CookieName:     config.Session.CookieName,
	}))
	router.Use(middlewares.Maintenance(settingsService))
	router.Use(csrf.New(csrf.Config{
		ExemptPrefixes: config.CSRFExempt,
		DoubleSubmit:   true,
	}))

	router.Get("/login", loginHandler.GetLogin)
	router.Post("/login", loginHandler.PostLogin)
	router.Post("/logout", loginHandler.PostLogout)
	router.Get("/register", registerHandler.GetRegister)
	router.Post("/register", registerHandler.PostRegister)
	router.Get("/forgot-password", resetPasswordHandler.GetForgotPassword)
	router.Post("/forgot-password", resetPasswordHandler.PostForgotPassword)
	router.Get("/reset-password", resetPasswordHandler.GetResetPassword)
	router.Post("/reset-password", resetPasswordHandler.PostResetPassword)

	router.Use(authenticator.Require(false))
	router.Get("/", dashboardHandler.GetDashboard)
	router.Get("/invest", investHandler.GetInvest)
	router.Post("/invest", investHandler.PostInvest)
	router.Get("/deposit", investHandler.GetDeposit)
	router.Post("/deposit", investHandler.PostDeposit)
	router.Get("/withdraw", investHandler.GetWithdraw)
	router.Post("/withdraw", investHandler.PostWithdraw)
	// registered ahead of the admin gate: while impersonating, the session
	// carries the target's non-admin role, and this is the only way back
	router.Post("/admin/impersonate/stop", adminHandler.PostStopImpersonation)

	apiGroup := router.Group("/api/v1")
	apiGroup.Get("/me", accountHandler.GetMe)
	apiGroup.Get("/transactions", accountHandler.GetTransactions)
	apiGroup.Get("/investments", accountHandler.GetInvestments)
	apiGroup.Post("/deposit", investHandler.PostDeposit)

	adminGroup := router.Group("/admin", authenticator.Require(true))
	adminGroup.Get("/", adminHandler.GetAdmin)
	adminGroup.Post("/impersonate", adminHandler.PostImpersonate)
	adminGroup.Post("/maintenance", adminHandler.PostMaintenance)
}

func run(ctx *cli.Context) error {
	config, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}

	mustInitLogger(config.Debug || ctx.IsSet(debugFlag.Name))

	globalVars := fiber.Map{
		"siteName": config.SiteName,
		"baseURL":  config.BaseURL,
	}
	if err := render.Initialize(globalVars, config.TemplateDir); err != nil {
		slog.Error("Could not initialize templates", "error", err)
		return err
	}

	mailSender := mustInitMailSender(config.SMTP)
	db := mustInitDatabase(config.MySQL)

	var (
		sessionStorage fiber.Storage
		cacheStorage   store.Storage
		redisClient    goredis.UniversalClient
	)
	if config.Redis.URL != "" {
		redisStorage := mustInitRedisStorage(config.Redis)
		sessionStorage = redisStorage
		cacheStorage = store.NewRedisStorage(redisStorage.Conn())
		redisClient = redisStorage.Conn()
	} else {
		slog.Warn("Redis is not configured, using in-process storage")
		sessionStorage = memory.New()
		cacheStorage = store.NewMemoryStorage()
	}

	// repositories
	var (
		userRepo       = users.NewUserRepository(db)
		planRepo       = invest.NewPlanRepository(db)
		investmentRepo = invest.NewInvestmentRepository(db)
		txRepo         = invest.NewTransactionRepository(db)
		auditRepo      = audit.NewAuditEventRepository(db)
	)
	audit.Initialize(auditRepo)

	// services
	var (
		userService     = users.NewUserService(userRepo, config.MasterKey)
		investService   = invest.NewService(db, planRepo, investmentRepo, txRepo)
		settingsService = settings.NewService(db, store.StorageWithPrefix(cacheStorage, params.SettingsKeyPrefix))
		limiter         = auth.NewRateLimiter(cacheStorage)
		authenticator   = auth.New(config.MasterKey, config.Session.SessionMaxAge, limiter)
	)

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(logger.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(config.AllowOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	router.Use(middlewares.InjectGlobalVars(globalVars))
	setupWebRoutes(
		router,
		config,
		sessionStorage,
		authenticator,
		userService,
		investService,
		settingsService,
		auditRepo,
		mailSender,
	)

	healthCheckCtx, term := context.WithCancel(ctx.Context)
	done := make(chan struct{})
	go common.StartHealthCheckServer(healthCheckCtx, done, redisClient, db)
	defer func() {
		term()
		<-done
	}()
	return router.Listen(config.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
