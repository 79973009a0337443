package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"logisticpro/internal/config"
	"logisticpro/internal/handler"
	"logisticpro/internal/maps"
	"logisticpro/internal/metrics"
	"logisticpro/internal/middleware"
	"logisticpro/internal/password"
	"logisticpro/internal/repository"
	"logisticpro/internal/service"
	"logisticpro/internal/token"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	hasherParams := password.DefaultParams()
	if s.cfg.Auth.Argon2.MemoryKiB > 0 {
		hasherParams.MemoryKiB = s.cfg.Auth.Argon2.MemoryKiB
	}
	if s.cfg.Auth.Argon2.Iterations > 0 {
		hasherParams.Iterations = s.cfg.Auth.Argon2.Iterations
	}
	if s.cfg.Auth.Argon2.Parallelism > 0 {
		hasherParams.Parallelism = s.cfg.Auth.Argon2.Parallelism
	}
	hasher := password.NewHasher(hasherParams)
	tokens := token.NewManager([]byte(s.cfg.Auth.JWTSecret), s.cfg.TokenTTL())
	dbTimeout := s.cfg.DBTimeout()

	userRepo := repository.NewUserRepository(s.db, s.logger)
	clientRepo := repository.NewClientRepository(s.db, s.logger)
	vehicleRepo := repository.NewVehicleRepository(s.db, s.logger)
	driverRepo := repository.NewDriverRepository(s.db, s.logger)
	orderRepo := repository.NewOrderRepository(s.db, s.logger)
	warehouseRepo := repository.NewWarehouseRepository(s.db, s.logger)
	routeRepo := repository.NewRouteRepository(s.db, s.logger)

	authService := service.NewAuthService(userRepo, hasher, tokens, dbTimeout, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userRepo, hasher, dbTimeout, s.logger)
	clientHandler := handler.NewClientHandler(clientRepo, dbTimeout, s.logger)
	vehicleHandler := handler.NewVehicleHandler(vehicleRepo, dbTimeout, s.logger)
	driverHandler := handler.NewDriverHandler(driverRepo, dbTimeout, s.logger)
	orderHandler := handler.NewOrderHandler(orderRepo, dbTimeout, s.logger)
	warehouseHandler := handler.NewWarehouseHandler(warehouseRepo, dbTimeout, s.logger)
	routeHandler := handler.NewRouteHandler(routeRepo, dbTimeout, s.logger)

	mapsClient := maps.NewClient(s.cfg.Maps.BaseURL, s.cfg.Maps.APIKey, s.logger)
	geoHandler := handler.NewGeoHandler(mapsClient, s.logger)

	httpMetrics := metrics.New("logisticpro")
	s.router.Use(httpMetrics.Middleware())

	// Operational endpoints, no auth.
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	s.router.GET("/db-test", s.dbTest)
	s.router.GET("/metrics", metrics.Handler())

	// Authentication routes
	authGroup := s.router.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.Auth(tokens, s.logger), authHandler.Me)

	authed := s.router.Group("/")
	authed.Use(middleware.Auth(tokens, s.logger))
	admin := middleware.AdminOnly()
	{
		// User management is admin territory end to end.
		users := authed.Group("/users", admin)
		users.GET("", userHandler.GetAllUsers)
		users.GET("/:id", userHandler.GetUserByID)
		users.POST("", userHandler.CreateUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)

		// Every logged-in user can read the logistics resources;
		// mutations need admin.
		clients := authed.Group("/clients")
		clients.GET("", clientHandler.GetAllClients)
		clients.GET("/:id", clientHandler.GetClientByID)
		clients.POST("", admin, clientHandler.CreateClient)
		clients.PUT("/:id", admin, clientHandler.UpdateClient)
		clients.DELETE("/:id", admin, clientHandler.DeleteClient)

		vehicles := authed.Group("/vehicles")
		vehicles.GET("", vehicleHandler.GetAllVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicleByID)
		vehicles.POST("", admin, vehicleHandler.CreateVehicle)
		vehicles.PUT("/:id", admin, vehicleHandler.UpdateVehicle)
		vehicles.DELETE("/:id", admin, vehicleHandler.DeleteVehicle)

		drivers := authed.Group("/drivers")
		drivers.GET("", driverHandler.GetAllDrivers)
		drivers.GET("/:id", driverHandler.GetDriverByID)
		drivers.POST("", admin, driverHandler.CreateDriver)
		drivers.PUT("/:id", admin, driverHandler.UpdateDriver)
		drivers.DELETE("/:id", admin, driverHandler.DeleteDriver)

		orders := authed.Group("/orders")
		orders.GET("", orderHandler.GetAllOrders)
		orders.GET("/:id", orderHandler.GetOrderByID)
		orders.POST("", admin, orderHandler.CreateOrder)
		orders.PUT("/:id", admin, orderHandler.UpdateOrder)
		orders.DELETE("/:id", admin, orderHandler.DeleteOrder)

		warehouses := authed.Group("/warehouses")
		warehouses.GET("", warehouseHandler.GetAllWarehouses)
		warehouses.GET("/:id", warehouseHandler.GetWarehouseByID)
		warehouses.POST("", admin, warehouseHandler.CreateWarehouse)
		warehouses.PUT("/:id", admin, warehouseHandler.UpdateWarehouse)
		warehouses.DELETE("/:id", admin, warehouseHandler.DeleteWarehouse)

		routes := authed.Group("/routes")
		routes.GET("", routeHandler.GetAllRoutes)
		routes.POST("", admin, routeHandler.CreateRoute)
		routes.DELETE("/:id", admin, routeHandler.DeleteRoute)

		// Maps proxy for the dashboard map view.
		authed.GET("/api/route", geoHandler.GetRoute)
		authed.POST("/api/geocode", geoHandler.ReverseGeocode)
	}
}

func (s *Server) dbTest(c *gin.Context) {
	var now time.Time
	if err := s.db.GetContext(c.Request.Context(), &now, `SELECT NOW()`); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "DB error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "now": now})
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
