package main

import (
	"log"

	"astrometers/internal/calibration"
	"astrometers/internal/config"
	"astrometers/internal/engine"
	"astrometers/internal/ephemeris"
	httpRouter "astrometers/internal/http"
	"astrometers/internal/logging"
	"astrometers/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.Load()

	// Initialize logger
	logger := logging.NewLogger(cfg.Logging)
	logger.Info().
		Str("version", "v1.0.0").
		Str("service", "astrometers").
		Msg("🚀 Starting Astrometers server")

	// Initialize the Ephemeris Adapter (Swiss Ephemeris + embedded geocoder)
	adapter, err := ephemeris.NewSwissEphemerisAdapter(logger)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to initialize ephemeris adapter")
		log.Fatalf("Failed to initialize ephemeris adapter: %v", err)
	}
	logger.Info().Msg("🌍 Ephemeris adapter initialized successfully")

	// Load the meter registry: embedded defaults overlaid by any configured
	// override directory.
	meters, err := config.LoadMeters(cfg.Engine.MetersConfigDir)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to load meter configuration")
		log.Fatalf("Failed to load meter configuration: %v", err)
	}
	logger.Info().Int("meters", len(meters)).Msg("📊 Meter registry loaded")

	// Load the engine's tunable scalar constants and apply them before any
	// request can reach Evaluate.
	constants, err := config.LoadConstants(cfg.Engine.MetersConfigDir)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to load engine constants")
		log.Fatalf("Failed to load engine constants: %v", err)
	}
	engine.Configure(engine.Tunables{
		Sensitivity:      constants.Sensitivity,
		SigmaDivisor:     constants.SigmaDivisor,
		SpeedFloorDegDay: constants.SpeedFloorDegDay,
		ChartRulerBonus:  constants.ChartRulerBonus,
	})

	// Open the calibration store and overlay any percentile tables the
	// harness has already derived from production chart traffic onto the
	// embedded defaults.
	calStore, err := calibration.NewStore(cfg.Engine.CalibrationDBPath)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to open calibration store")
		log.Fatalf("Failed to open calibration store: %v", err)
	}
	defer calStore.Close()

	if err := config.LoadMeterTables(calStore, meters); err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to overlay calibration tables")
		log.Fatalf("Failed to overlay calibration tables: %v", err)
	}

	// Initialize services
	chartService := service.NewChartService(adapter, logger)
	meterService := service.NewMeterService(adapter, meters, logger)

	logger.Info().Msg("✅ All services initialized successfully")

	// Set up HTTP router
	ginRouter := gin.Default()

	// Register API routes
	httpRouter.RegisterRoutes(
		ginRouter,
		chartService,
		meterService,
		logger,
	)

	// Start server
	port := cfg.Server.Port
	logger.Info().
		Str("port", port).
		Str("health_endpoint", "http://localhost:"+port+"/health").
		Str("api_endpoint", "http://localhost:"+port+"/api/v1/readings").
		Msg("🌟 Server starting")

	if err := ginRouter.Run(":" + port); err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to run server")
		log.Fatalf("Failed to run server: %v", err)
	}
}
