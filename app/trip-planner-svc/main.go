package main

import (
	"fmt"
	logger "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/jmoiron/sqlx"
	"github.com/nats-io/nats.go"

	"github.com/maharmandeeep/Danjo-trip-planner/app/trip-planner-svc/planner"
	"github.com/maharmandeeep/Danjo-trip-planner/business/route"
	"github.com/maharmandeeep/Danjo-trip-planner/foundation/database"
	"github.com/maharmandeeep/Danjo-trip-planner/foundation/httpclient"
)

var build = "develop"

func main() {
	log := logger.New(os.Stdout, "TRIP_PLANNER : ", logger.LstdFlags|logger.Lmicroseconds|logger.Lshortfile)
	if err := run(log); err != nil {
		log.Printf("main: error: %v", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	var cfg struct {
		conf.Version
		Args conf.Args
		Web  struct {
			Port int `conf:"default:8080"`
		}
		DB struct {
			User               string `conf:"default:postgres"`
			Password           string `conf:"default:postgres,noprint"`
			Host               string `conf:"default:0.0.0.0"`
			Name               string `conf:"default:postgres"`
			DisableTLS         bool   `conf:"default:true"`
			EnableGeocodeCache bool   `conf:"default:false"`
		}
		NATS struct {
			Url          string `conf:"default:nats://localhost:4222"`
			PublishTrips bool   `conf:"default:false"`
		}
		Route struct {
			NominatimUrl   string `conf:"default:https://nominatim.openstreetmap.org/search"`
			DirectionsUrl  string `conf:"default:https://api.openrouteservice.org/v2/directions/driving-hgv"`
			OrsApiKey      string `conf:"noprint"`
			TimeoutSeconds int    `conf:"default:15"`
		}
	}
	cfg.Version.SVN = build
	cfg.Version.Desc = "Plan truck trips under FMCSA hours-of-service rules"
	const prefix = "PLANNER"
	if err := conf.Parse(os.Args[1:], prefix, &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage(prefix, &cfg)
			if err != nil {
				return fmt.Errorf("generating config usage: %w", err)
			}
			printUsage(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString(prefix, &cfg)
			if err != nil {
				return fmt.Errorf("generating config version: %w", err)
			}
			fmt.Println(version)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Printf("main : Started : Application initializing : version %s", build)
	defer log.Println("main: Completed")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Printf("main: Config :\n%v\n", out)

	// =========================================================================
	// Start Database (geocode cache only, the planner runs without it)

	var db *sqlx.DB
	if cfg.DB.EnableGeocodeCache {
		log.Println("main: Initializing database support for the geocode cache")
		db, err = database.Open(database.Config{
			User:       cfg.DB.User,
			Password:   cfg.DB.Password,
			Host:       cfg.DB.Host,
			Name:       cfg.DB.Name,
			DisableTLS: cfg.DB.DisableTLS,
		})
		if err != nil {
			return fmt.Errorf("connecting to db: %w", err)
		}
		defer func() {
			log.Printf("main: Database Stopping : %s", cfg.DB.Host)
			if err := db.Close(); err != nil {
				log.Printf("main: error closing database: %v", err)
			}
		}()
	}

	// =========================================================================
	// Start NATS

	var natsConnection *nats.Conn
	if cfg.NATS.PublishTrips {
		log.Printf("main: Connecting to NATS at %s", cfg.NATS.Url)
		natsConnection, err = nats.Connect(cfg.NATS.Url)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer natsConnection.Close()
	}

	// =========================================================================
	// Build providers and serve

	client := httpclient.New(time.Duration(cfg.Route.TimeoutSeconds)*time.Second, "DanjoTripPlanner/1.0")
	geocoder := route.NewGeocoder(log, client, cfg.Route.NominatimUrl, db)
	directions := route.NewDirections(log, client, cfg.Route.DirectionsUrl, cfg.Route.OrsApiKey)
	publisher := planner.MakeTripPublisher(log, natsConnection, cfg.NATS.PublishTrips)

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	return planner.RunWebService(log, geocoder, directions, publisher, cfg.Web.Port, shutdown)
}

func printUsage(confUsage string) {
	fmt.Println(confUsage)
}
