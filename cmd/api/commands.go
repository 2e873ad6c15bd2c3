package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/bistro-api/internal/config"
	"github.com/harentsoaR/bistro-api/internal/handlers"
	"github.com/harentsoaR/bistro-api/internal/middleware"
	"github.com/harentsoaR/bistro-api/internal/store"
	"github.com/harentsoaR/bistro-api/internal/utils"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.mongodb.org/mongo-driver/mongo"
)

const shutdownGrace = 15 * time.Second

func serve() cli.Command {
	return cli.Command{
		Name:   "serve",
		Usage:  "run the HTTP API",
		Action: serveAction,
	}
}

func ensureIndexes() cli.Command {
	return cli.Command{
		Name:  "indexes",
		Usage: "create the collection indexes the API relies on",
		Action: func(c *cli.Context) error {
			return withStore(func(ctx context.Context, conf *config.Config, conn *store.MongoConnector) error {
				return conn.EnsureIndexes(ctx)
			})
		},
	}
}

func promote() cli.Command {
	return cli.Command{
		Name:  "promote",
		Usage: "grant the admin role to a registered user",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "email, e",
				Usage: "email of the user to promote",
			},
		},
		Action: func(c *cli.Context) error {
			email := c.String("email")
			if email == "" {
				return errors.New("must specify --email")
			}
			return withStore(func(ctx context.Context, conf *config.Config, conn *store.MongoConnector) error {
				res, err := conn.PromoteUserByEmail(ctx, email)
				if err != nil {
					return err
				}
				if res.MatchedCount == 0 {
					return errors.Errorf("no user with email '%s'", email)
				}
				grip.Notice(message.Fields{
					"message":  "promoted user",
					"email":    email,
					"modified": res.ModifiedCount,
				})
				return nil
			})
		},
	}
}

// withStore loads and validates the configuration, connects, runs fn and
// disconnects.
func withStore(fn func(context.Context, *config.Config, *store.MongoConnector) error) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.RequestTimeout)
	defer cancel()

	client, err := store.Connect(ctx, conf.Mongo.MongoURI(), conf.Server.RequestTimeout)
	if err != nil {
		return err
	}
	defer disconnect(client)

	return fn(ctx, conf, store.NewMongoConnector(client.Database(conf.Mongo.Database)))
}

func serveAction(c *cli.Context) error {
	grip.SetName("bistro-api")

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	tokens, err := utils.NewTokenManager(conf.Auth.Secret, conf.Auth.TokenTTL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, conf.Mongo.MongoURI(), conf.Server.RequestTimeout)
	if err != nil {
		return err
	}
	defer disconnect(client)
	grip.Info(message.Fields{
		"message":  "connected to MongoDB",
		"database": conf.Mongo.Database,
	})

	conn := store.NewMongoConnector(client.Database(conf.Mongo.Database))
	if err = conn.EnsureIndexes(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              conf.Server.Addr(),
		Handler:           newRouter(conf, handlers.NewHandler(conn, tokens, conf.Server.RequestTimeout)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       conf.Server.RequestTimeout,
		WriteTimeout:      2 * conf.Server.RequestTimeout,
		IdleTimeout:       time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		grip.Info(message.Fields{
			"message": "starting server",
			"addr":    srv.Addr,
		})
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving HTTP")
	case <-ctx.Done():
	}

	grip.Notice("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutting down HTTP server")
}

func newRouter(conf *config.Config, h *handlers.Handler) *gin.Engine {
	gin.SetMode(conf.Server.GinMode)

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(cors.New(corsConfig(conf.Server.CORSOrigins)))

	handlers.RegisterRoutes(r, h)
	return r
}

func corsConfig(origins []string) cors.Config {
	conf := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
		return conf
	}
	conf.AllowOrigins = origins
	conf.AllowCredentials = true
	return conf
}

func loadConfig() (*config.Config, error) {
	conf, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err = conf.Validate(); err != nil {
		return nil, err
	}

	grip.Info(message.Fields{
		"message":         "loaded configuration",
		"database":        conf.Mongo.Database,
		"port":            conf.Server.Port,
		"token_ttl":       conf.Auth.TokenTTL.String(),
		"request_timeout": conf.Server.RequestTimeout.String(),
		"cors_origins":    conf.Server.CORSOrigins,
		"uri_from_env":    conf.Mongo.URI != "",
	})
	return conf, nil
}

func disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	grip.Warning(message.WrapError(client.Disconnect(ctx), message.Fields{
		"message": "disconnecting from MongoDB",
	}))
	grip.Info("disconnected from MongoDB")
}
