package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/trekmark/trekmark-api/background"
	"github.com/trekmark/trekmark-api/logmodule"
	"github.com/trekmark/trekmark-api/schema"
	"github.com/trekmark/trekmark-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.MongoStore

	// background job enqueuer, may be nil when no queue is configured
	jobs background.Enqueuer

	// JWT private key
	jwtPrivateKey *rsa.PrivateKey

	// resource handlers
	tours   *resourceHandler[schema.Tour]
	users   *resourceHandler[schema.User]
	reviews *resourceHandler[schema.Review]
}

// NewServer new instance of server
func NewServer(mongoStore store.MongoStore, jobs background.Enqueuer, jwtKey *rsa.PrivateKey) *Server {
	s := &Server{
		store:         mongoStore,
		jobs:          jobs,
		jwtPrivateKey: jwtKey,
	}

	s.tours = &resourceHandler[schema.Tour]{
		singular: "tour",
		plural:   "tours",
		res:      mongoStore.TourResource(),
	}
	s.users = &resourceHandler[schema.User]{
		singular: "user",
		plural:   "users",
		res:      mongoStore.UserResource(),
	}
	s.reviews = &resourceHandler[schema.Review]{
		singular:   "review",
		plural:     "reviews",
		res:        mongoStore.ReviewResource(),
		scope:      reviewScope,
		prepare:    s.setReviewRefs,
		afterWrite: s.afterReviewWrite,
	}

	return s
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api/v1")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.Default())

	tourRoute := apiRoute.Group("/tours")
	{
		tourRoute.GET("", s.tours.getAll)
		tourRoute.GET("/top-5-cheap", s.aliasTopTours, s.tours.getAll)
		tourRoute.GET("/stats", s.tourStats)
		tourRoute.GET("/monthly-plan/:year",
			s.authMiddleware(),
			s.restrictTo(schema.RoleAdmin, schema.RoleLeadGuide, schema.RoleGuide),
			s.monthlyPlan)
		tourRoute.GET("/within/:distance/center/:latlng/unit/:unit", s.toursWithin)
		tourRoute.GET("/:id", s.tours.getOne)

		tourRoute.POST("",
			s.authMiddleware(),
			s.restrictTo(schema.RoleAdmin, schema.RoleLeadGuide),
			s.tours.createOne)
		tourRoute.PATCH("/:id",
			s.authMiddleware(),
			s.restrictTo(schema.RoleAdmin, schema.RoleLeadGuide),
			s.tours.updateOne)
		tourRoute.DELETE("/:id",
			s.authMiddleware(),
			s.restrictTo(schema.RoleAdmin, schema.RoleLeadGuide),
			s.tours.deleteOne)

		// reviews nested under their tour
		tourRoute.GET("/:id/reviews",
			s.authMiddleware(),
			s.restrictTo(schema.RoleAdmin, schema.RoleLeadGuide),
			s.reviews.getAll)
		tourRoute.POST("/:id/reviews",
			s.authMiddleware(),
			s.restrictTo(schema.RoleUser),
			s.reviews.createOne)
	}

	reviewRoute := apiRoute.Group("/reviews")
	reviewRoute.Use(s.authMiddleware())
	{
		reviewRoute.GET("", s.restrictTo(schema.RoleAdmin, schema.RoleLeadGuide), s.reviews.getAll)
		reviewRoute.POST("", s.restrictTo(schema.RoleUser), s.reviews.createOne)
		reviewRoute.GET("/:id", s.reviews.getOne)
		reviewRoute.PATCH("/:id", s.restrictTo(schema.RoleUser, schema.RoleAdmin), s.reviews.updateOne)
		reviewRoute.DELETE("/:id", s.restrictTo(schema.RoleUser, schema.RoleAdmin), s.reviews.deleteOne)
	}

	userRoute := apiRoute.Group("/users")
	{
		userRoute.POST("/signup", s.signup)
		userRoute.POST("/login", s.login)
	}

	userRoute.Use(s.authMiddleware())
	{
		userRoute.GET("/me", s.getMe)
		userRoute.PATCH("/me", s.updateMe)
		userRoute.DELETE("/me", s.deleteMe)
		userRoute.PATCH("/me/password", s.updatePassword)
	}

	userRoute.Use(s.restrictTo(schema.RoleAdmin))
	{
		userRoute.GET("", s.users.getAll)
		userRoute.GET("/:id", s.users.getOne)
		userRoute.PATCH("/:id", s.users.updateOne)
		userRoute.DELETE("/:id", s.users.deleteOne)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.store.Ping(); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}
