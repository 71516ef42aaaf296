// launching the server, storage, kafka and compression engine
package appServer

import (
	"context"
	"crypto/tls"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alltools-tech/true-pdf/config"
	"github.com/alltools-tech/true-pdf/internal/database"
	"github.com/alltools-tech/true-pdf/internal/pkg/engine"
	"github.com/alltools-tech/true-pdf/internal/pkg/kafka"
	"github.com/alltools-tech/true-pdf/internal/pkg/optimizer"
	"github.com/alltools-tech/true-pdf/internal/pkg/rasterizer"
	"github.com/alltools-tech/true-pdf/internal/pkg/storage"
	"github.com/alltools-tech/true-pdf/internal/service"
	"github.com/alltools-tech/true-pdf/internal/transport"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	fileStorage := storage.NewFileStorage(cfg.App.StoragePath)
	docRepo := database.NewDocumentRepository(fileStorage)
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	recompressEngine := engine.NewRecompressEngine()
	pdfOptimizer := optimizer.NewOptimizer()
	pdfRasterizer := rasterizer.NewRasterizer()
	compressService := service.NewCompressService(docRepo, kafkaProducer, recompressEngine, pdfOptimizer, pdfRasterizer, cfg.Kafka.Topic)
	docHandler := transport.NewDocumentHandler(compressService, cfg.App.DefaultLevel, cfg.App.DefaultQuality)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(docHandler)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}
