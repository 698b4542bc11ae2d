package main

import (
	"go.uber.org/zap"

	"github.com/lost-woods/entropy/src/config"
	"github.com/lost-woods/entropy/src/entropy"
	"github.com/lost-woods/entropy/src/server"
)

func main() {
	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	src, err := cfg.NewSource()
	if err != nil {
		log.Fatal(err)
	}

	health := entropy.NewHealth()
	if err := entropy.Check(src, health); err != nil {
		health.Set(false, err.Error())
		log.Fatalw("initial source health check failed", "source", src.Name(), "error", err)
	}
	health.Set(true, "")

	log.Infow("serving entropy quality analysis", "source", src.Name(), "port", cfg.Port)
	server.New(cfg, src, health, log).RunOrDie()
}
