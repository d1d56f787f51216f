package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/stockex/config"
	"github.com/joripage/stockex/pkg/api"
	"github.com/joripage/stockex/pkg/exchange"
	redis_wrapper "github.com/joripage/stockex/pkg/infra/redis"
	"github.com/joripage/stockex/pkg/logging"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "path to config file")
	flag.Parse()

	go func() {
		http.ListenAndServe("localhost:6060", nil)
	}()

	log := logging.InitGlobal(logging.INFO)
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var cache exchange.InfoCache
	if cfg.InfoCache != nil {
		client, err := redis_wrapper.InitRedis(cfg.InfoCache)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init redis: %v\n", err)
			os.Exit(1)
		}
		cache = redis_wrapper.NewInfoCache(client, time.Minute)
	}

	seeds := make([]exchange.SymbolSeed, 0, len(cfg.Symbols))
	for _, s := range cfg.Symbols {
		seeds = append(seeds, exchange.SymbolSeed{
			Symbol:       s.Symbol,
			Price:        decimal.NewFromFloat(s.Price),
			AveragePrice: decimal.NewFromFloat(s.AveragePrice),
		})
	}

	eng := exchange.NewExchange(seeds, cache)
	server := api.NewServer(eng, log)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(cfg.HTTPAddr); err != nil {
			fmt.Fprintf(os.Stderr, "http server: %v\n", err)
			os.Exit(1)
		}
	}()
	fmt.Printf("%s listening on %s. Press Ctrl+C to exit.\n", cfg.ServiceName, cfg.HTTPAddr)

	<-sigs
	fmt.Println("Shutting down...")
}
