package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebookgo/flagenv"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uvensys/cerberus"
	"github.com/uvensys/cerberus/internal"
	"github.com/uvensys/cerberus/lib/bot"
	"github.com/uvensys/cerberus/lib/challenge"
	_ "github.com/uvensys/cerberus/lib/challenge/proofofwork"
	"github.com/uvensys/cerberus/lib/store"
	_ "github.com/uvensys/cerberus/lib/store/all"
	"github.com/uvensys/cerberus/lib/telegram"
)

var (
	botToken            = flag.String("bot-token", "", "Telegram bot token")
	challengeDifficulty = flag.Int("difficulty", cerberus.DefaultDifficulty, "number of leading zero hex digits required of a solution hash")
	challengeMethod     = flag.String("challenge-method", "sha256", "challenge verification method")
	metricsBind         = flag.String("metrics-bind", ":9090", "network address to bind metrics to")
	powBaseURL          = flag.String("pow-base-url", cerberus.DefaultPoWBaseURL, "base URL of the hosted proof-of-work solver page")
	secretLength        = flag.Int("secret-length", cerberus.DefaultSecretLength, "length of generated challenge secrets")
	slogLevel           = flag.String("slog-level", "INFO", "logging level (see https://pkg.go.dev/log/slog#hdr-Levels)")
	storeBackend        = flag.String("store-backend", "memory", "store backend for challenge state")
	versionFlag         = flag.Bool("version", false, "print Cerberus version")
)

func main() {
	flagenv.Parse()
	flag.Parse()

	if *versionFlag {
		fmt.Println("Cerberus", cerberus.Version)
		return
	}

	internal.InitSlog(*slogLevel)

	if *botToken == "" {
		log.Fatal("BOT_TOKEN must be set to your Telegram bot token")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory, ok := store.Get(*storeBackend)
	if !ok {
		log.Fatalf("unknown store backend %q, have: %v", *storeBackend, store.Methods())
	}

	backend, err := factory.Build(ctx, nil)
	if err != nil {
		log.Fatalf("can't build store backend %s: %v", *storeBackend, err)
	}

	reg, err := challenge.NewRegistry(challenge.Options{
		Store:        backend,
		Method:       *challengeMethod,
		Difficulty:   *challengeDifficulty,
		SecretLength: *secretLength,
	})
	if err != nil {
		log.Fatalf("can't construct challenge registry: %v", err)
	}

	tg, err := telegram.New(*botToken)
	if err != nil {
		log.Fatalf("can't connect to Telegram: %v", err)
	}

	b, err := bot.New(bot.Options{
		API:      tg,
		Registry: reg,
		BaseURL:  *powBaseURL,
	})
	if err != nil {
		log.Fatalf("can't construct bot: %v", err)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		if err := http.ListenAndServe(*metricsBind, mux); err != nil {
			log.Fatalf("can't serve metrics on %s: %v", *metricsBind, err)
		}
	}()

	slog.Info("cerberus is up",
		"version", cerberus.Version,
		"username", tg.Self(),
		"difficulty", *challengeDifficulty,
		"pow_base_url", *powBaseURL,
		"store_backend", *storeBackend,
	)

	for upd := range tg.Updates(ctx) {
		b.HandleUpdate(ctx, upd)
	}

	slog.Info("shutting down")
}
