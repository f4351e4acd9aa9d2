// g4fchat is a console chat client that routes prompts through a pool
// of text-generation providers with sticky-provider fallback.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/AITechnologyDev/G4FChat/internal/archive"
	"github.com/AITechnologyDev/G4FChat/internal/channel"
	"github.com/AITechnologyDev/G4FChat/internal/chat"
	"github.com/AITechnologyDev/G4FChat/internal/config"
	"github.com/AITechnologyDev/G4FChat/internal/eventbus"
	"github.com/AITechnologyDev/G4FChat/internal/generator"
	"github.com/AITechnologyDev/G4FChat/internal/i18n"
	"github.com/AITechnologyDev/G4FChat/internal/llm"
	"github.com/AITechnologyDev/G4FChat/internal/security"
	"github.com/AITechnologyDev/G4FChat/internal/session"
	"github.com/AITechnologyDev/G4FChat/internal/ui"
)

var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	noTelegram := flag.Bool("no-telegram", false, "run console only, even when a telegram token is configured")
	quiet := flag.Bool("quiet", false, "suppress attempt logging")
	flag.Parse()

	if *showVersion {
		fmt.Println("g4fchat " + version)
		return
	}

	if err := run(*noTelegram, *quiet); err != nil {
		log.Fatalf("[main] %v", err)
	}
}

func run(noTelegram, quiet bool) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		log.Printf("[main] load config: %v (using defaults)", err)
		cfg = config.Defaults()
	}

	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	keys, err := security.NewKeyStore(dir, os.Getenv("G4FCHAT_VAULT_PASSWORD"))
	if err != nil {
		log.Printf("[main] key store unavailable: %v (config keys used as-is)", err)
	} else {
		for i := range cfg.Providers {
			cfg.Providers[i].APIKey = keys.Resolve(cfg.Providers[i].APIKey)
		}
		if cfg.Channels.Telegram != nil {
			cfg.Channels.Telegram.Token = keys.Resolve(cfg.Channels.Telegram.Token)
		}
	}

	registry := llm.NewRegistry(llm.BuildCatalog(cfg.Providers), cfg.Registry)
	active := registry.Init()
	log.Printf("[main] %d providers active: %v", len(active), registry.Names())

	store := session.NewFileStore(dir, cfg.Chat.SystemPrompt)

	var archiver chat.Archiver
	arch, err := archive.New(filepath.Join(dir, "archive.db"))
	if err != nil {
		log.Printf("[main] archive unavailable: %v (transcripts will not be recorded)", err)
	} else {
		archiver = arch
		defer arch.Close()
	}

	bus := eventbus.New()
	if !quiet {
		subscribeLogging(bus)
	}

	gen := generator.New(registry, store, bus, generator.Options{
		DefaultModel: cfg.Chat.DefaultModel,
		Timeout:      time.Duration(cfg.Generation.TimeoutSecs) * time.Second,
		MaxChars:     cfg.Generation.MaxResponseChars,
		RetryDelay:   time.Duration(cfg.Generation.RetryDelayMS) * time.Millisecond,
	})

	svc := chat.New(store, gen, registry, archiver, bus, chat.Options{
		Models:       cfg.Chat.Models,
		DefaultModel: cfg.Chat.DefaultModel,
		CodeDir:      filepath.Join(dir, "code"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	manager := channel.NewManager()

	console := channel.NewConsoleChannel()
	console.OnQuit(cancel)
	manager.Register(console)

	attachHandler(ctx, console, svc, store)

	if tg := cfg.Channels.Telegram; tg != nil && tg.Token != "" && !noTelegram {
		telegram := channel.NewTelegramChannel(*tg)
		manager.Register(telegram)
		attachHandler(ctx, telegram, svc, store)
	}

	lang := cfg.Chat.DefaultLang
	fmt.Println(ui.Banner(version))
	fmt.Println(i18n.T("welcome", lang))

	if err := manager.StartAll(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	manager.StopAll(context.Background())
	fmt.Println()
	return nil
}

// attachHandler wires a channel's inbound messages into the chat
// service, rendering replies to fit the surface.
func attachHandler(ctx context.Context, ch channel.Channel, svc *chat.Service, store session.Store) {
	styled := ch.Name() == "console"
	ch.OnMessage(func(msg channel.InboundMessage) {
		reply := svc.Handle(ctx, msg.SenderID, msg.Text)

		lang := store.Lang(msg.SenderID)
		if lang == "" {
			lang = "en"
		}
		var text string
		if styled {
			text = ui.RenderReply(reply, lang)
		} else {
			text = ui.PlainReply(reply, lang)
		}
		if err := ch.Send(ctx, channel.OutboundMessage{RecipientID: msg.SenderID, Text: text}); err != nil {
			log.Printf("[main] send via %s: %v", ch.Name(), err)
		}
	})
}

func subscribeLogging(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.TopicAttemptStarted, func(e eventbus.Event) {
		if a, ok := e.Payload.(eventbus.AttemptEvent); ok {
			log.Printf("[attempt] trying %s (model %s, sticky=%v)", a.Provider, a.Model, a.Sticky)
		}
	})
	bus.Subscribe(eventbus.TopicAttemptFailed, func(e eventbus.Event) {
		if a, ok := e.Payload.(eventbus.AttemptEvent); ok {
			log.Printf("[attempt] %s failed: %s", a.Provider, a.Err)
		}
	})
	bus.Subscribe(eventbus.TopicExhausted, func(e eventbus.Event) {
		if a, ok := e.Payload.(eventbus.AttemptEvent); ok {
			log.Printf("[generator] all providers exhausted (model %s)", a.Model)
		}
	})
	bus.Subscribe(eventbus.TopicError, func(e eventbus.Event) {
		log.Printf("[error] %v", e.Payload)
	})
}
