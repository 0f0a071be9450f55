package main

import (
	"context"
	_ "embed"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/archetype-balancer/internal/config"
	"github.com/KirkDiggler/archetype-balancer/internal/consensus"
	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	"github.com/KirkDiggler/archetype-balancer/internal/events"
	"github.com/KirkDiggler/archetype-balancer/internal/repositories/archetypes"
	"github.com/KirkDiggler/archetype-balancer/internal/repositories/classes"
	"github.com/KirkDiggler/archetype-balancer/internal/services"
	"github.com/KirkDiggler/archetype-balancer/internal/services/balance"
	"github.com/KirkDiggler/archetype-balancer/internal/uuid"
)

//go:embed demo_roster.yaml
var demoRosterYAML []byte

//go:embed demo_archetype.yaml
var demoArchetypeYAML []byte

// options are the persistent flags; set ones override the environment
type options struct {
	verbose      bool
	routine      string
	threshold    float64
	consensusURL string
	hotfixRounds int
	hotfixRate   float64
	rosterFile   string
}

type app struct {
	opts           *options
	cfg            *config.Config
	providerConfig *services.ProviderConfig
	provider       *services.Provider
	redisClient    *redis.Client
	out            io.Writer
}

func newApp() *app {
	return &app{opts: &options{}}
}

// setup loads configuration and wires the service provider
func (a *app) setup(cmd *cobra.Command) error {
	if a.opts.verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}
	a.out = cmd.OutOrStdout()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	routine, err := consensus.New(&consensus.Config{
		Routine:      cfg.Consensus.Routine,
		JoyThreshold: cfg.Consensus.JoyThreshold,
		URL:          cfg.Consensus.URL,
		Timeout:      cfg.Consensus.Timeout,
	})
	if err != nil {
		return err
	}
	log.Printf("Using %s consensus routine with joy threshold %v", cfg.Consensus.Routine, cfg.Consensus.JoyThreshold)

	bus := events.NewBus()
	bus.SubscribeAll(events.NewLogListener(nil))

	providerConfig := &services.ProviderConfig{
		Routine:    routine,
		EventBus:   bus,
		Out:        a.out,
		HotfixRate: cfg.Hotfix.Rate,
	}
	a.connectRedis(cfg.Redis.URL, providerConfig)
	a.providerConfig = providerConfig

	provider, err := services.NewProvider(providerConfig)
	if err != nil {
		return err
	}
	a.provider = provider

	return nil
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("consensus") {
		cfg.Consensus.Routine = a.opts.routine
	}
	if flags.Changed("threshold") {
		cfg.Consensus.JoyThreshold = a.opts.threshold
	}
	if flags.Changed("consensus-url") {
		cfg.Consensus.URL = a.opts.consensusURL
	}
	if flags.Changed("hotfix-rounds") {
		cfg.Hotfix.Rounds = a.opts.hotfixRounds
	}
	if flags.Changed("hotfix-rate") {
		cfg.Hotfix.Rate = a.opts.hotfixRate
	}
	if flags.Changed("roster") {
		cfg.RosterFile = a.opts.rosterFile
	}
}

// connectRedis switches the provider to Redis repositories when the URL works
func (a *app) connectRedis(redisURL string, providerConfig *services.ProviderConfig) {
	if redisURL == "" {
		log.Println("No REDIS_URL found, using in-memory repositories")
		return
	}

	log.Printf("Connecting to Redis at: %s", redisURL)

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Failed to parse Redis URL: %v", err)
		log.Println("Falling back to in-memory repositories")
		return
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Falling back to in-memory repositories")
		_ = client.Close()
		return
	}

	log.Println("Successfully connected to Redis")
	a.redisClient = client
	providerConfig.ClassRepository = classes.NewRedis(client)
	providerConfig.ArchetypeRepository = archetypes.NewRedis(client)
}

func (a *app) close() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	} else {
		log.Println("Closed Redis connection")
	}
	a.redisClient = nil
}

// loadRoster reads the configured roster file, or the built-in demo roster
func (a *app) loadRoster() ([]*entities.ClassDefinition, error) {
	if a.cfg != nil && a.cfg.RosterFile != "" {
		return classes.LoadRoster(a.cfg.RosterFile)
	}
	return classes.ParseRoster(demoRosterYAML)
}

// ensureRoster seeds the class store when it is empty
func (a *app) ensureRoster(ctx context.Context) error {
	repo := a.provider.ClassRepository

	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Using %d stored classes", len(existing))
		return nil
	}

	roster, err := a.loadRoster()
	if err != nil {
		return err
	}
	log.Printf("Seeding %d classes", len(roster))
	return classes.Seed(ctx, repo, uuid.NewGoogleUUIDGenerator(), roster)
}

// propose balances input against the stored class roster
func (a *app) propose(ctx context.Context, input *entities.ArchetypeInput) error {
	if err := a.ensureRoster(ctx); err != nil {
		return err
	}
	return a.balance(ctx, a.provider.BalanceService, input)
}

// runDemo balances the Stormweaver against the embedded roster, never the store
func (a *app) runDemo(ctx context.Context) error {
	roster, err := classes.ParseRoster(demoRosterYAML)
	if err != nil {
		return err
	}

	demoClasses := classes.NewInMemoryRepository()
	if err := classes.Seed(ctx, demoClasses, uuid.NewGoogleUUIDGenerator(), roster); err != nil {
		return err
	}

	demoConfig := *a.providerConfig
	demoConfig.ClassRepository = demoClasses
	provider, err := services.NewProvider(&demoConfig)
	if err != nil {
		return err
	}

	input, err := entities.ParseArchetypeInput(demoArchetypeYAML)
	if err != nil {
		return err
	}
	return a.balance(ctx, provider.BalanceService, input)
}

// balance proposes input, checks it and applies configured hotfix rounds
func (a *app) balance(ctx context.Context, svc balance.Service, input *entities.ArchetypeInput) error {
	archetype, err := svc.ProposeArchetype(ctx, input)
	if err != nil {
		return err
	}

	result, err := svc.Equilibrate(ctx, archetype, a.cfg.Hotfix.Rounds)
	if err != nil {
		return err
	}

	if result.Rounds > 0 {
		hotfixColor.Fprintf(a.out, "%s hotfixed to %s after %d round(s)\n",
			result.Archetype.Name, result.Archetype.PowerVector, result.Rounds)
	}
	return nil
}

func readArchetypeInput(path string) (*entities.ArchetypeInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return entities.ParseArchetypeInput(data)
}
