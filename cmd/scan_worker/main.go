package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"

	"crossmatch/internal/arb"
	"crossmatch/internal/cache"
	"crossmatch/internal/config"
	"crossmatch/internal/kafka"
	"crossmatch/internal/llm"
	"crossmatch/internal/logging"
	"crossmatch/internal/markets"
	"crossmatch/internal/match"
	"crossmatch/internal/metrics"
	"crossmatch/internal/queue"
	sqlstore "crossmatch/internal/storage/sqlite"
	"crossmatch/internal/validator"
	"crossmatch/internal/workers"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	cfg := config.FromEnv()
	brokers := kafka.Brokers()
	polyTopic := kafka.TopicFromEnv("POLYMARKET_KAFKA_TOPIC", kafka.DefaultPolymarketTopic)
	kalshiTopic := kafka.TopicFromEnv("KALSHI_KAFKA_TOPIC", kafka.DefaultKalshiTopic)
	oppTopic := kafka.TopicFromEnv("OPPORTUNITY_KAFKA_TOPIC", kafka.DefaultOpportunityTopic)
	group := config.EnvString("SCAN_WORKER_GROUP", "scan-worker")
	workerCount := config.EnvInt("SCAN_WORKER_CONSUMERS", 2)
	scanInterval := time.Duration(config.EnvInt("SCAN_INTERVAL_SECONDS", 30)) * time.Second
	snapshotMaxAge := time.Duration(config.EnvInt("SNAPSHOT_MAX_AGE_MINUTES", 15)) * time.Minute
	metricsAddr := config.EnvString("METRICS_ADDR", ":9090")

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Fatalf("[scan-worker] wait for broker: %v", err)
	}
	cancel()

	for _, topic := range []string{polyTopic, kalshiTopic, oppTopic} {
		ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
		if err := kafka.EnsureTopic(ensureCtx, brokers, topic); err != nil {
			logging.Errorf("[scan-worker] ensure topic %s warning: %v", topic, err)
		}
		cancelEnsure()
	}

	store, err := sqlstore.Open(os.Getenv("SQLITE_PATH"))
	if err != nil {
		logging.Fatalf("[scan-worker] open sqlite: %v", err)
	}
	defer store.Close()
	if err := store.CreateTables(ctx); err != nil {
		logging.Fatalf("[scan-worker] create tables: %v", err)
	}

	oppCache := openOpportunityCache()
	if oppCache != nil {
		defer oppCache.Close()
	}
	verdicts, pairValidator := openValidator()
	if verdicts != nil {
		defer verdicts.Close()
	}

	writer := kafka.NewWriter(brokers, oppTopic)
	defer writer.Close()

	book := workers.NewBook(snapshotMaxAge)
	ingest := func(ctx context.Context, snap *markets.Snapshot) error {
		book.Put(*snap)
		metrics.RecordSnapshot(string(snap.Platform), nil)
		return nil
	}
	go workers.Run(ctx, brokers, polyTopic, group, workerCount, ingest)
	go workers.Run(ctx, brokers, kalshiTopic, group, workerCount, ingest)

	go func() {
		if err := metrics.Serve(metricsAddr); err != nil {
			logging.Errorf("[scan-worker] metrics server: %v", err)
		}
	}()

	logging.Infof("[scan-worker] consuming %s + %s, scanning every %s", polyTopic, kalshiTopic, scanInterval)

	loop := scanLoop{
		cfg:       cfg,
		book:      book,
		store:     store,
		oppCache:  oppCache,
		verdicts:  verdicts,
		validator: pairValidator,
		writer:    writer,
	}

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logging.Infof("[scan-worker] shutting down")
			return
		case <-ticker.C:
			loop.runOnce(ctx)
		}
	}
}

// resolutionValidator is the slice of validator.Service the scan loop needs.
type resolutionValidator interface {
	Validate(ctx context.Context, pair *match.ValidatedPair) (*validator.Result, error)
}

type scanLoop struct {
	cfg       config.Config
	book      *workers.Book
	store     *sqlstore.Store
	oppCache  cache.OpportunityCache
	verdicts  cache.VerdictCache
	validator resolutionValidator
	writer    *kafkago.Writer
}

func (l *scanLoop) runOnce(ctx context.Context) {
	started := time.Now()
	now := time.Now().UTC()

	poly := l.book.MarketsFor(markets.PlatformPolymarket, now)
	kalshi := l.book.MarketsFor(markets.PlatformKalshi, now)
	if len(poly) == 0 || len(kalshi) == 0 {
		logging.Debugf("[scan-worker] book not warm yet (poly=%d kalshi=%d)", len(poly), len(kalshi))
		return
	}

	if err := l.store.UpsertMarkets(ctx, append(append([]markets.Market{}, poly...), kalshi...)); err != nil {
		logging.Errorf("[scan-worker] upsert markets: %v", err)
		metrics.RecordStoreWrite("upsert_markets", err)
	} else {
		metrics.RecordStoreWrite("upsert_markets", nil)
	}

	pairs := match.Markets(poly, kalshi, l.cfg)
	metrics.RecordScan(time.Since(started), len(pairs))
	for i := range pairs {
		metrics.EquivalenceScores.Observe(pairs[i].Score.OverallScore)
	}

	pairs = l.filterByVerdict(ctx, pairs)

	ops := arb.FindOpportunities(pairs, l.cfg)
	logging.Infof("[scan-worker] scan done: markets=%d/%d pairs=%d opportunities=%d in %s",
		len(poly), len(kalshi), len(pairs), len(ops), time.Since(started))

	publishable := make([]arb.Opportunity, 0, len(ops))
	for i := range ops {
		op := ops[i]
		if l.suppressed(ctx, op) {
			metrics.OpportunitiesSuppressed.Inc()
			continue
		}
		metrics.RecordOpportunity(op.Confidence.Grade)
		if err := l.store.InsertOpportunity(ctx, &op); err != nil {
			logging.Errorf("[scan-worker] insert opportunity: %v", err)
			metrics.RecordStoreWrite("insert_opportunity", err)
		} else {
			metrics.RecordStoreWrite("insert_opportunity", nil)
		}
		publishable = append(publishable, op)
	}

	if err := queue.PublishOpportunities(ctx, l.writer, publishable); err != nil {
		logging.Errorf("[scan-worker] publish opportunities: %v", err)
	}
}

// filterByVerdict drops pairs the LLM judged unsafe. Verdicts are cached per
// pair + criteria revision, so each pair costs at most one call. A failed LLM
// call keeps the pair unvalidated and uncached; it never blocks the scan.
func (l *scanLoop) filterByVerdict(ctx context.Context, pairs []match.ValidatedPair) []match.ValidatedPair {
	if l.validator == nil {
		return pairs
	}
	kept := pairs[:0]
	for i := range pairs {
		pair := pairs[i]
		key := cache.VerdictKey(pair.PairID, pair.MarketA.Text(), pair.MarketB.Text())
		safe, found, err := l.verdicts.Get(ctx, key)
		if err != nil {
			logging.Errorf("[scan-worker] verdict cache get: %v", err)
		}
		if !found {
			res, err := l.validator.Validate(ctx, &pair)
			if err != nil {
				logging.Errorf("[scan-worker] validate pair %s: %v, keeping unvalidated", pair.PairID, err)
				kept = append(kept, pair)
				continue
			}
			safe = res.ValidResolution
			if !safe {
				logging.Infof("[scan-worker] pair %s rejected: %s", pair.PairID, res.ResolutionReason)
			}
			if err := l.verdicts.Set(ctx, key, safe); err != nil {
				logging.Errorf("[scan-worker] verdict cache set: %v", err)
			}
		}
		if safe {
			kept = append(kept, pair)
		}
	}
	return kept
}

// suppressed reports whether the dedupe cache already holds an equal or
// better result for this pair, updating it otherwise.
func (l *scanLoop) suppressed(ctx context.Context, op arb.Opportunity) bool {
	if l.oppCache == nil {
		return false
	}
	record, found, err := l.oppCache.Get(ctx, op.Pair.PairID)
	if err != nil {
		logging.Errorf("[scan-worker] opportunity cache get: %v", err)
		return false
	}
	if found && !record.Beats(op) {
		return true
	}
	if err := l.oppCache.Set(ctx, op.Pair.PairID, cache.RecordFromOpportunity(op)); err != nil {
		logging.Errorf("[scan-worker] opportunity cache set: %v", err)
	}
	return false
}

func openOpportunityCache() cache.OpportunityCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logging.Infof("[scan-worker] REDIS_ADDR unset, dedupe disabled")
		return nil
	}
	ttl := time.Duration(config.EnvInt("CACHE_TTL_HOURS", 240)) * time.Hour
	c, err := cache.NewRedisOpportunityCache(addr, os.Getenv("REDIS_PASSWORD"), config.EnvInt("REDIS_DB", 0), ttl, "pair_best")
	if err != nil {
		logging.Fatalf("[scan-worker] open opportunity cache: %v", err)
	}
	return c
}

func openValidator() (cache.VerdictCache, resolutionValidator) {
	if os.Getenv("LLM_API_KEY") == "" {
		logging.Infof("[scan-worker] LLM_API_KEY unset, resolution validation disabled")
		return nil, nil
	}
	client, err := llm.FromEnv()
	if err != nil {
		logging.Fatalf("[scan-worker] llm client: %v", err)
	}
	svc, err := validator.NewService(validator.Config{LLMClient: client})
	if err != nil {
		logging.Fatalf("[scan-worker] validator: %v", err)
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logging.Fatalf("[scan-worker] resolution validation requires REDIS_ADDR for the verdict cache")
	}
	ttl := time.Duration(config.EnvInt("CACHE_TTL_HOURS", 240)) * time.Hour
	verdicts, err := cache.NewRedisVerdictCache(addr, os.Getenv("REDIS_PASSWORD"), config.EnvInt("REDIS_DB", 0), ttl, "pair_verdict")
	if err != nil {
		logging.Fatalf("[scan-worker] open verdict cache: %v", err)
	}
	return verdicts, svc
}
