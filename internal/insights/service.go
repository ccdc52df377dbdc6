package insights

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"spendsight/internal/core"
	"spendsight/internal/identity"
	"spendsight/internal/log"
	"spendsight/internal/records"
)

// ServiceConfig bounds the record window the pipeline analyzes.
type ServiceConfig struct {
	// Window is how far back records are fetched.
	Window time.Duration

	// Limit caps how many records are analyzed per call.
	Limit int
}

// DefaultServiceConfig returns the analysis contract defaults: the last 30
// days, capped at the 50 most recent records.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Window: 30 * 24 * time.Hour,
		Limit:  50,
	}
}

type (
	// InsightGenerator produces the ordered insight list for an aggregation.
	InsightGenerator interface {
		Generate(ctx context.Context, agg core.Aggregation) ([]core.Insight, error)
	}

	// AnswerSynthesizer expands one insight into a narrative answer.
	AnswerSynthesizer interface {
		Synthesize(ctx context.Context, ins core.Insight, agg core.Aggregation) (string, error)
	}
)

// Service orchestrates the insight pipeline: resolve the caller, fetch the
// record window, aggregate once, generate insights, then synthesize answers
// concurrently. Apart from an unauthenticated caller, every failure degrades
// to fixed content; the caller always receives a non-empty, well-formed list.
type Service struct {
	resolver    identity.Resolver
	store       records.Store
	generator   InsightGenerator
	synthesizer AnswerSynthesizer
	logger      *log.Logger

	window time.Duration
	limit  int
	now    func() time.Time
}

func NewService(
	resolver identity.Resolver,
	store records.Store,
	generator InsightGenerator,
	synthesizer AnswerSynthesizer,
	logger *log.Logger,
	cfg ServiceConfig,
) *Service {
	if cfg.Window <= 0 {
		cfg.Window = DefaultServiceConfig().Window
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultServiceConfig().Limit
	}
	return &Service{
		resolver:    resolver,
		store:       store,
		generator:   generator,
		synthesizer: synthesizer,
		logger:      logger.WithComponent(log.ComponentInsights),
		window:      cfg.Window,
		limit:       cfg.Limit,
		now:         time.Now,
	}
}

// GetInsights returns the ordered insight list for the caller identified by
// token. It errors only when the caller cannot be identified.
func (s *Service) GetInsights(ctx context.Context, token string) ([]core.Insight, error) {
	userID, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	recs, err := s.store.ListRecent(ctx, userID, s.now().Add(-s.window), s.limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Record fetch failed",
			log.FieldUserID, userID, log.FieldError, err.Error(),
			log.FieldScenario, string(ScenarioTotalFailure))
		return DefaultInsights(ScenarioTotalFailure), nil
	}

	if len(recs) == 0 {
		s.logger.InfoContext(ctx, "No records in window, returning onboarding insights",
			log.FieldUserID, userID, log.FieldScenario, string(ScenarioNoData))
		return DefaultInsights(ScenarioNoData), nil
	}

	for i := range recs {
		recs[i].Category = recs[i].CategoryOrDefault()
	}
	agg := core.BuildAggregation(recs)

	generated, err := s.generator.Generate(ctx, agg)
	if err != nil {
		s.logger.ErrorContext(ctx, "Insight generation failed",
			log.FieldUserID, userID, log.FieldError, err.Error(),
			log.FieldScenario, string(ScenarioTotalFailure))
		return DefaultInsights(ScenarioTotalFailure), nil
	}

	return s.attachAnswers(ctx, generated, agg), nil
}

// attachAnswers fans one synthesis call out per insight and joins all of
// them before returning. Result order matches the generator's order; a
// failed call leaves only that insight without an answer.
func (s *Service) attachAnswers(ctx context.Context, generated []core.Insight, agg core.Aggregation) []core.Insight {
	out := make([]core.Insight, len(generated))

	var g errgroup.Group
	for i, ins := range generated {
		g.Go(func() error {
			answer, err := s.synthesizer.Synthesize(ctx, ins, agg)
			if err != nil {
				s.logger.WarnContext(ctx, "Answer synthesis failed for insight",
					log.FieldInsightID, ins.ID, log.FieldError, err.Error())
				out[i] = ins
				return nil
			}
			ins.AIAnswer = answer
			out[i] = ins
			return nil
		})
	}
	// Workers never return errors; failures are isolated per insight.
	_ = g.Wait()

	return out
}
