package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/neurolink/internal/application"
	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	"github.com/bryanwahyu/neurolink/internal/domain/incident"
	"github.com/bryanwahyu/neurolink/internal/infra/ai/parse"
	"github.com/bryanwahyu/neurolink/internal/infra/ai/prompt"
)

// Options wires a Service. Client may be nil when Provider is ProviderNone;
// repositories and Artifacts are optional.
type Options struct {
	Provider    ai.Provider
	Client      ai.Client
	Synthesizer Synthesizer
	Logger      *zap.Logger
	Clock       application.Clock
	Store       Store
	Artifacts   ai.ArtifactStore
}

// Service routes tasks to the active provider and always answers.
// Safe for concurrent use: after construction all fields are read-only.
type Service struct {
	provider  ai.Provider
	client    ai.Client
	synth     Synthesizer
	log       *zap.Logger
	clock     application.Clock
	store     Store
	artifacts ai.ArtifactStore
}

func NewService(opt Options) *Service {
	s := &Service{
		provider:  opt.Provider,
		client:    opt.Client,
		synth:     opt.Synthesizer,
		log:       opt.Logger,
		clock:     opt.Clock,
		store:     opt.Store,
		artifacts: opt.Artifacts,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.clock == nil {
		s.clock = application.SystemClock{}
	}
	if s.client == nil {
		s.provider = ai.ProviderNone
	}
	if s.provider == ai.ProviderNone {
		s.client = nil
		s.log.Warn("no AI credential configured, serving synthetic results")
	}
	return s
}

// Provider returns the backend chosen at startup.
func (s *Service) Provider() ai.Provider { return s.provider }

// Analyze runs a free-text analysis. It never fails: transport errors and
// panics degrade to a synthetic result, malformed replies are repaired.
func (s *Service) Analyze(ctx context.Context, input string) (out ai.Outcome[ai.AnalysisResult]) {
	if s.client == nil {
		return s.synth.Analysis(input)
	}
	defer func() {
		if r := recover(); r != nil {
			s.degrade(ctx, ai.TaskAnalyze, incident.PhasePanic, fmt.Errorf("panic: %v", r), "")
			out = s.synth.Analysis(input)
		}
	}()

	req := prompt.Build(ai.TaskAnalyze, input)
	raw, err := s.client.Complete(ctx, req)
	if err != nil {
		s.degrade(ctx, req.Kind, incident.PhaseTransport, err, "")
		return s.synth.Analysis(input)
	}
	res, err := parse.ParseAnalysis(raw)
	if err != nil {
		s.degrade(ctx, req.Kind, incident.PhaseParse, err, raw)
	}
	return ai.Outcome[ai.AnalysisResult]{Provider: s.provider, Payload: res}
}

// GenerateCode runs a code/markup generation. Same guarantees as Analyze.
func (s *Service) GenerateCode(ctx context.Context, task string) (out ai.Outcome[ai.CodeGenResult]) {
	if s.client == nil {
		return s.synth.CodeGen(task)
	}
	defer func() {
		if r := recover(); r != nil {
			s.degrade(ctx, ai.TaskGenerate, incident.PhasePanic, fmt.Errorf("panic: %v", r), "")
			out = s.synth.CodeGen(task)
		}
	}()

	req := prompt.Build(ai.TaskGenerate, task)
	raw, err := s.client.Complete(ctx, req)
	if err != nil {
		s.degrade(ctx, req.Kind, incident.PhaseTransport, err, "")
		return s.synth.CodeGen(task)
	}
	res, err := parse.ParseCodeGen(raw, req.Hint)
	if err != nil {
		s.degrade(ctx, req.Kind, incident.PhaseParse, err, raw)
	}
	return ai.Outcome[ai.CodeGenResult]{Provider: s.provider, Payload: res}
}

// degrade logs a failed or repaired call and records it as an incident.
// Recording is best effort.
func (s *Service) degrade(ctx context.Context, kind ai.TaskKind, phase incident.Phase, cause error, raw string) {
	fields := []zap.Field{
		zap.String("provider", s.provider.Vendor()),
		zap.String("task", string(kind)),
		zap.String("phase", string(phase)),
		zap.Error(cause),
	}
	if errors.Is(cause, ai.ErrQuotaExceeded) {
		fields = append(fields, zap.Bool("quota", true))
	}
	if phase == incident.PhaseParse {
		s.log.Info("provider reply repaired", fields...)
	} else {
		s.log.Warn("provider call failed, using synthetic result", fields...)
	}

	if s.store.Incidents == nil {
		return
	}
	details := map[string]any{"error": cause.Error()}
	if strings.TrimSpace(raw) != "" {
		details["raw"] = parse.Truncate(raw, parse.MaxRawPrefix)
	}
	b, _ := json.Marshal(details)
	inc := &incident.Incident{
		Provider:    s.provider.Vendor(),
		Task:        string(kind),
		Phase:       phase,
		Message:     parse.Truncate(cause.Error(), parse.MaxRawPrefix),
		DetailsJSON: string(b),
		CreatedAt:   s.clock.Now(),
	}
	if err := s.store.Incidents.Save(context.WithoutCancel(ctx), inc); err != nil {
		s.log.Warn("record incident", zap.Error(err))
	}
}
