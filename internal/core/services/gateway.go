package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
	"github.com/custodia-labs/drivegate/internal/core/ports/driving"
	"github.com/custodia-labs/drivegate/internal/logger"
)

// Ensure Gateway implements the interface.
var _ driving.DriveService = (*Gateway)(nil)

// Gateway routes capability requests through the registry, the process
// invoker and the output normaliser. It keeps no per-request state.
type Gateway struct {
	registry    *ModuleRegistry
	invoker     driven.ProcessInvoker
	normaliser  driven.OutputNormaliser
	history     driven.InvocationStore
	keep        int
	recommender driven.Recommender
}

// GatewayOption configures optional collaborators.
type GatewayOption func(*Gateway)

// WithHistory records every invocation to store, keeping the most recent
// keep records. A keep of zero disables pruning.
func WithHistory(store driven.InvocationStore, keep int) GatewayOption {
	return func(g *Gateway) {
		g.history = store
		g.keep = keep
	}
}

// WithRecommender replaces the module-backed recommendation backend.
func WithRecommender(r driven.Recommender) GatewayOption {
	return func(g *Gateway) {
		g.recommender = r
	}
}

// NewGateway creates a gateway.
func NewGateway(
	registry *ModuleRegistry,
	invoker driven.ProcessInvoker,
	normaliser driven.OutputNormaliser,
	opts ...GatewayOption,
) *Gateway {
	g := &Gateway{
		registry:   registry,
		invoker:    invoker,
		normaliser: normaliser,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.recommender == nil {
		g.recommender = NewModuleRecommender(g)
	}
	return g
}

// Detect lists the attached drives.
func (g *Gateway) Detect(ctx context.Context) (*domain.InvocationResult, error) {
	return g.run(ctx, domain.CapabilityDetect, nil)
}

// Scan scans one drive.
func (g *Gateway) Scan(ctx context.Context, driveName string) (*domain.InvocationResult, error) {
	return g.run(ctx, domain.CapabilityScan, map[string]string{ParamDriveName: driveName})
}

// Repair repairs one drive.
func (g *Gateway) Repair(ctx context.Context, driveName string, dryRun bool) (*domain.InvocationResult, error) {
	return g.run(ctx, domain.CapabilityRepair, map[string]string{
		ParamDriveName: driveName,
		ParamModeName:  domain.ModeFor(dryRun).String(),
	})
}

// Clone copies one drive onto another.
func (g *Gateway) Clone(ctx context.Context, req domain.CloneRequest) (*domain.InvocationResult, error) {
	return g.run(ctx, domain.CapabilityClone, map[string]string{
		ParamSource:      req.Source,
		ParamDestination: req.Destination,
		ParamModeName:    domain.ModeFor(req.DryRun).String(),
	})
}

// Partition creates and formats a partition.
func (g *Gateway) Partition(ctx context.Context, req domain.PartitionRequest) (*domain.InvocationResult, error) {
	size := ""
	if req.SizeGB != 0 {
		size = strconv.FormatFloat(req.SizeGB, 'f', -1, 64)
	}
	return g.run(ctx, domain.CapabilityPartition, map[string]string{
		ParamDriveName: req.DriveName,
		ParamSize:      size,
		ParamFSName:    req.FileSystem,
		ParamModeName:  domain.ModeFor(req.DryRun).String(),
	})
}

// Logs returns the executable's operation log.
func (g *Gateway) Logs(ctx context.Context) (*domain.InvocationResult, error) {
	return g.run(ctx, domain.CapabilityLogs, nil)
}

// Health returns the health record of one drive.
func (g *Gateway) Health(ctx context.Context, driveName string) (*domain.InvocationResult, error) {
	return g.run(ctx, domain.CapabilityHealth, map[string]string{ParamDriveName: driveName})
}

// Recommend validates metrics and asks the configured backend.
func (g *Gateway) Recommend(ctx context.Context, metrics domain.DriveRecord) (*domain.Recommendation, error) {
	if err := metrics.Validate(); err != nil {
		return nil, err
	}
	text, err := g.recommender.Recommend(ctx, metrics)
	if err != nil {
		return nil, err
	}
	return &domain.Recommendation{Text: text}, nil
}

// Invoke runs a capability with positional values.
func (g *Gateway) Invoke(ctx context.Context, capability domain.Capability, values []string) (*domain.InvocationResult, error) {
	req, err := g.registry.BuildPositional(capability, values)
	if err != nil {
		return nil, err
	}
	return g.execute(ctx, req)
}

// run builds the request and executes it.
func (g *Gateway) run(ctx context.Context, capability domain.Capability, values map[string]string) (*domain.InvocationResult, error) {
	req, err := g.registry.Build(capability, values)
	if err != nil {
		return nil, err
	}
	return g.execute(ctx, req)
}

// execute invokes the process and normalises stdout. Every outcome that
// reached the invoker is recorded.
func (g *Gateway) execute(ctx context.Context, req domain.InvocationRequest) (*domain.InvocationResult, error) {
	id := uuid.NewString()
	started := time.Now()

	out, err := g.invoker.Invoke(ctx, req)
	if err != nil {
		g.record(ctx, id, req, out, started, nil, err)
		return nil, fmt.Errorf("%s: %w", req.Capability, err)
	}

	outcome, err := g.normaliser.Normalise(out.Stdout)
	if err != nil {
		g.record(ctx, id, req, out, started, nil, err)
		return nil, fmt.Errorf("%s: %w", req.Capability, err)
	}

	result := &domain.InvocationResult{
		ID:        id,
		Request:   req,
		ExitCode:  out.ExitCode,
		Stdout:    out.Stdout,
		Stderr:    out.Stderr,
		Payload:   outcome.Payload,
		ParseMode: outcome.Mode,
		Skipped:   outcome.Skipped,
		StartedAt: out.Started,
		Duration:  out.Duration,
	}
	g.record(ctx, id, req, out, started, &outcome, nil)
	return result, nil
}

// record writes a history entry. Store failures are logged and never fail
// the invocation.
func (g *Gateway) record(
	ctx context.Context,
	id string,
	req domain.InvocationRequest,
	out *domain.ProcessOutput,
	started time.Time,
	outcome *domain.ParseOutcome,
	invErr error,
) {
	if g.history == nil {
		return
	}

	rec := &domain.InvocationRecord{
		ID:         id,
		Capability: req.Capability,
		Module:     req.Module,
		Args:       req.Args,
		ExitCode:   -1,
		Success:    invErr == nil,
		StartedAt:  started,
		Duration:   time.Since(started),
	}
	if out != nil {
		rec.ExitCode = out.ExitCode
		rec.StartedAt = out.Started
		rec.Duration = out.Duration
	}
	if outcome != nil {
		rec.ParseMode = outcome.Mode
		rec.Skipped = outcome.Skipped
	}
	if invErr != nil {
		rec.Error = invErr.Error()
	}

	// History must outlive a cancelled request.
	storeCtx := context.WithoutCancel(ctx)
	if err := g.history.Record(storeCtx, rec); err != nil {
		logger.Warn("recording invocation %s: %v", id, err)
		return
	}
	if g.keep > 0 {
		if err := g.history.Prune(storeCtx, g.keep); err != nil {
			logger.Warn("pruning invocation history: %v", err)
		}
	}
}
