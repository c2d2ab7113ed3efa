package export

import (
	"context"
	"time"
)

// Stage is a step of one export call. Every call walks
//
//	Start → BoundsComputed → Normalized → Flattened → Assembled
//
// and then ends in Serialized (vector), Rasterized → Encoded (raster) or
// Rendered (PDF). An error ends the call at the stage that failed.
type Stage string

const (
	StageStart          Stage = "start"
	StageBoundsComputed Stage = "bounds_computed"
	StageNormalized     Stage = "normalized"
	StageFlattened      Stage = "flattened"
	StageAssembled      Stage = "assembled"
	StageSerialized     Stage = "serialized"
	StageRasterized     Stage = "rasterized"
	StageEncoded        Stage = "encoded"
	StageRendered       Stage = "rendered"
)

// Hooks receives stage events from the coordinator.
type Hooks interface {
	// OnStage is called when a stage is reached, with the time since Start.
	OnStage(ctx context.Context, requestID string, stage Stage, elapsed time.Duration)
	// OnError is called once when a call fails; stage is the last stage reached.
	OnError(ctx context.Context, requestID string, stage Stage, err error)
}

// NoopHooks is a no-op implementation of Hooks.
type NoopHooks struct{}

func (NoopHooks) OnStage(context.Context, string, Stage, time.Duration) {}
func (NoopHooks) OnError(context.Context, string, Stage, error)         {}
