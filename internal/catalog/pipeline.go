// internal/catalog/pipeline.go
package catalog

// Stage transforms a query without materializing it. Stages are immutable
// once constructed; only the terminal caching step and counting stages have
// side effects. A stage never sees the stages composed after it.
type Stage[Q any] interface {
	Process(q Q) Q
}

// StageFunc adapts a function to the Stage interface.
type StageFunc[Q any] func(q Q) Q

func (f StageFunc[Q]) Process(q Q) Q { return f(q) }

// Pipeline is an immutable ordered stage list. Then returns a new pipeline,
// so a composed pipeline can be shared across concurrent callers and stages
// can never be removed or reordered once added.
type Pipeline[Q any] struct {
	stages []Stage[Q]
}

func NewPipeline[Q any](stages ...Stage[Q]) Pipeline[Q] {
	return Pipeline[Q]{stages: stages}
}

func (p Pipeline[Q]) Then(stage Stage[Q]) Pipeline[Q] {
	stages := make([]Stage[Q], 0, len(p.stages)+1)
	stages = append(stages, p.stages...)
	stages = append(stages, stage)
	return Pipeline[Q]{stages: stages}
}

// Run folds the stage list over the input, left to right, returning the
// final query unmaterialized.
func (p Pipeline[Q]) Run(q Q) Q {
	for _, stage := range p.stages {
		q = stage.Process(q)
	}
	return q
}
