package commands

import (
	"sync"

	"github.com/leapstack-labs/autoloader/internal/engine"
)

// recordingStep runs the engine and keeps the result of the latest
// successful BeforeCompile for reporting.
type recordingStep struct {
	*engine.Engine

	mu   sync.Mutex
	last *engine.Result
}

var _ engine.Step = (*recordingStep)(nil)

func newRecordingStep(eng *engine.Engine) *recordingStep {
	return &recordingStep{Engine: eng}
}

// BeforeCompile implements engine.Step.
func (s *recordingStep) BeforeCompile() error {
	result, err := s.Generate()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.last = result
	s.mu.Unlock()
	return nil
}

// Last returns and clears the latest result.
func (s *recordingStep) Last() *engine.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := s.last
	s.last = nil
	return result
}
