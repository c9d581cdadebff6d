package dice

import (
	"sync"

	"go.uber.org/zap"
)

// Config selects the Service's source and tracking behaviour.
type Config struct {
	Source     SourceKind
	TrackRolls bool
	// Constant is the face shown by every die when Source is SourceConstant.
	Constant int
	// Seed fixes the SourceRandom sequence; 0 seeds from the clock.
	Seed uint64
}

// Service is the shared randomness service. Every subsystem rolls through the
// same *Service so the source can be swapped without touching call sites.
//
// Service is safe for concurrent use; source swaps and tracker updates are
// serialized by mu.
type Service struct {
	mu      sync.Mutex
	src     Source
	tracker *Tracker
	logger  *zap.Logger
}

// NewService creates a Service rolling against src with tracking disabled.
//
// Precondition: src and logger must be non-nil.
func NewService(src Source, logger *zap.Logger) *Service {
	return &Service{src: src, logger: logger}
}

// NewConfiguredService creates a Service from cfg.
func NewConfiguredService(cfg Config, logger *zap.Logger) (*Service, error) {
	s := &Service{logger: logger}
	if err := s.Configure(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure swaps the source and resets the tracker.
//
// Postcondition: on success Tracker() is a fresh Tracker when cfg.TrackRolls,
// otherwise nil. On error the Service is unchanged.
func (s *Service) Configure(cfg Config) error {
	src, err := sourceFor(cfg.Source, cfg.Constant, cfg.Seed)
	if err != nil {
		return err
	}
	s.UseSource(src, cfg.TrackRolls)
	s.logger.Debug("dice service configured",
		zap.String("source", string(cfg.Source)),
		zap.Bool("track_rolls", cfg.TrackRolls),
	)
	return nil
}

// UseSource installs an arbitrary Source, resetting the tracker.
func (s *Service) UseSource(src Source, trackRolls bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src = src
	s.tracker = nil
	if trackRolls {
		s.tracker = NewTracker()
	}
}

// Tracker returns the active tracker, or nil when tracking is off.
func (s *Service) Tracker() *Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker
}

// Roll evaluates notation and returns the total.
//
// Postcondition: returns an error wrapping ErrInvalidNotation when notation
// does not parse.
func (s *Service) Roll(notation string) (int, error) {
	e, err := Parse(notation)
	if err != nil {
		return 0, err
	}
	return s.RollExpression(e).Total(), nil
}

// RollDice rolls numDice dice with the given sides and adds modifier.
// Non-positive sides or numDice roll no dice and return the modifier;
// numDice above MaxDieCount is capped.
func (s *Service) RollDice(sides, numDice, modifier int) int {
	if sides < 1 || numDice < 1 {
		return modifier
	}
	numDice = min(numDice, MaxDieCount)
	return s.RollExpression(Expression{Count: numDice, Sides: sides, Modifier: modifier}).Total()
}

// RollExpression rolls a parsed expression and returns the full result.
func (s *Service) RollExpression(e Expression) RollResult {
	s.mu.Lock()
	result := Roll(e, s.src)
	if s.tracker != nil {
		s.tracker.record(e.Sides, result.Dice)
	}
	s.mu.Unlock()

	s.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}
