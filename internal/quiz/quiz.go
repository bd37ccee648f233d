// Package quiz implements the interactive security quiz: a small state
// machine over a static question bank, with session-lifetime scoring.
package quiz

import (
	"fmt"
	"math/rand"
	"time"
)

// Difficulty levels available per topic. Topics missing a requested level
// fall back to beginner.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Phase is the quiz state machine position.
type Phase int

const (
	PhaseSelecting Phase = iota
	PhaseInProgress
	PhaseCompleted
)

// MaxQuestions bounds one quiz round.
const MaxQuestions = 5

// Question is one multiple-choice entry from the bank.
type Question struct {
	Prompt      string
	Options     []string
	Answer      int
	Explanation string
}

// Band classifies a round's percentage score.
type Band string

const (
	BandNeedsWork Band = "needs work"    // < 40
	BandLearning  Band = "keep learning" // 40-59
	BandSolid     Band = "solid"         // 60-79
	BandExcellent Band = "excellent"     // >= 80
)

// Summary describes one completed round.
type Summary struct {
	Topic      string
	Difficulty Difficulty
	Total      int
	Correct    int
	Percent    int
	Band       Band
}

// Session holds quiz state across rounds. Cumulative counters survive the
// Completed -> Selecting transition and reset only when the session is
// discarded.
type Session struct {
	phase      Phase
	topic      string
	difficulty Difficulty

	questions []Question
	index     int
	answers   []bool

	cumulativeCorrect int
	cumulativeAsked   int

	rng *rand.Rand
}

// NewSession creates a session in the Selecting phase.
func NewSession() *Session {
	return &Session{
		phase: PhaseSelecting,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Phase returns the current state machine position.
func (s *Session) Phase() Phase {
	return s.phase
}

// SelectTopic records the chosen topic while selecting.
func (s *Session) SelectTopic(topic string) {
	if s.phase == PhaseSelecting {
		s.topic = topic
	}
}

// SelectDifficulty records the chosen difficulty while selecting.
func (s *Session) SelectDifficulty(d Difficulty) {
	if s.phase == PhaseSelecting {
		s.difficulty = d
	}
}

// Topic returns the selected topic.
func (s *Session) Topic() string {
	return s.topic
}

// Difficulty returns the selected difficulty.
func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

// Start materializes a shuffled, length-bounded round for the selected
// topic and difficulty and moves to InProgress. Both selections are
// required; a topic without the requested difficulty falls back to the
// beginner bank.
func (s *Session) Start() error {
	if s.phase != PhaseSelecting {
		return fmt.Errorf("quiz already in progress")
	}
	if s.topic == "" || s.difficulty == "" {
		return fmt.Errorf("topic and difficulty must be selected")
	}

	bank, ok := questionBank[s.topic]
	if !ok {
		return fmt.Errorf("unknown quiz topic: %s", s.topic)
	}

	pool, ok := bank[s.difficulty]
	if !ok || len(pool) == 0 {
		pool = bank[Beginner]
	}
	if len(pool) == 0 {
		return fmt.Errorf("no questions available for topic: %s", s.topic)
	}

	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > MaxQuestions {
		shuffled = shuffled[:MaxQuestions]
	}

	s.questions = shuffled
	s.index = 0
	s.answers = s.answers[:0]
	s.phase = PhaseInProgress
	return nil
}

// Current returns the question being asked, and its 1-based position.
func (s *Session) Current() (Question, int, int) {
	if s.phase != PhaseInProgress || s.index >= len(s.questions) {
		return Question{}, 0, len(s.questions)
	}
	return s.questions[s.index], s.index + 1, len(s.questions)
}

// Answer records the choice for the current question. When the round is
// finished it returns the summary, folds the result into the cumulative
// counters, and transitions back to Selecting.
func (s *Session) Answer(choice int) (correct bool, summary *Summary) {
	if s.phase != PhaseInProgress || s.index >= len(s.questions) {
		return false, nil
	}

	correct = choice == s.questions[s.index].Answer
	s.answers = append(s.answers, correct)

	if s.index < len(s.questions)-1 {
		s.index++
		return correct, nil
	}

	result := Summarize(s.topic, s.difficulty, s.answers)
	s.cumulativeCorrect += result.Correct
	s.cumulativeAsked += result.Total

	// Completed is momentary; the machine returns to Selecting as soon as
	// the summary is emitted.
	s.phase = PhaseSelecting
	s.questions = nil
	s.index = 0
	s.answers = s.answers[:0]

	return correct, &result
}

// Abort discards an in-progress round, keeping cumulative counters.
// Returns true when there was a round to discard; callers then surface a
// cancellation notice.
func (s *Session) Abort() bool {
	if s.phase != PhaseInProgress {
		return false
	}
	s.phase = PhaseSelecting
	s.questions = nil
	s.index = 0
	s.answers = s.answers[:0]
	return true
}

// CumulativeScore returns the session-lifetime totals.
func (s *Session) CumulativeScore() (correct, asked int) {
	return s.cumulativeCorrect, s.cumulativeAsked
}

// Summarize computes the round summary for a fixed answer sequence. Pure
// function: stable under re-computation.
func Summarize(topic string, difficulty Difficulty, answers []bool) Summary {
	correct := 0
	for _, ok := range answers {
		if ok {
			correct++
		}
	}

	percent := 0
	if len(answers) > 0 {
		percent = int(float64(correct)/float64(len(answers))*100 + 0.5)
	}

	return Summary{
		Topic:      topic,
		Difficulty: difficulty,
		Total:      len(answers),
		Correct:    correct,
		Percent:    percent,
		Band:       Classify(percent),
	}
}

// Classify maps a percentage to its performance band.
func Classify(percent int) Band {
	switch {
	case percent < 40:
		return BandNeedsWork
	case percent < 60:
		return BandLearning
	case percent < 80:
		return BandSolid
	default:
		return BandExcellent
	}
}

// Topics lists the topics available in the static bank, in menu order.
func Topics() []string {
	return []string{"passwords", "phishing", "privacy", "malware", "networks"}
}

// Difficulties lists selectable difficulty levels in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}
