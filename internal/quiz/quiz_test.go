package quiz

import (
	"testing"
)

func TestNewSessionStartsSelecting(t *testing.T) {
	s := NewSession()
	if s.Phase() != PhaseSelecting {
		t.Errorf("Phase = %v, want selecting", s.Phase())
	}
	if correct, asked := s.CumulativeScore(); correct != 0 || asked != 0 {
		t.Errorf("Cumulative score = %d/%d, want 0/0", correct, asked)
	}
}

func TestStartRequiresSelections(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		difficulty Difficulty
		wantErr    bool
	}{
		{name: "both selected", topic: "phishing", difficulty: Beginner, wantErr: false},
		{name: "missing topic", topic: "", difficulty: Beginner, wantErr: true},
		{name: "missing difficulty", topic: "phishing", difficulty: "", wantErr: true},
		{name: "unknown topic", topic: "cryptozoology", difficulty: Beginner, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			s.SelectTopic(tt.topic)
			s.SelectDifficulty(tt.difficulty)

			err := s.Start()
			if (err != nil) != tt.wantErr {
				t.Errorf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && s.Phase() != PhaseInProgress {
				t.Errorf("Phase after Start = %v, want in progress", s.Phase())
			}
		})
	}
}

func TestStartBoundsRoundLength(t *testing.T) {
	for _, topic := range Topics() {
		for _, difficulty := range Difficulties() {
			s := NewSession()
			s.SelectTopic(topic)
			s.SelectDifficulty(difficulty)
			if err := s.Start(); err != nil {
				t.Fatalf("Start(%s, %s) failed: %v", topic, difficulty, err)
			}
			_, _, total := s.Current()
			if total == 0 || total > MaxQuestions {
				t.Errorf("Round for (%s, %s) has %d questions", topic, difficulty, total)
			}
		}
	}
}

func TestStartFallsBackToBeginner(t *testing.T) {
	// The bank guarantees beginner questions for every topic, so any
	// difficulty request must produce a playable round.
	s := NewSession()
	s.SelectTopic("networks")
	s.SelectDifficulty(Advanced)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	q, pos, total := s.Current()
	if pos != 1 || total == 0 || q.Prompt == "" {
		t.Errorf("Current() = (%q, %d, %d)", q.Prompt, pos, total)
	}
}

// playRound answers every question, always choosing option chooser(q).
func playRound(t *testing.T, s *Session, chooser func(Question) int) *Summary {
	t.Helper()
	for s.Phase() == PhaseInProgress {
		q, _, _ := s.Current()
		_, summary := s.Answer(chooser(q))
		if summary != nil {
			return summary
		}
	}
	t.Fatal("round ended without a summary")
	return nil
}

func TestPerfectRound(t *testing.T) {
	s := NewSession()
	s.SelectTopic("passwords")
	s.SelectDifficulty(Beginner)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	_, _, total := s.Current()

	summary := playRound(t, s, func(q Question) int { return q.Answer })

	if summary.Correct != total || summary.Percent != 100 {
		t.Errorf("Summary = %+v, want %d/%d at 100%%", summary, total, total)
	}
	if summary.Band != BandExcellent {
		t.Errorf("Band = %q, want excellent", summary.Band)
	}
	if s.Phase() != PhaseSelecting {
		t.Errorf("Phase after round = %v, want selecting", s.Phase())
	}
	if s.Topic() != "passwords" {
		t.Errorf("Topic after round = %q, want retained", s.Topic())
	}
}

func TestCumulativeScoreSurvivesRounds(t *testing.T) {
	s := NewSession()
	s.SelectTopic("phishing")
	s.SelectDifficulty(Beginner)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	first := playRound(t, s, func(q Question) int { return q.Answer })

	if err := s.Start(); err != nil {
		t.Fatalf("Second Start failed: %v", err)
	}
	second := playRound(t, s, func(q Question) int { return q.Answer + 1 })

	correct, asked := s.CumulativeScore()
	if asked != first.Total+second.Total {
		t.Errorf("Cumulative asked = %d, want %d", asked, first.Total+second.Total)
	}
	if correct != first.Correct+second.Correct {
		t.Errorf("Cumulative correct = %d, want %d", correct, first.Correct+second.Correct)
	}
}

func TestAbort(t *testing.T) {
	s := NewSession()

	if s.Abort() {
		t.Error("Abort with no round must report false")
	}

	s.SelectTopic("privacy")
	s.SelectDifficulty(Beginner)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Answer(0)

	if !s.Abort() {
		t.Error("Abort mid-round must report true")
	}
	if s.Phase() != PhaseSelecting {
		t.Errorf("Phase after abort = %v, want selecting", s.Phase())
	}
	if _, asked := s.CumulativeScore(); asked != 0 {
		t.Errorf("Aborted round leaked %d answers into the cumulative score", asked)
	}
}

func TestAnswerOutsideRoundIsNoOp(t *testing.T) {
	s := NewSession()
	if correct, summary := s.Answer(0); correct || summary != nil {
		t.Error("Answer while selecting must be a no-op")
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		answers     []bool
		wantPercent int
		wantBand    Band
	}{
		{name: "all correct", answers: []bool{true, true, true, true, true}, wantPercent: 100, wantBand: BandExcellent},
		{name: "none correct", answers: []bool{false, false, false, false, false}, wantPercent: 0, wantBand: BandNeedsWork},
		{name: "three of five", answers: []bool{true, true, true, false, false}, wantPercent: 60, wantBand: BandSolid},
		{name: "two of five", answers: []bool{true, true, false, false, false}, wantPercent: 40, wantBand: BandLearning},
		{name: "rounds to nearest", answers: []bool{true, false, false}, wantPercent: 33, wantBand: BandNeedsWork},
		{name: "two of three rounds up", answers: []bool{true, true, false}, wantPercent: 67, wantBand: BandSolid},
		{name: "empty", answers: nil, wantPercent: 0, wantBand: BandNeedsWork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize("passwords", Beginner, tt.answers)
			if got.Percent != tt.wantPercent {
				t.Errorf("Percent = %d, want %d", got.Percent, tt.wantPercent)
			}
			if got.Band != tt.wantBand {
				t.Errorf("Band = %q, want %q", got.Band, tt.wantBand)
			}
			if got.Total != len(tt.answers) {
				t.Errorf("Total = %d, want %d", got.Total, len(tt.answers))
			}
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		percent int
		want    Band
	}{
		{0, BandNeedsWork},
		{39, BandNeedsWork},
		{40, BandLearning},
		{59, BandLearning},
		{60, BandSolid},
		{79, BandSolid},
		{80, BandExcellent},
		{100, BandExcellent},
	}

	for _, tt := range tests {
		if got := Classify(tt.percent); got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestBankHasBeginnerQuestionsForEveryTopic(t *testing.T) {
	for _, topic := range Topics() {
		bank, ok := questionBank[topic]
		if !ok {
			t.Errorf("Topic %q missing from bank", topic)
			continue
		}
		if len(bank[Beginner]) == 0 {
			t.Errorf("Topic %q has no beginner questions", topic)
		}
		for difficulty, pool := range bank {
			for i, q := range pool {
				if q.Prompt == "" || len(q.Options) < 2 {
					t.Errorf("%s/%s question %d is malformed", topic, difficulty, i)
				}
				if q.Answer < 0 || q.Answer >= len(q.Options) {
					t.Errorf("%s/%s question %d has answer index %d out of range", topic, difficulty, i, q.Answer)
				}
			}
		}
	}
}
