package playback

import (
	"errors"
	"math"

	"github.com/kanishka132/StudyBuddy-AI/internal/content"
)

type QuizPhase string

const (
	QuizNotStarted     QuizPhase = "not_started"
	QuizInProgress     QuizPhase = "in_progress"
	QuizAnswerRevealed QuizPhase = "answer_revealed"
	QuizComplete       QuizPhase = "complete"
)

var (
	ErrNoQuestions      = errors.New("quiz has no questions")
	ErrNotInProgress    = errors.New("quiz is not in progress")
	ErrNoSelection      = errors.New("no option selected")
	ErrNotRevealed      = errors.New("answer has not been revealed")
	ErrOptionOutOfRange = errors.New("option index out of range")
)

// QuizAnswer is one submitted answer, kept per question position.
type QuizAnswer struct {
	QuestionIndex  int  `json:"question_index"`
	SelectedOption int  `json:"selected_option"`
	CorrectOption  int  `json:"correct_option"`
	IsCorrect      bool `json:"is_correct"`
}

// QuizPlayer walks a fixed question list one question at a time. Each
// question is answered, revealed, then advanced past; going back clears the
// pending selection but keeps the recorded answers and score.
type QuizPlayer struct {
	questions []content.QuizQuestion
	phase     QuizPhase
	index     int
	selected  int
	score     int
	answers   []*QuizAnswer
}

func NewQuizPlayer(questions []content.QuizQuestion) (*QuizPlayer, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &QuizPlayer{
		questions: questions,
		phase:     QuizNotStarted,
		selected:  -1,
		answers:   make([]*QuizAnswer, len(questions)),
	}, nil
}

func (p *QuizPlayer) Start() {
	p.phase = QuizInProgress
	p.index = 0
	p.selected = -1
	p.score = 0
	p.answers = make([]*QuizAnswer, len(p.questions))
}

func (p *QuizPlayer) SelectOption(option int) error {
	if p.phase != QuizInProgress {
		return ErrNotInProgress
	}
	if option < 0 || option >= len(p.questions[p.index].Options) {
		return ErrOptionOutOfRange
	}
	p.selected = option
	return nil
}

// Submit grades the pending selection and reveals the answer.
func (p *QuizPlayer) Submit() (*QuizAnswer, error) {
	if p.phase != QuizInProgress {
		return nil, ErrNotInProgress
	}
	if p.selected < 0 {
		return nil, ErrNoSelection
	}

	question := p.questions[p.index]
	answer := &QuizAnswer{
		QuestionIndex:  p.index,
		SelectedOption: p.selected,
		CorrectOption:  question.CorrectAnswer,
		IsCorrect:      p.selected == question.CorrectAnswer,
	}
	p.answers[p.index] = answer
	if answer.IsCorrect {
		p.score++
	}
	p.phase = QuizAnswerRevealed
	return answer, nil
}

// Advance moves past a revealed answer, finishing the quiz on the last
// question.
func (p *QuizPlayer) Advance() error {
	if p.phase != QuizAnswerRevealed {
		return ErrNotRevealed
	}
	if p.index >= len(p.questions)-1 {
		p.phase = QuizComplete
		return nil
	}
	p.index++
	p.selected = -1
	p.phase = QuizInProgress
	return nil
}

// Previous steps back one question. Recorded answers and the running score
// are kept; only the pending selection is cleared.
func (p *QuizPlayer) Previous() error {
	if p.phase != QuizInProgress && p.phase != QuizAnswerRevealed {
		return ErrNotInProgress
	}
	if p.index == 0 {
		return nil
	}
	p.index--
	p.selected = -1
	p.phase = QuizInProgress
	return nil
}

// Restart goes back to the first question with score and answers cleared.
func (p *QuizPlayer) Restart() {
	p.Start()
}

// Close resets the player to its initial state.
func (p *QuizPlayer) Close() {
	p.phase = QuizNotStarted
	p.index = 0
	p.selected = -1
	p.score = 0
	p.answers = make([]*QuizAnswer, len(p.questions))
}

func (p *QuizPlayer) Phase() QuizPhase { return p.phase }
func (p *QuizPlayer) Index() int       { return p.index }
func (p *QuizPlayer) Score() int       { return p.score }
func (p *QuizPlayer) Selected() int    { return p.selected }
func (p *QuizPlayer) Len() int         { return len(p.questions) }

func (p *QuizPlayer) Current() content.QuizQuestion {
	return p.questions[p.index]
}

// Answers returns the recorded answers indexed by question position;
// unanswered positions are nil.
func (p *QuizPlayer) Answers() []*QuizAnswer {
	out := make([]*QuizAnswer, len(p.answers))
	copy(out, p.answers)
	return out
}

// ScorePercent is the rounded percentage of correct answers.
func (p *QuizPlayer) ScorePercent() int {
	return int(math.Round(float64(p.score) / float64(len(p.questions)) * 100))
}

// PerformanceMessage maps a score percentage to the encouragement shown on
// the results screen.
func PerformanceMessage(percent int) string {
	switch {
	case percent >= 90:
		return "🌟 Excellent work! You've mastered this material!"
	case percent >= 80:
		return "👏 Great job! You have a solid understanding!"
	case percent >= 70:
		return "👍 Good work! Consider reviewing a few topics."
	case percent >= 60:
		return "📚 Not bad! Some more study would be helpful."
	default:
		return "💪 Keep studying! You'll get there with more practice."
	}
}
