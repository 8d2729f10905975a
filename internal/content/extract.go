package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoArray = errors.New("no JSON array found in text")
)

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ExtractJSONArray returns the substring of s spanning the first '[' through
// the last ']'. Generation responses often wrap the array in prose or code
// fences, so the widest bracketed span is taken rather than the narrowest.
func ExtractJSONArray(s string) (string, bool) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// DecodeQuizQuestions accepts either a JSON array of questions or a JSON
// string with an embedded array and returns the structured questions.
func DecodeQuizQuestions(raw json.RawMessage) ([]QuizQuestion, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty quiz payload")
	}
	var direct []QuizQuestion
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, errors.New("quiz payload is neither an array nor a string")
	}
	return QuizQuestionsFromText(text)
}

// QuizQuestionsFromText pulls the bracketed array out of free-form text and
// parses it.
func QuizQuestionsFromText(text string) ([]QuizQuestion, error) {
	block, ok := ExtractJSONArray(text)
	if !ok {
		return nil, ErrNoArray
	}
	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(block), &questions); err != nil {
		return nil, fmt.Errorf("parse quiz questions: %w", err)
	}
	return questions, nil
}

// DecodeFlashcards accepts either a JSON array of cards or a JSON string
// with an embedded array and returns the structured cards.
func DecodeFlashcards(raw json.RawMessage) ([]Flashcard, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty flashcards payload")
	}
	var direct []Flashcard
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, errors.New("flashcards payload is neither an array nor a string")
	}
	return FlashcardsFromText(text)
}

func FlashcardsFromText(text string) ([]Flashcard, error) {
	block, ok := ExtractJSONArray(text)
	if !ok {
		return nil, ErrNoArray
	}
	var cards []Flashcard
	if err := json.Unmarshal([]byte(block), &cards); err != nil {
		return nil, fmt.Errorf("parse flashcards: %w", err)
	}
	return cards, nil
}
