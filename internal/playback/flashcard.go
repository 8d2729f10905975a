package playback

import (
	"errors"

	"github.com/kanishka132/StudyBuddy-AI/internal/content"
)

var ErrNoCards = errors.New("deck has no cards")

// FlashcardPlayer steps through a fixed deck. Navigation is bounded, never
// wrapping, and moving to another card always shows its front face.
type FlashcardPlayer struct {
	cards   []content.Flashcard
	index   int
	flipped bool
}

func NewFlashcardPlayer(cards []content.Flashcard) (*FlashcardPlayer, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	return &FlashcardPlayer{cards: cards}, nil
}

func (p *FlashcardPlayer) Flip() {
	p.flipped = !p.flipped
}

// Next advances one card; on the last card it does nothing.
func (p *FlashcardPlayer) Next() {
	if p.index >= len(p.cards)-1 {
		return
	}
	p.index++
	p.flipped = false
}

// Previous steps back one card; on the first card it does nothing.
func (p *FlashcardPlayer) Previous() {
	if p.index == 0 {
		return
	}
	p.index--
	p.flipped = false
}

func (p *FlashcardPlayer) Index() int    { return p.index }
func (p *FlashcardPlayer) Flipped() bool { return p.flipped }
func (p *FlashcardPlayer) Len() int      { return len(p.cards) }

func (p *FlashcardPlayer) Current() content.Flashcard {
	return p.cards[p.index]
}
