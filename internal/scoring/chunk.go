// Package scoring computes the content weight of segmented chunks.
package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/mrjoshuak/htmltext/internal/errs"
)

// Stripper removes markup from a chunk and reports how many characters of
// the remaining text were nested inside link elements.
type Stripper interface {
	Strip(markup string) (text string, linkLength int, err error)
}

// stage records the last pipeline step a Chunk completed.
type stage int

const (
	stageNew stage = iota
	stageMeasuredMarkup
	stageStripped
	stageMeasuredText
	stageCountedPunctuation
	stageWeighed
)

// Chunk is one candidate block of document text. Its derived fields are
// produced by a fixed pipeline; calling a step before its predecessor, or
// twice, returns an ErrOutOfSequence sequence error.
type Chunk struct {
	markup string
	text   string
	stage  stage

	lengthWithTags    int
	lengthWithoutTags int
	linkLength        int
	punctuationCount  int
	weight            float64
}

// NewChunk wraps finalized chunk markup.
func NewChunk(markup string) *Chunk {
	return &Chunk{markup: markup}
}

func (c *Chunk) advance(from, to stage, funcName string) error {
	if c.stage != from {
		return errs.WrapSequenceError(errs.ErrOutOfSequence, funcName, "step called out of order")
	}
	c.stage = to
	return nil
}

// MeasureMarkup records the length of the raw markup. The markup is counted
// as written, so an escaped entity such as &amp; is five characters.
func (c *Chunk) MeasureMarkup() error {
	if err := c.advance(stageNew, stageMeasuredMarkup, "MeasureMarkup"); err != nil {
		return err
	}
	c.lengthWithTags = utf8.RuneCountInString(c.markup)
	return nil
}

// Strip removes markup and records the link length.
func (c *Chunk) Strip(s Stripper) error {
	if c.stage != stageMeasuredMarkup {
		return errs.WrapSequenceError(errs.ErrOutOfSequence, "Strip", "markup must be measured first")
	}
	text, linkLength, err := s.Strip(c.markup)
	if err != nil {
		return errs.WrapParseError(err, "Strip", "stripping chunk markup")
	}
	c.text = text
	c.linkLength = linkLength
	c.stage = stageStripped
	return nil
}

// MeasureText records the length of the stripped text.
func (c *Chunk) MeasureText() error {
	if err := c.advance(stageStripped, stageMeasuredText, "MeasureText"); err != nil {
		return err
	}
	c.lengthWithoutTags = utf8.RuneCountInString(c.text)
	return nil
}

// CountPunctuation counts every occurrence of each mark in the stripped text.
// A mark listed twice is counted twice.
func (c *Chunk) CountPunctuation(marks string) error {
	if err := c.advance(stageMeasuredText, stageCountedPunctuation, "CountPunctuation"); err != nil {
		return err
	}
	count := 0
	for _, mark := range marks {
		count += strings.Count(c.text, string(mark))
	}
	c.punctuationCount = count
	return nil
}

// Weigh combines text density, link density and punctuation density:
//
//	weight = textDensity + p/100 + (1 - linkDensity) + (1 - p/lengthWithoutTags)
//
// A chunk without punctuation, or without any text, weighs zero. Text
// density uses lengthWithTags as measured on the escaped markup, so text
// heavy in entities scores a little lower than its decoded length implies.
func (c *Chunk) Weigh() error {
	if err := c.advance(stageCountedPunctuation, stageWeighed, "Weigh"); err != nil {
		return err
	}

	if c.lengthWithoutTags == 0 || c.punctuationCount == 0 {
		c.weight = 0
		return nil
	}

	punctuation := float64(c.punctuationCount)
	textLength := float64(c.lengthWithoutTags)

	textDensity := textLength / float64(c.lengthWithTags)
	linkDensity := float64(c.linkLength) / max(textLength, 1)

	c.weight = (textDensity + punctuation/100) + (1 - linkDensity)
	c.weight += 1 - punctuation/textLength
	return nil
}

// Markup returns the chunk markup.
func (c *Chunk) Markup() string { return c.markup }

// Text returns the stripped text. Empty until Strip succeeds.
func (c *Chunk) Text() string { return c.text }

// Weighed reports whether the pipeline completed.
func (c *Chunk) Weighed() bool { return c.stage == stageWeighed }

// LengthWithTags returns the markup length in characters.
func (c *Chunk) LengthWithTags() int { return c.lengthWithTags }

// LengthWithoutTags returns the stripped text length in characters.
func (c *Chunk) LengthWithoutTags() int { return c.lengthWithoutTags }

// LinkLength returns the characters of text nested in link elements.
func (c *Chunk) LinkLength() int { return c.linkLength }

// PunctuationCount returns the number of punctuation marks in the text.
func (c *Chunk) PunctuationCount() int { return c.punctuationCount }

// Weight returns the computed weight.
func (c *Chunk) Weight() float64 { return c.weight }
