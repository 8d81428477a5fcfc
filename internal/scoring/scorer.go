package scoring

// DefaultPunctuation is the sentence punctuation counted when none is configured.
const DefaultPunctuation = ".,!?:;"

// Scorer runs the chunk weighting pipeline.
type Scorer struct {
	stripper    Stripper
	punctuation string
}

// NewScorer creates a Scorer. An empty punctuation alphabet falls back to
// DefaultPunctuation.
func NewScorer(stripper Stripper, punctuation string) *Scorer {
	if punctuation == "" {
		punctuation = DefaultPunctuation
	}
	return &Scorer{stripper: stripper, punctuation: punctuation}
}

// Score computes every derived field of c in order and returns the first
// failure. A failed chunk keeps the fields computed before the failure.
func (s *Scorer) Score(c *Chunk) error {
	if err := c.MeasureMarkup(); err != nil {
		return err
	}
	if err := c.Strip(s.stripper); err != nil {
		return err
	}
	if err := c.MeasureText(); err != nil {
		return err
	}
	if err := c.CountPunctuation(s.punctuation); err != nil {
		return err
	}
	return c.Weigh()
}
