package service

import (
	"github.com/aliskhannn/vocab-quiz/internal/sampler"
)

// MaxOptions is the upper bound of choices shown for a multiple choice question.
const MaxOptions = 4

// OptionGenerator generates multiple choice options for quiz questions.
type OptionGenerator struct {
	rng sampler.Rand
}

// NewOptionGenerator creates a new option generator.
func NewOptionGenerator(rng sampler.Rand) *OptionGenerator {
	return &OptionGenerator{rng: rng}
}

// Generate returns up to MaxOptions distinct options in random order, always
// including correct. Distractors are taken from preferred first and from
// fallback once preferred is exhausted. When both pools are too small the
// result simply has fewer options.
func (g *OptionGenerator) Generate(correct string, preferred, fallback []string) []string {
	pref := sampler.Shuffle(g.rng, sampler.Without(sampler.Unique(preferred), correct))
	fb := sampler.Shuffle(g.rng, sampler.Without(sampler.Unique(fallback), correct))

	options := make([]string, 0, MaxOptions)
	options = append(options, correct)
	used := map[string]struct{}{correct: {}}

	for _, pool := range [][]string{pref, fb} {
		for _, candidate := range pool {
			if len(options) >= MaxOptions {
				break
			}
			if _, ok := used[candidate]; ok {
				continue
			}
			used[candidate] = struct{}{}
			options = append(options, candidate)
		}
	}

	options = sampler.Shuffle(g.rng, sampler.Unique(options))
	if len(options) > MaxOptions {
		options = options[:MaxOptions]
	}

	return options
}
