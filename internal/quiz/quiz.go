// Package quiz generates multiple-choice questions from the element catalog.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/san-kum/periodix/internal/chem"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty defaults to Medium for unknown input.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(s)) {
	case Easy:
		return Easy
	case Hard:
		return Hard
	}
	return Medium
}

// MaxNumber is the highest atomic number included at this difficulty.
func (d Difficulty) MaxNumber() int {
	switch d {
	case Easy:
		return 36
	case Medium:
		return 83
	}
	return chem.MaxNumber
}

type Topic string

const (
	Symbols        Topic = "symbols"
	Properties     Topic = "properties"
	Categories     Topic = "categories"
	ElectronConfig Topic = "electron-config"
	All            Topic = "all"
)

var Topics = []Topic{Symbols, Properties, Categories, ElectronConfig}

// ParseTopic defaults to All for unknown input.
func ParseTopic(s string) Topic {
	t := Topic(strings.ToLower(s))
	for _, known := range Topics {
		if t == known {
			return t
		}
	}
	return All
}

const (
	DefaultCount = 10
	optionCount  = 4
)

type Settings struct {
	Difficulty Difficulty
	Topic      Topic
	Count      int
}

type Question struct {
	Topic   Topic
	Text    string
	Options []string
	Answer  string
}

// Correct reports whether choice is the right answer.
func (q Question) Correct(choice string) bool { return choice == q.Answer }

var (
	ErrFinished     = errors.New("quiz: no questions left")
	ErrInvalidIndex = errors.New("quiz: option index out of range")
)

// Generate builds up to s.Count questions. With Topic All each topic gets an
// equal share before the set is shuffled and trimmed.
func Generate(cat *chem.Catalog, s Settings, rng *rand.Rand) []Question {
	if s.Count <= 0 {
		s.Count = DefaultCount
	}
	if s.Difficulty == "" {
		s.Difficulty = Medium
	}

	var pool []chem.Element
	for _, e := range cat.All() {
		if e.Number <= s.Difficulty.MaxNumber() {
			pool = append(pool, e)
		}
	}

	topics := Topics
	per := s.Count
	if s.Topic != All && s.Topic != "" {
		topics = []Topic{s.Topic}
	} else {
		per = (s.Count + len(Topics) - 1) / len(Topics)
	}

	g := &generator{pool: pool, rng: rng}
	var qs []Question
	for _, t := range topics {
		switch t {
		case Symbols:
			qs = append(qs, g.symbols(per)...)
		case Properties:
			qs = append(qs, g.properties(per)...)
		case Categories:
			qs = append(qs, g.categories(per)...)
		case ElectronConfig:
			qs = append(qs, g.configs(per)...)
		}
	}

	rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	if len(qs) > s.Count {
		qs = qs[:s.Count]
	}
	return qs
}

type generator struct {
	pool []chem.Element
	rng  *rand.Rand
}

func (g *generator) shuffled() []chem.Element {
	out := make([]chem.Element, len(g.pool))
	copy(out, g.pool)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// options returns the correct answer plus up to three distinct distractors
// drawn from candidates, shuffled.
func (g *generator) options(correct string, candidates []string) []string {
	seen := map[string]bool{correct: true}
	opts := []string{correct}
	for _, i := range g.rng.Perm(len(candidates)) {
		c := candidates[i]
		if seen[c] || c == "" {
			continue
		}
		seen[c] = true
		opts = append(opts, c)
		if len(opts) == optionCount {
			break
		}
	}
	g.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

func (g *generator) collect(fn func(chem.Element) string) []string {
	out := make([]string, 0, len(g.pool))
	for _, e := range g.pool {
		out = append(out, fn(e))
	}
	return out
}

func (g *generator) symbols(n int) []Question {
	els := g.shuffled()
	symbols := g.collect(func(e chem.Element) string { return e.Symbol })
	names := g.collect(func(e chem.Element) string { return e.Name })

	var qs []Question
	for i := 0; i < n && i < len(els); i++ {
		e := els[i]
		if i%2 == 0 {
			qs = append(qs, Question{
				Topic:   Symbols,
				Text:    fmt.Sprintf("What is the chemical symbol for %s?", e.Name),
				Answer:  e.Symbol,
				Options: g.options(e.Symbol, symbols),
			})
		} else {
			qs = append(qs, Question{
				Topic:   Symbols,
				Text:    fmt.Sprintf("Which element has the symbol %s?", e.Symbol),
				Answer:  e.Name,
				Options: g.options(e.Name, names),
			})
		}
	}
	return qs
}

func (g *generator) properties(n int) []Question {
	var qs []Question
	props := chem.Properties
	for i, e := range g.shuffled() {
		if len(qs) == n {
			break
		}
		p := props[i%len(props)]
		if _, ok := p.Value(e); !ok {
			continue
		}
		var others []string
		for _, o := range g.pool {
			if _, ok := p.Value(o); ok {
				others = append(others, p.Format(o))
			}
		}
		answer := p.Format(e)
		qs = append(qs, Question{
			Topic:   Properties,
			Text:    fmt.Sprintf("What is the %s of %s?", strings.ToLower(p.Label()), e.Name),
			Answer:  answer,
			Options: g.options(answer, others),
		})
	}
	return qs
}

func (g *generator) categories(n int) []Question {
	var labels []string
	for _, c := range chem.Categories {
		for _, e := range g.pool {
			if e.Category == c {
				labels = append(labels, c.Label())
				break
			}
		}
	}

	var qs []Question
	for i, e := range g.shuffled() {
		if i == n {
			break
		}
		answer := e.Category.Label()
		qs = append(qs, Question{
			Topic:   Categories,
			Text:    fmt.Sprintf("Which category does %s belong to?", e.Name),
			Answer:  answer,
			Options: g.options(answer, labels),
		})
	}
	return qs
}

func (g *generator) configs(n int) []Question {
	configs := g.collect(func(e chem.Element) string { return e.Config })
	var qs []Question
	for i, e := range g.shuffled() {
		if i == n {
			break
		}
		qs = append(qs, Question{
			Topic:   ElectronConfig,
			Text:    fmt.Sprintf("What is the electron configuration of %s?", e.Name),
			Answer:  e.Config,
			Options: g.options(e.Config, configs),
		})
	}
	return qs
}
