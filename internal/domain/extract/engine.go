package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/okian/cvparse/internal/domain/model"
	"github.com/okian/cvparse/internal/domain/scoring"
)

const defaultMinTextLength = 10

// FaultHook is told about every extractor that panicked. The field it was
// producing is left empty.
type FaultHook func(ctx context.Context, field model.Field, err error)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMinTextLength sets the shortest trimmed text that is worth extracting.
func WithMinTextLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minTextLength = n
		}
	}
}

// WithClassifier replaces the field-of-work and seniority classifier.
func WithClassifier(c *scoring.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithFaultHook registers a hook for recovered extractor faults.
func WithFaultHook(h FaultHook) Option {
	return func(e *Engine) {
		e.onFault = h
	}
}

// Engine runs every extractor over one text and assembles a model.Record.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	minTextLength int
	classifier    *scoring.Classifier
	onFault       FaultHook
	steps         []step
}

// step produces one or more fields. Steps run in order and later steps may
// read what earlier ones stored in the record.
type step struct {
	fields []model.Field
	run    func(text string, rec *model.Record) []string
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		minTextLength: defaultMinTextLength,
		classifier:    scoring.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.steps = e.pipeline()
	return e
}

func single(f model.Field, fn func(string) string) step {
	return step{fields: []model.Field{f}, run: func(text string, _ *model.Record) []string {
		return []string{fn(text)}
	}}
}

func (e *Engine) pipeline() []step {
	return []step{
		single(model.Email, Email),
		single(model.Phone, Phone),
		single(model.Skills, Skills),
		{fields: []model.Field{model.FieldOfWork}, run: func(text string, rec *model.Record) []string {
			return []string{e.classifier.FieldOfWork(text, rec.Skills)}
		}},
		single(model.Experience, Experience),
		{fields: []model.Field{model.ExperienceLevel, model.YearsOfExperience}, run: func(text string, _ *model.Record) []string {
			level, years := e.classifier.Experience(text)
			return []string{level, years}
		}},
		single(model.LinkedIn, LinkedIn),
		single(model.Website, Website),
		single(model.Blog, Blog),
		single(model.YouTube, YouTube),
		single(model.FullName, Name),
		{fields: []model.Field{model.Location}, run: func(text string, rec *model.Record) []string {
			return []string{Location(text, rec.FullName)}
		}},
		single(model.Summary, Summary),
		single(model.Education, Education),
		single(model.Projects, Projects),
		single(model.Certifications, Certifications),
		single(model.Languages, Languages),
	}
}

// Extract checks that text is long enough and returns its fields. The only
// error is the ErrTextTooShort extraction error.
func (e *Engine) Extract(ctx context.Context, text string) (model.Record, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < e.minTextLength {
		return model.Record{}, model.TextTooShort()
	}
	return e.Fields(ctx, text), nil
}

// Fields runs every extractor over text. A panicking extractor leaves its
// fields empty; the rest of the record is still produced.
func (e *Engine) Fields(ctx context.Context, text string) model.Record {
	var rec model.Record
	for _, s := range e.steps {
		e.apply(ctx, s, text, &rec)
	}
	return rec
}

func (e *Engine) apply(ctx context.Context, s step, text string, rec *model.Record) {
	defer func() {
		if r := recover(); r != nil {
			for _, f := range s.fields {
				rec.Set(f, "")
			}
			if e.onFault != nil {
				e.onFault(ctx, s.fields[0], fmt.Errorf("extract %s: %v", s.fields[0], r))
			}
		}
	}()
	for i, v := range s.run(text, rec) {
		rec.Set(s.fields[i], strings.TrimSpace(v))
	}
}
