package prose

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/jonreiter/govader"
	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/nlp"
)

// BundledModel selects the model shipped with prose.
const BundledModel = "prose"

// bundledModelName is the name prose gives its own model.
const bundledModelName = "en-v2.0.0"

//go:embed stopwords.txt
var stopwordList string

var stopwords = loadStopwords(stopwordList)

func loadStopwords(list string) map[string]bool {
	words := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(list))
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words[w] = true
		}
	}
	return words
}

// IsStopword reports whether word is an English stopword, ignoring case.
func IsStopword(word string) bool {
	return stopwords[strings.ToLower(word)]
}

// Pipeline implements nlp.Pipeline on prose and VADER.
// It keeps no per-call state and is safe for concurrent use.
type Pipeline struct {
	name   string
	model  *prose.Model
	vader  *govader.SentimentIntensityAnalyzer
	logger *slog.Logger
}

var _ nlp.Pipeline = (*Pipeline)(nil)

// New creates a pipeline. model is BundledModel (or empty) for prose's own
// model, otherwise a directory holding a model saved by prose.
//
// Returns nlp.Pipeline interface to enforce abstraction.
func New(model string) (nlp.Pipeline, error) {
	return newPipeline(model)
}

func newPipeline(model string) (p *Pipeline, err error) {
	p = &Pipeline{
		name:   BundledModel,
		vader:  govader.NewSentimentIntensityAnalyzer(),
		logger: slog.Default().With("component", "prose-pipeline"),
	}
	// prose panics on unreadable model data.
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("load model %q: %v", model, r)
		}
	}()

	if model == "" || model == BundledModel {
		// Built once here; prose otherwise rebuilds it for every document.
		p.model = prose.ModelFromData(bundledModelName)
		return p, nil
	}

	info, err := os.Stat(model)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", model, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("load model %q: not a directory", model)
	}

	p.model = prose.ModelFromDisk(model)
	p.name = BundledModel + ":" + model
	p.logger.Info("loaded custom model", "path", model)
	return p, nil
}

// Name identifies the pipeline and its model.
func (p *Pipeline) Name() string {
	return p.name
}

// Analyze runs prose and VADER over text.
func (p *Pipeline) Analyze(ctx context.Context, text string) (doc *core.AnalyzedDocument, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("prose: %v", r)
		}
	}()

	pd, err := prose.NewDocument(text, prose.UsingModel(p.model))
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	doc = &core.AnalyzedDocument{}
	for _, tok := range pd.Tokens() {
		doc.Tokens = append(doc.Tokens, core.Token{
			Text:   tok.Text,
			POS:    coarseTag(tok.Tag),
			IsStop: IsStopword(tok.Text),
		})
	}
	for _, ent := range pd.Entities() {
		doc.Entities = append(doc.Entities, core.Entity{Text: ent.Text, Label: ent.Label})
	}
	for _, sent := range pd.Sentences() {
		if s := strings.TrimSpace(sent.Text); s != "" {
			doc.Sentences = append(doc.Sentences, s)
		}
	}
	doc.Polarity = p.vader.PolarityScores(text).Compound

	p.logger.Debug("analyzed", "tokens", len(doc.Tokens), "sentences", len(doc.Sentences))
	return doc, nil
}
