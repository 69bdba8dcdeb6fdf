package nlp

import (
	"fmt"
	"sort"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/siherrmann/mentioner/helper"
	"github.com/siherrmann/mentioner/model"
)

// HugotTaggerConfig selects the ONNX models of a HugotTagger.
type HugotTaggerConfig struct {
	ModelDir    string
	NERModel    string // token classification model with PER/LOC labels
	NEROnnxFile string
	POSModel    string // optional token classification model with UPOS labels
	POSOnnxFile string
}

// HugotTagger runs token classification models through hugot's pure Go
// backend. The pipelines are only read after construction.
type HugotTagger struct {
	session *hugot.Session
	ner     *pipelines.TokenClassificationPipeline
	pos     *pipelines.TokenClassificationPipeline
}

// NewHugotTagger downloads the configured models if needed and creates the
// NER pipeline plus the optional POS pipeline.
func NewHugotTagger(config HugotTaggerConfig) (*HugotTagger, error) {
	if config.NERModel == "" {
		return nil, fmt.Errorf("no NER model configured")
	}
	if config.ModelDir == "" {
		config.ModelDir = helper.DefaultModelDir
	}

	nerPath, err := helper.PrepareModelIn(config.ModelDir, config.NERModel, config.NEROnnxFile)
	if err != nil {
		return nil, err
	}

	var posPath string
	if config.POSModel != "" {
		posPath, err = helper.PrepareModelIn(config.ModelDir, config.POSModel, config.POSOnnxFile)
		if err != nil {
			return nil, err
		}
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	nerPipeline, err := hugot.NewPipeline(session, hugot.TokenClassificationConfig{
		ModelPath: nerPath,
		Name:      "ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}), // Ignore non-entity tokens
		},
	})
	if err != nil {
		return nil, destroyAfter(session, fmt.Errorf("failed to create NER pipeline: %w", err))
	}

	tagger := &HugotTagger{
		session: session,
		ner:     nerPipeline,
	}

	if posPath != "" {
		posPipeline, err := hugot.NewPipeline(session, hugot.TokenClassificationConfig{
			ModelPath: posPath,
			Name:      "pos-pipeline",
			Options: []hugot.TokenClassificationOption{
				pipelines.WithSimpleAggregation(),
			},
		})
		if err != nil {
			return nil, destroyAfter(session, fmt.Errorf("failed to create POS pipeline: %w", err))
		}
		tagger.pos = posPipeline
	}

	return tagger, nil
}

func destroyAfter(session *hugot.Session, err error) error {
	if destroyErr := session.Destroy(); destroyErr != nil {
		return fmt.Errorf("%w (cleanup error: %v)", err, destroyErr)
	}
	return err
}

func (t *HugotTagger) Available() bool {
	return t != nil && t.ner != nil
}

// HasPOS reports whether a POS pipeline is loaded next to the NER pipeline.
func (t *HugotTagger) HasPOS() bool {
	return t != nil && t.pos != nil
}

// Tag runs NER over text and attaches the POS tag found at each span start.
func (t *HugotTagger) Tag(text string) ([]TaggedSpan, error) {
	result, err := t.ner.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to run NER: %w", err)
	}
	if len(result.Entities) == 0 {
		return nil, nil
	}

	var posTags []byteTag
	if t.pos != nil {
		posTags, err = t.runPOS(text)
		if err != nil {
			return nil, err
		}
	}

	var spans []TaggedSpan
	cursor := 0
	for _, entity := range result.Entities[0] {
		start, end, ok := locate(text, entity.Word, int(entity.Start), int(entity.End), cursor)
		if !ok {
			continue
		}
		cursor = end

		pos := model.POSNone
		if t.pos != nil {
			pos = tagAt(posTags, start)
		}

		spans = append(spans, TaggedSpan{
			Text:  text[start:end],
			Label: normalizeEntityType(entity.Entity),
			Start: runeOffset(text, start),
			End:   runeOffset(text, end),
			POS:   pos,
		})
	}

	return spans, nil
}

// byteTag is a POS tag covering a byte range of the tagged text.
type byteTag struct {
	start int
	end   int
	pos   model.PartOfSpeech
}

func (t *HugotTagger) runPOS(text string) ([]byteTag, error) {
	result, err := t.pos.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to run POS tagging: %w", err)
	}
	if len(result.Entities) == 0 {
		return nil, nil
	}

	tags := make([]byteTag, 0, len(result.Entities[0]))
	cursor := 0
	for _, entity := range result.Entities[0] {
		start, end, ok := locate(text, entity.Word, int(entity.Start), int(entity.End), cursor)
		if !ok {
			continue
		}
		cursor = end
		tags = append(tags, byteTag{start: start, end: end, pos: model.ParsePartOfSpeech(entity.Entity)})
	}
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].start < tags[j].start })
	return tags, nil
}

// tagAt returns the POS tag covering byte offset, POSUnknown if none does.
func tagAt(tags []byteTag, offset int) model.PartOfSpeech {
	for _, tag := range tags {
		if offset >= tag.start && offset < tag.end {
			return tag.pos
		}
	}
	return model.POSUnknown
}

// Close releases the hugot session.
func (t *HugotTagger) Close() error {
	if t == nil || t.session == nil {
		return nil
	}
	return t.session.Destroy()
}
