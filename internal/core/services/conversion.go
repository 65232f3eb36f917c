package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
	"github.com/custodia-labs/composer/internal/core/ports/driving"
	"github.com/custodia-labs/composer/internal/logger"
)

// Ensure ConversionService implements the interface.
var _ driving.ConversionService = (*ConversionService)(nil)

// ConversionService is a priority-ordered codec registry.
type ConversionService struct {
	mu     sync.RWMutex
	codecs []driven.Codec
}

// NewConversionService creates a registry holding codecs.
func NewConversionService(codecs ...driven.Codec) *ConversionService {
	s := &ConversionService{}
	for _, c := range codecs {
		s.Register(c)
	}
	return s
}

// Register adds a codec, replacing any codec for the same format.
func (s *ConversionService) Register(codec driven.Codec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.codecs {
		if c.Format() == codec.Format() {
			s.codecs[i] = codec
			s.sort()
			return
		}
	}
	s.codecs = append(s.codecs, codec)
	s.sort()
}

func (s *ConversionService) sort() {
	sort.SliceStable(s.codecs, func(i, j int) bool {
		return s.codecs[i].Priority() > s.codecs[j].Priority()
	})
}

// Formats lists the registered formats in load order.
func (s *ConversionService) Formats() []domain.Format {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Format, len(s.codecs))
	for i, c := range s.codecs {
		out[i] = c.Format()
	}
	return out
}

// Load decodes value with the first codec that accepts it. When every
// codec rejects the value it becomes a single paragraph of raw text.
func (s *ConversionService) Load(value string) domain.Document {
	doc, _ := s.load(value)
	return doc
}

// Detect returns the format Load would read value as.
func (s *ConversionService) Detect(value string) domain.Format {
	_, format := s.load(value)
	return format
}

func (s *ConversionService) load(value string) (domain.Document, domain.Format) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.codecs {
		doc, err := c.Decode(value)
		if err == nil {
			return doc, c.Format()
		}
		logger.Debug("%s decode rejected value: %v", c.Format(), err)
	}
	return domain.NewDocument(domain.Paragraph(domain.TextRun(value))), domain.FormatPlain
}

// Encode serialises doc in format.
func (s *ConversionService) Encode(doc domain.Document, format domain.Format) (string, error) {
	codec, err := s.codec(format)
	if err != nil {
		return "", err
	}
	out, err := codec.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", format, err)
	}
	return out, nil
}

// Save serialises doc in the format a composer in mode emits.
func (s *ConversionService) Save(doc domain.Document, mode domain.Mode) (string, error) {
	if mode == domain.ModePlain {
		return s.Encode(doc, domain.FormatPlain)
	}
	return s.Encode(doc, domain.FormatCanonical)
}

// Convert loads value and re-encodes it in format.
func (s *ConversionService) Convert(value string, format domain.Format) (string, error) {
	return s.Encode(s.Load(value), format)
}

func (s *ConversionService) codec(format domain.Format) (driven.Codec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.codecs {
		if c.Format() == format {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
}
