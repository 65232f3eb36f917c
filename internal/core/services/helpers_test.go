package services

import (
	"github.com/custodia-labs/composer/internal/codecs/canonical"
	"github.com/custodia-labs/composer/internal/codecs/markup"
	"github.com/custodia-labs/composer/internal/codecs/plaintext"
	"github.com/custodia-labs/composer/internal/core/domain"
)

func newConversion() *ConversionService {
	return NewConversionService(plaintext.New(), markup.New(), canonical.New())
}

func typeText(c *Composer, text string) {
	for _, r := range text {
		c.HandleKey(domain.RuneKey(r))
	}
}

func press(c *Composer, k domain.Key) bool {
	return c.HandleKey(domain.NamedKey(k))
}
