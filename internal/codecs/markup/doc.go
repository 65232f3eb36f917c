// Package markup provides the Codec for the legacy inline markup form of a
// composer value: an HTML subset of paragraphs, lists, links and the four
// character marks. Mentions are written as the literal @name.
package markup
