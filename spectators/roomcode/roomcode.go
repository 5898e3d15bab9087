// Package roomcode normalizes and checks room codes typed or pasted by users.
package roomcode

import (
	"strings"

	"github.com/dowdarts/spectators-videochat/internal/errors"
)

const ErrUnknownFormat errors.Code = "unknown room code format"

type Format string

const (
	// six characters, A-Z and 0-9
	FormatAlnum6 Format = "alnum6"
	// four digits
	FormatDigits4 Format = "digits4"
)

type Policy struct {
	format  Format
	width   int
	allowed func(r rune) bool
}

func NewPolicy(format Format) (*Policy, error) {
	switch format {
	case FormatAlnum6, "":
		return &Policy{format: FormatAlnum6, width: 6, allowed: isAlnum}, nil
	case FormatDigits4:
		return &Policy{format: FormatDigits4, width: 4, allowed: isDigit}, nil
	default:
		return nil, errors.Newf(ErrUnknownFormat, "%q", format)
	}
}

func (p *Policy) Format() Format {
	return p.format
}

func (p *Policy) Width() int {
	return p.width
}

// Normalize upper-cases raw and drops every disallowed character. It never
// truncates.
func (p *Policy) Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToUpper(raw) {
		if p.allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether code is already in normalized form with exact width.
func (p *Policy) Valid(code string) bool {
	return len(code) == p.width && p.Normalize(code) == code
}

// Parse normalizes raw once and reports whether the result has the exact
// width.
func (p *Policy) Parse(raw string) (string, bool) {
	code := p.Normalize(raw)
	return code, len(code) == p.width
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlnum(r rune) bool {
	return isDigit(r) || (r >= 'A' && r <= 'Z')
}
