// internal/browser/style/resolver.go
package style

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"github.com/xkilldash9x/layoutcore/internal/browser/markup"
)

var typeSelector = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Resolver maps a tag name to its declared style bag. Bags come from the
// user-agent stylesheet, optionally layered with a user stylesheet. A
// Resolver is immutable once built and safe for concurrent use.
type Resolver struct {
	bags map[string]Bag
	log  *zap.Logger
}

// NewResolver builds a resolver from the default user-agent stylesheet
// followed by any extra stylesheets, later ones overriding earlier ones.
func NewResolver(logger *zap.Logger, stylesheets ...string) (*Resolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		bags: make(map[string]Bag),
		log:  logger.Named("style"),
	}

	sheets := append([]string{DefaultUserAgentCSS}, stylesheets...)
	for i, src := range sheets {
		if err := r.apply(src); err != nil {
			return nil, fmt.Errorf("stylesheet %d: %w", i, err)
		}
	}
	return r, nil
}

// Resolve returns the declared bag for tag. Text nodes are always inline.
// Unknown tags get a block bag with zero margin and padding.
func (r *Resolver) Resolve(tag string) Bag {
	if tag == markup.TextTag {
		return Bag{Display: DisplayInline}
	}
	if bag, ok := r.bags[strings.ToLower(tag)]; ok {
		return bag
	}
	return Bag{Display: DisplayBlock}
}

// -- Stylesheet parsing --

func (r *Resolver) apply(src string) error {
	p := css.NewParser(parse.NewInput(strings.NewReader(src)), false)

	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			err := p.Err()
			if err == nil || errors.Is(err, io.EOF) {
				return nil
			}
			if p.HasParseError() {
				// Rules before the malformed one stay in effect.
				r.log.Warn("stylesheet parse error, ignoring the rest", zap.Error(err))
				return nil
			}
			return err

		case css.BeginAtRuleGrammar:
			r.log.Debug("skipping at-rule block", zap.String("rule", string(data)))
			skipAtRuleBlock(p)

		case css.AtRuleGrammar:
			r.log.Debug("skipping at-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := r.selectors(data, p.Values())
			decls := collectDeclarations(p)
			for _, tag := range selectors {
				bag, ok := r.bags[tag]
				if !ok {
					bag = Bag{Display: DisplayBlock}
				}
				for _, d := range decls {
					if err := applyDeclaration(&bag, d); err != nil {
						r.log.Debug("ignoring declaration",
							zap.String("selector", tag),
							zap.String("property", d.property),
							zap.Error(err))
					}
				}
				r.bags[tag] = bag
			}
		}
	}
}

func (r *Resolver) selectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var tags []string
	for _, s := range strings.Split(sb.String(), ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !typeSelector.MatchString(s) {
			r.log.Debug("ignoring unsupported selector", zap.String("selector", s))
			continue
		}
		tags = append(tags, s)
	}
	return tags
}

type declaration struct {
	property string
	values   []string
	raw      string
}

func collectDeclarations(p *css.Parser) []declaration {
	var decls []declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls
		case css.DeclarationGrammar:
			decls = append(decls, newDeclaration(string(data), p.Values()))
		}
	}
}

func newDeclaration(property string, tokens []css.Token) declaration {
	d := declaration{property: strings.ToLower(property)}
	var raw strings.Builder
	for _, t := range tokens {
		raw.Write(t.Data)
		switch t.TokenType {
		case css.WhitespaceToken, css.CommaToken:
			continue
		case css.DelimToken:
			// "!important" is accepted but carries no extra weight.
			continue
		case css.IdentToken:
			if strings.EqualFold(string(t.Data), "important") {
				continue
			}
		}
		d.values = append(d.values, string(t.Data))
	}
	d.raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw.String()), "!important"))
	return d
}

func skipAtRuleBlock(p *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--
		}
	}
}

// -- Declarations --

func applyDeclaration(bag *Bag, d declaration) error {
	if len(d.values) == 0 {
		return fmt.Errorf("no value")
	}
	keyword := strings.ToLower(d.values[0])

	switch d.property {
	case "display":
		switch keyword {
		case "block", "list-item":
			bag.Display = DisplayBlock
		case "inline":
			bag.Display = DisplayInline
		case "none":
			bag.Display = DisplayNone
		default:
			return fmt.Errorf("unsupported display %q", keyword)
		}

	case "color":
		c, ok := ParseColor(d.raw)
		if !ok {
			return fmt.Errorf("invalid color %q", d.raw)
		}
		bag.Color = &c

	case "font-size":
		m, err := ParseMeasurement(keyword, false)
		if err != nil {
			return err
		}
		bag.FontSize = &m

	case "line-height":
		if keyword == "normal" {
			bag.LineHeight = ptr(Em(1.2))
			return nil
		}
		m, err := ParseMeasurement(keyword, true)
		if err != nil {
			return err
		}
		bag.LineHeight = &m

	case "font-weight":
		switch keyword {
		case "bold", "bolder":
			bag.FontWeight = ptr(WeightBold)
		case "normal", "lighter":
			bag.FontWeight = ptr(WeightNormal)
		default:
			n, err := strconv.Atoi(keyword)
			if err != nil {
				return fmt.Errorf("invalid font-weight %q", keyword)
			}
			if n >= 600 {
				bag.FontWeight = ptr(WeightBold)
			} else {
				bag.FontWeight = ptr(WeightNormal)
			}
		}

	case "font-style":
		switch keyword {
		case "italic", "oblique":
			bag.FontStyle = ptr(StyleItalic)
		case "normal":
			bag.FontStyle = ptr(StyleNormal)
		default:
			return fmt.Errorf("invalid font-style %q", keyword)
		}

	case "text-decoration", "text-decoration-line":
		switch keyword {
		case "underline":
			bag.TextDecoration = ptr(DecorationUnderline)
		case "none":
			bag.TextDecoration = ptr(DecorationNone)
		default:
			return fmt.Errorf("unsupported text-decoration %q", keyword)
		}

	case "margin":
		return applyShorthand(&bag.Margin, d.values)
	case "padding":
		return applyShorthand(&bag.Padding, d.values)
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		return applySide(&bag.Margin, strings.TrimPrefix(d.property, "margin-"), keyword)
	case "padding-top", "padding-right", "padding-bottom", "padding-left":
		return applySide(&bag.Padding, strings.TrimPrefix(d.property, "padding-"), keyword)

	default:
		return fmt.Errorf("unsupported property")
	}
	return nil
}

// applyShorthand expands the one-to-four value edge shorthand.
func applyShorthand(e *EdgeSpec, values []string) error {
	if len(values) > 4 {
		return fmt.Errorf("too many values for shorthand: %d", len(values))
	}
	ms := make([]Measurement, len(values))
	for i, v := range values {
		m, err := ParseMeasurement(v, false)
		if err != nil {
			return err
		}
		ms[i] = m
	}

	switch len(ms) {
	case 1:
		*e = EdgeSpec{ms[0], ms[0], ms[0], ms[0]}
	case 2:
		*e = EdgeSpec{ms[0], ms[1], ms[0], ms[1]}
	case 3:
		*e = EdgeSpec{ms[0], ms[1], ms[2], ms[1]}
	case 4:
		*e = EdgeSpec{ms[0], ms[1], ms[2], ms[3]}
	}
	return nil
}

func applySide(e *EdgeSpec, side, value string) error {
	m, err := ParseMeasurement(value, false)
	if err != nil {
		return err
	}
	switch side {
	case "top":
		e.Top = m
	case "right":
		e.Right = m
	case "bottom":
		e.Bottom = m
	case "left":
		e.Left = m
	}
	return nil
}
