package yatgmessageencoding

import (
	"cmp"
	"slices"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
)

// topLevel marks the span that covers the whole text and has no entity.
const topLevel = -1

// renderContext lives for one Render call.
type renderContext struct {
	units    []uint16
	entities []yatgentity.TextEntity
	visited  []bool
}

// Render converts text and its entities into MarkdownV2.
//
// Entities are visited in offset order, longer ones first when two start at the
// same offset, so the longer entity becomes the outer wrapper. Every entity is
// emitted exactly once. Entities inside code or pre are not rendered as markup:
// their range is part of the literal code text.
//
// Entities must fit the text (see yatgentity.CheckBounds). One that reaches past
// the end of the text is not rendered as markup; its range stays plain text.
func Render(text string, entities []yatgentity.TextEntity) string {
	return RenderFrom(text, entities, 0)
}

// RenderFrom is Render for the part of text starting at the UTF-16 offset from.
// Entities that start before from are ignored.
func RenderFrom(text string, entities []yatgentity.TextEntity, from int) string {
	if text == "" {
		return text
	}

	ctx := newRenderContext(text, entities)

	from = max(0, min(from, len(ctx.units)))

	return ctx.renderSpan(topLevel, from, len(ctx.units))
}

// RenderText is Render for messages that may have no text at all: nil stays nil.
func RenderText(text *string, entities []yatgentity.TextEntity) *string {
	if text == nil {
		return nil
	}

	rendered := Render(*text, entities)

	return &rendered
}

func newRenderContext(text string, entities []yatgentity.TextEntity) *renderContext {
	sorted := slices.Clone(entities)

	slices.SortStableFunc(sorted, func(a, b yatgentity.TextEntity) int {
		if c := cmp.Compare(a.Offset(), b.Offset()); c != 0 {
			return c
		}

		return cmp.Compare(b.Length(), a.Length())
	})

	return &renderContext{
		units:    yatgentity.EncodeUTF16(text),
		entities: sorted,
		visited:  make([]bool, len(sorted)),
	}
}

// renderSpan renders [start, end) of the text. index is the entity owning the span
// or topLevel.
func (c *renderContext) renderSpan(index, start, end int) string {
	end = min(end, len(c.units))

	esc := commonEscaper

	var entity yatgentity.TextEntity

	if index != topLevel {
		entity = c.entities[index]
		c.visited[index] = true

		if entity.Kind().IsCode() {
			esc = codeEscaper
		}
	}

	var b strings.Builder

	cursor := start

	if index == topLevel || !entity.Kind().IsCode() {
		for i, child := range c.entities {
			if i == index || c.visited[i] || !inside(child, start, end) {
				continue
			}

			if child.Length() == 0 || child.End() <= cursor {
				// Empty, or its whole range was already emitted by an earlier sibling.
				c.visited[i] = true

				continue
			}

			childStart := max(child.Offset(), cursor)

			c.writeRun(&b, esc, cursor, childStart)
			b.WriteString(c.renderSpan(i, childStart, child.End()))

			cursor = child.End()
		}
	}

	c.writeRun(&b, esc, cursor, end)

	if index == topLevel {
		return b.String()
	}

	return wrap(entity, b.String())
}

func (c *renderContext) writeRun(b *strings.Builder, esc *escaper, from, to int) {
	if from >= to {
		return
	}

	esc.writeTo(b, yatgentity.DecodeUTF16(c.units[from:to]))
}

func inside(entity yatgentity.TextEntity, start, end int) bool {
	return entity.Offset() >= start && entity.End() <= end
}
