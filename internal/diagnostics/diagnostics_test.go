package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/source"
)

func spanAt(offset int) source.Span {
	return source.Span{
		Start: source.Position{Line: 1, Column: offset + 1, Offset: offset},
		End:   source.Position{Line: 1, Column: offset + 2, Offset: offset + 1},
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.HasErrors())
	assert.Zero(t, c.Len())

	c.AddError(UnexpectedToken, "expected ';'", spanAt(4))
	c.Add(Diagnostic{
		Code:     ExpectedType,
		Severity: SeverityWarning,
		Message:  "suspicious width",
		Span:     spanAt(1),
	})

	assert.True(t, c.HasErrors())
	assert.Equal(t, 2, c.Len())
}

func TestSortIsBySourceOrder(t *testing.T) {
	c := NewCollector()
	c.AddError(UnexpectedToken, "third", spanAt(9))
	c.AddError(UnexpectedToken, "first", spanAt(0))
	c.AddError(UnexpectedToken, "second", spanAt(3))

	c.Sort()

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "second", items[1].Message)
	assert.Equal(t, "third", items[2].Message)
}

func TestStringForms(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unexpected-token", UnexpectedToken.String())
	assert.Equal(t, "lexical", LexicalPassthrough.String())

	d := Diagnostic{
		Code:     UnexpectedToken,
		Severity: SeverityError,
		Message:  "expected ';'",
		Span:     spanAt(0),
	}
	assert.Contains(t, d.String(), "expected ';'")
	assert.Contains(t, d.String(), "unexpected-token")
}

func TestWarningsAreNotErrors(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Code: ExpectedType, Severity: SeverityWarning, Message: "w", Span: spanAt(0)})
	assert.False(t, c.HasErrors())
	assert.Equal(t, 1, c.Len())
}
