package xmlsyntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Format(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "formatted document unchanged",
			input:    "<Project>\n  <Node1>\n    <Node2 />\n  </Node1>\n</Project>",
			expected: "<Project>\n  <Node1>\n    <Node2 />\n  </Node1>\n</Project>",
		},
		{
			name:     "nodes without indentation",
			input:    "<Project>\n<Node1>\n<Node2 />\n</Node1>\n</Project>",
			expected: "<Project>\n  <Node1>\n    <Node2 />\n  </Node1>\n</Project>",
		},
		{
			name:     "nodes in one line",
			input:    "<Project><Node1><Node2 /></Node1></Project>",
			expected: "<Project>\n  <Node1>\n    <Node2 />\n  </Node1>\n</Project>",
		},
		{
			name:     "multiple children",
			input:    "<Project>\n<Node1 />\n<Node2 />\n<Node3 />\n</Project>",
			expected: "<Project>\n  <Node1 />\n  <Node2 />\n  <Node3 />\n</Project>",
		},
		{
			name:     "text content stays inline",
			input:    "<Project><Node1>Some text</Node1>\n</Project>",
			expected: "<Project>\n  <Node1>Some text</Node1>\n</Project>",
		},
		{
			name:     "attributes without separator",
			input:    "<Project>\n  <Node Attribute1=\"Value\"Attribute2=\"Value\"/>\n</Project>",
			expected: "<Project>\n  <Node Attribute1=\"Value\" Attribute2=\"Value\" />\n</Project>",
		},
		{
			name:     "attributes with space before ending",
			input:    "<Project>\n  <Node Attribute1=\"Value\"Attribute2=\"Value\" />\n</Project>",
			expected: "<Project>\n  <Node Attribute1=\"Value\" Attribute2=\"Value\" />\n</Project>",
		},
		{
			name:     "extra attribute whitespace",
			input:    "<Project>\n  <Node   A = \"1\"\n        B=\"2\"   >x</Node>\n</Project>",
			expected: "<Project>\n  <Node A=\"1\" B=\"2\">x</Node>\n</Project>",
		},
		{
			name:     "empty tag without attributes",
			input:    "<Project>\n  <Node />\n</Project>",
			expected: "<Project>\n  <Node />\n</Project>",
		},
		{
			name:     "empty content element stays adjacent",
			input:    "<Project><NoWarn></NoWarn></Project>",
			expected: "<Project>\n  <NoWarn></NoWarn>\n</Project>",
		},
		{
			name:     "blank lines between groups survive",
			input:    "<Project>\n<A />\n\n\n<B />\n</Project>",
			expected: "<Project>\n  <A />\n\n\n  <B />\n</Project>",
		},
		{
			name:     "prolog keeps root on its own line",
			input:    "<?xml version=\"1.0\" encoding=\"utf-8\"?><Project><A /></Project>\n",
			expected: "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<Project>\n  <A />\n</Project>\n",
		},
		{
			name:     "end tag trivia dropped",
			input:    "<Project><A>1</A  ></Project  >",
			expected: "<Project>\n  <A>1</A>\n</Project>",
		},
		{
			name: "comments untouched",
			input: `<Project>
  <!-- First -->
  <PropertyGroup>
    <IncludeSymbols>true</IncludeSymbols>
  </PropertyGroup>

  <!-- Second -->
  <PropertyGroup>
    <IncludeSymbols>true</IncludeSymbols>
  </PropertyGroup>
</Project>`,
			expected: `<Project>
  <!-- First -->
  <PropertyGroup>
    <IncludeSymbols>true</IncludeSymbols>
  </PropertyGroup>

  <!-- Second -->
  <PropertyGroup>
    <IncludeSymbols>true</IncludeSymbols>
  </PropertyGroup>
</Project>`,
		},
	}

	formatter := NewFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := formatter.FormatString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestFormatter_Idempotent(t *testing.T) {
	inputs := []string{
		sdkProject,
		"<Project><A><B><C x=\"1\"/></B></A><D>text</D></Project>",
		"<?xml version=\"1.0\"?>\n<!-- c -->\n<Project>\n\n<A/>\n<!-- x --><B></B></Project>\n",
		"<Project>\n  <Target Name=\"T\">echo<Exec Command=\"x\" />done</Target>\n</Project>",
		"<Project><A>value\n</A><B>one \n  <C/>two</B></Project>",
	}

	formatter := NewFormatter()
	for _, input := range inputs {
		once, err := formatter.FormatString(input)
		require.NoError(t, err)
		twice, err := formatter.FormatString(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestFormatter_MixedContentIsStable(t *testing.T) {
	formatter := NewFormatter()
	text := "<Project>\n  <Target Name=\"T\">echo<Exec Command=\"x\" />done</Target>\n</Project>"

	want := "<Project>\n  <Target Name=\"T\">echo\n    <Exec Command=\"x\" />done\n  </Target>\n</Project>"
	for i := 0; i < 3; i++ {
		var err error
		text, err = formatter.FormatString(text)
		require.NoError(t, err)
		assert.Equal(t, want, text, "pass %d", i+1)
	}
}

func TestFormatter_EditedDocument(t *testing.T) {
	doc, err := Parse("<Project><PropertyGroup><ManagePackageVersionsCentrally>false</ManagePackageVersionsCentrally></PropertyGroup></Project>")
	require.NoError(t, err)

	prop := doc.Root().FindFirst("ManagePackageVersionsCentrally")
	doc = doc.ReplaceNode(prop, prop.WithText("true"))

	formatted, err := NewFormatter().Format(doc)
	require.NoError(t, err)
	assert.Equal(t,
		"<Project>\n  <PropertyGroup>\n    <ManagePackageVersionsCentrally>true</ManagePackageVersionsCentrally>\n  </PropertyGroup>\n</Project>",
		formatted.String())
}

func TestFormatter_DoesNotMutateInput(t *testing.T) {
	const input = "<Project><A /></Project>"
	doc, err := Parse(input)
	require.NoError(t, err)

	_, err = NewFormatter().Format(doc)
	require.NoError(t, err)
	assert.Equal(t, input, doc.String())
}

func TestFormatter_DepthOverflow(t *testing.T) {
	var b strings.Builder
	for i := 0; i <= MaxDepth+1; i++ {
		b.WriteString("<E>")
	}
	for i := 0; i <= MaxDepth+1; i++ {
		b.WriteString("</E>")
	}

	_, err := NewFormatter().FormatString(b.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDepthOverflow)
}

func TestFormatter_MaxDepthAllowed(t *testing.T) {
	var b strings.Builder
	for i := 0; i <= MaxDepth; i++ {
		b.WriteString("<E>")
	}
	for i := 0; i <= MaxDepth; i++ {
		b.WriteString("</E>")
	}

	_, err := NewFormatter().FormatString(b.String())
	assert.NoError(t, err)
}
