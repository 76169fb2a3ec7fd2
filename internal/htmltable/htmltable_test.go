package htmltable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicTable(t *testing.T) {
	table, ok := Parse(`
	<table>
		<thead>
			<tr><th>Name</th><th>Value</th></tr>
		</thead>
		<tbody>
			<tr><td>Alice</td><td>100</td></tr>
			<tr><td>Bob</td><td>200</td></tr>
		</tbody>
	</table>`)
	require.True(t, ok)
	require.Equal(t, [][]string{{"Name", "Value"}}, table.Header)
	require.Equal(t, [][]string{{"Alice", "100"}, {"Bob", "200"}}, table.Rows)
}

func TestTableWithoutTheadMixedCells(t *testing.T) {
	table, ok := Parse(`
	<table>
		<tr><th>Col A</th><th>Col B</th></tr>
		<tr><td>1</td><td>2</td></tr>
		<tr><td>3</td><td>4</td></tr>
	</table>`)
	require.True(t, ok)
	require.Equal(t, [][]string{{"Col A", "Col B"}}, table.Header)
	require.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, table.Rows)
}

func TestTableAllTDFirstRowPromoted(t *testing.T) {
	table, ok := Parse(`
	<table>
		<tr><td>A</td><td>B</td></tr>
		<tr><td>C</td><td>D</td></tr>
	</table>`)
	require.True(t, ok)
	require.Equal(t, [][]string{{"A", "B"}}, table.Header)
	require.Equal(t, [][]string{{"C", "D"}}, table.Rows)
}

func TestStripsNestedTags(t *testing.T) {
	table, ok := Parse(`
	<table>
		<tr><td><strong>Bold</strong> text</td><td><a href="#">Link</a></td></tr>
	</table>`)
	require.True(t, ok)
	require.Equal(t, "Bold text", table.Header[0][0])
	require.Equal(t, "Link", table.Header[0][1])
}

func TestDecodesEntities(t *testing.T) {
	table, ok := Parse(`
	<table>
		<tr><td>A &amp; B</td><td>&lt;code&gt;</td><td>it&#39;s &quot;x&quot;&nbsp;end</td></tr>
	</table>`)
	require.True(t, ok)
	require.Equal(t, "A & B", table.Header[0][0])
	require.Equal(t, "<code>", table.Header[0][1])
	require.Equal(t, "it's \"x\" end", table.Header[0][2])
}

func TestNoTableReturnsFalse(t *testing.T) {
	_, ok := Parse("<div>Hello</div>")
	require.False(t, ok)
	_, ok = Parse("plain text")
	require.False(t, ok)
	_, ok = Parse("<table><tr><td>x</td></tr>") // unterminated table
	require.False(t, ok)
}

func TestTagsWithAttributes(t *testing.T) {
	table, ok := Parse(`
	<table class="data" border="1">
		<tr class="header"><th scope="col">X</th></tr>
		<tr><td style="color:red">Y</td></tr>
	</table>`)
	require.True(t, ok)
	require.Equal(t, [][]string{{"X"}}, table.Header)
	require.Equal(t, [][]string{{"Y"}}, table.Rows)
}

func TestUnterminatedCellFallsBackToRest(t *testing.T) {
	table, ok := Parse(`<table><tr><td>tail without close</table>`)
	require.True(t, ok)
	require.Equal(t, "tail without close", table.Header[0][0])
}
