package extract

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/readhtml/internal/fetch"
	"github.com/hyperifyio/readhtml/internal/frame"
	"github.com/hyperifyio/readhtml/internal/render"
	"github.com/hyperifyio/readhtml/internal/skip"
)

const (
	spamPath     = "testdata/spam.html"
	banklistPath = "testdata/banklist.html"
)

func read(t *testing.T, src Source, opts Options) []*frame.Table {
	t.Helper()
	tables, err := Extract(context.Background(), src, opts)
	require.NoError(t, err)
	return tables
}

func one(t *testing.T, src Source, opts Options) *frame.Table {
	t.Helper()
	tables := read(t, src, opts)
	require.Len(t, tables, 1)
	return tables[0]
}

func assertSameTables(t *testing.T, want, got []*frame.Table) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "table %d differs:\n%s\n---\n%s", i, want[i], got[i])
	}
}

var bankAttrs = map[string]string{"id": "table"}

func TestExtract_AllTablesInDocumentOrder(t *testing.T) {
	tables := read(t, Path(banklistPath), Options{})
	require.Len(t, tables, 2)
	rows, cols := tables[0].Shape()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 7, cols)
	assert.Equal(t, frame.Label{"Bank Name"}, tables[0].Columns[0])
	assert.True(t, tables[1].PositionalColumns)
	assert.Equal(t, frame.String("Last updated"), tables[1].Cell(0, 0))
}

func TestExtract_StrictAndGoqueryAgreeOnValidMarkup(t *testing.T) {
	strict := read(t, Path(banklistPath), Options{Flavor: []string{FlavorStrict}})
	lenient := read(t, Path(banklistPath), Options{Flavor: []string{FlavorGoquery}})
	html5 := read(t, Path(banklistPath), Options{Flavor: []string{FlavorHTML5}})
	assertSameTables(t, strict, lenient)
	assertSameTables(t, strict, html5)

	res, err := ExtractResult(context.Background(), Path(banklistPath), Options{})
	require.NoError(t, err)
	assert.Equal(t, FlavorStrict, res.Flavor)
}

func TestExtract_MatchSelectsSubset(t *testing.T) {
	all := read(t, Path(spamPath), Options{})
	require.Len(t, all, 2)

	water := one(t, Path(spamPath), Options{Match: ".*Water.*"})
	unit := one(t, Path(spamPath), Options{Match: "Unit"})
	assert.True(t, water.Equal(unit))
	assert.Equal(t, frame.Label{"Nutrient"}, water.Columns[0])
	assert.Equal(t, []frame.Value{
		frame.String("Proximates"), frame.String("Water"), frame.String("Energy"),
		frame.String("Protein"), frame.String("Total lipid (fat)"),
	}, water.Column(0))
}

func TestExtract_AttrsFilter(t *testing.T) {
	byID := one(t, Path(spamPath), Options{Attrs: map[string]string{"id": "nutrients"}})
	byMatch := one(t, Path(spamPath), Options{Match: "Water"})
	assert.True(t, byID.Equal(byMatch))

	nav := one(t, Path(spamPath), Options{Attrs: map[string]string{"class": "nav"}})
	assert.Equal(t, frame.String("Home"), nav.Cell(0, 0))

	both := one(t, Path(banklistPath), Options{Attrs: map[string]string{"id": "table", "class": "tablesorter"}})
	assert.Equal(t, 7, len(both.Columns))
}

func TestExtract_NoMatchIsNotNoTables(t *testing.T) {
	_, err := Extract(context.Background(), Path(banklistPath), Options{Match: "Nonexistent Bank"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.NotErrorIs(t, err, ErrNoTables)

	_, err = Extract(context.Background(), Path(banklistPath), Options{Attrs: map[string]string{"id": "missing"}})
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = Extract(context.Background(), String("<html><body><p>nothing here</p></body></html>"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTables)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestExtract_MalformedMarkupFallsBack(t *testing.T) {
	_, err := Extract(context.Background(), Path(spamPath), Options{Flavor: []string{FlavorStrict}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "strict")

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	res, err := ExtractResult(context.Background(), Path(spamPath), Options{Flavor: []string{FlavorStrict, FlavorHTML5}, Logger: &logger})
	require.NoError(t, err)
	assert.Equal(t, FlavorHTML5, res.Flavor)
	assert.Contains(t, logs.String(), "falling back")

	lenient := read(t, Path(spamPath), Options{})
	assertSameTables(t, lenient, res.Tables)
}

func TestExtract_InvalidFlavorFailsBeforeIO(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	_, err := Extract(context.Background(), URL(srv.URL), Options{Flavor: []string{"not-a-parser"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "not-a-parser")
	assert.Equal(t, 0, hits)
}

func TestExtract_UnknownEncodingFailsBeforeIO(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	_, err := Extract(context.Background(), URL(srv.URL), Options{Encoding: "klingon-8"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "klingon-8")
	assert.Equal(t, 0, hits)

	// Unreachable hosts still report the argument error.
	_, err = Extract(context.Background(), URL("http://127.0.0.1:1/t.html"), Options{Encoding: "klingon-8"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrNetwork)
}

func TestExtract_SkipRowsShapesAgree(t *testing.T) {
	base := Options{Attrs: bankAttrs}
	withSkip := func(v any) Options {
		o := base
		o.SkipRows = v
		return o
	}

	list := one(t, Path(banklistPath), withSkip(skip.List{1, 2}))
	set := one(t, Path(banklistPath), withSkip(skip.Set{2: {}, 1: {}}))
	plain := one(t, Path(banklistPath), withSkip([]int{2, 1}))
	assert.True(t, list.Equal(set))
	assert.True(t, list.Equal(plain))
	rows, _ := list.Shape()
	assert.Equal(t, 4, rows)

	up := one(t, Path(banklistPath), withSkip(skip.Range{Start: 2, Stop: 5}))
	down := one(t, Path(banklistPath), withSkip(skip.Range{Start: 4, Stop: 1, Step: -1}))
	assert.True(t, up.Equal(down))
	rows, _ = up.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, frame.String("Banks of Wisconsin d/b/a Bank of Kenosha"), up.Cell(0, 0))
	assert.Equal(t, frame.String("Douglas County Bank"), up.Cell(1, 0))

	count := one(t, Path(banklistPath), withSkip(skip.Count(1)))
	// Skipping the only header row leaves positional labels.
	assert.True(t, count.PositionalColumns)
	rows, _ = count.Shape()
	assert.Equal(t, 6, rows)
}

func TestExtract_SkipRowsInvalid(t *testing.T) {
	for name, v := range map[string]any{
		"negative int":   -1,
		"negative list":  skip.List{1, -2},
		"negative range": skip.Range{Start: -3, Stop: 2},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(context.Background(), Path(banklistPath), Options{SkipRows: v})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.ErrorIs(t, err, skip.ErrInvalid)
			assert.Contains(t, err.Error(), "negative")
		})
	}

	_, err := Extract(context.Background(), Path(banklistPath), Options{SkipRows: "3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "string is not a valid type")
}

func TestExtract_DisallowedSchemeIsNetworkError(t *testing.T) {
	_, err := Extract(context.Background(), URL("git://example.com/tables.git"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, fetch.ErrUnsupportedScheme)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestExtract_UnreachableHostIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := &fetch.Client{MaxAttempts: 1, PerRequestTimeout: 2 * time.Second}
	_, err := Extract(context.Background(), URL(addr), Options{Client: client})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestExtract_URLSources(t *testing.T) {
	body, err := os.ReadFile(banklistPath)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	want := read(t, Path(banklistPath), Options{})
	assertSameTables(t, want, read(t, URL(srv.URL), Options{}))

	abs, err := filepath.Abs(banklistPath)
	require.NoError(t, err)
	assertSameTables(t, want, read(t, URL("file://"+filepath.ToSlash(abs)), Options{}))
}

func TestExtract_SourcesAgree(t *testing.T) {
	body, err := os.ReadFile(banklistPath)
	require.NoError(t, err)
	want := read(t, Path(banklistPath), Options{})
	assertSameTables(t, want, read(t, String(string(body)), Options{}))
	assertSameTables(t, want, read(t, Reader(bytes.NewReader(body)), Options{}))
	assertSameTables(t, want, read(t, Auto(banklistPath), Options{}))
	assertSameTables(t, want, read(t, Auto(string(body)), Options{}))

	_, err = Extract(context.Background(), Path("testdata/does-not-exist.html"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAuto_Classifies(t *testing.T) {
	assert.Equal(t, sourceURL, Auto("https://example.com/list.html").kind)
	assert.Equal(t, sourceURL, Auto("file:///tmp/x.html").kind)
	assert.Equal(t, sourcePath, Auto(spamPath).kind)
	assert.Equal(t, sourceText, Auto("<table><tr><td>1</td></tr></table>").kind)
	assert.Equal(t, sourceText, Auto(`C:\missing\file.html`).kind)
}

const multiHeader = `<table>
<thead>
<tr><th colspan="2">A</th><th colspan="2">B</th></tr>
<tr><th>a</th><th>b</th><th>c</th><th>d</th></tr>
</thead>
<tbody>
<tr><td>1</td><td>2</td><td>3</td><td>4</td></tr>
<tr><td>5</td><td>6</td><td>7</td><td>8</td></tr>
</tbody>
</table>`

func TestExtract_MultiLevelHeader(t *testing.T) {
	inferred := one(t, String(multiHeader), Options{})
	explicit := one(t, String(multiHeader), Options{Header: []int{0, 1}})
	assert.True(t, inferred.Equal(explicit))
	assert.Equal(t, []frame.Label{{"A", "a"}, {"A", "b"}, {"B", "c"}, {"B", "d"}}, inferred.Columns)
	assert.Equal(t, 2, inferred.ColumnLevels())
	c, ok := inferred.ColumnIndex("B", "c")
	require.True(t, ok)
	assert.Equal(t, []frame.Value{frame.Int(3), frame.Int(7)}, inferred.Column(c))
}

func TestExtract_MultiLevelIndex(t *testing.T) {
	one1 := one(t, String(multiHeader), Options{IndexCol: []int{0}})
	assert.Equal(t, []string{"a"}, one1.IndexNames)
	assert.Equal(t, [][]frame.Value{{frame.Int(1)}, {frame.Int(5)}}, one1.Index)
	assert.Equal(t, []frame.Label{{"A", "b"}, {"B", "c"}, {"B", "d"}}, one1.Columns)

	two := one(t, String(multiHeader), Options{IndexCol: []int{0, 1}})
	assert.Equal(t, 2, two.IndexLevels())
	assert.Equal(t, []string{"a", "b"}, two.IndexNames)
	assert.Equal(t, []frame.Value{frame.Int(5), frame.Int(6)}, two.Index[1])
	assert.Equal(t, []frame.Value{frame.Int(7), frame.Int(8)}, two.Rows[1])

	joint := one(t, String(multiHeader), Options{Header: []int{0, 1}, IndexCol: []int{0, 1}})
	assert.True(t, two.Equal(joint))
}

func TestExtract_TupleizeColumns(t *testing.T) {
	tbl := one(t, String(multiHeader), Options{TupleizeColumns: true})
	assert.Equal(t, frame.Label{"(A, a)"}, tbl.Columns[0])
	assert.Equal(t, 1, tbl.ColumnLevels())
}

const junkFirstRow = `<table>
<tr><td>junk</td><td>junk</td></tr>
<tr><th>x</th><th>y</th></tr>
<tr><td>1</td><td>2.5</td></tr>
<tr><td>2</td><td>3.5</td></tr>
</table>`

func TestExtract_HeaderRow(t *testing.T) {
	tbl := one(t, String(junkFirstRow), Options{Header: []int{1}})
	assert.Equal(t, []frame.Label{{"x"}, {"y"}}, tbl.Columns)
	assert.Equal(t, frame.KindInt, tbl.ColumnKind(0))
	assert.Equal(t, frame.KindFloat, tbl.ColumnKind(1))
	rows, _ := tbl.Shape()
	assert.Equal(t, 2, rows)

	skipped := one(t, String(junkFirstRow), Options{SkipRows: skip.Count(1), Header: []int{0}})
	assert.True(t, tbl.Equal(skipped))

	// With the junk row gone the <th> row is picked up on its own.
	inferred := one(t, String(junkFirstRow), Options{SkipRows: 1})
	assert.True(t, tbl.Equal(inferred))
}

func TestExtract_HeaderArgumentErrors(t *testing.T) {
	for name, opts := range map[string]Options{
		"not increasing":       {Header: []int{1, 0}},
		"negative header":      {Header: []int{-1}},
		"header out of range":  {Header: []int{40}},
		"index out of range":   {IndexCol: []int{9}},
		"negative index":       {IndexCol: []int{-1}},
		"date out of range":    {ParseDates: DateColumns{Columns: []int{9}}},
		"combined needs name":  {ParseDates: DateColumns{Combined: []CombinedDate{{Columns: []int{0}}}}},
		"combined overlapping": {ParseDates: DateColumns{Columns: []int{0}, Combined: []CombinedDate{{Name: "d", Columns: []int{0, 1}}}}},
		"unknown encoding":     {Encoding: "klingon"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(context.Background(), String(junkFirstRow), opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestExtract_EmptyHeaderForcesPositional(t *testing.T) {
	tbl := one(t, String(multiHeader), Options{Header: []int{}})
	assert.True(t, tbl.PositionalColumns)
	rows, cols := tbl.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, frame.String("A"), tbl.Cell(0, 1))
}

func TestExtract_TheadMatchesHeaderZero(t *testing.T) {
	withThead := `<table>
<thead><tr><th>Country</th><th>Municipality</th><th>Year</th></tr></thead>
<tbody>
<tr><td>Ukraine</td><td>Odessa</td><td>1944</td></tr>
</tbody>
</table>`
	withRow := `<table>
<tr><td>Country</td><td>Municipality</td><td>Year</td></tr>
<tr><td>Ukraine</td><td>Odessa</td><td>1944</td></tr>
</table>`
	a := one(t, String(withThead), Options{})
	b := one(t, String(withRow), Options{Header: []int{0}})
	assert.True(t, a.Equal(b), "%s\n---\n%s", a, b)
	assert.Equal(t, frame.Int(1944), a.Cell(0, 2))
}

func TestExtract_AllHeaderRowsKeepFirstAsHeader(t *testing.T) {
	tbl := one(t, String(`<table><tr><th>a</th><th>b</th></tr><tr><th>1</th><th>2</th></tr></table>`), Options{})
	assert.Equal(t, []frame.Label{{"a"}, {"b"}}, tbl.Columns)
	assert.Equal(t, [][]frame.Value{{frame.Int(1), frame.Int(2)}}, tbl.Rows)
}

func TestExtract_MissingCellsEqualExplicitNaN(t *testing.T) {
	short := `<table>
<thead><tr><th></th><th>C_l0_g0</th><th>C_l0_g1</th></tr></thead>
<tbody>
<tr><th>R_l0_g0</th><td>0.763</td><td>0.233</td></tr>
<tr><th>R_l0_g1</th><td>0.244</td></tr>
</tbody>
</table>`
	explicit := strings.Replace(short, "<td>0.244</td></tr>", "<td>0.244</td><td>nan</td></tr>", 1)
	a := one(t, String(short), Options{IndexCol: []int{0}})
	b := one(t, String(explicit), Options{IndexCol: []int{0}})
	assert.True(t, a.Equal(b), "%s\n---\n%s", a, b)
	assert.True(t, a.Cell(1, 1).IsNull())
	assert.Equal(t, frame.KindFloat, a.ColumnKind(1))
}

func TestExtract_RowWiderThanHeaderIsParseError(t *testing.T) {
	doc := `<table><thead><tr><th>a</th><th>b</th></tr></thead>
<tr><td>1</td><td>2</td><td>3</td></tr></table>`
	_, err := Extract(context.Background(), String(doc), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	// Without a header the widest row sets the width.
	tbl := one(t, String(`<table><tr><td>1</td></tr><tr><td>1</td><td>2</td><td>3</td></tr></table>`), Options{})
	_, cols := tbl.Shape()
	assert.Equal(t, 3, cols)
	assert.True(t, tbl.Cell(0, 2).IsNull())
}

func TestExtract_ColspanRowspan(t *testing.T) {
	doc := `<table>
<tr><th>A</th><th colspan="2">B</th></tr>
<tr><td rowspan="2">x</td><td>1</td><td>2</td></tr>
<tr><td>3</td><td>4</td></tr>
</table>`
	tbl := one(t, String(doc), Options{})
	assert.Equal(t, []frame.Label{{"A"}, {"B"}, {"B"}}, tbl.Columns)
	assert.Equal(t, [][]frame.Value{
		{frame.String("x"), frame.Int(1), frame.Int(2)},
		{frame.String("x"), frame.Int(3), frame.Int(4)},
	}, tbl.Rows)
}

func TestExtract_ColspanOverlappingRowspan(t *testing.T) {
	doc := `<table>
<tr><th>c1</th><th>c2</th></tr>
<tr><td>a</td><td rowspan=2>R</td></tr>
<tr><td colspan=2>wide</td></tr>
<tr><td>p</td><td>q</td></tr>
</table>`
	tbl := one(t, String(doc), Options{})
	assert.Equal(t, [][]frame.Value{
		{frame.String("a"), frame.String("R")},
		{frame.String("wide"), frame.String("wide")},
		{frame.String("p"), frame.String("q")},
	}, tbl.Rows)
}

func TestExtract_TypeInference(t *testing.T) {
	doc := `<table>
<thead><tr><th>i</th><th>f</th><th>b</th><th>s</th><th>na</th></tr></thead>
<tbody>
<tr><td>1</td><td>1.5</td><td>True</td><td>one</td><td>N/A</td></tr>
<tr><td>N/A</td><td>2</td><td>false</td><td>2</td><td></td></tr>
</tbody>
</table>`
	tbl := one(t, String(doc), Options{})
	assert.Equal(t, []frame.Value{frame.Int(1), frame.Null()}, tbl.Column(0))
	assert.Equal(t, []frame.Value{frame.Float(1.5), frame.Float(2)}, tbl.Column(1))
	assert.Equal(t, []frame.Value{frame.Bool(true), frame.Bool(false)}, tbl.Column(2))
	assert.Equal(t, []frame.Value{frame.String("one"), frame.String("2")}, tbl.Column(3))
	assert.Equal(t, frame.KindNull, tbl.ColumnKind(4))
}

func TestExtract_Thousands(t *testing.T) {
	doc := `<table>
<thead><tr><th>a</th><th>b</th><th>c</th></tr></thead>
<tbody>
<tr><td>1,234</td><td>12,34</td><td>1,234.5</td></tr>
<tr><td>5</td><td>1</td><td>2.5</td></tr>
</tbody>
</table>`
	tbl := one(t, String(doc), Options{})
	assert.Equal(t, []frame.Value{frame.Int(1234), frame.Int(5)}, tbl.Column(0))
	assert.Equal(t, frame.KindString, tbl.ColumnKind(1))
	assert.Equal(t, []frame.Value{frame.Float(1234.5), frame.Float(2.5)}, tbl.Column(2))

	raw := one(t, String(doc), Options{Thousands: NoThousands})
	assert.Equal(t, []frame.Value{frame.String("1,234"), frame.String("5")}, raw.Column(0))

	dots := strings.NewReplacer("1,234.5", "1.234", "1,234", "1.234").Replace(doc)
	eu := one(t, String(dots), Options{Thousands: '.'})
	assert.Equal(t, []frame.Value{frame.Int(1234), frame.Int(5)}, eu.Column(0))
}

func TestExtract_RawTextWarns(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	res, err := ExtractResult(context.Background(), String(junkFirstRow), Options{Header: []int{1}, Inference: RawText, Logger: &logger})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "deprecated")
	assert.Contains(t, logs.String(), "deprecated")
	assert.Contains(t, logs.String(), `"level":"warn"`)
	require.Len(t, res.Tables, 1)
	assert.Equal(t, []frame.Value{frame.String("1"), frame.String("2")}, res.Tables[0].Column(0))

	quiet, err := ExtractResult(context.Background(), String(junkFirstRow), Options{Header: []int{1}})
	require.NoError(t, err)
	assert.Empty(t, quiet.Warnings)
}

func TestExtract_ParseDates(t *testing.T) {
	tbl := one(t, Path(banklistPath), Options{Attrs: bankAttrs, ParseDates: DateColumns{Columns: []int{5, 6}}})
	assert.Equal(t, frame.KindTime, tbl.ColumnKind(5))
	assert.Equal(t, frame.KindTime, tbl.ColumnKind(6))
	assert.Equal(t, frame.Time(time.Date(2013, time.May, 31, 0, 0, 0, 0, time.UTC)), tbl.Cell(0, 5))
	assert.Equal(t, frame.Time(time.Date(2013, time.April, 26, 0, 0, 0, 0, time.UTC)), tbl.Cell(4, 5))

	// Date positions count the columns before the index is split off.
	indexed := one(t, Path(banklistPath), Options{Attrs: bankAttrs, IndexCol: []int{0}, ParseDates: DateColumns{Columns: []int{5}}})
	assert.Equal(t, frame.KindTime, indexed.ColumnKind(4))

	// Unparseable columns keep their inferred type.
	names := one(t, Path(banklistPath), Options{Attrs: bankAttrs, ParseDates: DateColumns{Columns: []int{0}}})
	assert.Equal(t, frame.KindString, names.ColumnKind(0))
}

func TestExtract_ParseDatesCombined(t *testing.T) {
	doc := `<table>
<thead><tr><th>day</th><th>hour</th><th>v</th></tr></thead>
<tbody>
<tr><td>2020-01-02</td><td>10:30</td><td>1</td></tr>
<tr><td>2020-01-03</td><td>11:45</td><td>2</td></tr>
</tbody>
</table>`
	opts := Options{ParseDates: DateColumns{Combined: []CombinedDate{{Name: "when", Columns: []int{0, 1}}}}}
	tbl := one(t, String(doc), opts)
	assert.Equal(t, []frame.Label{{"when"}, {"v"}}, tbl.Columns)
	assert.Equal(t, frame.Time(time.Date(2020, 1, 2, 10, 30, 0, 0, time.UTC)), tbl.Cell(0, 0))
	assert.Equal(t, frame.Time(time.Date(2020, 1, 3, 11, 45, 0, 0, time.UTC)), tbl.Cell(1, 0))

	opts.IndexCol = []int{0}
	indexed := one(t, String(doc), opts)
	assert.Equal(t, []string{"when"}, indexed.IndexNames)
	assert.Equal(t, []frame.Label{{"v"}}, indexed.Columns)
}

func TestExtract_RoundTripThroughHTML(t *testing.T) {
	for name, opts := range map[string]Options{
		"plain":      {Attrs: bankAttrs},
		"index":      {Attrs: bankAttrs, IndexCol: []int{0}},
		"multilevel": {IndexCol: []int{0}},
	} {
		t.Run(name, func(t *testing.T) {
			src := Path(banklistPath)
			if name == "multilevel" {
				src = String(multiHeader)
			}
			orig := one(t, src, opts)

			var buf bytes.Buffer
			require.NoError(t, render.HTML(&buf, orig))
			again := one(t, String(buf.String()), Options{IndexCol: opts.IndexCol, Flavor: []string{FlavorStrict}})
			assert.True(t, orig.Equal(again), "%s\n---\n%s", orig, again)
		})
	}
}

func TestExtract_ForcedAndSniffedEncoding(t *testing.T) {
	latin := []byte("<table><tr><th>caf\xe9</th></tr><tr><td>1</td></tr></table>")
	tbl := one(t, String(string(latin)), Options{Encoding: "windows-1252"})
	assert.Equal(t, frame.Label{"café"}, tbl.Columns[0])

	withMeta := append([]byte(`<html><head><meta charset="windows-1252"/></head><body>`), latin...)
	withMeta = append(withMeta, []byte("</body></html>")...)
	sniffed := one(t, Reader(bytes.NewReader(withMeta)), Options{})
	assert.Equal(t, frame.Label{"café"}, sniffed.Columns[0])

	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<table><tr><th>naïve</th></tr><tr><td>1</td></tr></table>")...)
	utf := one(t, Reader(bytes.NewReader(bom)), Options{Flavor: []string{FlavorStrict}})
	assert.Equal(t, frame.Label{"naïve"}, utf.Columns[0])
}

func TestExtract_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Extract(ctx, URL(srv.URL), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, errors.Is(err, context.Canceled))
}
