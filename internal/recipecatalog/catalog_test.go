package recipecatalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatarubot/tataru/internal/domain"
)

// datasetRow builds one CSV row in the dataset column layout. The
// ingredient pairs fill slots from the left.
func datasetRow(number, craftType, outputItemID, outputAmount int, pairs ...int) string {
	cols := make([]string, minColumns)
	for i := range cols {
		cols[i] = "0"
	}
	cols[colNumber] = strconv.Itoa(number)
	cols[colCraftType] = strconv.Itoa(craftType)
	cols[colOutputItemID] = strconv.Itoa(outputItemID)
	cols[colOutputAmount] = strconv.Itoa(outputAmount)
	for i := 0; i+1 < len(pairs); i += 2 {
		cols[colFirstIngredient+i] = strconv.Itoa(pairs[i])
		cols[colFirstIngredient+i+1] = strconv.Itoa(pairs[i+1])
	}
	return strings.Join(cols, ",")
}

func dataset(rows ...string) string {
	preamble := "key,0,1,2\n#,Number,CraftType,RecipeLevelTable\nint32,int32,int32,int32\n"
	return preamble + strings.Join(rows, "\n") + "\n"
}

func TestParseSkipsPreamble(t *testing.T) {
	c, err := parse(strings.NewReader(dataset(
		datasetRow(1, 0, 100, 1, 10, 2),
	)))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	require.NotNil(t, c.FindByNumber(1))
}

func TestParseSkipsPlaceholderRows(t *testing.T) {
	c, err := parse(strings.NewReader(dataset(
		datasetRow(1, 0, 0, 0),
		datasetRow(2, 1, 200, 1, 10, 3),
	)))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Nil(t, c.FindByNumber(1))
	assert.NotNil(t, c.FindByNumber(2))
}

func TestParseIngredientSlots(t *testing.T) {
	// Slot 1 is left empty; the occupied slots keep their positions.
	c, err := parse(strings.NewReader(dataset(
		datasetRow(7, 6, 500, 3, 10, 2, 0, 0, 12, 1),
	)))
	require.NoError(t, err)

	recipe := c.FindByNumber(7)
	require.NotNil(t, recipe)
	assert.Equal(t, 6, recipe.CraftType)
	assert.Equal(t, 500, recipe.OutputItemID)
	assert.Equal(t, 3, recipe.OutputAmount)

	ing, ok := recipe.Ingredient(0)
	require.True(t, ok)
	assert.Equal(t, domain.Ingredient{ItemID: 10, Amount: 2}, ing)

	_, ok = recipe.Ingredient(1)
	assert.False(t, ok)

	ing, ok = recipe.Ingredient(2)
	require.True(t, ok)
	assert.Equal(t, domain.Ingredient{ItemID: 12, Amount: 1}, ing)
}

func TestParseDuplicateNumberLastWins(t *testing.T) {
	c, err := parse(strings.NewReader(dataset(
		datasetRow(1, 0, 100, 1, 10, 1),
		datasetRow(2, 0, 200, 1, 11, 1),
		datasetRow(1, 0, 300, 2, 12, 4),
	)))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())

	recipe := c.FindByNumber(1)
	require.NotNil(t, recipe)
	assert.Equal(t, 300, recipe.OutputItemID)

	// The duplicate keeps its original position in load order.
	matches := c.FindByOutputItem(300)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Number)
}

func TestFindByOutputItemPreservesLoadOrder(t *testing.T) {
	c, err := parse(strings.NewReader(dataset(
		datasetRow(5, 0, 100, 1, 10, 1),
		datasetRow(3, 1, 100, 1, 11, 2),
		datasetRow(9, 2, 200, 1, 12, 1),
	)))
	require.NoError(t, err)

	matches := c.FindByOutputItem(100)
	require.Len(t, matches, 2)
	assert.Equal(t, 5, matches[0].Number)
	assert.Equal(t, 3, matches[1].Number)

	assert.Empty(t, c.FindByOutputItem(999))
}

func TestFindByNumberReturnsCopy(t *testing.T) {
	c, err := parse(strings.NewReader(dataset(
		datasetRow(1, 0, 100, 1, 10, 2),
	)))
	require.NoError(t, err)

	first := c.FindByNumber(1)
	require.NotNil(t, first)
	first.OutputAmount = 99

	second := c.FindByNumber(1)
	require.NotNil(t, second)
	assert.Equal(t, 1, second.OutputAmount)
}

func TestLoadFetchesMissingDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, dataset(datasetRow(1, 0, 100, 1, 10, 2)))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "recipes.csv")
	c, err := Load(context.Background(), path, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	// The fetched dataset is persisted for subsequent startups.
	_, err = os.Stat(path)
	require.NoError(t, err)

	assert.NotZero(t, fetchClient.Timeout)
}

func TestLoadFetchFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "recipes.csv"), srv.URL)
	assert.Error(t, err)
}

func TestParseShortRowsIgnored(t *testing.T) {
	preamble := "key,0,1,2\n#,Number,CraftType,RecipeLevelTable\nint32,int32,int32,int32\n"
	c, err := parse(strings.NewReader(preamble + "1,2,3\n" + datasetRow(2, 0, 100, 1, 10, 1) + "\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Nil(t, c.FindByNumber(1))
}
