// Package recipecatalog holds the immutable bulk recipe dataset loaded
// once at startup from the ffxiv-datamining Recipe.csv export.
package recipecatalog

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/logger"
)

// downloadTimeout bounds the one-shot dataset fetch, body included; a
// stalled master-data server must not hang startup.
const downloadTimeout = 60 * time.Second

var fetchClient = &http.Client{Timeout: downloadTimeout}

// DefaultSourceURL is the known master-data location the dataset is
// fetched from when the local file is absent.
const DefaultSourceURL = "https://raw.githubusercontent.com/xivapi/ffxiv-datamining/refs/heads/master/csv/Recipe.csv"

// Dataset column layout: a 3-row preamble, then per row
// [number, _, craftType, _, _, outputItemID, outputAmount, (ingID, ingAmt) x 8].
const (
	preambleRows       = 3
	colNumber          = 0
	colCraftType       = 2
	colOutputItemID    = 5
	colOutputAmount    = 6
	colFirstIngredient = 7
	minColumns         = colFirstIngredient + 2*domain.RecipeSlots
)

// Catalog is a read-only index over the recipe dataset. It requires no
// synchronization after load.
type Catalog struct {
	byNumber map[int]domain.Recipe
	order    []int // recipe numbers in dataset load order
}

// Load opens the dataset at path, fetching it from sourceURL first if
// the file does not exist. A load failure is fatal to startup: no
// recipe answer is possible without the catalog.
func Load(ctx context.Context, path, sourceURL string) (*Catalog, error) {
	log := logger.FromContext(ctx)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Info("Recipe dataset missing, fetching", "path", path, "url", sourceURL)
		if err := fetch(ctx, path, sourceURL); err != nil {
			return nil, fmt.Errorf("failed to fetch recipe dataset: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat recipe dataset: %w", err)
	}

	c, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	log.Info("Recipe dataset loaded", "path", path, "recipes", len(c.byNumber))
	return c, nil
}

// FindByNumber returns the recipe with the given number, or nil.
func (c *Catalog) FindByNumber(n int) *domain.Recipe {
	if r, ok := c.byNumber[n]; ok {
		return &r
	}
	return nil
}

// FindByOutputItem returns every recipe producing the given item, in
// dataset load order. The first entry is the conventional default
// recipe; the catalog does not rank or dedupe alternates.
func (c *Catalog) FindByOutputItem(itemID int) []domain.Recipe {
	var matches []domain.Recipe
	for _, n := range c.order {
		if r := c.byNumber[n]; r.OutputItemID == itemID {
			matches = append(matches, r)
		}
	}
	return matches
}

// Len returns the number of loaded recipes.
func (c *Catalog) Len() int {
	return len(c.byNumber)
}

func parseFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe dataset: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(src io.Reader) (*Catalog, error) {
	br := bufio.NewReader(src)
	for i := 0; i < preambleRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("failed to skip dataset preamble: %w", err)
		}
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	c := &Catalog{byNumber: make(map[int]domain.Recipe)}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read recipe dataset: %w", err)
		}
		if len(row) < minColumns {
			continue
		}

		number, err := strconv.Atoi(row[colNumber])
		if err != nil {
			continue
		}
		outputItemID := atoiOrZero(row[colOutputItemID])
		if outputItemID == 0 {
			// Non-craftable placeholder row.
			continue
		}

		recipe := domain.Recipe{
			Number:       number,
			CraftType:    atoiOrZero(row[colCraftType]),
			OutputItemID: outputItemID,
			OutputAmount: atoiOrZero(row[colOutputAmount]),
		}
		for slot := 0; slot < domain.RecipeSlots; slot++ {
			col := colFirstIngredient + 2*slot
			ingID := atoiOrZero(row[col])
			if ingID <= 0 {
				continue
			}
			if err := recipe.SetIngredient(slot, ingID, atoiOrZero(row[col+1])); err != nil {
				return nil, err
			}
		}

		// Last-loaded wins on duplicate numbers; the original position
		// in load order is kept.
		if _, seen := c.byNumber[number]; !seen {
			c.order = append(c.order, number)
		}
		c.byNumber[number] = recipe
	}
	return c, nil
}

// fetch downloads the dataset and persists it locally before loading.
func fetch(ctx context.Context, path, sourceURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return err
	}
	resp, err := fetchClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, sourceURL)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	return nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
