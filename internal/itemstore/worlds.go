package itemstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Worlds is the read-only world reference table, loaded once at
// startup. An absent file means an empty table, not an error.
type Worlds struct {
	names map[int]string
}

// LoadWorlds reads the id,name world file.
func LoadWorlds(path string) (*Worlds, error) {
	w := &Worlds{names: make(map[int]string)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open worlds file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read worlds file: %w", err)
	}

	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		w.names[id] = rec[1]
	}
	return w, nil
}

// Name returns the world name for an id, and whether it is known.
func (w *Worlds) Name(id int) (string, bool) {
	name, ok := w.names[id]
	return name, ok
}
