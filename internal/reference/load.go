package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load builds the reference tables from the configured CSV files. An
// empty path falls back to the built-in dataset for that table.
func Load(injuryPath, sosPath string) (*Tables, error) {
	injuries := defaultInjuries
	if injuryPath != "" {
		loaded, err := loadInjuryCSV(injuryPath)
		if err != nil {
			return nil, err
		}
		injuries = loaded
	}

	sos := defaultSOS
	if sosPath != "" {
		loaded, err := loadSOSCSV(sosPath)
		if err != nil {
			return nil, err
		}
		sos = loaded
	}

	return NewTables(injuries, sos)
}

// loadInjuryCSV reads rows of (player_name, status).
func loadInjuryCSV(path string) (map[string]string, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return nil, fmt.Errorf("load injury table: %w", err)
	}

	injuries := make(map[string]string, len(rows))
	for _, row := range rows {
		injuries[strings.TrimSpace(row[0])] = strings.TrimSpace(row[1])
	}
	return injuries, nil
}

// loadSOSCSV reads rows of (team, position, avg_rank_remaining).
func loadSOSCSV(path string) (map[string]int, error) {
	rows, err := readCSV(path, 3)
	if err != nil {
		return nil, fmt.Errorf("load sos table: %w", err)
	}

	sos := make(map[string]int, len(rows))
	for _, row := range rows {
		rank, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("load sos table: bad rank %q for %s/%s", row[2], row[0], row[1])
		}
		key := strings.TrimSpace(row[0]) + "_" + strings.TrimSpace(row[1])
		sos[key] = rank
	}
	return sos, nil
}

func readCSV(path string, wantFields int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = wantFields
	reader.TrimLeadingSpace = true

	var rows [][]string
	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
