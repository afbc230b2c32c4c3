package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/playerhub-go/internal/model"
	"github.com/mcoot/playerhub-go/internal/services/player"
)

// Errors
var (
	ErrNotCSV = errors.New("only CSV files are allowed")
)

// ReasonNameRequired is the row failure reason for a missing name cell
const ReasonNameRequired = "Name field is required"

// RowError aborts a CSV import at a specific data row. Rows inserted
// before the failing row stay committed.
type RowError struct {
	Row    int    // 1-based data row number, not counting the header
	Reason string // human-readable cause
}

// Error implements the error interface
func (e *RowError) Error() string {
	return fmt.Sprintf("error processing row %d: %s", e.Row, e.Reason)
}

// Service imports player rosters from uploaded CSV documents
type Service struct {
	players *player.Controller
}

// New creates a new roster Service
func New(players *player.Controller) *Service {
	return &Service{players: players}
}

// ImportCSV parses a header-keyed CSV document and inserts one player per
// data row, in order. Rows are inserted as they are parsed rather than
// batched, so an abort partway through leaves the earlier rows in place.
func (s *Service) ImportCSV(ctx context.Context, filename string, doc io.Reader) ([]*model.Player, error) {
	if !strings.HasSuffix(filename, ".csv") {
		return nil, ErrNotCSV
	}

	reader := csv.NewReader(doc)
	// Tolerate ragged rows; cells beyond the header are dropped and
	// missing cells read as absent fields
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []*model.Player{}, nil
	}
	if err != nil {
		return nil, &RowError{Row: 1, Reason: err.Error()}
	}

	created := []*model.Player{}
	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, &RowError{Row: rowNum, Reason: err.Error()}
		}

		row := rowFields(header, record)

		name := strings.TrimSpace(row["name"])
		if name == "" {
			return created, &RowError{Row: rowNum, Reason: ReasonNameRequired}
		}

		p := &model.Player{Name: name}
		if v := strings.TrimSpace(row["position"]); v != "" {
			p.Position = &v
		}
		if v := strings.TrimSpace(row["team"]); v != "" {
			p.Team = &v
		}
		// Unparseable integer cells are dropped, not fatal
		if v := strings.TrimSpace(row["age"]); v != "" {
			if age, err := strconv.Atoi(v); err == nil {
				p.Age = &age
			}
		}
		if v := strings.TrimSpace(row["jersey_number"]); v != "" {
			if num, err := strconv.Atoi(v); err == nil {
				p.JerseyNumber = &num
			}
		}

		inserted, err := s.players.CreatePlayer(ctx, p)
		if err != nil {
			return created, err
		}
		created = append(created, inserted)
	}

	return created, nil
}

// rowFields zips a record against the header, keyed by header cell
func rowFields(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(record) {
			row[name] = record[i]
		}
	}
	return row
}
