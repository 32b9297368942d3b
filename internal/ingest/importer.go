package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/logging"
	"github.com/mahastuti/Birdstrike-sub000/internal/observability"
)

// Validation failures reported to the caller with no partial write.
var (
	ErrEmptyFile     = errors.New("uploaded file is empty")
	ErrNoDataRows    = errors.New("no data rows found after parsing")
	ErrAllDuplicates = errors.New("no rows left to import after duplicate removal")
)

// InvalidInputError is a validation failure with a caller-facing reason.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return e.Reason }

// IsValidationError reports whether err is an input problem the caller can
// fix, as opposed to a storage failure.
func IsValidationError(err error) bool {
	var invalid *InvalidInputError
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrNoDataRows) ||
		errors.Is(err, ErrAllDuplicates) ||
		errors.As(err, &invalid)
}

// Conflict describes one partition that already holds rows while the caller
// did not ask for a replace.
type Conflict struct {
	Bulan    string `json:"bulan"`
	Tahun    string `json:"tahun"`
	Existing int64  `json:"existing"`
	Incoming int    `json:"incoming"`
}

// ConflictError halts an import until the caller confirms replacement.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s/%s (%d rows)", c.Bulan, c.Tahun, c.Existing))
	}
	return "import conflicts with stored partitions: " + strings.Join(parts, ", ")
}

// ReplacedPartition records one partition wiped during a replace import.
type ReplacedPartition struct {
	Bulan   string `json:"bulan"`
	Tahun   string `json:"tahun"`
	Deleted int64  `json:"deleted"`
}

// ImportResult summarizes a successful import.
type ImportResult struct {
	JobID    string
	Count    int
	Skipped  int
	Replaced []ReplacedPartition
}

// Importer runs the CSV import pipeline against the datastore.
type Importer struct {
	DS            datastore.Interface
	RenumberBatch int
	Metrics       *observability.Metrics
	log           *slog.Logger
}

// NewImporter creates an importer. Metrics may be nil.
func NewImporter(ds datastore.Interface, renumberBatch int, metrics *observability.Metrics) *Importer {
	return &Importer{
		DS:            ds,
		RenumberBatch: renumberBatch,
		Metrics:       metrics,
		log:           logging.ForService("ingest"),
	}
}

// Import parses and writes one uploaded CSV. When replace is false and any
// target partition already holds rows, it returns a *ConflictError and writes
// nothing. The conflict check and the write are not atomic across requests;
// two simultaneous imports targeting the same partition can both pass the
// check. See DESIGN.md.
func (imp *Importer) Import(raw string, replace bool) (*ImportResult, error) {
	jobID := uuid.NewString()
	log := imp.log.With("job_id", jobID)

	if strings.TrimSpace(raw) == "" {
		imp.Metrics.ObserveImport("invalid", 0, 0)
		return nil, ErrEmptyFile
	}

	records := ParseCSVLoose(raw)
	if len(records) < 2 {
		imp.Metrics.ObserveImport("invalid", 0, 0)
		return nil, ErrNoDataRows
	}

	header := records[0]
	if missing := MissingColumns(header); len(missing) > 0 {
		imp.Metrics.ObserveImport("invalid", 0, 0)
		return nil, &InvalidInputError{
			Reason: "header is missing required columns: " + strings.Join(missing, ", "),
		}
	}

	candidates := make([]datastore.TrafficFlight, 0, len(records)-1)
	for _, record := range records[1:] {
		candidates = append(candidates, NormalizeRow(header, record))
	}

	candidates, batchDupes := DedupeBatch(candidates)
	if len(candidates) == 0 {
		imp.Metrics.ObserveImport("invalid", 0, batchDupes)
		return nil, ErrAllDuplicates
	}

	partitions := GroupPartitions(candidates)

	// Conflict gate: no writes happen unless every populated target partition
	// was explicitly confirmed for replacement.
	var conflicts []Conflict
	for i := range partitions {
		count, err := imp.DS.CountTrafficPartition(partitions[i].Bulan, partitions[i].Tahun)
		if err != nil {
			imp.Metrics.ObserveImport("error", 0, 0)
			return nil, err
		}
		if count > 0 {
			conflicts = append(conflicts, Conflict{
				Bulan:    partitions[i].Bulan,
				Tahun:    partitions[i].Tahun,
				Existing: count,
				Incoming: len(partitions[i].Rows),
			})
		}
	}
	if len(conflicts) > 0 && !replace {
		imp.Metrics.ObserveImport("conflict", 0, 0)
		log.Info("import halted on partition conflict", "partitions", len(conflicts))
		return nil, &ConflictError{Conflicts: conflicts}
	}

	var replaced []ReplacedPartition
	if replace {
		for _, c := range conflicts {
			deleted, err := imp.DS.DeleteTrafficPartition(c.Bulan, c.Tahun)
			if err != nil {
				imp.Metrics.ObserveImport("error", 0, 0)
				return nil, err
			}
			replaced = append(replaced, ReplacedPartition{Bulan: c.Bulan, Tahun: c.Tahun, Deleted: deleted})
			log.Info("replaced partition", "bulan", c.Bulan, "tahun", c.Tahun, "deleted", deleted)
		}
	}

	// Stored-signature sets per partition, fetched after any replace delete so
	// replaced partitions contribute nothing.
	existing := make(map[string]map[string]struct{}, len(partitions))
	for i := range partitions {
		stored, err := imp.DS.GetTrafficPartition(partitions[i].Bulan, partitions[i].Tahun)
		if err != nil {
			imp.Metrics.ObserveImport("error", 0, 0)
			return nil, err
		}
		existing[partitions[i].Key()] = SignatureSet(stored)
	}

	rows, storedDupes := AssignSequence(partitions, existing)
	skipped := batchDupes + storedDupes
	if len(rows) == 0 {
		imp.Metrics.ObserveImport("invalid", 0, skipped)
		return nil, ErrAllDuplicates
	}

	if err := imp.DS.InsertTrafficFlights(rows); err != nil {
		imp.Metrics.ObserveImport("error", 0, skipped)
		return nil, err
	}

	if err := imp.Renumber(); err != nil {
		imp.Metrics.ObserveImport("error", len(rows), skipped)
		return nil, fmt.Errorf("import written but renumbering failed: %w", err)
	}

	imp.Metrics.ObserveImport("success", len(rows), skipped)
	log.Info("import complete", "rows", len(rows), "skipped", skipped, "partitions", len(partitions))

	return &ImportResult{
		JobID:    jobID,
		Count:    len(rows),
		Skipped:  skipped,
		Replaced: replaced,
	}, nil
}

// Renumber re-reads the whole traffic table and rewrites sequence numbers to
// the dense (year, month, id) ordering.
func (imp *Importer) Renumber() error {
	refs, err := imp.DS.GetTrafficRefs()
	if err != nil {
		return err
	}
	assignments := ComputeRenumbering(refs)
	return imp.DS.ApplySequenceAssignments(assignments, imp.RenumberBatch)
}
