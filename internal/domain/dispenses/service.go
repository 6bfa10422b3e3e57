package dispenses

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinic-dispense/internal/domain/dosing"
	"clinic-dispense/internal/domain/medications"
	"clinic-dispense/internal/domain/patients"
	"clinic-dispense/internal/domain/providers"
	"clinic-dispense/internal/platform/changefeed"
	"clinic-dispense/internal/platform/metrics"
	"clinic-dispense/internal/ports/labels"
	"clinic-dispense/internal/ports/printing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("dispense not found")
	ErrPrintingUnavailable = errors.New("printing unavailable")
)

type Service struct {
	repo        Repository
	patients    *patients.Service
	providers   *providers.Service
	medications *medications.Service

	renderer labels.Renderer
	printer  printing.Printer
	feed     *changefeed.Feed
	metrics  *metrics.Metrics
	log      *zap.Logger

	now func() time.Time
}

// Options carries the collaborators beyond the three record services.
// Renderer and Printer may be nil, which turns print endpoints into
// ErrPrintingUnavailable; the rest are nil-safe.
type Options struct {
	Renderer labels.Renderer
	Printer  printing.Printer
	Feed     *changefeed.Feed
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

func NewService(repo Repository, patientsSvc *patients.Service, providersSvc *providers.Service, medicationsSvc *medications.Service, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		patients:    patientsSvc,
		providers:   providersSvc,
		medications: medicationsSvc,
		renderer:    opts.Renderer,
		printer:     opts.Printer,
		feed:        opts.Feed,
		metrics:     opts.Metrics,
		log:         log,
		now:         time.Now,
	}
}

// CreateInput is everything the dispense form captures. Provider and
// medication fields go through find-or-create, so repeating a known
// prescriber or medication name reuses the existing record.
type CreateInput struct {
	ProviderFirstName string
	ProviderLastName  string
	ProviderDegree    string

	Medication medications.TemplateInput

	DoseText      string
	DoseUnit      dosing.DoseUnit
	Quantity      int
	QuantityUnit  QuantityUnit
	Frequency     dosing.Frequency
	AmountPerDose int
	Instructions  string

	DispenseDate   *time.Time // nil means now
	ExpirationDate *time.Time
	LotNumber      string

	// ScheduleInitial seeds NextDoseDue from the dispense date. It has no
	// effect for custom frequency, which never auto-advances.
	ScheduleInitial bool
}

func (s *Service) Create(ctx context.Context, patientID string, in CreateInput) (Dispense, error) {
	if strings.TrimSpace(patientID) == "" {
		return Dispense{}, ErrInvalidInput
	}
	if !in.DoseUnit.Valid() {
		return Dispense{}, ErrInvalidInput
	}
	if !in.QuantityUnit.Valid() {
		return Dispense{}, ErrInvalidInput
	}
	if !in.Frequency.Valid() {
		return Dispense{}, ErrInvalidInput
	}
	if in.Quantity < 1 || in.AmountPerDose < 1 {
		return Dispense{}, ErrInvalidInput
	}

	provider, err := s.providers.FindOrCreate(ctx, in.ProviderFirstName, in.ProviderLastName, in.ProviderDegree)
	if err != nil {
		if errors.Is(err, providers.ErrInvalidInput) {
			return Dispense{}, ErrInvalidInput
		}
		return Dispense{}, fmt.Errorf("provider upsert: %w", err)
	}

	med, err := s.medications.FindOrCreate(ctx, in.Medication)
	if err != nil {
		if errors.Is(err, medications.ErrInvalidInput) {
			return Dispense{}, ErrInvalidInput
		}
		return Dispense{}, fmt.Errorf("medication upsert: %w", err)
	}

	now := s.now()
	dispensedOn := now
	if in.DispenseDate != nil {
		dispensedOn = *in.DispenseDate
	}

	d := Dispense{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		MedicationID:   med.ID,
		ProviderID:     provider.ID,
		DoseText:       strings.TrimSpace(in.DoseText),
		DoseValue:      dosing.ParseDose(in.DoseText),
		DoseUnit:       in.DoseUnit,
		Quantity:       in.Quantity,
		QuantityUnit:   in.QuantityUnit,
		Frequency:      in.Frequency,
		AmountPerDose:  in.AmountPerDose,
		Instructions:   strings.TrimSpace(in.Instructions),
		DispenseDate:   dispensedOn,
		ExpirationDate: in.ExpirationDate,
		LotNumber:      strings.TrimSpace(in.LotNumber),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	d.Sig = buildSig(d, med)

	if in.ScheduleInitial {
		if due, ok := dosing.NextDue(dispensedOn, d.Frequency); ok {
			d.NextDoseDue = &due
		}
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.metrics.IncStoreFailures()
		return Dispense{}, err
	}
	s.metrics.IncDispensesCreated()
	s.feed.Publish(changefeed.Change{Entity: "dispense", ID: d.ID, Op: changefeed.OpCreate, At: now})
	return d, nil
}

// DatePatch distinguishes "field absent" from "field present but null".
type DatePatch struct {
	Set   bool
	Value *time.Time
}

type UpdateInput struct {
	DoseText       *string
	DoseUnit       *dosing.DoseUnit
	Quantity       *int
	QuantityUnit   *QuantityUnit
	Frequency      *dosing.Frequency
	AmountPerDose  *int
	Instructions   *string
	DispenseDate   *time.Time
	ExpirationDate DatePatch
	LotNumber      *string
}

// Update edits dispense fields in place and regenerates the derived dose
// value and sig. It never touches NextDoseDue; only the scheduler does.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dispense, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dispense{}, err
	}

	if in.DoseText != nil {
		d.DoseText = strings.TrimSpace(*in.DoseText)
		d.DoseValue = dosing.ParseDose(*in.DoseText)
	}
	if in.DoseUnit != nil {
		if !in.DoseUnit.Valid() {
			return Dispense{}, ErrInvalidInput
		}
		d.DoseUnit = *in.DoseUnit
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return Dispense{}, ErrInvalidInput
		}
		d.Quantity = *in.Quantity
	}
	if in.QuantityUnit != nil {
		if !in.QuantityUnit.Valid() {
			return Dispense{}, ErrInvalidInput
		}
		d.QuantityUnit = *in.QuantityUnit
	}
	if in.Frequency != nil {
		if !in.Frequency.Valid() {
			return Dispense{}, ErrInvalidInput
		}
		d.Frequency = *in.Frequency
	}
	if in.AmountPerDose != nil {
		if *in.AmountPerDose < 1 {
			return Dispense{}, ErrInvalidInput
		}
		d.AmountPerDose = *in.AmountPerDose
	}
	if in.Instructions != nil {
		d.Instructions = strings.TrimSpace(*in.Instructions)
	}
	if in.DispenseDate != nil {
		d.DispenseDate = *in.DispenseDate
	}
	if in.ExpirationDate.Set {
		d.ExpirationDate = in.ExpirationDate.Value
	}
	if in.LotNumber != nil {
		d.LotNumber = strings.TrimSpace(*in.LotNumber)
	}

	med, err := s.medications.GetByID(ctx, d.MedicationID)
	if err != nil {
		return Dispense{}, fmt.Errorf("load medication: %w", err)
	}
	d.Sig = buildSig(d, med)

	d.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		s.metrics.IncStoreFailures()
		return Dispense{}, err
	}
	s.feed.Publish(changefeed.Change{Entity: "dispense", ID: d.ID, Op: changefeed.OpUpdate, At: d.UpdatedAt})
	return d, nil
}

// PrintResult is what a print-and-update hands back: the dispense as
// persisted, whether the schedule moved, and the ticket for the queued job.
type PrintResult struct {
	Dispense Dispense
	Advanced bool
	Ticket   printing.Ticket
}

// PrintAndUpdate advances the schedule and then prints the label. The
// reference date is the clock at this call, not the stored due date, so two
// back-to-back calls do not leapfrog. The advance is persisted before the
// print job is queued; a failed or canceled print never rolls it back.
func (s *Service) PrintAndUpdate(ctx context.Context, id string) (PrintResult, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return PrintResult{}, err
	}

	d, advanced, err := s.advance(ctx, d)
	if err != nil {
		return PrintResult{}, err
	}

	ticket, err := s.printLabel(ctx, d)
	if err != nil {
		return PrintResult{Dispense: d, Advanced: advanced}, err
	}
	s.metrics.IncLabelsPrinted()
	return PrintResult{Dispense: d, Advanced: advanced, Ticket: ticket}, nil
}

// UpdateNextDose advances the schedule without producing a label.
func (s *Service) UpdateNextDose(ctx context.Context, id string) (Dispense, bool, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dispense{}, false, err
	}
	d, advanced, err := s.advance(ctx, d)
	return d, advanced, err
}

// Reprint renders and queues the label as stored. The schedule is untouched.
func (s *Service) Reprint(ctx context.Context, id string) (printing.Ticket, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket, err := s.printLabel(ctx, d)
	if err != nil {
		return nil, err
	}
	s.metrics.IncLabelsReprinted()
	return ticket, nil
}

// advance computes the next due date from the current clock and persists it
// through the repo's single-field write. Custom frequency is a defined no-op,
// not an error. On a store failure nothing is advanced anywhere.
func (s *Service) advance(ctx context.Context, d Dispense) (Dispense, bool, error) {
	ref := s.now()
	due, ok := dosing.NextDue(ref, d.Frequency)
	if !ok {
		s.metrics.IncScheduleNoOps()
		s.log.Info("next dose unchanged, frequency advances manually",
			zap.String("dispense_id", d.ID),
			zap.String("frequency", string(d.Frequency)))
		return d, false, nil
	}

	if err := s.repo.SetNextDose(ctx, d.ID, due, ref); err != nil {
		s.metrics.IncStoreFailures()
		return d, false, err
	}
	d.NextDoseDue = &due
	d.UpdatedAt = ref
	s.metrics.IncScheduleAdvances()
	s.feed.Publish(changefeed.Change{Entity: "dispense", ID: d.ID, Op: changefeed.OpUpdate, At: ref})
	return d, true, nil
}

func (s *Service) printLabel(ctx context.Context, d Dispense) (printing.Ticket, error) {
	if s.renderer == nil || s.printer == nil {
		return nil, ErrPrintingUnavailable
	}

	data, err := s.labelData(ctx, d)
	if err != nil {
		return nil, err
	}
	doc, err := s.renderer.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("render label: %w", err)
	}
	ticket, err := s.printer.Submit(ctx, "label-"+d.ID, doc)
	if err != nil {
		s.log.Error("label submit failed", zap.String("dispense_id", d.ID), zap.Error(err))
		return nil, fmt.Errorf("submit label: %w", err)
	}
	return ticket, nil
}

// labelData assembles the flat structure renderers work from.
func (s *Service) labelData(ctx context.Context, d Dispense) (labels.Data, error) {
	patient, err := s.patients.GetByID(ctx, d.PatientID)
	if err != nil {
		return labels.Data{}, fmt.Errorf("load patient: %w", err)
	}
	med, err := s.medications.GetByID(ctx, d.MedicationID)
	if err != nil {
		return labels.Data{}, fmt.Errorf("load medication: %w", err)
	}
	provider, err := s.providers.GetByID(ctx, d.ProviderID)
	if err != nil {
		return labels.Data{}, fmt.Errorf("load provider: %w", err)
	}

	var fillText string
	if med.Injectable {
		fillText = dosing.FillText(dosing.FillAmount(d.DoseValue, d.DoseUnit, med.PrimaryConcentration()))
	}

	return labels.Data{
		PatientName:    patient.DisplayName(),
		MedicationName: med.Name,
		DoseText:       doseLine(d),
		FillText:       fillText,
		Sig:            d.Sig,
		Instructions:   d.Instructions,
		ProviderName:   provider.DisplayName(),
		PharmacyName:   med.PharmacyName,
		Quantity:       d.QuantityText(),
		LotNumber:      d.LotNumber,
		DispensedOn:    d.DispenseDate,
		ExpiresOn:      d.ExpirationDate,
		QRPNG:          med.QRPNG,
		InfoURL:        med.InfoURL,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dispense, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string, f ListFilter) ([]Dispense, error) {
	return s.repo.ListByPatient(ctx, patientID, f)
}

// ListAll feeds the dashboard; it groups per patient in memory.
func (s *Service) ListAll(ctx context.Context) ([]Dispense, error) {
	return s.repo.ListAll(ctx)
}

// SetActive flips scheduling consideration. NextDoseDue is kept as is, so
// reactivating restores the old schedule until the next advance.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (Dispense, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Dispense{}, err
	}
	now := s.now()
	if err := s.repo.SetActive(ctx, id, active, now); err != nil {
		s.metrics.IncStoreFailures()
		return Dispense{}, err
	}
	s.feed.Publish(changefeed.Change{Entity: "dispense", ID: id, Op: changefeed.OpUpdate, At: now})
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.metrics.IncStoreFailures()
		return err
	}
	s.feed.Publish(changefeed.Change{Entity: "dispense", ID: id, Op: changefeed.OpDelete, At: s.now()})
	return nil
}

// PurgePatient removes every dispense a patient owns. The patients service
// calls it through its purger hook when a patient is deleted.
func (s *Service) PurgePatient(ctx context.Context, patientID string) error {
	items, err := s.repo.ListByPatient(ctx, patientID, ListFilter{})
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByPatient(ctx, patientID); err != nil {
		s.metrics.IncStoreFailures()
		return err
	}
	now := s.now()
	for _, d := range items {
		s.feed.Publish(changefeed.Change{Entity: "dispense", ID: d.ID, Op: changefeed.OpDelete, At: now})
	}
	return nil
}

// buildSig composes the patient-facing instruction line. Injectables lead
// with the draw-up volume when concentration allows deriving one, falling
// back to the numeric dose; everything else counts containers.
func buildSig(d Dispense, med medications.Medication) string {
	freq := frequencyPhrase(d.Frequency)

	if med.Injectable {
		fill := dosing.FillAmount(d.DoseValue, d.DoseUnit, med.PrimaryConcentration())
		if ft := dosing.FillText(fill); ft != "" {
			return "Inject " + ft + " " + freq
		}
		if d.DoseValue > 0 {
			return "Inject " + strconv.FormatFloat(d.DoseValue, 'f', -1, 64) + " " + string(d.DoseUnit) + " " + freq
		}
		return "Inject as directed"
	}

	n := d.AmountPerDose
	return fmt.Sprintf("Take %d %s %s", n, d.QuantityUnit.Pluralize(n), freq)
}

// doseLine is the dose as the label shows it: the free-form text when
// present, otherwise the parsed value, with the unit appended unless the
// text already names it.
func doseLine(d Dispense) string {
	txt := strings.TrimSpace(d.DoseText)
	if txt == "" {
		if d.DoseValue <= 0 {
			return ""
		}
		txt = strconv.FormatFloat(d.DoseValue, 'f', -1, 64)
	}
	if strings.Contains(strings.ToLower(txt), string(d.DoseUnit)) {
		return txt
	}
	return txt + " " + string(d.DoseUnit)
}

func frequencyPhrase(f dosing.Frequency) string {
	switch f {
	case dosing.FrequencyDaily:
		return "daily"
	case dosing.FrequencyWeekly:
		return "weekly"
	case dosing.FrequencyBiweekly:
		return "every 2 weeks"
	case dosing.FrequencyMonthly:
		return "monthly"
	default:
		return "as directed"
	}
}
