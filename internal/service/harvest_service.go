package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"harvest-keeper/internal/catalog"
	"harvest-keeper/internal/domain"
	"harvest-keeper/internal/expiry"
	"harvest-keeper/internal/metrics"
	"harvest-keeper/internal/reminder"
	"harvest-keeper/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrEmptyName      = errors.New("product name is required")
	ErrEmptyPlantType = errors.New("plant type is required")
	ErrMissingDate    = errors.New("harvest date is required")
)

// Clock returns the current instant. Production code passes time.Now.
type Clock func() time.Time

// HarvestInput is what a user submits when adding a harvest
type HarvestInput struct {
	Name        string
	PlantType   string
	HarvestDate domain.Date
}

// ProductEdit carries the user-editable fields of a product
type ProductEdit struct {
	Name        string
	PlantType   string
	HarvestDate domain.Date
}

// ReminderReport is the reminder screen content as of Today
type ReminderReport struct {
	Today   domain.Date      `json:"today"`
	Expired []reminder.Status `json:"expired"`
	Urgent  []reminder.Status `json:"urgent"`
	Soon    []reminder.Status `json:"soon"`
}

// Options tunes HarvestService behavior
type Options struct {
	Location *time.Location
	// ResnapshotOnEdit copies the new plant type's storage profile onto a
	// product whose plant type is edited. When false the original snapshot
	// is kept.
	ResnapshotOnEdit bool
}

// HarvestService defines the interface for harvest tracking use cases
type HarvestService interface {
	AddHarvest(ctx context.Context, input HarvestInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (reminder.Status, error)
	ListProducts(ctx context.Context) ([]reminder.Status, error)
	EditProduct(ctx context.Context, id string, edit ProductEdit) (*domain.Product, error)
	SetHarvested(ctx context.Context, id string, harvested bool) (*domain.Product, error)
	ToggleHarvested(ctx context.Context, id string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Reminders(ctx context.Context) (ReminderReport, error)
	PendingReminders(ctx context.Context) (ReminderReport, error)
	Dashboard(ctx context.Context) (reminder.Summary, error)
	Today() domain.Date
	Catalog() *catalog.Catalog
	SeedDemoProducts(ctx context.Context) error
}

type harvestService struct {
	// mu serializes repository access; the repository itself is not safe
	// for concurrent use
	mu       sync.Mutex
	repo     repository.ProductRepository
	catalog  *catalog.Catalog
	clock    Clock
	location *time.Location
	resnap   bool
	logger   *zap.Logger
}

// NewHarvestService creates a new instance of HarvestService
func NewHarvestService(
	repo repository.ProductRepository,
	cat *catalog.Catalog,
	clock Clock,
	opts Options,
	logger *zap.Logger,
) HarvestService {
	if clock == nil {
		clock = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &harvestService{
		repo:     repo,
		catalog:  cat,
		clock:    clock,
		location: loc,
		resnap:   opts.ResnapshotOnEdit,
		logger:   logger,
	}
}

// Today returns the current calendar day in the configured time zone
func (s *harvestService) Today() domain.Date {
	return expiry.Today(s.clock(), s.location)
}

func (s *harvestService) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *harvestService) lookup(plantType string) domain.StorageProfile {
	if !s.catalog.Known(plantType) {
		metrics.CatalogFallbacks.Inc()
		s.logger.Debug("Unknown plant type, using fallback storage profile",
			zap.String("plant_type", plantType),
			zap.String("fallback", s.catalog.FallbackType()),
		)
	}
	return s.catalog.Lookup(plantType)
}

// AddHarvest snapshots the storage profile for the plant type and stores
// a new product
func (s *harvestService) AddHarvest(ctx context.Context, input HarvestInput) (*domain.Product, error) {
	if err := validateFields(input.Name, input.PlantType, input.HarvestDate); err != nil {
		return nil, err
	}

	draft := domain.NewDraft(input.Name, input.PlantType, input.HarvestDate, s.lookup(input.PlantType))

	s.mu.Lock()
	product, err := s.repo.Add(ctx, draft)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	metrics.ProductsAdded.WithLabelValues(product.PlantType).Inc()
	s.logger.Info("Harvest added",
		zap.String("product_id", product.ID),
		zap.String("plant_type", product.PlantType),
		zap.Stringer("harvest_date", product.HarvestDate),
	)
	return product, nil
}

// GetProduct returns a product with its countdown as of today
func (s *harvestService) GetProduct(ctx context.Context, id string) (reminder.Status, error) {
	s.mu.Lock()
	product, err := s.repo.FindByID(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return reminder.Status{}, fmt.Errorf("failed to get product: %w", err)
	}
	return reminder.Evaluate(product, s.Today()), nil
}

// ListProducts returns every product with its countdown, in insertion order
func (s *harvestService) ListProducts(ctx context.Context) ([]reminder.Status, error) {
	products, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return reminder.EvaluateAll(products, s.Today()), nil
}

// EditProduct updates name, plant type and harvest date
func (s *harvestService) EditProduct(ctx context.Context, id string, edit ProductEdit) (*domain.Product, error) {
	if err := validateFields(edit.Name, edit.PlantType, edit.HarvestDate); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to edit product: %w", err)
	}

	plantTypeChanged := product.PlantType != edit.PlantType
	product.Name = edit.Name
	product.PlantType = edit.PlantType
	product.HarvestDate = edit.HarvestDate
	if plantTypeChanged && s.resnap {
		product.ApplyProfile(s.lookup(edit.PlantType))
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to edit product: %w", err)
	}

	metrics.ProductsEdited.Inc()
	s.logger.Info("Product edited",
		zap.String("product_id", id),
		zap.Bool("plant_type_changed", plantTypeChanged),
		zap.Bool("resnapshot", plantTypeChanged && s.resnap),
	)
	return product, nil
}

// SetHarvested marks a product as taken out of storage or back in
func (s *harvestService) SetHarvested(ctx context.Context, id string, harvested bool) (*domain.Product, error) {
	product, err := s.updateHarvested(ctx, id, func(bool) bool { return harvested })
	if err != nil {
		return nil, fmt.Errorf("failed to update harvested flag: %w", err)
	}
	return product, nil
}

// ToggleHarvested flips the harvested flag
func (s *harvestService) ToggleHarvested(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.updateHarvested(ctx, id, func(current bool) bool { return !current })
	if err != nil {
		return nil, fmt.Errorf("failed to toggle harvested flag: %w", err)
	}
	return product, nil
}

// updateHarvested reads and writes the flag under one lock so concurrent
// toggles never both see the same old value
func (s *harvestService) updateHarvested(ctx context.Context, id string, next func(bool) bool) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.IsHarvested = next(product.IsHarvested)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Harvested flag changed", zap.String("product_id", id), zap.Bool("harvested", product.IsHarvested))
	return product, nil
}

// DeleteProduct removes a product
func (s *harvestService) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.repo.Remove(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	metrics.ProductsDeleted.Inc()
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

// Reminders buckets all products by urgency as of today
func (s *harvestService) Reminders(ctx context.Context) (ReminderReport, error) {
	return s.reminders(ctx, false)
}

// PendingReminders is Reminders without products already taken out of storage
func (s *harvestService) PendingReminders(ctx context.Context) (ReminderReport, error) {
	return s.reminders(ctx, true)
}

func (s *harvestService) reminders(ctx context.Context, pendingOnly bool) (ReminderReport, error) {
	products, err := s.list(ctx)
	if err != nil {
		return ReminderReport{}, err
	}
	if pendingOnly {
		products = reminder.Pending(products)
	}

	today := s.Today()
	buckets := reminder.Partition(products, today)
	report := ReminderReport{
		Today:   today,
		Expired: reminder.EvaluateAll(buckets.Expired, today),
		Urgent:  reminder.EvaluateAll(buckets.Urgent, today),
		Soon:    reminder.EvaluateAll(buckets.Soon, today),
	}

	metrics.ReminderBucketSize.WithLabelValues(domain.TierExpired.String()).Set(float64(len(report.Expired)))
	metrics.ReminderBucketSize.WithLabelValues(domain.TierUrgent.String()).Set(float64(len(report.Urgent)))
	metrics.ReminderBucketSize.WithLabelValues(domain.TierSoon.String()).Set(float64(len(report.Soon)))

	return report, nil
}

// Dashboard returns the dashboard counters as of today
func (s *harvestService) Dashboard(ctx context.Context) (reminder.Summary, error) {
	products, err := s.list(ctx)
	if err != nil {
		return reminder.Summary{}, err
	}
	return reminder.Summarize(products, s.Today()), nil
}

func (s *harvestService) list(ctx context.Context) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func validateFields(name, plantType string, harvestDate domain.Date) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(plantType) == "" {
		return ErrEmptyPlantType
	}
	if harvestDate.IsZero() {
		return ErrMissingDate
	}
	return nil
}
