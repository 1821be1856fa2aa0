// Package memory implementa los puertos de persistencia sobre mapas en RAM.
// Sirve para el modo dev sin base de datos y para los tests de casos de uso.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hornada-api/internal/application/inventory"
	"github.com/jhoicas/Hornada-api/internal/application/returns"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner      = (*Store)(nil)
	_ returns.ReturnsTxRunner = (*Store)(nil)

	_ repository.BatchRepository        = (*BatchStore)(nil)
	_ repository.ReturnRepository       = (*ReturnStore)(nil)
	_ repository.AuditLogRepository     = (*AuditLogStore)(nil)
	_ repository.NotificationRepository = (*NotificationStore)(nil)
	_ repository.AnalyticsRepository    = (*AnalyticsStore)(nil)
)

// Store guarda todo el estado bajo un RWMutex y reparte vistas por puerto
// (Batches, Returns, ...) que comparten ese lock. Las "transacciones" clonan
// el estado, ejecutan el callback sobre la copia y la promueven solo si el
// callback termina sin error: el rollback es descartar la copia.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

type dataset struct {
	batches       map[string]entity.Batch
	returns       map[string]entity.ReturnRecord
	returnIDByKey map[string]string // idempotency key -> return id
	auditLogs     []entity.AuditLog
	notifications map[string]entity.Notification
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// NewSeeded crea un store con hornadas de muestra para el modo dev:
// productos de panadería con edades que cubren las tres categorías.
func NewSeeded() *Store {
	s := NewStore()
	now := time.Now().UTC()
	day := func(daysAgo int) time.Time {
		d := now.AddDate(0, 0, -daysAgo)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	seed := []entity.Batch{
		{ProductID: "pan-frances", Quantity: decimal.NewFromInt(40), OriginalPrice: decimal.NewFromInt(300), SalePrice: decimal.NewFromInt(500), DateAdded: day(0)},
		{ProductID: "pan-frances", Quantity: decimal.NewFromInt(25), OriginalPrice: decimal.NewFromInt(300), SalePrice: decimal.NewFromInt(500), DateAdded: day(2)},
		{ProductID: "croissant", Quantity: decimal.NewFromInt(18), OriginalPrice: decimal.NewFromInt(1200), SalePrice: decimal.NewFromInt(2000), DateAdded: day(3)},
		{ProductID: "croissant", Quantity: decimal.NewFromInt(12), OriginalPrice: decimal.NewFromInt(1200), SalePrice: decimal.NewFromInt(2000), DateAdded: day(5)},
		{ProductID: "torta-chocolate", Quantity: decimal.NewFromInt(6), OriginalPrice: decimal.NewFromInt(8000), SalePrice: decimal.NewFromInt(14000), DateAdded: day(8)},
	}
	for i := range seed {
		b := seed[i]
		b.ID = uuid.New().String()
		b.Status = entity.BatchStatusActive
		b.CreatedAt = now
		b.UpdatedAt = now
		s.data.batches[b.ID] = b
	}
	return s
}

func newDataset() *dataset {
	return &dataset{
		batches:       make(map[string]entity.Batch),
		returns:       make(map[string]entity.ReturnRecord),
		returnIDByKey: make(map[string]string),
		auditLogs:     make([]entity.AuditLog, 0, 64),
		notifications: make(map[string]entity.Notification),
	}
}

// Vistas por puerto. Todas comparten el lock del Store.

func (s *Store) Batches() *BatchStore { return &BatchStore{s: s} }

func (s *Store) Returns() *ReturnStore { return &ReturnStore{s: s} }

func (s *Store) AuditLogs() *AuditLogStore { return &AuditLogStore{s: s} }

func (s *Store) Notifications() *NotificationStore { return &NotificationStore{s: s} }

func (s *Store) Analytics() *AnalyticsStore { return &AnalyticsStore{s: s} }

// ── Transacciones ────────────────────────────────────────────────

// Run ejecuta fn sobre una copia del estado y la promueve si fn no falla.
func (s *Store) Run(_ context.Context, fn func(batchRepo repository.BatchRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&txBatchRepo{data: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// RunReturns ejecuta fn con repos de lotes y actas sobre la misma copia.
func (s *Store) RunReturns(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	returnRepo repository.ReturnRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&txBatchRepo{data: work}, &txReturnRepo{data: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// ── Lotes ────────────────────────────────────────────────────────

// BatchStore implementa repository.BatchRepository sobre el Store.
type BatchStore struct {
	s *Store
}

func (r *BatchStore) Create(_ context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.createBatch(b)
}

func (r *BatchStore) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.data.getBatch(id)
}

func (r *BatchStore) List(_ context.Context, f repository.BatchFilter) ([]*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.data.listBatches(f), nil
}

func (r *BatchStore) ListActiveByProduct(_ context.Context, productID string) ([]*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.data.listActiveByProduct(productID), nil
}

func (r *BatchStore) ListActiveByProductForUpdate(_ context.Context, productID string) ([]*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.data.listActiveByProduct(productID), nil
}

func (r *BatchStore) GetManyForUpdate(_ context.Context, ids []string) ([]*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.data.getManyBatches(ids), nil
}

func (r *BatchStore) UpdateQuantityStatus(_ context.Context, id string, quantity decimal.Decimal, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.updateBatch(id, quantity, status)
}

func (r *BatchStore) MarkReturned(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.markBatchReturned(id)
}

// txBatchRepo expone los lotes sin locking propio: el runner ya tiene el lock.
type txBatchRepo struct {
	data *dataset
}

func (r *txBatchRepo) Create(_ context.Context, b *entity.Batch) error { return r.data.createBatch(b) }
func (r *txBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return r.data.getBatch(id)
}
func (r *txBatchRepo) List(_ context.Context, f repository.BatchFilter) ([]*entity.Batch, error) {
	return r.data.listBatches(f), nil
}
func (r *txBatchRepo) ListActiveByProduct(_ context.Context, productID string) ([]*entity.Batch, error) {
	return r.data.listActiveByProduct(productID), nil
}
func (r *txBatchRepo) ListActiveByProductForUpdate(_ context.Context, productID string) ([]*entity.Batch, error) {
	return r.data.listActiveByProduct(productID), nil
}
func (r *txBatchRepo) GetManyForUpdate(_ context.Context, ids []string) ([]*entity.Batch, error) {
	return r.data.getManyBatches(ids), nil
}
func (r *txBatchRepo) UpdateQuantityStatus(_ context.Context, id string, quantity decimal.Decimal, status string) error {
	return r.data.updateBatch(id, quantity, status)
}
func (r *txBatchRepo) MarkReturned(_ context.Context, id string) (bool, error) {
	return r.data.markBatchReturned(id)
}

func (d *dataset) createBatch(b *entity.Batch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if _, exists := d.batches[b.ID]; exists {
		return domain.ErrDuplicate
	}
	d.batches[b.ID] = *b
	return nil
}

func (d *dataset) getBatch(id string) (*entity.Batch, error) {
	b, exists := d.batches[id]
	if !exists {
		return nil, domain.ErrBatchNotFound
	}
	return &b, nil
}

func (d *dataset) listBatches(f repository.BatchFilter) []*entity.Batch {
	result := make([]*entity.Batch, 0, len(d.batches))
	for _, b := range d.batches {
		if f.ProductID != "" && b.ProductID != f.ProductID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		copyB := b
		result = append(result, &copyB)
	}
	sortFIFO(result)
	if f.Offset > 0 {
		if f.Offset >= len(result) {
			return nil
		}
		result = result[f.Offset:]
	}
	if f.Limit > 0 && len(result) > f.Limit {
		result = result[:f.Limit]
	}
	return result
}

func (d *dataset) listActiveByProduct(productID string) []*entity.Batch {
	result := make([]*entity.Batch, 0, 8)
	for _, b := range d.batches {
		if b.ProductID != productID || b.Status != entity.BatchStatusActive {
			continue
		}
		copyB := b
		result = append(result, &copyB)
	}
	sortFIFO(result)
	return result
}

func (d *dataset) getManyBatches(ids []string) []*entity.Batch {
	ordered := append([]string(nil), ids...)
	slices.Sort(ordered)
	result := make([]*entity.Batch, 0, len(ordered))
	for _, id := range ordered {
		if b, exists := d.batches[id]; exists {
			copyB := b
			result = append(result, &copyB)
		}
	}
	return result
}

func (d *dataset) updateBatch(id string, quantity decimal.Decimal, status string) error {
	b, exists := d.batches[id]
	if !exists {
		return domain.ErrBatchNotFound
	}
	b.Quantity = quantity
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	d.batches[id] = b
	return nil
}

func (d *dataset) markBatchReturned(id string) (bool, error) {
	b, exists := d.batches[id]
	if !exists || b.Status != entity.BatchStatusActive {
		return false, nil
	}
	b.Status = entity.BatchStatusReturned
	b.Quantity = decimal.Zero
	b.UpdatedAt = time.Now().UTC()
	d.batches[id] = b
	return true, nil
}

// sortFIFO ordena igual que el índice de la BD: date_added, created_at, id.
func sortFIFO(batches []*entity.Batch) {
	slices.SortFunc(batches, func(a, b *entity.Batch) int {
		if !a.DateAdded.Equal(b.DateAdded) {
			if a.DateAdded.Before(b.DateAdded) {
				return -1
			}
			return 1
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if a.CreatedAt.Before(b.CreatedAt) {
				return -1
			}
			return 1
		}
		return cmpString(a.ID, b.ID)
	})
}

// ── Actas de devolución ──────────────────────────────────────────

// ReturnStore implementa repository.ReturnRepository sobre el Store.
type ReturnStore struct {
	s *Store
}

func (r *ReturnStore) Create(_ context.Context, rec *entity.ReturnRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data.createReturn(rec)
}

func (r *ReturnStore) GetByID(_ context.Context, id string) (*entity.ReturnRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.data.getReturn(id)
}

func (r *ReturnStore) GetByIdempotencyKey(_ context.Context, key string) (*entity.ReturnRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.data.getReturnByKey(key), nil
}

func (r *ReturnStore) List(_ context.Context, from, to time.Time, limit, offset int) ([]*entity.ReturnRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.data.listReturns(from, to, limit, offset), nil
}

// txReturnRepo expone las actas sin locking propio dentro de una transacción.
type txReturnRepo struct {
	data *dataset
}

func (r *txReturnRepo) Create(_ context.Context, rec *entity.ReturnRecord) error {
	return r.data.createReturn(rec)
}
func (r *txReturnRepo) GetByID(_ context.Context, id string) (*entity.ReturnRecord, error) {
	return r.data.getReturn(id)
}
func (r *txReturnRepo) GetByIdempotencyKey(_ context.Context, key string) (*entity.ReturnRecord, error) {
	return r.data.getReturnByKey(key), nil
}
func (r *txReturnRepo) List(_ context.Context, from, to time.Time, limit, offset int) ([]*entity.ReturnRecord, error) {
	return r.data.listReturns(from, to, limit, offset), nil
}

func (d *dataset) createReturn(rec *entity.ReturnRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.IdempotencyKey != "" {
		if _, exists := d.returnIDByKey[rec.IdempotencyKey]; exists {
			return domain.ErrDuplicateReturn
		}
		d.returnIDByKey[rec.IdempotencyKey] = rec.ID
	}
	d.returns[rec.ID] = cloneReturn(*rec)
	return nil
}

func (d *dataset) getReturn(id string) (*entity.ReturnRecord, error) {
	rec, exists := d.returns[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	copyRec := cloneReturn(rec)
	return &copyRec, nil
}

func (d *dataset) getReturnByKey(key string) *entity.ReturnRecord {
	id, exists := d.returnIDByKey[key]
	if !exists {
		return nil
	}
	rec, exists := d.returns[id]
	if !exists {
		return nil
	}
	copyRec := cloneReturn(rec)
	return &copyRec
}

func (d *dataset) listReturns(from, to time.Time, limit, offset int) []*entity.ReturnRecord {
	result := make([]*entity.ReturnRecord, 0, len(d.returns))
	for _, rec := range d.returns {
		if rec.CreatedAt.Before(from) || !rec.CreatedAt.Before(to) {
			continue
		}
		copyRec := cloneReturn(rec)
		result = append(result, &copyRec)
	}
	slices.SortFunc(result, func(a, b *entity.ReturnRecord) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if offset > 0 {
		if offset >= len(result) {
			return nil
		}
		result = result[offset:]
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// ── Bitácora y avisos ────────────────────────────────────────────

// AuditLogStore implementa repository.AuditLogRepository sobre el Store.
type AuditLogStore struct {
	s *Store
}

func (r *AuditLogStore) Create(_ context.Context, entry *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e := *entry
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	r.s.data.auditLogs = append(r.s.data.auditLogs, e)
	return nil
}

// NotificationStore implementa repository.NotificationRepository sobre el Store.
type NotificationStore struct {
	s *Store
}

func (r *NotificationStore) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copyN := *n
	if copyN.ID == "" {
		copyN.ID = uuid.New().String()
	}
	r.s.data.notifications[copyN.ID] = copyN
	return nil
}

func (r *NotificationStore) ListRecent(_ context.Context, limit int) ([]*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*entity.Notification, 0, len(r.s.data.notifications))
	for _, n := range r.s.data.notifications {
		copyN := n
		result = append(result, &copyN)
	}
	slices.SortFunc(result, func(a, b *entity.Notification) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *NotificationStore) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, exists := r.s.data.notifications[id]
	if !exists {
		return domain.ErrNotFound
	}
	n.Read = true
	r.s.data.notifications[id] = n
	return nil
}

// ── Analítica ────────────────────────────────────────────────────

// AnalyticsStore implementa repository.AnalyticsRepository sobre el Store.
type AnalyticsStore struct {
	s *Store
}

func (r *AnalyticsStore) GetReturnTotals(_ context.Context, startDate, endDate time.Time) (*repository.ReturnTotalsResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := &repository.ReturnTotalsResult{}
	var pctSum decimal.Decimal
	for _, rec := range r.s.data.returns {
		if rec.CreatedAt.Before(startDate) || !rec.CreatedAt.Before(endDate) {
			continue
		}
		res.ReturnCount++
		for _, line := range rec.Lines {
			res.BatchCount++
			res.TotalQuantity = res.TotalQuantity.Add(line.Quantity)
			res.TotalValue = res.TotalValue.Add(line.Value)
			pctSum = pctSum.Add(line.ReturnPercentage)
		}
	}
	if res.BatchCount > 0 {
		res.AvgPercentage = pctSum.Div(decimal.NewFromInt(int64(res.BatchCount))).Round(2)
	}
	return res, nil
}

func (r *AnalyticsStore) GetReturnsByProduct(_ context.Context, startDate, endDate time.Time, limit int) ([]repository.ProductReturnResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byProduct := map[string]*repository.ProductReturnResult{}
	for _, rec := range r.s.data.returns {
		if rec.CreatedAt.Before(startDate) || !rec.CreatedAt.Before(endDate) {
			continue
		}
		for _, line := range rec.Lines {
			agg := byProduct[line.ProductID]
			if agg == nil {
				agg = &repository.ProductReturnResult{ProductID: line.ProductID}
				byProduct[line.ProductID] = agg
			}
			agg.BatchCount++
			agg.QuantityReturned = agg.QuantityReturned.Add(line.Quantity)
			agg.ValueReturned = agg.ValueReturned.Add(line.Value)
		}
	}

	result := make([]repository.ProductReturnResult, 0, len(byProduct))
	for _, agg := range byProduct {
		result = append(result, *agg)
	}
	slices.SortFunc(result, func(a, b repository.ProductReturnResult) int {
		if a.ValueReturned.Equal(b.ValueReturned) {
			return cmpString(a.ProductID, b.ProductID)
		}
		if a.ValueReturned.GreaterThan(b.ValueReturned) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Helpers ──────────────────────────────────────────────────────

func (d *dataset) clone() *dataset {
	dup := &dataset{
		batches:       make(map[string]entity.Batch, len(d.batches)),
		returns:       make(map[string]entity.ReturnRecord, len(d.returns)),
		returnIDByKey: make(map[string]string, len(d.returnIDByKey)),
		auditLogs:     append([]entity.AuditLog(nil), d.auditLogs...),
		notifications: make(map[string]entity.Notification, len(d.notifications)),
	}
	for id, b := range d.batches {
		dup.batches[id] = b
	}
	for id, rec := range d.returns {
		dup.returns[id] = cloneReturn(rec)
	}
	for key, id := range d.returnIDByKey {
		dup.returnIDByKey[key] = id
	}
	for id, n := range d.notifications {
		dup.notifications[id] = n
	}
	return dup
}

func cloneReturn(src entity.ReturnRecord) entity.ReturnRecord {
	dup := src
	dup.Lines = append([]entity.ReturnLine(nil), src.Lines...)
	dup.KeptBatchIDs = append([]string(nil), src.KeptBatchIDs...)
	return dup
}

func cmpString(a, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}
