package service

import (
	"context"
	"strings"
	"time"

	"github.com/Spok95/inventory-tracker/internal/domain/defects"
	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/notify"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

// alertChecker re-runs the alert rules after stock changes.
type alertChecker interface {
	Check(ctx context.Context) (CheckResult, error)
	RaiseForDefect(ctx context.Context, d defects.Defect) (CheckResult, error)
}

type InventoryService struct {
	base
	materials    MaterialStore
	transactions TransactionStore
	defects      DefectStore
	checker      alertChecker
}

// recheck runs after a committed change; its failure does not undo the change.
func (s *InventoryService) recheck(ctx context.Context) {
	if s.checker == nil {
		return
	}
	if _, err := s.checker.Check(ctx); err != nil {
		s.log.Error("alert check after stock change failed", "err", err)
	}
}

func (s *InventoryService) ListMaterials(ctx context.Context) ([]materials.Material, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.materials.List(ctx)
	return out, storeErr("list materials", err)
}

func (s *InventoryService) GetMaterial(ctx context.Context, code string) (*materials.Material, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	m, err := s.materials.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, storeErr("get material", err)
	}
	if m == nil {
		return nil, apperrors.NotFound("material", code)
	}
	return m, nil
}

// CreateMaterial refuses a code that is already in use. The quantity given
// here is the opening balance.
func (s *InventoryService) CreateMaterial(ctx context.Context, actor Actor, m materials.Material) (*materials.Material, error) {
	if err := authorize(actor, users.CanManageInventory, "manage materials"); err != nil {
		return nil, err
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.ID == "" {
		m.ID = s.newID()
	}

	cctx, cancel := s.withTimeout(ctx)
	out, err := s.materials.Create(cctx, m)
	cancel()
	if err != nil {
		return nil, storeErr("create material", err)
	}
	s.recheck(ctx)
	return out, nil
}

// UpdateMaterial rewrites the master data stored under code. The on-hand
// quantity is not taken from m: it only moves through transactions.
// Historical descriptions on transactions, defects and alerts are left as they are.
func (s *InventoryService) UpdateMaterial(ctx context.Context, actor Actor, code string, m materials.Material) (*materials.Material, error) {
	if err := authorize(actor, users.CanManageInventory, "manage materials"); err != nil {
		return nil, err
	}
	m.Code = code
	m.Quantity = 0
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	uctx, cancel := s.withTimeout(ctx)
	out, err := s.materials.Update(uctx, m)
	cancel()
	if err != nil {
		return nil, storeErr("update material", err)
	}
	s.recheck(ctx)
	return out, nil
}

func (s *InventoryService) DeleteMaterial(ctx context.Context, actor Actor, code string) error {
	if err := authorize(actor, users.CanDeleteRecords, "delete materials"); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return storeErr("delete material", s.materials.Delete(ctx, strings.TrimSpace(code)))
}

// Movement is the caller supplied part of a stock transaction.
type Movement struct {
	MaterialCode string    `json:"materialCode"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Date         time.Time `json:"date"`
	Reference    string    `json:"reference"`
	Notes        string    `json:"notes"`
}

func (s *InventoryService) Receive(ctx context.Context, actor Actor, mv Movement) (*inventory.Transaction, error) {
	return s.record(ctx, actor, inventory.MoveReceiving, mv)
}

func (s *InventoryService) Issue(ctx context.Context, actor Actor, mv Movement) (*inventory.Transaction, error) {
	return s.record(ctx, actor, inventory.MoveIssuance, mv)
}

func (s *InventoryService) build(ctx context.Context, actor Actor, typ inventory.MoveType, mv Movement) (inventory.Transaction, error) {
	t := inventory.Transaction{
		MaterialCode: strings.TrimSpace(mv.MaterialCode),
		Type:         typ,
		Quantity:     mv.Quantity,
		Unit:         strings.TrimSpace(mv.Unit),
		Date:         mv.Date,
		User:         actor.Name,
		Reference:    strings.TrimSpace(mv.Reference),
		Notes:        strings.TrimSpace(mv.Notes),
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	if t.Date.IsZero() {
		t.Date = s.now()
	}
	m, err := s.GetMaterial(ctx, t.MaterialCode)
	if err != nil {
		return t, err
	}
	t.MaterialDescription = m.Description
	if t.Unit == "" {
		t.Unit = m.Unit
	}
	return t, nil
}

func (s *InventoryService) record(ctx context.Context, actor Actor, typ inventory.MoveType, mv Movement) (*inventory.Transaction, error) {
	if err := authorize(actor, users.CanManageInventory, "record stock movements"); err != nil {
		return nil, err
	}
	t, err := s.build(ctx, actor, typ, mv)
	if err != nil {
		return nil, err
	}
	t.ID = s.newID()

	rctx, cancel := s.withTimeout(ctx)
	out, err := s.transactions.Record(rctx, t)
	cancel()
	if err != nil {
		return nil, storeErr("record transaction", err)
	}

	s.log.Info("stock movement recorded", "id", out.ID, "type", out.Type, "material", out.MaterialCode, "quantity", out.Quantity)
	if s.metrics != nil {
		s.metrics.Transactions.WithLabelValues(string(out.Type)).Inc()
	}
	s.notify(ctx, notify.TransactionEvent(*out))
	s.recheck(ctx)
	return out, nil
}

// UpdateTransaction replaces a movement, reversing the old quantity change
// and applying the new one atomically. The date and the recording user are
// kept from the stored movement unless a new date is given.
func (s *InventoryService) UpdateTransaction(ctx context.Context, actor Actor, id string, typ inventory.MoveType, mv Movement) (*inventory.Transaction, error) {
	if err := authorize(actor, users.CanManageInventory, "edit stock movements"); err != nil {
		return nil, err
	}
	if !typ.Valid() {
		return nil, apperrors.Validation("transactionType", "must be receiving or issuance")
	}
	cur, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if mv.Date.IsZero() {
		mv.Date = cur.Date
	}
	t, err := s.build(ctx, actor, typ, mv)
	if err != nil {
		return nil, err
	}
	t.ID = id
	t.User = cur.User
	if t.MaterialCode == cur.MaterialCode {
		t.MaterialDescription = cur.MaterialDescription
	}

	uctx, cancel := s.withTimeout(ctx)
	out, err := s.transactions.Update(uctx, t)
	cancel()
	if err != nil {
		return nil, storeErr("update transaction", err)
	}
	s.recheck(ctx)
	return out, nil
}

// DeleteTransaction removes a movement and reverses its quantity change.
func (s *InventoryService) DeleteTransaction(ctx context.Context, actor Actor, id string) error {
	if err := authorize(actor, users.CanDeleteRecords, "delete stock movements"); err != nil {
		return err
	}
	dctx, cancel := s.withTimeout(ctx)
	err := s.transactions.Delete(dctx, id)
	cancel()
	if err != nil {
		return storeErr("delete transaction", err)
	}
	s.recheck(ctx)
	return nil
}

func (s *InventoryService) ListTransactions(ctx context.Context) ([]inventory.Transaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.transactions.List(ctx)
	return out, storeErr("list transactions", err)
}

func (s *InventoryService) GetTransaction(ctx context.Context, id string) (*inventory.Transaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	t, err := s.transactions.Get(ctx, id)
	if err != nil {
		return nil, storeErr("get transaction", err)
	}
	if t == nil {
		return nil, apperrors.NotFound("transaction", id)
	}
	return t, nil
}

// ReportDefect stores an open defect against an existing material and raises
// a defect alert for high and critical severities.
func (s *InventoryService) ReportDefect(ctx context.Context, actor Actor, d defects.Defect) (*defects.Defect, error) {
	if err := authorize(actor, users.CanManageInventory, "report defects"); err != nil {
		return nil, err
	}
	d.MaterialCode = strings.TrimSpace(d.MaterialCode)
	d.DefectType = strings.TrimSpace(d.DefectType)
	if d.Status == "" {
		d.Status = defects.StatusOpen
	}
	if d.ReportedBy == "" {
		d.ReportedBy = actor.Name
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	m, err := s.GetMaterial(ctx, d.MaterialCode)
	if err != nil {
		return nil, err
	}
	d.ID = s.newID()
	d.MaterialDescription = m.Description
	if d.Unit == "" {
		d.Unit = m.Unit
	}
	if d.ReportedDate.IsZero() {
		d.ReportedDate = s.now()
	}

	cctx, cancel := s.withTimeout(ctx)
	out, err := s.defects.Create(cctx, d)
	cancel()
	if err != nil {
		return nil, storeErr("create defect", err)
	}

	s.notify(ctx, notify.DefectEvent(*out))
	if s.checker != nil {
		if _, err := s.checker.RaiseForDefect(ctx, *out); err != nil {
			s.log.Error("defect alert failed", "defect", out.ID, "err", err)
		}
	}
	return out, nil
}

func (s *InventoryService) UpdateDefectStatus(ctx context.Context, actor Actor, id string, status defects.Status, notes string) (*defects.Defect, error) {
	if err := authorize(actor, users.CanManageInventory, "update defects"); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.defects.Get(ctx, id)
	if err != nil {
		return nil, storeErr("get defect", err)
	}
	if cur == nil {
		return nil, apperrors.NotFound("defect", id)
	}
	next, err := cur.WithStatus(status, notes)
	if err != nil {
		return nil, err
	}
	out, err := s.defects.Update(ctx, next)
	return out, storeErr("update defect", err)
}

func (s *InventoryService) DeleteDefect(ctx context.Context, actor Actor, id string) error {
	if err := authorize(actor, users.CanDeleteRecords, "delete defects"); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return storeErr("delete defect", s.defects.Delete(ctx, id))
}

func (s *InventoryService) ListDefects(ctx context.Context) ([]defects.Defect, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.defects.List(ctx)
	return out, storeErr("list defects", err)
}
