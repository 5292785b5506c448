package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/access"
	"schoolku_backend/internals/features/school/attendance/dto"
	"schoolku_backend/internals/features/school/attendance/model"
)

// AttendanceService owns individual per-student attendance records,
// including the anonymous time-boxed scan path.
type AttendanceService struct {
	store    Store
	engine   *access.Engine
	exporter SheetExporter

	// injectable clock for scan-window tests
	now func() time.Time
}

func NewAttendanceService(store Store, engine *access.Engine, exporter SheetExporter) *AttendanceService {
	return &AttendanceService{
		store:    store,
		engine:   engine,
		exporter: exporter,
		now:      time.Now,
	}
}

// ValidateAccess is the subject-teacher check exposed for sibling services.
// Every denial collapses into the single "Access denied" message regardless
// of which link in the chain failed; only a missing subject, checked first,
// surfaces as NotFound.
func (s *AttendanceService) ValidateAccess(ctx context.Context, userID, subjectID uuid.UUID) error {
	subject, err := s.engine.Store().GetSubject(ctx, subjectID)
	if err != nil {
		return err
	}
	if subject == nil {
		return fiber.NewError(fiber.StatusNotFound, "Subject not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, userID, subjectID); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fiber.NewError(fiber.StatusForbidden, "Access denied")
		}
		return err
	}
	return nil
}

func (s *AttendanceService) Create(ctx context.Context, req dto.CreateAttendanceRequest, actorID uuid.UUID) (*model.AttendanceModel, error) {
	sos, err := s.store.GetStudentOnSubject(ctx, req.StudentOnSubjectID)
	if err != nil {
		return nil, err
	}
	if sos == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	row, err := s.store.GetRow(ctx, req.AttendanceRowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "attendancerowId is not found")
	}

	if err := s.ValidateAccess(ctx, actorID, row.AttendanceRowSubjectID); err != nil {
		return nil, err
	}

	if err := s.requireKnownStatus(ctx, row.AttendanceRowAttendanceTableID, req.Status); err != nil {
		return nil, err
	}

	att := model.AttendanceModel{
		AttendanceAttendanceRowID:    row.AttendanceRowID,
		AttendanceStudentOnSubjectID: sos.StudentOnSubjectID,
		AttendanceAttendanceTableID:  row.AttendanceRowAttendanceTableID,
		AttendanceSubjectID:          row.AttendanceRowSubjectID,
		AttendanceSchoolID:           row.AttendanceRowSchoolID,
		AttendanceStudentID:          sos.StudentOnSubjectStudentID,
		AttendanceStatus:             req.Status,
		AttendanceNote:               req.Note,
	}
	if err := s.store.CreateAttendance(ctx, &att); err != nil {
		if errors.Is(err, ErrDuplicateAttendance) {
			return nil, fiber.NewError(fiber.StatusConflict, "Attendance already exists")
		}
		return nil, err
	}
	return &att, nil
}

func (s *AttendanceService) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*model.AttendanceModel, error) {
	att, err := s.store.GetAttendance(ctx, id)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Attendance not found")
	}

	if err := s.ValidateAccess(ctx, actorID, att.AttendanceSubjectID); err != nil {
		return nil, err
	}
	return att, nil
}

// Update patches one record. actorID == uuid.Nil marks the anonymous scan
// path: no identity check, but the owning row's scan window gates the
// write instead. That is the only place time, not identity, authorizes a
// mutation.
func (s *AttendanceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAttendanceRequest, actorID uuid.UUID) (*model.AttendanceModel, error) {
	att, err := s.store.GetAttendance(ctx, id)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Attendance not found")
	}

	if actorID != uuid.Nil {
		if err := s.ValidateAccess(ctx, actorID, att.AttendanceSubjectID); err != nil {
			return nil, err
		}
	} else {
		row, err := s.store.GetRow(ctx, att.AttendanceAttendanceRowID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "attendancerowId is not found")
		}
		if row.AttendanceRowType == model.AttendanceRowTypeScan {
			if row.AttendanceRowExpireAt != nil &&
				s.now().After(*row.AttendanceRowExpireAt) &&
				!row.AttendanceRowIsAllowScanManyTime {
				return nil, fiber.NewError(fiber.StatusBadRequest, "Time's up! for update attendance")
			}
			if !row.AttendanceRowIsAllowScanManyTime &&
				att.AttendanceStatus != model.AttendanceStatusUnknown &&
				req.Status != nil {
				return nil, fiber.NewError(fiber.StatusBadRequest, "You already check-in")
			}
		}
	}

	if req.Status != nil {
		if err := s.requireKnownStatus(ctx, att.AttendanceAttendanceTableID, *req.Status); err != nil {
			return nil, err
		}
		att.AttendanceStatus = *req.Status
	}
	if req.Note != nil {
		att.AttendanceNote = *req.Note
	}

	if err := s.store.UpdateAttendance(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// UpdateMany applies Update to every item concurrently and returns only the
// fulfilled results, in input order. The contract is fail-fast on the first
// item's access check (resolved eagerly, once per batch) and fail-soft on
// every per-item failure after that: rejected items are silently dropped
// from the result, never reported. In-flight siblings are not cancelled;
// all items always settle.
func (s *AttendanceService) UpdateMany(ctx context.Context, items []dto.UpdateManyAttendanceItem, actorID uuid.UUID) ([]model.AttendanceModel, error) {
	if len(items) == 0 {
		return []model.AttendanceModel{}, nil
	}

	first, err := s.store.GetAttendance(ctx, items[0].AttendanceID)
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Attendance not found")
	}
	if actorID != uuid.Nil {
		if err := s.ValidateAccess(ctx, actorID, first.AttendanceSubjectID); err != nil {
			return nil, err
		}
	}

	results := make([]*model.AttendanceModel, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.Update(ctx, items[i].AttendanceID, items[i].Body, actorID)
			if err == nil {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	out := make([]model.AttendanceModel, 0, len(items))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// requireKnownStatus checks the status against the owning table's
// vocabulary. The denial is Forbidden, not BadRequest; longstanding caller
// contract.
func (s *AttendanceService) requireKnownStatus(ctx context.Context, tableID uuid.UUID, status string) error {
	statuses, err := s.store.ListStatusListsByTable(ctx, tableID)
	if err != nil {
		return err
	}
	for _, st := range statuses {
		if st.AttendanceStatusListTitle == status {
			return nil
		}
	}
	return fiber.NewError(fiber.StatusForbidden, "Status not found")
}
