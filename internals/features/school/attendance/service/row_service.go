package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/access"
	"schoolku_backend/internals/features/school/attendance/dto"
	"schoolku_backend/internals/features/school/attendance/model"
)

// RowService owns check-in windows. Creating a row fans out one UNKNOWN
// attendance per enrolled student; the fan-out is atomic with the row.
type RowService struct {
	store  Store
	engine *access.Engine
}

func NewRowService(store Store, engine *access.Engine) *RowService {
	return &RowService{store: store, engine: engine}
}

func (s *RowService) Create(ctx context.Context, req dto.CreateAttendanceRowRequest, actorID uuid.UUID) (*dto.AttendanceRowWithAttendances, error) {
	table, err := s.store.GetTable(ctx, req.AttendanceTableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "attendanceTableId not found")
	}

	if req.Type == model.AttendanceRowTypeScan && !req.HasScanFields() {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"Attendance Type Scan require allowScanAt, expireAt, isAllowScanManyTime")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, table.AttendanceTableSubjectID); err != nil {
		return nil, err
	}

	row := req.ToModel()
	row.AttendanceRowSubjectID = table.AttendanceTableSubjectID
	row.AttendanceRowSchoolID = table.AttendanceTableSchoolID

	enrolled, err := s.engine.Store().ListStudentOnSubjectsBySubject(ctx, table.AttendanceTableSubjectID)
	if err != nil {
		return nil, err
	}
	seeds := make([]model.AttendanceModel, 0, len(enrolled))
	for _, sos := range enrolled {
		seeds = append(seeds, model.AttendanceModel{
			AttendanceStudentOnSubjectID: sos.StudentOnSubjectID,
			AttendanceAttendanceTableID:  table.AttendanceTableID,
			AttendanceSubjectID:          table.AttendanceTableSubjectID,
			AttendanceSchoolID:           table.AttendanceTableSchoolID,
			AttendanceStudentID:          sos.StudentOnSubjectStudentID,
			AttendanceStatus:             model.AttendanceStatusUnknown,
			AttendanceNote:               "",
		})
	}

	attendances, err := s.store.CreateRowWithAttendances(ctx, &row, seeds)
	if err != nil {
		return nil, err
	}
	if attendances == nil {
		attendances = []model.AttendanceModel{}
	}
	return &dto.AttendanceRowWithAttendances{
		AttendanceRowModel: row,
		Attendances:        attendances,
	}, nil
}

// GetAttendanceRows returns the table's rows with nested attendances;
// an empty table yields an empty array, not an error.
func (s *RowService) GetAttendanceRows(ctx context.Context, tableID uuid.UUID, actorID uuid.UUID) ([]dto.AttendanceRowWithAttendances, error) {
	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Attendance table not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, table.AttendanceTableSubjectID); err != nil {
		return nil, err
	}

	rows, err := s.store.ListRowsByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceRowWithAttendances, 0, len(rows))
	for _, row := range rows {
		atts, err := s.store.ListAttendancesByRow(ctx, row.AttendanceRowID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.AttendanceRowWithAttendances{
			AttendanceRowModel: row,
			Attendances:        atts,
		})
	}
	return out, nil
}

func (s *RowService) GetAttendanceRowByID(ctx context.Context, rowID uuid.UUID, actorID uuid.UUID) (*dto.AttendanceRowWithAttendances, error) {
	row, err := s.store.GetRow(ctx, rowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "attendancerowId is not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, row.AttendanceRowSubjectID); err != nil {
		return nil, err
	}

	atts, err := s.store.ListAttendancesByRow(ctx, rowID)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceRowWithAttendances{
		AttendanceRowModel: *row,
		Attendances:        atts,
	}, nil
}

// GetAttendanceQrCode is deliberately unauthenticated: the payload is meant
// to be rendered publicly on a projector for students to scan.
func (s *RowService) GetAttendanceQrCode(ctx context.Context, rowID uuid.UUID) (*dto.QrCodePayload, error) {
	row, err := s.store.GetRow(ctx, rowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "attendancerowId is not found")
	}

	subject, err := s.engine.Store().GetSubject(ctx, row.AttendanceRowSubjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Subject not found")
	}

	statuses, err := s.store.ListStatusListsByTable(ctx, row.AttendanceRowAttendanceTableID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.engine.Store().ListStudentOnSubjectsBySubject(ctx, row.AttendanceRowSubjectID)
	if err != nil {
		return nil, err
	}
	students := make([]dto.QrCodeStudent, 0, len(enrolled))
	for _, sos := range enrolled {
		student, err := s.store.GetStudent(ctx, sos.StudentOnSubjectStudentID)
		if err != nil {
			return nil, err
		}
		if student == nil {
			continue
		}
		att, err := s.store.GetAttendanceByRowAndStudentOnSubject(ctx, rowID, sos.StudentOnSubjectID)
		if err != nil {
			return nil, err
		}
		students = append(students, dto.QrCodeStudent{
			StudentOnSubjectID: sos.StudentOnSubjectID,
			Student:            *student,
			Attendance:         att,
		})
	}

	return &dto.QrCodePayload{
		Row:      *row,
		Subject:  *subject,
		Status:   statuses,
		Students: students,
	}, nil
}

func (s *RowService) Update(ctx context.Context, rowID uuid.UUID, req dto.UpdateAttendanceRowRequest, actorID uuid.UUID) (*model.AttendanceRowModel, error) {
	row, err := s.store.GetRow(ctx, rowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "attendancerowId is not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, row.AttendanceRowSubjectID); err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		row.AttendanceRowStartDate = *req.StartDate
	}
	if req.EndDate != nil {
		row.AttendanceRowEndDate = *req.EndDate
	}
	if req.Note != nil {
		row.AttendanceRowNote = *req.Note
	}
	if req.AllowScanAt != nil {
		row.AttendanceRowAllowScanAt = req.AllowScanAt
	}
	if req.ExpireAt != nil {
		row.AttendanceRowExpireAt = req.ExpireAt
	}
	if req.IsAllowScanManyTime != nil {
		row.AttendanceRowIsAllowScanManyTime = *req.IsAllowScanManyTime
	}

	if err := s.store.UpdateRow(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *RowService) Delete(ctx context.Context, rowID uuid.UUID, actorID uuid.UUID) error {
	row, err := s.store.GetRow(ctx, rowID)
	if err != nil {
		return err
	}
	if row == nil {
		return fiber.NewError(fiber.StatusNotFound, "attendancerowId is not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, row.AttendanceRowSubjectID); err != nil {
		return err
	}
	return s.store.DeleteRow(ctx, rowID)
}
