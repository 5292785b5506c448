package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/access"
	"schoolku_backend/internals/features/school/attendance/dto"
	"schoolku_backend/internals/features/school/attendance/model"
	schoolModel "schoolku_backend/internals/features/school/schools/model"
)

// TableService owns attendance tables and seeds their default vocabulary.
type TableService struct {
	store       Store
	engine      *access.Engine
	statusLists *StatusListService
}

func NewTableService(store Store, engine *access.Engine, statusLists *StatusListService) *TableService {
	return &TableService{store: store, engine: engine, statusLists: statusLists}
}

func (s *TableService) Create(ctx context.Context, req dto.CreateAttendanceTableRequest, actorID uuid.UUID) (*dto.AttendanceTableWithStatusLists, error) {
	grant, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, req.SubjectID)
	if err != nil {
		return nil, err
	}

	table := model.AttendanceTableModel{
		AttendanceTableSubjectID:   grant.Subject.SubjectID,
		AttendanceTableSchoolID:    grant.Subject.SubjectSchoolID,
		AttendanceTableTitle:       req.Title,
		AttendanceTableDescription: req.Description,
	}
	if err := s.store.CreateTable(ctx, &table); err != nil {
		return nil, err
	}

	statuses, err := s.statusLists.CreateDefaultStatuses(ctx,
		table.AttendanceTableID, table.AttendanceTableSubjectID, table.AttendanceTableSchoolID)
	if err != nil {
		return nil, err
	}

	return &dto.AttendanceTableWithStatusLists{
		AttendanceTableModel: table,
		StatusLists:          statuses,
	}, nil
}

func (s *TableService) GetBySubjectID(ctx context.Context, subjectID uuid.UUID, actorID uuid.UUID) ([]dto.AttendanceTableWithStatusLists, error) {
	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, subjectID); err != nil {
		return nil, err
	}

	tables, err := s.store.ListTablesBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceTableWithStatusLists, 0, len(tables))
	for _, t := range tables {
		statuses, err := s.store.ListStatusListsByTable(ctx, t.AttendanceTableID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.AttendanceTableWithStatusLists{
			AttendanceTableModel: t,
			StatusLists:          statuses,
		})
	}
	return out, nil
}

// GetByID returns the table with nested rows, their attendances and the
// currently enrolled students.
func (s *TableService) GetByID(ctx context.Context, tableID uuid.UUID, actorID uuid.UUID) (*dto.AttendanceTableDetail, error) {
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

	statuses, err := s.store.ListStatusListsByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListRowsByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	nested := make([]dto.AttendanceRowWithAttendances, 0, len(rows))
	for _, row := range rows {
		atts, err := s.store.ListAttendancesByRow(ctx, row.AttendanceRowID)
		if err != nil {
			return nil, err
		}
		nested = append(nested, dto.AttendanceRowWithAttendances{
			AttendanceRowModel: row,
			Attendances:        atts,
		})
	}
	students, err := s.store.ListStudentsBySubject(ctx, table.AttendanceTableSubjectID)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []schoolModel.StudentModel{}
	}

	return &dto.AttendanceTableDetail{
		AttendanceTableModel: *table,
		StatusLists:          statuses,
		Rows:                 nested,
		Students:             students,
	}, nil
}

// GetBySubjectIDOnStudentOnSubject is the student self-service read. The
// caller is never told whether the subject exists: both a caller/student
// mismatch and a missing enrollment come back Forbidden, not NotFound,
// to avoid subject enumeration.
func (s *TableService) GetBySubjectIDOnStudentOnSubject(ctx context.Context, subjectID, studentID, callerStudentID uuid.UUID) ([]dto.AttendanceTableDetail, error) {
	if callerStudentID != studentID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You don't have access to this student")
	}

	sos, err := s.store.GetStudentOnSubjectBySubjectAndStudent(ctx, subjectID, studentID)
	if err != nil {
		return nil, err
	}
	if sos == nil {
		return nil, fiber.NewError(fiber.StatusForbidden, "Student not found")
	}

	tables, err := s.store.ListTablesBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceTableDetail, 0, len(tables))
	for _, t := range tables {
		statuses, err := s.store.ListStatusListsByTable(ctx, t.AttendanceTableID)
		if err != nil {
			return nil, err
		}
		rows, err := s.store.ListRowsByTable(ctx, t.AttendanceTableID)
		if err != nil {
			return nil, err
		}
		nested := make([]dto.AttendanceRowWithAttendances, 0, len(rows))
		for _, row := range rows {
			// Only the caller's own attendance is exposed on this path.
			att, err := s.store.GetAttendanceByRowAndStudentOnSubject(ctx, row.AttendanceRowID, sos.StudentOnSubjectID)
			if err != nil {
				return nil, err
			}
			atts := []model.AttendanceModel{}
			if att != nil {
				atts = append(atts, *att)
			}
			nested = append(nested, dto.AttendanceRowWithAttendances{
				AttendanceRowModel: row,
				Attendances:        atts,
			})
		}
		out = append(out, dto.AttendanceTableDetail{
			AttendanceTableModel: t,
			StatusLists:          statuses,
			Rows:                 nested,
			Students:             []schoolModel.StudentModel{},
		})
	}
	return out, nil
}

func (s *TableService) Update(ctx context.Context, tableID uuid.UUID, req dto.UpdateAttendanceTableRequest, actorID uuid.UUID) (*model.AttendanceTableModel, error) {
	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "attendanceTableId not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, table.AttendanceTableSubjectID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		table.AttendanceTableTitle = *req.Title
	}
	if req.Description != nil {
		table.AttendanceTableDescription = *req.Description
	}
	if err := s.store.UpdateTable(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *TableService) Delete(ctx context.Context, tableID uuid.UUID, actorID uuid.UUID) error {
	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return err
	}
	if table == nil {
		return fiber.NewError(fiber.StatusNotFound, "Attendance table not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, table.AttendanceTableSubjectID); err != nil {
		return err
	}
	return s.store.DeleteTable(ctx, tableID)
}
