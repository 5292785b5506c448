package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/access"
	"schoolku_backend/internals/features/school/attendance/dto"
	"schoolku_backend/internals/features/school/attendance/model"
)

// StatusListService owns the per-table attendance vocabulary.
type StatusListService struct {
	store  Store
	engine *access.Engine
}

func NewStatusListService(store Store, engine *access.Engine) *StatusListService {
	return &StatusListService{store: store, engine: engine}
}

// CreateDefaultStatuses seeds the fixed vocabulary for a fresh table.
// Runs synchronously inside table creation; callers expect the list
// present in the create response.
func (s *StatusListService) CreateDefaultStatuses(ctx context.Context, tableID, subjectID, schoolID uuid.UUID) ([]model.AttendanceStatusListModel, error) {
	seeds := make([]model.AttendanceStatusListModel, 0, len(model.DefaultStatusSeeds))
	for _, seed := range model.DefaultStatusSeeds {
		seeds = append(seeds, model.AttendanceStatusListModel{
			AttendanceStatusListAttendanceTableID: tableID,
			AttendanceStatusListSubjectID:         subjectID,
			AttendanceStatusListSchoolID:          schoolID,
			AttendanceStatusListTitle:             seed.Title,
			AttendanceStatusListValue:             seed.Value,
			AttendanceStatusListColor:             seed.Color,
		})
	}
	return s.store.CreateStatusLists(ctx, seeds)
}

func (s *StatusListService) Create(ctx context.Context, req dto.CreateAttendanceStatusListRequest, actorID uuid.UUID) (*model.AttendanceStatusListModel, error) {
	table, err := s.store.GetTable(ctx, req.AttendanceTableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Attendance table not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, table.AttendanceTableSubjectID); err != nil {
		return nil, err
	}

	if err := s.requireUniqueTitle(ctx, table.AttendanceTableID, req.Title, uuid.Nil); err != nil {
		return nil, err
	}

	created, err := s.store.CreateStatusLists(ctx, []model.AttendanceStatusListModel{{
		AttendanceStatusListAttendanceTableID: table.AttendanceTableID,
		AttendanceStatusListSubjectID:         table.AttendanceTableSubjectID,
		AttendanceStatusListSchoolID:          table.AttendanceTableSchoolID,
		AttendanceStatusListTitle:             req.Title,
		AttendanceStatusListValue:             req.Value,
		AttendanceStatusListColor:             req.Color,
	}})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

func (s *StatusListService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAttendanceStatusListRequest, actorID uuid.UUID) (*model.AttendanceStatusListModel, error) {
	status, err := s.store.GetStatusList(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Attendance status not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, status.AttendanceStatusListSubjectID); err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != status.AttendanceStatusListTitle {
		// Re-validate against siblings, excluding itself.
		if err := s.requireUniqueTitle(ctx, status.AttendanceStatusListAttendanceTableID, *req.Title, status.AttendanceStatusListID); err != nil {
			return nil, err
		}
		status.AttendanceStatusListTitle = *req.Title
	}
	if req.Value != nil {
		status.AttendanceStatusListValue = *req.Value
	}
	if req.Color != nil {
		status.AttendanceStatusListColor = *req.Color
	}

	if err := s.store.UpdateStatusList(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *StatusListService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	status, err := s.store.GetStatusList(ctx, id)
	if err != nil {
		return err
	}
	if status == nil {
		return fiber.NewError(fiber.StatusNotFound, "Attendance status not found")
	}

	if _, err := s.engine.AuthorizeSubjectTeacher(ctx, actorID, status.AttendanceStatusListSubjectID); err != nil {
		return err
	}
	return s.store.DeleteStatusList(ctx, id)
}

// requireUniqueTitle enforces case-sensitive exact-match uniqueness within
// one table; excludeID skips the entry being updated.
func (s *StatusListService) requireUniqueTitle(ctx context.Context, tableID uuid.UUID, title string, excludeID uuid.UUID) error {
	siblings, err := s.store.ListStatusListsByTable(ctx, tableID)
	if err != nil {
		return err
	}
	for _, sib := range siblings {
		if sib.AttendanceStatusListID == excludeID {
			continue
		}
		if sib.AttendanceStatusListTitle == title {
			return fiber.NewError(fiber.StatusBadRequest, "Duplicate title")
		}
	}
	return nil
}
