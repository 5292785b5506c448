package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/attendance/model"
	schoolModel "schoolku_backend/internals/features/school/schools/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

// fakeStore backs the managers and the access engine in one in-memory
// fixture. All methods are mutex-guarded; UpdateMany hits them from
// multiple goroutines.
type fakeStore struct {
	mu sync.Mutex

	schools     map[uuid.UUID]*schoolModel.SchoolModel
	members     map[[2]uuid.UUID]*schoolModel.MemberOnSchoolModel
	subjects    map[uuid.UUID]*subjectModel.SubjectModel
	teachers    map[[2]uuid.UUID]*subjectModel.TeacherOnSubjectModel
	students    map[uuid.UUID]*schoolModel.StudentModel
	enrollments map[uuid.UUID]*subjectModel.StudentOnSubjectModel

	tables      map[uuid.UUID]*model.AttendanceTableModel
	statusLists map[uuid.UUID]*model.AttendanceStatusListModel
	rows        map[uuid.UUID]*model.AttendanceRowModel
	attendances map[uuid.UUID]*model.AttendanceModel
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		schools:     map[uuid.UUID]*schoolModel.SchoolModel{},
		members:     map[[2]uuid.UUID]*schoolModel.MemberOnSchoolModel{},
		subjects:    map[uuid.UUID]*subjectModel.SubjectModel{},
		teachers:    map[[2]uuid.UUID]*subjectModel.TeacherOnSubjectModel{},
		students:    map[uuid.UUID]*schoolModel.StudentModel{},
		enrollments: map[uuid.UUID]*subjectModel.StudentOnSubjectModel{},
		tables:      map[uuid.UUID]*model.AttendanceTableModel{},
		statusLists: map[uuid.UUID]*model.AttendanceStatusListModel{},
		rows:        map[uuid.UUID]*model.AttendanceRowModel{},
		attendances: map[uuid.UUID]*model.AttendanceModel{},
	}
}

/* =========================
   Fixture helpers
========================= */

func (f *fakeStore) seedSchool() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.schools[id] = &schoolModel.SchoolModel{SchoolID: id, SchoolTitle: "School"}
	return id
}

func (f *fakeStore) seedMember(userID, schoolID uuid.UUID, role schoolModel.MemberRole, status schoolModel.MemberStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[[2]uuid.UUID{userID, schoolID}] = &schoolModel.MemberOnSchoolModel{
		MemberOnSchoolID:       uuid.New(),
		MemberOnSchoolUserID:   userID,
		MemberOnSchoolSchoolID: schoolID,
		MemberOnSchoolRole:     role,
		MemberOnSchoolStatus:   status,
	}
}

func (f *fakeStore) seedSubject(schoolID uuid.UUID) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.subjects[id] = &subjectModel.SubjectModel{
		SubjectID:       id,
		SubjectSchoolID: schoolID,
		SubjectTitle:    "Math",
		SubjectCode:     "MATH101",
	}
	return id
}

func (f *fakeStore) seedTeacher(userID, subjectID, schoolID uuid.UUID, status schoolModel.MemberStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teachers[[2]uuid.UUID{userID, subjectID}] = &subjectModel.TeacherOnSubjectModel{
		TeacherOnSubjectID:        uuid.New(),
		TeacherOnSubjectUserID:    userID,
		TeacherOnSubjectSubjectID: subjectID,
		TeacherOnSubjectSchoolID:  schoolID,
		TeacherOnSubjectRole:      schoolModel.MemberRoleTeacher,
		TeacherOnSubjectStatus:    status,
	}
}

func (f *fakeStore) seedEnrolledStudent(subjectID, schoolID uuid.UUID, name string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	studentID := uuid.New()
	f.students[studentID] = &schoolModel.StudentModel{
		StudentID:       studentID,
		StudentSchoolID: schoolID,
		StudentClassID:  uuid.New(),
		StudentTitle:    name,
		StudentNumber:   "1",
	}
	sosID := uuid.New()
	f.enrollments[sosID] = &subjectModel.StudentOnSubjectModel{
		StudentOnSubjectID:        sosID,
		StudentOnSubjectStudentID: studentID,
		StudentOnSubjectSubjectID: subjectID,
		StudentOnSubjectSchoolID:  schoolID,
		StudentOnSubjectIsActive:  true,
	}
	return sosID
}

/* =========================
   access.MembershipStore
========================= */

func (f *fakeStore) GetSchool(_ context.Context, id uuid.UUID) (*schoolModel.SchoolModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schools[id], nil
}

func (f *fakeStore) GetMemberOnSchool(_ context.Context, userID, schoolID uuid.UUID) (*schoolModel.MemberOnSchoolModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[[2]uuid.UUID{userID, schoolID}], nil
}

func (f *fakeStore) GetSubject(_ context.Context, id uuid.UUID) (*subjectModel.SubjectModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subjects[id], nil
}

func (f *fakeStore) GetTeacherOnSubject(_ context.Context, userID, subjectID uuid.UUID) (*subjectModel.TeacherOnSubjectModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.teachers[[2]uuid.UUID{userID, subjectID}], nil
}

func (f *fakeStore) ListStudentOnSubjectsBySubject(_ context.Context, subjectID uuid.UUID) ([]subjectModel.StudentOnSubjectModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []subjectModel.StudentOnSubjectModel
	for _, sos := range f.enrollments {
		if sos.StudentOnSubjectSubjectID == subjectID {
			out = append(out, *sos)
		}
	}
	return out, nil
}

/* =========================
   Store: tables
========================= */

func (f *fakeStore) GetTable(_ context.Context, id uuid.UUID) (*model.AttendanceTableModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tables[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) ListTablesBySubject(_ context.Context, subjectID uuid.UUID) ([]model.AttendanceTableModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceTableModel
	for _, t := range f.tables {
		if t.AttendanceTableSubjectID == subjectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateTable(_ context.Context, m *model.AttendanceTableModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.AttendanceTableID == uuid.Nil {
		m.AttendanceTableID = uuid.New()
	}
	cp := *m
	f.tables[m.AttendanceTableID] = &cp
	return nil
}

func (f *fakeStore) UpdateTable(_ context.Context, m *model.AttendanceTableModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.tables[m.AttendanceTableID] = &cp
	return nil
}

func (f *fakeStore) DeleteTable(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tables, id)
	for sid, sl := range f.statusLists {
		if sl.AttendanceStatusListAttendanceTableID == id {
			delete(f.statusLists, sid)
		}
	}
	for rid, row := range f.rows {
		if row.AttendanceRowAttendanceTableID == id {
			delete(f.rows, rid)
		}
	}
	for aid, att := range f.attendances {
		if att.AttendanceAttendanceTableID == id {
			delete(f.attendances, aid)
		}
	}
	return nil
}

/* =========================
   Store: status lists
========================= */

func (f *fakeStore) GetStatusList(_ context.Context, id uuid.UUID) (*model.AttendanceStatusListModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sl, ok := f.statusLists[id]; ok {
		cp := *sl
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) ListStatusListsByTable(_ context.Context, tableID uuid.UUID) ([]model.AttendanceStatusListModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceStatusListModel
	for _, sl := range f.statusLists {
		if sl.AttendanceStatusListAttendanceTableID == tableID {
			out = append(out, *sl)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateStatusLists(_ context.Context, ms []model.AttendanceStatusListModel) ([]model.AttendanceStatusListModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.AttendanceStatusListModel, 0, len(ms))
	for _, m := range ms {
		if m.AttendanceStatusListID == uuid.Nil {
			m.AttendanceStatusListID = uuid.New()
		}
		cp := m
		f.statusLists[m.AttendanceStatusListID] = &cp
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeStore) UpdateStatusList(_ context.Context, m *model.AttendanceStatusListModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.statusLists[m.AttendanceStatusListID] = &cp
	return nil
}

func (f *fakeStore) DeleteStatusList(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.statusLists, id)
	return nil
}

/* =========================
   Store: rows
========================= */

func (f *fakeStore) GetRow(_ context.Context, id uuid.UUID) (*model.AttendanceRowModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) ListRowsByTable(_ context.Context, tableID uuid.UUID) ([]model.AttendanceRowModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceRowModel
	for _, r := range f.rows {
		if r.AttendanceRowAttendanceTableID == tableID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRowsBySubject(_ context.Context, subjectID uuid.UUID) ([]model.AttendanceRowModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceRowModel
	for _, r := range f.rows {
		if r.AttendanceRowSubjectID == subjectID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateRowWithAttendances(_ context.Context, row *model.AttendanceRowModel, attendances []model.AttendanceModel) ([]model.AttendanceModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row.AttendanceRowID == uuid.Nil {
		row.AttendanceRowID = uuid.New()
	}
	rcp := *row
	f.rows[row.AttendanceRowID] = &rcp

	out := make([]model.AttendanceModel, 0, len(attendances))
	for _, att := range attendances {
		if att.AttendanceID == uuid.Nil {
			att.AttendanceID = uuid.New()
		}
		att.AttendanceAttendanceRowID = row.AttendanceRowID
		cp := att
		f.attendances[att.AttendanceID] = &cp
		out = append(out, att)
	}
	return out, nil
}

func (f *fakeStore) UpdateRow(_ context.Context, m *model.AttendanceRowModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.rows[m.AttendanceRowID] = &cp
	return nil
}

func (f *fakeStore) DeleteRow(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	for aid, att := range f.attendances {
		if att.AttendanceAttendanceRowID == id {
			delete(f.attendances, aid)
		}
	}
	return nil
}

/* =========================
   Store: attendances
========================= */

func (f *fakeStore) GetAttendance(_ context.Context, id uuid.UUID) (*model.AttendanceModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.attendances[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) ListAttendancesByRow(_ context.Context, rowID uuid.UUID) ([]model.AttendanceModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceModel
	for _, a := range f.attendances {
		if a.AttendanceAttendanceRowID == rowID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAttendancesBySubject(_ context.Context, subjectID uuid.UUID) ([]model.AttendanceModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceModel
	for _, a := range f.attendances {
		if a.AttendanceSubjectID == subjectID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAttendanceByRowAndStudentOnSubject(_ context.Context, rowID, studentOnSubjectID uuid.UUID) (*model.AttendanceModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attendances {
		if a.AttendanceAttendanceRowID == rowID && a.AttendanceStudentOnSubjectID == studentOnSubjectID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateAttendance(_ context.Context, m *model.AttendanceModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.attendances {
		if a.AttendanceAttendanceRowID == m.AttendanceAttendanceRowID &&
			a.AttendanceStudentOnSubjectID == m.AttendanceStudentOnSubjectID {
			return ErrDuplicateAttendance
		}
	}
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	cp := *m
	f.attendances[m.AttendanceID] = &cp
	return nil
}

func (f *fakeStore) UpdateAttendance(_ context.Context, m *model.AttendanceModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.attendances[m.AttendanceID] = &cp
	return nil
}

/* =========================
   Store: enrollment reads
========================= */

func (f *fakeStore) GetStudentOnSubject(_ context.Context, id uuid.UUID) (*subjectModel.StudentOnSubjectModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sos, ok := f.enrollments[id]; ok {
		cp := *sos
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) GetStudentOnSubjectBySubjectAndStudent(_ context.Context, subjectID, studentID uuid.UUID) (*subjectModel.StudentOnSubjectModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sos := range f.enrollments {
		if sos.StudentOnSubjectSubjectID == subjectID && sos.StudentOnSubjectStudentID == studentID {
			cp := *sos
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetStudent(_ context.Context, id uuid.UUID) (*schoolModel.StudentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.students[id]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) ListStudentsBySubject(_ context.Context, subjectID uuid.UUID) ([]schoolModel.StudentModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []schoolModel.StudentModel
	for _, sos := range f.enrollments {
		if sos.StudentOnSubjectSubjectID != subjectID {
			continue
		}
		if st, ok := f.students[sos.StudentOnSubjectStudentID]; ok {
			out = append(out, *st)
		}
	}
	return out, nil
}
